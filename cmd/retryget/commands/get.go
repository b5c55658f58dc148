// Copyright 2026 The retryhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package commands

import (
	"context"
	"crypto/tls"
	"fmt"
	"io"
	"net"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/gogama/retryhttp"
	"github.com/gogama/retryhttp/config"
	"github.com/gogama/retryhttp/logging"
	"github.com/gogama/retryhttp/request"
	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
)

type getOptions struct {
	method     string
	data       string
	headers    []string
	attempts   int
	delay      time.Duration
	multiplier float64
	maxDelay   time.Duration
	jitter     string
	timeout    time.Duration
	escalate   []time.Duration
	statuses   []string
	errors     string
	include    bool
	fail       bool
	insecure   bool
	telemetry  bool
}

func newGetCmd(root *rootOptions) *cobra.Command {
	o := &getOptions{}
	cmd := &cobra.Command{
		Use:   "get URL",
		Short: "Send a request and print the final response body",
		Long: `Send a request to URL over HTTP/1.1 or HTTP/2, retrying failed attempts.

The body of the final response is written to standard output. Retry
decisions are logged to standard error.

Examples:
  retryget get https://example.com/
  retryget get -i --attempts 3 --max-delay 1s https://example.com/
  retryget get -X PUT -H 'Content-Type: text/plain' -d hello https://example.com/x`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGet(cmd, root, o, args[0])
		},
	}

	f := cmd.Flags()
	f.StringVarP(&o.method, "method", "X", http.MethodGet, "HTTP method")
	f.StringVarP(&o.data, "data", "d", "", "request body")
	f.StringArrayVarP(&o.headers, "header", "H", nil, "request header as 'Name: value' (repeatable)")
	f.IntVar(&o.attempts, "attempts", 0, "total number of attempts")
	f.DurationVar(&o.delay, "delay", 0, "delay before the first retry")
	f.Float64Var(&o.multiplier, "multiplier", 0, "delay growth factor")
	f.DurationVar(&o.maxDelay, "max-delay", 0, "delay ceiling (0 for none)")
	f.StringVar(&o.jitter, "jitter", "", "jitter as a duration (50ms) or a percentage (10%), or none")
	f.DurationVar(&o.timeout, "timeout", 0, "timeout for each attempt (0 for none)")
	f.DurationSliceVar(&o.escalate, "escalate", nil, "timeouts for retries after the first, second, ... attempt timeout")
	f.StringSliceVar(&o.statuses, "retry-status", nil, "retryable status classes and codes, e.g. 5xx,429")
	f.StringVar(&o.errors, "retry-errors", "", "retryable transport failures (all, transient, none)")
	f.BoolVarP(&o.include, "include", "i", false, "print the status line and headers before the body")
	f.BoolVar(&o.fail, "fail", false, "exit with an error if the final status is 400 or above")
	f.BoolVarP(&o.insecure, "insecure", "k", false, "skip TLS certificate verification")
	f.BoolVar(&o.telemetry, "telemetry", false, "write OpenTelemetry spans and metrics to standard error")

	return cmd
}

func runGet(cmd *cobra.Command, root *rootOptions, o *getOptions, url string) error {
	cfg, err := root.loadConfig()
	if err != nil {
		return err
	}
	if err = o.apply(cmd, cfg); err != nil {
		return err
	}

	g := &retryhttp.HandlerGroup{}
	logging.Install(g, cfg.Logger(cmd.ErrOrStderr()))
	if o.telemetry {
		shutdown, err := installTelemetry(g, cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		defer func() {
			_ = shutdown(context.WithoutCancel(cmd.Context()))
		}()
	}

	tr, err := newTransport(o.insecure)
	if err != nil {
		return err
	}
	defer tr.CloseIdleConnections()

	cl, err := cfg.Client(&http.Client{Transport: tr}, g)
	if err != nil {
		return err
	}

	p, err := request.NewPlanWithContext(cmd.Context(), o.method, url, o.data)
	if err != nil {
		return err
	}
	for _, h := range o.headers {
		name, value, ok := strings.Cut(h, ":")
		if !ok || strings.TrimSpace(name) == "" {
			return fmt.Errorf("invalid header %q (want 'Name: value')", h)
		}
		p.Header.Add(strings.TrimSpace(name), strings.TrimSpace(value))
	}

	e, err := cl.Do(p)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if o.include {
		writeHead(out, e.Response)
	}
	if _, err = out.Write(e.Body); err != nil {
		return fmt.Errorf("writing body: %w", err)
	}
	if o.fail && e.StatusCode() >= 400 {
		return fmt.Errorf("server returned %s after %d attempts", e.Response.Status, e.Attempt+1)
	}
	return nil
}

// apply overrides cfg with every flag set on the command line and
// validates the result.
func (o *getOptions) apply(cmd *cobra.Command, cfg *config.Config) error {
	changed := cmd.Flags().Changed
	if changed("attempts") {
		cfg.Backoff.Attempts = o.attempts
	}
	if changed("delay") {
		cfg.Backoff.Delay = o.delay
	}
	if changed("multiplier") {
		cfg.Backoff.Multiplier = o.multiplier
	}
	if changed("max-delay") {
		cfg.Backoff.MaxDelay = o.maxDelay
	}
	if changed("jitter") {
		j, err := parseJitter(o.jitter)
		if err != nil {
			return err
		}
		cfg.Backoff.Jitter = j
	}
	if changed("timeout") {
		cfg.Attempt.Timeout = o.timeout
	}
	if changed("escalate") {
		cfg.Attempt.Escalate = o.escalate
	}
	if changed("retry-status") {
		cfg.Retry.Statuses = o.statuses
	}
	if changed("retry-errors") {
		cfg.Retry.Errors = o.errors
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	return nil
}

// parseJitter reads a jitter setting given either as a duration, which
// is added at random to each wait, or as a percentage of the wait.
func parseJitter(s string) (config.JitterConfig, error) {
	s = strings.TrimSpace(s)
	switch {
	case s == "" || s == config.JitterNone:
		return config.JitterConfig{Mode: config.JitterNone}, nil
	case strings.HasSuffix(s, "%"):
		p, err := strconv.ParseFloat(strings.TrimSuffix(s, "%"), 64)
		if err != nil {
			return config.JitterConfig{}, fmt.Errorf("invalid jitter percentage %q: %w", s, err)
		}
		return config.JitterConfig{Mode: config.JitterPercent, Percent: p / 100}, nil
	default:
		d, err := time.ParseDuration(s)
		if err != nil {
			return config.JitterConfig{}, fmt.Errorf("invalid jitter %q: want a duration or a percentage", s)
		}
		return config.JitterConfig{Mode: config.JitterAbsolute, Absolute: d}, nil
	}
}

// newTransport returns a transport which negotiates HTTP/2 over TLS and
// falls back to HTTP/1.1.
func newTransport(insecure bool) (*http.Transport, error) {
	t := &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		DialContext: (&net.Dialer{
			Timeout:   30 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		TLSClientConfig: &tls.Config{
			MinVersion:         tls.VersionTLS12,
			InsecureSkipVerify: insecure, //nolint:gosec // only with --insecure
		},
		MaxIdleConns:          100,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   10 * time.Second,
		ExpectContinueTimeout: time.Second,
	}
	if err := http2.ConfigureTransport(t); err != nil {
		return nil, fmt.Errorf("configuring HTTP/2: %w", err)
	}
	return t, nil
}

func writeHead(w io.Writer, resp *http.Response) {
	fmt.Fprintf(w, "%s %s\n", resp.Proto, resp.Status)
	names := make([]string, 0, len(resp.Header))
	for name := range resp.Header {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		for _, v := range resp.Header[name] {
			fmt.Fprintf(w, "%s: %s\n", name, v)
		}
	}
	fmt.Fprintln(w)
}
