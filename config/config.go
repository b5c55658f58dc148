// Copyright 2026 The retryhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package config loads retry client settings from defaults, an
// optional YAML document and RETRYHTTP_ environment variables, and
// turns them into backoff, retry and client values.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read by Load.
// RETRYHTTP_BACKOFF_MAXDELAY sets backoff.maxdelay.
const EnvPrefix = "RETRYHTTP_"

// Jitter modes.
const (
	JitterNone     = "none"
	JitterAbsolute = "absolute"
	JitterPercent  = "percent"
)

// Transport error retry modes.
const (
	ErrorsAll       = "all"
	ErrorsTransient = "transient"
	ErrorsNone      = "none"
)

// Config is the complete retry client configuration.
type Config struct {
	Backoff BackoffConfig `koanf:"backoff"`
	Retry   RetryConfig   `koanf:"retry"`
	Attempt AttemptConfig `koanf:"attempt"`
	Log     LogConfig     `koanf:"log"`
}

// BackoffConfig describes the attempt budget and delay schedule.
type BackoffConfig struct {
	Attempts   int           `koanf:"attempts" validate:"min=1"`
	Delay      time.Duration `koanf:"delay" validate:"gte=0"`
	Multiplier float64       `koanf:"multiplier" validate:"gte=1"`
	MaxDelay   time.Duration `koanf:"maxdelay" validate:"gte=0"`
	Jitter     JitterConfig  `koanf:"jitter"`
}

// JitterConfig selects the jitter applied to each wait. Absolute is
// used only in absolute mode, Percent only in percent mode.
type JitterConfig struct {
	Mode     string        `koanf:"mode" validate:"oneof=none absolute percent"`
	Absolute time.Duration `koanf:"absolute" validate:"gte=0"`
	Percent  float64       `koanf:"percent" validate:"gte=0,lt=1"`
}

// RetryConfig describes which attempt outcomes are retried.
type RetryConfig struct {
	// Statuses lists retryable status classes ("5xx") and codes ("429").
	Statuses []string `koanf:"statuses" validate:"dive,retrystatus"`
	Errors   string   `koanf:"errors" validate:"oneof=all transient none"`
}

// AttemptConfig bounds individual attempts. A zero Timeout means no
// timeout. Escalate lists the timeouts used after the first, second and
// later attempt timeouts; if empty, every attempt gets Timeout.
type AttemptConfig struct {
	Timeout  time.Duration   `koanf:"timeout" validate:"gte=0"`
	Escalate []time.Duration `koanf:"escalate" validate:"dive,gte=0"`
}

// LogConfig configures the diagnostic logger.
type LogConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error disabled"`
	Pretty bool   `koanf:"pretty"`
}

// Load reads the configuration with priority, lowest first: defaults,
// the YAML file at path (skipped if path is empty), environment
// variables with prefix EnvPrefix. The result is validated.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := loadDefaults(k); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
	}

	return finish(k)
}

// Parse is like Load but reads the YAML document from b instead of a
// file.
func Parse(b []byte) (*Config, error) {
	k := koanf.New(".")

	if err := loadDefaults(k); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if err := k.Load(rawbytes.Provider(b), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return finish(k)
}

func finish(k *koanf.Koanf) (*Config, error) {
	if err := k.Load(env.Provider(".", env.Opt{
		Prefix:        EnvPrefix,
		TransformFunc: envKey,
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// envKey maps RETRYHTTP_BACKOFF_JITTER_MODE to backoff.jitter.mode.
// List keys take comma-separated values.
func envKey(k, v string) (string, any) {
	k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, EnvPrefix)), "_", ".")
	if k == "retry.statuses" || k == "attempt.escalate" {
		var list []string
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				list = append(list, s)
			}
		}
		return k, list
	}
	return k, v
}

func loadDefaults(k *koanf.Koanf) error {
	defaults := map[string]any{
		"backoff.attempts":        10,
		"backoff.delay":           "100ms",
		"backoff.multiplier":      2.0,
		"backoff.maxdelay":        "0s",
		"backoff.jitter.mode":     JitterNone,
		"backoff.jitter.absolute": "0s",
		"backoff.jitter.percent":  0.0,

		"retry.statuses": []string{"4xx", "5xx"},
		"retry.errors":   ErrorsAll,

		"attempt.timeout": "0s",

		"log.level":  "info",
		"log.pretty": false,
	}

	return k.Load(confmap.Provider(defaults, "."), nil)
}
