// Copyright 2026 The retryhttp Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package commands implements the retryget command line.
package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/gogama/retryhttp/config"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

const defaultEnvFile = ".env"

type rootOptions struct {
	configPath string
	envFile    string
	logLevel   string
	pretty     bool
}

// NewRootCmd creates the retryget root command and its subcommands.
func NewRootCmd() *cobra.Command {
	o := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "retryget",
		Short: "Send an HTTP request, retrying failures with exponential backoff",
		Long: `retryget sends one HTTP request and retries it on transport failures
and error statuses, waiting longer before each retry.

Settings come from built-in defaults, an optional YAML file (--config),
RETRYHTTP_ environment variables (also read from --env-file) and finally
command line flags.

Examples:
  retryget get https://example.com/
  retryget get --attempts 5 --delay 200ms --jitter 10% https://example.com/
  RETRYHTTP_BACKOFF_MAXDELAY=2s retryget get -X POST -d '{}' https://example.com/api`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return o.loadEnvFile(cmd.Flags().Changed("env-file"))
		},
	}

	cmd.PersistentFlags().StringVar(&o.configPath, "config", "", "YAML configuration file")
	cmd.PersistentFlags().StringVar(&o.envFile, "env-file", defaultEnvFile, "file of KEY=value environment settings")
	cmd.PersistentFlags().StringVar(&o.logLevel, "log-level", "", "log level (trace, debug, info, warn, error, disabled)")
	cmd.PersistentFlags().BoolVar(&o.pretty, "pretty", false, "human-readable log output")

	cmd.AddCommand(newGetCmd(o))
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// Execute runs the root command until it completes or the process is
// interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return NewRootCmd().ExecuteContext(ctx)
}

// loadEnvFile loads o.envFile without overriding variables which are
// already set. A missing file is only an error if it was named
// explicitly.
func (o *rootOptions) loadEnvFile(explicit bool) error {
	if o.envFile == "" {
		return nil
	}
	err := godotenv.Load(o.envFile)
	if err != nil && (explicit || !errors.Is(err, fs.ErrNotExist)) {
		return fmt.Errorf("loading %s: %w", o.envFile, err)
	}
	return nil
}

// loadConfig loads the configuration and applies the root flag
// overrides.
func (o *rootOptions) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.pretty {
		cfg.Log.Pretty = true
	}
	return cfg, nil
}
