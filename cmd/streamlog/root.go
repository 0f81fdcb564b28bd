package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/philipp01105/streamlog/backend"
	"github.com/philipp01105/streamlog/core"
	"github.com/philipp01105/streamlog/handler"
	"github.com/philipp01105/streamlog/logger"
)

// newRootCmd constructs the streamlog command tree.
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "streamlog",
		Short:        "Write log records through the streamlog backend",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringSlice("env-file", nil, "load variables from .env files before reading the environment")

	root.AddCommand(newLogCmd(), newCheckCmd())
	return root
}

// newLogCmd constructs `streamlog log`. Arguments form one record; with
// no arguments every line read from --file or stdin is a record.
func newLogCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log [message...]",
		Short: "Log a message, or each line of the input",
		RunE: func(cmd *cobra.Command, args []string) error {
			envFiles, _ := cmd.Flags().GetStringSlice("env-file")
			levelName, _ := cmd.Flags().GetString("level")
			name, _ := cmd.Flags().GetString("name")
			configFile, _ := cmd.Flags().GetString("config")
			pattern, _ := cmd.Flags().GetString("pattern")
			format, _ := cmd.Flags().GetString("format")
			verbose, _ := cmd.Flags().GetBool("verbose")
			mdc, _ := cmd.Flags().GetStringToString("context")
			input, _ := cmd.Flags().GetString("file")

			if len(envFiles) > 0 {
				if err := backend.LoadEnvFile(envFiles...); err != nil {
					return err
				}
			}

			level, err := parseLevel(levelName)
			if err != nil {
				return err
			}

			opts := []backend.Option{
				backend.WithStdout(cmd.OutOrStdout()),
				backend.WithStderr(cmd.ErrOrStderr()),
			}
			if pattern != "" {
				opts = append(opts, backend.WithPattern(pattern))
			}
			if format != "" {
				opts = append(opts, backend.WithLayout(format))
			}

			bk := backend.New(name, configFile, opts...)
			defer bk.Close()
			if verbose {
				bk.SetVerboseMode()
			}

			handler.SetBackend(bk)
			defer handler.SetBackend(nil)

			if len(mdc) > 0 {
				backend.SetContext(mdc)
				defer backend.ClearContext()
			}

			if len(args) > 0 {
				logger.Log(level, func(b *logger.Builder) {
					for _, arg := range args {
						b.Str(arg)
					}
				})
				return nil
			}

			r := cmd.InOrStdin()
			if input != "" && input != "-" {
				f, err := os.Open(input)
				if err != nil {
					return errors.Wrapf(err, "open %s", input)
				}
				defer f.Close()
				r = f
			}
			return logLines(r, level)
		},
	}

	cmd.Flags().StringP("level", "p", "info", "level of the records (name or LOG_* constant)")
	cmd.Flags().StringP("name", "n", backend.DefaultName, "agent name")
	cmd.Flags().StringP("config", "c", "", "logging configuration file")
	cmd.Flags().String("pattern", "", "conversion pattern, overrides "+backend.EnvPattern)
	cmd.Flags().String("format", "", "console layout: pattern, console, json or logfmt, overrides "+backend.EnvFormat)
	cmd.Flags().BoolP("verbose", "v", false, "also write every record to stdout")
	cmd.Flags().StringToString("context", nil, "mapped diagnostic context as key=value pairs")
	cmd.Flags().StringP("file", "f", "", "read messages from this file instead of stdin")
	return cmd
}

// newCheckCmd constructs `streamlog check`, which validates config files.
func newCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE...",
		Short: "Validate logging configuration files",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var failed int
			for _, path := range args {
				cfg, err := backend.LoadConfigFile(path)
				if err != nil {
					cmd.PrintErrf("%v\n", err)
					failed++
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok, %d appender(s)\n", path, len(cfg.Appenders))
			}
			if failed > 0 {
				return errors.Errorf("%d of %d config file(s) invalid", failed, len(args))
			}
			return nil
		},
	}
}

// parseLevel accepts level names as well as the LOG_* constants of the
// environment.
func parseLevel(s string) (core.Level, error) {
	if l, ok := core.ParseSyslogLevel(s); ok {
		return l, nil
	}
	l, err := core.ParseLevel(s)
	if err != nil {
		return 0, errors.Wrap(err, "invalid --level")
	}
	return l, nil
}

func logLines(r io.Reader, level core.Level) error {
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			continue
		}
		logger.Log(level, func(b *logger.Builder) { b.Str(line) })
	}
	return errors.Wrap(sc.Err(), "read input")
}
