package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"phototag/internal"
)

// Exit statuses.
const (
	ExitOK       = 0
	ExitHelp     = 1
	ExitArgument = 2
	ExitFatal    = 3
)

var (
	configFlag   string
	logLevelFlag string
	logFileFlag  string
)

var rootCmd = &cobra.Command{
	Use:           "phototag",
	Short:         "Keyword tagging for a date-organized photo archive",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	return rootCmd.Execute()
}

// ExitCode maps an Execute error to the process exit status.
func ExitCode(err error) int {
	var argErr *internal.ArgumentError
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, internal.ErrHelp):
		return ExitHelp
	case errors.As(err, &argErr):
		return ExitArgument
	case isCobraUsageError(err):
		return ExitArgument
	default:
		return ExitFatal
	}
}

// isCobraUsageError catches cobra's own flag and command errors.
func isCobraUsageError(err error) bool {
	msg := err.Error()
	return strings.HasPrefix(msg, "unknown command") ||
		strings.HasPrefix(msg, "unknown flag") ||
		strings.HasPrefix(msg, "unknown shorthand flag") ||
		strings.Contains(msg, "flag needs an argument") ||
		strings.HasPrefix(msg, "accepts ") ||
		strings.HasPrefix(msg, "invalid argument")
}

// loadRuntime loads the config and opens the logger, applying the global
// flag overrides.
func loadRuntime() (*internal.Config, *internal.Logger, error) {
	conf, err := internal.LoadConfig(configFlag)
	if err != nil {
		return nil, nil, err
	}
	if logLevelFlag != "" {
		conf.LogLevel = logLevelFlag
	}
	if logFileFlag != "" {
		conf.LogFile = logFileFlag
	}
	logger, err := internal.NewLogger(conf.LogLevel, conf.LogFile)
	if err != nil {
		return nil, nil, err
	}
	return conf, logger, nil
}

// parseToolArgs validates "<switches> <path>". "?" or no arguments requests
// help. Every switch character must be known; the last one wins.
func parseToolArgs[T any](cmd *cobra.Command, args []string, switches map[rune]T) (T, string, error) {
	var mode T
	if len(args) == 0 || args[0] == "?" {
		_ = cmd.Help()
		return mode, "", internal.ErrHelp
	}
	if len(args) != 2 {
		return mode, "", &internal.ArgumentError{
			Msg: "Invalid number of arguments given. Use '?' to see available switches.",
		}
	}

	var invalid []string
	for _, c := range args[0] {
		m, ok := switches[c]
		if !ok {
			invalid = append(invalid, fmt.Sprintf("'%c'", c))
			continue
		}
		mode = m
	}
	if args[0] == "" {
		invalid = append(invalid, "''")
	}
	if len(invalid) > 0 {
		return mode, "", &internal.ArgumentError{
			Msg: fmt.Sprintf("Invalid switch(es) specified: %s Use '?' to see available switches.", strings.Join(invalid, ", ")),
		}
	}
	return mode, args[1], nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Config file (default: <user config dir>/phototag/phototag.toml)")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFileFlag, "log-file", "", "Also append the log to this file")
}
