// Package option holds flag and logger setup shared by the subcommands.
package option

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/f1stats/f1stats-go/log"
	"github.com/f1stats/f1stats-go/pkg/config"
)

// AddLogFlags registers the log flags as persistent so subcommands
// inherit them.
func AddLogFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&config.LogLevel,
		"logLevel",
		"info",
		"controls the log level (debug, info, warn, error, fatal)")
	cmd.PersistentFlags().StringVar(&config.SQLLogLevel,
		"sqlLogLevel",
		"info",
		"controls the log level for sql methods")
	cmd.PersistentFlags().StringVar(&config.LogFormat,
		"logFormat",
		"json",
		"controls the log output format")
	cmd.PersistentFlags().StringVar(&config.LogFilter,
		"logFilter",
		"",
		"zapfilter rules for named loggers (e.g. 'debug:sync* info:*')")
}

func ParseLogLevel(l string, defaultVal log.Level) log.Level {
	level, err := log.ParseLevel(l)
	if err != nil {
		return defaultVal
	}
	return level
}

// SetupLogger builds the logger from the configured flags and installs
// it as the package default.
func SetupLogger() *log.Logger {
	var logger *log.Logger
	switch config.LogFormat {
	case "json":
		logger = log.New(
			os.Stderr,
			ParseLogLevel(config.LogLevel, log.InfoLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
	default:
		logger = log.DevLogger(
			os.Stderr,
			ParseLogLevel(config.LogLevel, log.DebugLevel),
			log.WithCaller(true),
			log.AddCallerSkip(1))
	}
	logger = log.WithFilterRules(logger, config.LogFilter)
	log.ResetDefault(logger)
	return logger
}

// ProviderTimeout parses the configured provider timeout, falling back
// to 10s on invalid values.
func ProviderTimeout() time.Duration {
	ret, err := time.ParseDuration(config.ProviderTimeout)
	if err != nil {
		log.Warn("Invalid provider timeout. Using default 10s",
			log.ErrorField(err))
		return 10 * time.Second
	}
	return ret
}
