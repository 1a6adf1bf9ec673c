package config

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/stellar/txresult/txresult"
)

const defaultEndpoint = "localhost:8000"

func (cfg *Config) options() Options {
	if cfg.optionsCache != nil {
		return *cfg.optionsCache
	}
	defaultLogLevel := logrus.InfoLevel
	defaultLogFormat := LogFormatText
	cfg.optionsCache = &Options{
		{
			Name:      "config-path",
			EnvVar:    "CONFIG_PATH",
			TomlKey:   "-",
			Usage:     "File path to the toml configuration file",
			ConfigKey: &cfg.ConfigPath,
		},
		{
			Name:         "config-strict",
			EnvVar:       "CONFIG_STRICT",
			TomlKey:      "STRICT",
			Usage:        "Enable strict toml configuration file parsing. This will prevent unknown fields in the config toml from being parsed.",
			ConfigKey:    &cfg.Strict,
			DefaultValue: false,
		},
		{
			Name:         "endpoint",
			Usage:        "Endpoint to listen and serve on",
			ConfigKey:    &cfg.Endpoint,
			DefaultValue: defaultEndpoint,
			Validate:     required,
		},
		{
			Name:      "admin-endpoint",
			Usage:     "Admin endpoint to listen and serve on. WARNING: this should not be accessible from the Internet and does not use TLS. \"\" (default) disables the admin server",
			ConfigKey: &cfg.AdminEndpoint,
		},
		{
			Name:           "log-level",
			Usage:          "minimum log severity (debug, info, warn, error) to log",
			ConfigKey:      &cfg.LogLevel,
			DefaultValue:   defaultLogLevel,
			CustomSetValue: parseLogLevel,
			MarshalTOML: func(option *Option) (interface{}, error) {
				return cfg.LogLevel.String(), nil
			},
		},
		{
			Name:           "log-format",
			Usage:          "format used for output logs (json or text)",
			ConfigKey:      &cfg.LogFormat,
			DefaultValue:   defaultLogFormat,
			CustomSetValue: parseLogFormat,
			MarshalTOML: func(option *Option) (interface{}, error) {
				return cfg.LogFormat.String(), nil
			},
		},
		{
			Name:         "db-path",
			Usage:        "SQLite DB path in which decoded transaction results are archived",
			ConfigKey:    &cfg.SQLiteDBPath,
			DefaultValue: "txresult.sqlite",
			Validate:     required,
		},
		{
			Name:         "max-operations",
			Usage:        "maximum operation count accepted when decoding a transaction result",
			ConfigKey:    &cfg.MaxOperations,
			DefaultValue: txresult.DefaultMaxOperations,
			Validate: func(option *Option) error {
				if err := positive(option); err != nil {
					return err
				}
				if cfg.MaxOperations > txresult.DefaultMaxOperations {
					return fmt.Errorf("%s cannot exceed the protocol limit of %d", option.Name, txresult.DefaultMaxOperations)
				}
				return nil
			},
		},
		{
			Name:         "fee-stats-window",
			Usage:        "number of archived transaction results included in fee statistics",
			ConfigKey:    &cfg.FeeStatsWindow,
			DefaultValue: uint32(1000),
			Validate:     positive,
		},
		{
			Name:         "request-backlog-global-queue-limit",
			Usage:        "Maximum number of outstanding requests",
			ConfigKey:    &cfg.RequestBacklogGlobalQueueLimit,
			DefaultValue: uint(5000),
			Validate:     positive,
		},
		{
			Name:         "max-request-execution-duration",
			Usage:        "The max request execution duration permitted for all RPC requests",
			ConfigKey:    &cfg.MaxRequestExecutionDuration,
			DefaultValue: 25 * time.Second,
		},
	}
	return *cfg.optionsCache
}
