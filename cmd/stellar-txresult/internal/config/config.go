package config

import (
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
)

// Config represents the configuration of a stellar-txresult server
type Config struct {
	ConfigPath string

	Strict bool

	Endpoint                       string
	AdminEndpoint                  string
	LogLevel                       logrus.Level
	LogFormat                      LogFormat
	SQLiteDBPath                   string
	MaxOperations                  int
	FeeStatsWindow                 uint32
	RequestBacklogGlobalQueueLimit uint
	MaxRequestExecutionDuration    time.Duration

	optionsCache *Options
	flagset      *pflag.FlagSet
}

// SetValues sets the configuration values from defaults, then the config
// file, then environment variables, then command line flags.
func (cfg *Config) SetValues(lookupEnv func(string) (string, bool)) error {
	if err := cfg.loadDefaults(); err != nil {
		return err
	}

	// Read env and flags once to find out where the config file lives
	if err := cfg.loadEnv(lookupEnv); err != nil {
		return err
	}
	if err := cfg.loadFlags(); err != nil {
		return err
	}

	if cfg.ConfigPath != "" {
		if err := cfg.loadConfigPath(); err != nil {
			return err
		}
		// env and flags take precedence over the file
		if err := cfg.loadEnv(lookupEnv); err != nil {
			return err
		}
		if err := cfg.loadFlags(); err != nil {
			return err
		}
	}

	return nil
}

func (cfg *Config) loadDefaults() error {
	for _, option := range cfg.options() {
		if option.ConfigKey != nil && option.DefaultValue != nil {
			if err := option.setValue(option.DefaultValue); err != nil {
				return err
			}
		}
	}
	return nil
}

func (cfg *Config) loadEnv(lookupEnv func(string) (string, bool)) error {
	return parseEnv(cfg.options(), lookupEnv)
}

func parseEnv(options Options, lookupEnv func(string) (string, bool)) error {
	for _, option := range options {
		key, ok := option.getEnvKey()
		if !ok {
			continue
		}
		value, ok := lookupEnv(key)
		if !ok {
			continue
		}
		if err := option.setValue(value); err != nil {
			return err
		}
	}
	return nil
}

func (cfg *Config) loadFlags() error {
	if cfg.flagset == nil {
		return nil
	}
	for _, option := range cfg.options() {
		if option.flag == nil || !option.flag.Changed {
			continue
		}
		val, err := option.GetFlag(cfg.flagset)
		if err != nil {
			return err
		}
		if err := option.setValue(val); err != nil {
			return err
		}
	}
	return nil
}

func (cfg *Config) loadConfigPath() error {
	file, err := os.Open(cfg.ConfigPath)
	if err != nil {
		return err
	}
	defer file.Close()
	return parseToml(file, cfg.Strict, cfg)
}

// Validate runs the Validate function of every option.
func (cfg *Config) Validate() error {
	for _, option := range cfg.options() {
		if option.Validate != nil {
			if err := option.Validate(option); err != nil {
				return err
			}
		}
	}
	return nil
}
