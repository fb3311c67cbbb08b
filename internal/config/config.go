// Package config loads mailseed settings from flags, the environment and defaults.
package config

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/infodancer/mailseed/errors"
	"github.com/infodancer/mailseed/maildir"
	"github.com/infodancer/mailseed/passwd"
	"github.com/infodancer/mailseed/pool"
)

// Config represents the complete population configuration.
type Config struct {
	// MinMessages and MaxMessages bound messages per user, inclusive.
	MinMessages int `mapstructure:"min_messages"`
	MaxMessages int `mapstructure:"max_messages"`

	// Workers is the pool size. 0 uses the number of CPUs.
	Workers int `mapstructure:"workers"`

	// UsersFile is the passwd-style user directory.
	UsersFile string `mapstructure:"users_file"`

	// Directory is the registered directory type used to read UsersFile.
	Directory string `mapstructure:"directory"`

	// MaildirSubdir is the maildir below each home directory.
	MaildirSubdir string `mapstructure:"maildir_subdir"`

	// FailurePolicy is "abort" or "continue".
	FailurePolicy string `mapstructure:"failure_policy"`

	// Seed makes a run reproducible. 0 picks a random seed.
	Seed uint64 `mapstructure:"seed"`

	LogLevel string `mapstructure:"log_level"`
}

// envBindings maps configuration keys to environment variables. The first
// three names are recognized by existing container images.
var envBindings = map[string]string{
	"min_messages":   "MIN_MESSAGES",
	"max_messages":   "MAX_MESSAGES",
	"workers":        "POPULATE_WORKERS",
	"users_file":     "POPULATE_USERS_FILE",
	"directory":      "POPULATE_DIRECTORY",
	"maildir_subdir": "POPULATE_MAILDIR_SUBDIR",
	"failure_policy": "POPULATE_FAILURE_POLICY",
	"seed":           "POPULATE_SEED",
	"log_level":      "POPULATE_LOG_LEVEL",
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		MinMessages:   maildir.DefaultMinMessages,
		MaxMessages:   maildir.DefaultMaxMessages,
		Workers:       0,
		UsersFile:     passwd.DefaultPath,
		Directory:     "passwd",
		MaildirSubdir: maildir.DefaultSubdir,
		FailurePolicy: pool.PolicyAbort.String(),
		Seed:          0,
		LogLevel:      "info",
	}
}

// SetDefaults registers defaults and environment bindings on v.
func SetDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("min_messages", defaults.MinMessages)
	v.SetDefault("max_messages", defaults.MaxMessages)
	v.SetDefault("workers", defaults.Workers)
	v.SetDefault("users_file", defaults.UsersFile)
	v.SetDefault("directory", defaults.Directory)
	v.SetDefault("maildir_subdir", defaults.MaildirSubdir)
	v.SetDefault("failure_policy", defaults.FailurePolicy)
	v.SetDefault("seed", defaults.Seed)
	v.SetDefault("log_level", defaults.LogLevel)

	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}
}

// Load reads and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges and names.
func (c *Config) Validate() error {
	if c.MinMessages < 0 || c.MaxMessages < c.MinMessages {
		return fmt.Errorf("messages %d-%d: %w", c.MinMessages, c.MaxMessages, errors.ErrInvalidRange)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers %d: %w", c.Workers, errors.ErrInvalidWorkers)
	}
	if _, err := c.Policy(); err != nil {
		return err
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log level: %w", err)
	}
	return nil
}

// Policy returns the parsed failure policy.
func (c *Config) Policy() (pool.Policy, error) {
	return pool.ParsePolicy(c.FailurePolicy)
}

// Level returns the parsed log level, defaulting to info.
func (c *Config) Level() logrus.Level {
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return logrus.InfoLevel
	}
	return level
}
