package config

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/infodancer/mailseed/errors"
	"github.com/infodancer/mailseed/pool"
)

func newViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	return v
}

func TestLoad_Defaults(t *testing.T) {
	for _, env := range envBindings {
		t.Setenv(env, "")
	}

	cfg, err := Load(newViper())
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)

	policy, err := cfg.Policy()
	require.NoError(t, err)
	require.Equal(t, pool.PolicyAbort, policy)
	require.Equal(t, logrus.InfoLevel, cfg.Level())
}

func TestLoad_Environment(t *testing.T) {
	t.Setenv("MIN_MESSAGES", "2")
	t.Setenv("MAX_MESSAGES", "3")
	t.Setenv("POPULATE_WORKERS", "6")
	t.Setenv("POPULATE_USERS_FILE", "/tmp/users")
	t.Setenv("POPULATE_FAILURE_POLICY", "continue")
	t.Setenv("POPULATE_SEED", "99")
	t.Setenv("POPULATE_LOG_LEVEL", "debug")

	cfg, err := Load(newViper())
	require.NoError(t, err)
	require.Equal(t, 2, cfg.MinMessages)
	require.Equal(t, 3, cfg.MaxMessages)
	require.Equal(t, 6, cfg.Workers)
	require.Equal(t, "/tmp/users", cfg.UsersFile)
	require.Equal(t, uint64(99), cfg.Seed)
	require.Equal(t, logrus.DebugLevel, cfg.Level())

	policy, err := cfg.Policy()
	require.NoError(t, err)
	require.Equal(t, pool.PolicyContinue, policy)
}

func TestLoad_ExplicitOverridesEnvironment(t *testing.T) {
	t.Setenv("MAX_MESSAGES", "50")

	v := newViper()
	v.Set("max_messages", 7)

	cfg, err := Load(v)
	require.NoError(t, err)
	require.Equal(t, 7, cfg.MaxMessages)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   error
	}{
		{"inverted range", func(c *Config) { c.MinMessages, c.MaxMessages = 9, 3 }, errors.ErrInvalidRange},
		{"negative min", func(c *Config) { c.MinMessages = -1 }, errors.ErrInvalidRange},
		{"negative workers", func(c *Config) { c.Workers = -2 }, errors.ErrInvalidWorkers},
		{"unknown policy", func(c *Config) { c.FailurePolicy = "retry" }, errors.ErrInvalidPolicy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			require.ErrorIs(t, cfg.Validate(), tt.want)
		})
	}

	cfg := Default()
	cfg.LogLevel = "loud"
	require.Error(t, cfg.Validate())

	cfg = Default()
	cfg.MinMessages, cfg.MaxMessages = 0, 0
	require.NoError(t, cfg.Validate())
}
