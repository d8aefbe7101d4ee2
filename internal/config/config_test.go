package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	App     App           `mapstructure:"app"`
	Timeout time.Duration `mapstructure:"timeout"`
}

func load(t *testing.T) *testConfig {
	t.Helper()
	cfg, err := Load(&testConfig{}, func(v *viper.Viper) {
		v.SetDefault("timeout", "3s")
		Setup(v, "app")
	})
	require.NoError(t, err)
	return cfg
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(EnvConfigFile, "")
	cfg := load(t)
	assert.Equal(t, 10*time.Second, cfg.App.ShutdownTimeout)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv(EnvConfigFile, "")
	t.Setenv("APP_SHUTDOWN_TIMEOUT", "2s")
	cfg := load(t)
	assert.Equal(t, 2*time.Second, cfg.App.ShutdownTimeout)
}

func TestLoadFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "voicelink.yaml")
	require.NoError(t, os.WriteFile(file, []byte("app:\n  shutdown_timeout: 4s\ntimeout: 7s\n"), 0o600))
	t.Setenv(EnvConfigFile, file)

	cfg := load(t)
	assert.Equal(t, 4*time.Second, cfg.App.ShutdownTimeout)
	assert.Equal(t, 7*time.Second, cfg.Timeout)
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv(EnvConfigFile, filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := Load(&testConfig{}, func(v *viper.Viper) { Setup(v, "app") })
	assert.Error(t, err)
}

func TestInstanceID(t *testing.T) {
	app := App{}
	id := app.Instance()
	assert.NotEmpty(t, id)
	assert.Equal(t, id, app.Instance())

	app = App{InstanceID: "desk-1"}
	assert.Equal(t, "desk-1", app.Instance())
}
