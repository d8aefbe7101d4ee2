package config

import (
	"time"

	"github.com/google/uuid"
	"github.com/spf13/viper"
)

type App struct {
	LogConfigFile   string        `mapstructure:"log_config_file"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	// InstanceID tags this daemon's logs; a random one is used when empty.
	InstanceID string `mapstructure:"instance_id"`
}

func Setup(v *viper.Viper, prefix string) {
	p := func(key string) string { return prefix + "." + key }

	v.SetDefault(p("log_config_file"), "") // empty means use default config
	v.SetDefault(p("shutdown_timeout"), "10s")
	v.SetDefault(p("instance_id"), "")
}

// Instance returns InstanceID, filling it in on first use.
func (a *App) Instance() string {
	if a.InstanceID == "" {
		a.InstanceID = uuid.NewString()
	}
	return a.InstanceID
}
