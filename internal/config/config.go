package config

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// EnvConfigFile names an optional YAML/JSON/TOML file merged under env overrides.
const EnvConfigFile = "VOICELINK_CONFIG"

func NewViper() *viper.Viper {
	v := viper.New()

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix("")
	v.AutomaticEnv()

	return v
}

func Load[T any](c *T, configure func(v *viper.Viper)) (*T, error) {
	v := NewViper()

	configure(v)

	if file := os.Getenv(EnvConfigFile); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "read config file %s", file)
		}
	}
	return c, v.Unmarshal(c)
}
