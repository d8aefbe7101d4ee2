package token

import (
	"time"

	"github.com/spf13/viper"

	"github.com/imtaco/voicelink/internal/retry"
)

type Config struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
	TTL     time.Duration `mapstructure:"ttl"`
	// Rate and Burst pace issue requests; Rate <= 0 disables pacing.
	Rate  float64      `mapstructure:"rate"`
	Burst int          `mapstructure:"burst"`
	Retry retry.Config `mapstructure:"retry"`
	// AuthToken optionally seeds the session at startup.
	AuthToken string `mapstructure:"auth_token"`
}

func Setup(v *viper.Viper, prefix string) {
	p := func(key string) string { return prefix + "." + key }

	v.SetDefault(p("base_url"), "http://127.0.0.1:8080")
	v.SetDefault(p("timeout"), 10*time.Second)
	v.SetDefault(p("ttl"), DefaultTTL)
	v.SetDefault(p("rate"), 2.0)
	v.SetDefault(p("burst"), 4)
	v.SetDefault(p("retry.initial_interval"), 200*time.Millisecond)
	v.SetDefault(p("retry.max_interval"), 2*time.Second)
	v.SetDefault(p("retry.max_elapsed"), 8*time.Second)
	v.SetDefault(p("auth_token"), "")
}
