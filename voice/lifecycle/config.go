package lifecycle

import (
	"time"

	"github.com/spf13/viper"

	"github.com/imtaco/voicelink/internal/errors"
)

const (
	PermissionGranted = "granted"
	PermissionDenied  = "denied"
)

type Config struct {
	// BackgroundGrace is how long a backgrounded app keeps its connection.
	BackgroundGrace time.Duration `mapstructure:"background_grace"`
	// MicPermission is the answer of the static permission prompt.
	MicPermission string `mapstructure:"mic_permission"`
}

func Setup(v *viper.Viper, prefix string) {
	p := func(key string) string { return prefix + "." + key }

	v.SetDefault(p("background_grace"), DefaultBackgroundGrace)
	v.SetDefault(p("mic_permission"), PermissionGranted)
}

const DefaultBackgroundGrace = 10 * time.Second

const ErrInvalidConfig errors.Code = "invalid lifecycle config"

func (c *Config) Validate() error {
	if c.BackgroundGrace < 0 {
		return errors.Newf(ErrInvalidConfig, "negative background grace %s", c.BackgroundGrace)
	}
	switch c.MicPermission {
	case "", PermissionGranted, PermissionDenied:
		return nil
	default:
		return errors.Newf(ErrInvalidConfig, "unknown mic permission %q", c.MicPermission)
	}
}
