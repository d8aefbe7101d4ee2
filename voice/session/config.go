package session

import (
	"time"

	"github.com/spf13/viper"

	"github.com/imtaco/voicelink/internal/errors"
	"github.com/imtaco/voicelink/voice"
)

type Config struct {
	// SilencePreset names a preset; SilenceTimeout, when set, overrides it.
	SilencePreset  string        `mapstructure:"silence_preset"`
	SilenceTimeout time.Duration `mapstructure:"silence_timeout"`
	// TeardownTimeout bounds a transport disconnect that outlives its caller.
	TeardownTimeout time.Duration `mapstructure:"teardown_timeout"`
}

func Setup(v *viper.Viper, prefix string) {
	p := func(key string) string { return prefix + "." + key }

	v.SetDefault(p("silence_preset"), string(voice.SilenceAggressive))
	v.SetDefault(p("silence_timeout"), 0)
	v.SetDefault(p("teardown_timeout"), 10*time.Second)
}

// ErrInvalidConfig is returned for an unknown silence preset.
const ErrInvalidConfig errors.Code = "invalid session config"

// Silence resolves the configured idle timeout.
func (c *Config) Silence() (time.Duration, error) {
	if c.SilenceTimeout > 0 {
		return c.SilenceTimeout, nil
	}
	if c.SilencePreset == "" {
		return voice.DefaultSilenceTimeout, nil
	}
	d, ok := voice.SilencePreset(c.SilencePreset).Timeout()
	if !ok {
		return 0, errors.Newf(ErrInvalidConfig, "unknown silence preset %q", c.SilencePreset)
	}
	return d, nil
}
