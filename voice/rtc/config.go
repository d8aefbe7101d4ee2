package rtc

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// AutoSubscribe subscribes to remote audio as it is published.
	AutoSubscribe bool `mapstructure:"auto_subscribe"`
	// TrackName names the published microphone track.
	TrackName string `mapstructure:"track_name"`
	// DialTimeout bounds the signal and ICE handshake.
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
}

func Setup(v *viper.Viper, prefix string) {
	p := func(key string) string { return prefix + "." + key }

	v.SetDefault(p("auto_subscribe"), true)
	v.SetDefault(p("track_name"), "microphone")
	v.SetDefault(p("dial_timeout"), 15*time.Second)
}
