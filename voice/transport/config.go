package transport

import "github.com/spf13/viper"

type Config struct {
	// CORSOrigins are the browser origins allowed to call the API.
	CORSOrigins []string `mapstructure:"cors_origins"`
	// WSOrigins are host patterns accepted on the event stream upgrade.
	WSOrigins []string `mapstructure:"ws_origins"`
}

func Setup(v *viper.Viper, prefix string) {
	p := func(key string) string { return prefix + "." + key }

	v.SetDefault(p("cors_origins"), []string{"http://localhost", "http://127.0.0.1"})
	v.SetDefault(p("ws_origins"), []string{"localhost:*", "127.0.0.1:*"})
}
