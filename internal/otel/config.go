package otel

import (
	"time"

	"github.com/spf13/viper"
)

// Config controls export of the daemon's spans and metrics. Both are off by
// default; instruments still work against no-op providers.
type Config struct {
	TracingEnabled bool    `mapstructure:"tracing_enabled"`
	SamplingRate   float64 `mapstructure:"sampling_rate"`

	MetricsEnabled        bool          `mapstructure:"metrics_enabled"`
	MetricsExportInterval time.Duration `mapstructure:"metrics_export_interval"`
	RuntimeMetricsEnabled bool          `mapstructure:"go_metrics_enabled"`

	ServiceName string `mapstructure:"service_name"`
	// InstanceID becomes service.instance.id; the daemon fills it from app config.
	InstanceID string        `mapstructure:"instance_id"`
	Endpoint   string        `mapstructure:"endpoint"`
	Insecure   bool          `mapstructure:"insecure"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

func Setup(v *viper.Viper, prefix string) {
	p := func(key string) string { return prefix + "." + key }

	v.SetDefault(p("tracing_enabled"), false)
	v.SetDefault(p("sampling_rate"), 0.1)

	v.SetDefault(p("metrics_enabled"), false)
	v.SetDefault(p("metrics_export_interval"), "60s")
	v.SetDefault(p("go_metrics_enabled"), false)

	v.SetDefault(p("service_name"), "voicelink")
	v.SetDefault(p("instance_id"), "")
	v.SetDefault(p("endpoint"), "localhost:4317")
	v.SetDefault(p("insecure"), true)
	v.SetDefault(p("timeout"), "10s")
}
