package otel

import (
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// MetricFactory builds a package's instruments on the global meter. It is
// used from init(); the instruments follow whatever provider Init installs.
type MetricFactory struct {
	meter  metric.Meter
	prefix string
}

func NewFactory(meterName, prefix string) *MetricFactory {
	return &MetricFactory{
		meter:  otel.Meter(meterName),
		prefix: prefix,
	}
}

// Name is the exported instrument name for suffix.
func (f *MetricFactory) Name(suffix string) string {
	if f.prefix == "" {
		return suffix
	}
	return f.prefix + "." + suffix
}

func mustInstrument[T any](inst T, err error, name string) T {
	if err != nil {
		panic(fmt.Sprintf("otel: instrument %s: %v", name, err))
	}
	return inst
}

func (f *MetricFactory) Int64Counter(target *metric.Int64Counter, name string, options ...metric.Int64CounterOption) {
	name = f.Name(name)
	c, err := f.meter.Int64Counter(name, options...)
	*target = mustInstrument(c, err, name)
}

func (f *MetricFactory) Int64UpDownCounter(target *metric.Int64UpDownCounter, name string, options ...metric.Int64UpDownCounterOption) {
	name = f.Name(name)
	c, err := f.meter.Int64UpDownCounter(name, options...)
	*target = mustInstrument(c, err, name)
}

func (f *MetricFactory) Float64Histogram(target *metric.Float64Histogram, name string, options ...metric.Float64HistogramOption) {
	name = f.Name(name)
	h, err := f.meter.Float64Histogram(name, options...)
	*target = mustInstrument(h, err, name)
}
