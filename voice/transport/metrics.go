package transport

import (
	"go.opentelemetry.io/otel/metric"

	intotel "github.com/imtaco/voicelink/internal/otel"
)

var (
	streamClients   metric.Int64UpDownCounter
	streamEvents    metric.Int64Counter
	streamEvictions metric.Int64Counter
)

func init() {
	f := intotel.NewFactory("voice.control", intotel.PrefixControl)

	f.Int64UpDownCounter(&streamClients, "stream.clients",
		metric.WithDescription("Connected event stream clients"))

	f.Int64Counter(&streamEvents, "stream.events",
		metric.WithDescription("Events broadcast to the event stream"))

	f.Int64Counter(&streamEvictions, "stream.evictions",
		metric.WithDescription("Event stream clients closed for falling behind"))
}
