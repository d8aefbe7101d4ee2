package session

import (
	"go.opentelemetry.io/otel/metric"

	intotel "github.com/imtaco/voicelink/internal/otel"
)

var (
	connectAttempts  metric.Int64Counter
	connectSuccess   metric.Int64Counter
	connectFailed    metric.Int64Counter
	connectShortcut  metric.Int64Counter
	staleDiscards    metric.Int64Counter
	connectDuration  metric.Float64Histogram
	disconnects      metric.Int64Counter
	transportDrops   metric.Int64Counter
	openConnections  metric.Int64UpDownCounter
	silenceFired     metric.Int64Counter
	microphoneToggle metric.Int64Counter
)

func init() {
	f := intotel.NewFactory("voice.session", intotel.PrefixSession)

	f.Int64Counter(&connectAttempts, "connect.attempts",
		metric.WithDescription("Connect calls"))

	f.Int64Counter(&connectSuccess, "connect.success",
		metric.WithDescription("Connect calls that ended connected"))

	f.Int64Counter(&connectFailed, "connect.failed",
		metric.WithDescription("Connect calls that failed on token or transport"))

	f.Int64Counter(&connectShortcut, "connect.same_room",
		metric.WithDescription("Connect calls answered by the live connection to the same room"))

	f.Int64Counter(&staleDiscards, "stale.discards",
		metric.WithDescription("Operations discarded because a newer connect or disconnect superseded them"))

	f.Float64Histogram(&connectDuration, "connect.duration",
		metric.WithDescription("Time from connect call to connected"),
		metric.WithUnit("s"))

	f.Int64Counter(&disconnects, "disconnects",
		metric.WithDescription("Disconnect calls"))

	f.Int64Counter(&transportDrops, "transport.drops",
		metric.WithDescription("Connections closed by the transport side"))

	f.Int64UpDownCounter(&openConnections, "transport.open",
		metric.WithDescription("Transport connections currently open"))

	f.Int64Counter(&silenceFired, "silence.fired",
		metric.WithDescription("Silence timer expirations with every microphone muted"))

	f.Int64Counter(&microphoneToggle, "microphone.toggles",
		metric.WithDescription("Local microphone enable/disable calls"))
}
