package lifecycle

import (
	"go.opentelemetry.io/otel/metric"

	intotel "github.com/imtaco/voicelink/internal/otel"
)

var (
	autoConnects        metric.Int64Counter
	autoDisconnects     metric.Int64Counter
	roomSwitches        metric.Int64Counter
	silenceTeardowns    metric.Int64Counter
	backgroundTeardowns metric.Int64Counter
	permissionDenials   metric.Int64Counter
)

func init() {
	f := intotel.NewFactory("voice.lifecycle", intotel.PrefixLifecycle)

	f.Int64Counter(&autoConnects, "auto.connects",
		metric.WithDescription("Listen-only connects started because others are in the room"))

	f.Int64Counter(&autoDisconnects, "auto.disconnects",
		metric.WithDescription("Disconnects started because the user is alone or left the room"))

	f.Int64Counter(&roomSwitches, "room.switches",
		metric.WithDescription("Disconnect-then-connect sequences on room change"))

	f.Int64Counter(&silenceTeardowns, "silence.teardowns",
		metric.WithDescription("Connections closed after every microphone stayed silent"))

	f.Int64Counter(&backgroundTeardowns, "background.teardowns",
		metric.WithDescription("Connections closed when the background grace period ran out"))

	f.Int64Counter(&permissionDenials, "permission.denials",
		metric.WithDescription("Unmute attempts refused by the microphone permission prompt"))
}
