package otel

// Metric prefixes, one per component that records metrics.
const (
	PrefixSession   = "voice_session"
	PrefixToken     = "voice_token"
	PrefixLifecycle = "voice_lifecycle"
	PrefixControl   = "voice_control"
)
