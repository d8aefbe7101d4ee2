package token

import (
	"go.opentelemetry.io/otel/metric"

	intotel "github.com/imtaco/voicelink/internal/otel"
)

var (
	cacheHits     metric.Int64Counter
	cacheMisses   metric.Int64Counter
	issueRequests metric.Int64Counter
	issueFailures metric.Int64Counter
	issueDuration metric.Float64Histogram
	staleFetches  metric.Int64Counter
)

func init() {
	f := intotel.NewFactory("voice.token", intotel.PrefixToken)

	f.Int64Counter(&cacheHits, "cache.hits",
		metric.WithDescription("Token requests served from cache"))

	f.Int64Counter(&cacheMisses, "cache.misses",
		metric.WithDescription("Token requests that went to the backend"))

	f.Int64Counter(&issueRequests, "issue.requests",
		metric.WithDescription("Token issue calls"))

	f.Int64Counter(&issueFailures, "issue.failures",
		metric.WithDescription("Token issue calls that failed after retries"))

	f.Float64Histogram(&issueDuration, "issue.duration",
		metric.WithDescription("Token issue latency including retries"),
		metric.WithUnit("s"))

	f.Int64Counter(&staleFetches, "cache.stale_fetches",
		metric.WithDescription("Issued tokens not cached because the slot changed during the fetch"))
}
