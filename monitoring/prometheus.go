package monitoring

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome label values for BungieRequests
const (
	OutcomeOK        = "ok"
	OutcomeTransport = "transport"
	OutcomeDecode    = "decode"
	OutcomeInvalid   = "invalid"
)

// BungieRequests counts every Bungie.net request by endpoint and how it was classified.
var BungieRequests = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "bungie_requests_total",
	},
	[]string{"endpoint", "outcome"},
)

// Track the count of each Bungie error status returned by the API
var BungieErrorCode = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "bungie_error_code",
	},
	[]string{"status"},
)

var BungieRequestDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "bungie_request_duration_ms",
		Buckets: []float64{10, 20, 50, 100, 150, 200, 250, 300, 500, 750, 1000, 1500, 2000, 5000},
	},
	[]string{"endpoint"},
)

// Register adds the collectors to the default registry. Call it once from main.
func Register() {
	prometheus.MustRegister(BungieRequests)
	prometheus.MustRegister(BungieErrorCode)
	prometheus.MustRegister(BungieRequestDuration)
}

// Handler serves the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
