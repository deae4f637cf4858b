// Package metrics exposes Prometheus counters for message handling.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var MessagesProcessed = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "bodymass_bot_messages_total",
	Help: "Messages processed, labeled by dispatched action and outcome.",
}, []string{"action", "outcome"})

// Serve blocks on an HTTP listener exposing /metrics.
func Serve(addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return http.ListenAndServe(addr, mux)
}
