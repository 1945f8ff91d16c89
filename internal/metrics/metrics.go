package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// EventsPublished counts change events accepted by the bus, by topic.
	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feed_events_published_total",
		Help: "Change events successfully handed to the message bus.",
	}, []string{"topic"})

	// PublishFailures counts publish attempts that failed after the
	// durable write already committed.
	PublishFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "feed_publish_failures_total",
		Help: "Event publish failures after a committed write.",
	}, []string{"topic"})
)

// Handler returns an http.Handler for Prometheus scraping
func Handler() http.Handler {
	return promhttp.Handler()
}
