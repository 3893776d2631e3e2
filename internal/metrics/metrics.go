// Package metrics exposes Prometheus counters for mail delivery and the HTTP API.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// SendAttempts counts submission attempts per provider.
	SendAttempts = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mail_relay_send_attempts_total",
		Help: "Submission attempts made against the delivery provider",
	}, []string{"provider"})

	// SendSuccess counts emails delivered per provider.
	SendSuccess = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mail_relay_send_success_total",
		Help: "Emails delivered successfully",
	}, []string{"provider"})

	// SendFailure counts failed sends per provider and failure kind.
	SendFailure = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mail_relay_send_failure_total",
		Help: "Emails that could not be delivered, by failure kind",
	}, []string{"provider", "kind"})

	// HTTPRequests counts served requests per route pattern and status code.
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "mail_relay_http_requests_total",
		Help: "HTTP requests served, by route pattern and status code",
	}, []string{"route", "code"})
)

func init() {
	prometheus.MustRegister(SendAttempts)
	prometheus.MustRegister(SendSuccess)
	prometheus.MustRegister(SendFailure)
	prometheus.MustRegister(HTTPRequests)
}

// Handler returns the Prometheus scrape handler for the default registry.
func Handler() http.Handler {
	return promhttp.Handler()
}
