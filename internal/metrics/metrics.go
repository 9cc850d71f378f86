package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// MessagesParsed counts OICP message parse attempts, labeled by message type and result.
	MessagesParsed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "emp_messages_parsed_total",
		Help: "Total number of OICP messages parsed, by message type and result.",
	}, []string{"message", "result"})

	// HTTPRequests counts inbound OICP HTTP requests, labeled by route pattern and status code.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "emp_http_requests_total",
		Help: "Total number of inbound HTTP requests handled.",
	}, []string{"route", "status"})

	// HTTPRequestDuration observes inbound request latency, labeled by route pattern.
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "emp_http_request_duration_seconds",
		Help:    "Histogram of inbound HTTP request latencies.",
		Buckets: prometheus.DefBuckets,
	}, []string{"route"})

	// HubjectRequests counts outbound requests to the Hubject platform, labeled by operation and result.
	HubjectRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "emp_hubject_requests_total",
		Help: "Total number of requests sent to the Hubject platform.",
	}, []string{"operation", "result"})

	// EventsPublished counts the total number of events published to Kafka, labeled by event type.
	EventsPublished = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "emp_events_published_total",
		Help: "Total number of events published to the message broker.",
	}, []string{"event_type"})

	// CommandsConsumed counts the total number of commands consumed from Kafka, labeled by command name.
	CommandsConsumed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "emp_commands_consumed_total",
		Help: "Total number of commands consumed from the message broker.",
	}, []string{"command"})
)

// Result label values.
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// ResultLabel maps an error to a result label value.
func ResultLabel(err error) string {
	if err != nil {
		return ResultFailure
	}
	return ResultSuccess
}

// ObserveParse records the outcome of parsing one OICP message.
func ObserveParse(message string, err error) {
	MessagesParsed.WithLabelValues(message, ResultLabel(err)).Inc()
}

// Handler exposes the default registry over HTTP.
func Handler() http.Handler {
	return promhttp.Handler()
}
