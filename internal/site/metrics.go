package site

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Contact outcomes.
const (
	outcomeAccepted = "accepted"
	outcomeInvalid  = "invalid"
	outcomeLimited  = "limited"
	outcomeFailed   = "failed"
)

var (
	pageRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "splshield",
		Subsystem: "site",
		Name:      "requests_total",
		Help:      "Requests served from the page cache, by route and status code.",
	}, []string{"route", "code"})

	contactSubmissions = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "splshield",
		Subsystem: "contact",
		Name:      "submissions_total",
		Help:      "Contact form submissions by outcome.",
	}, []string{"outcome"})

	openStreams = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "splshield",
		Subsystem: "countdown",
		Name:      "streams_open",
		Help:      "Countdown event streams currently connected.",
	})
)

// statusRecorder captures the status code written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// instrument counts the requests handled by next under the route label.
func instrument(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next(rec, r)
		pageRequests.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
	}
}
