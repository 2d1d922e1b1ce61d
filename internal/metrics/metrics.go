package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns a private registry so tests can build as many as they
// like. Every method is safe on a nil receiver.
type Metrics struct {
	registry *prometheus.Registry

	scoreUpdates      *prometheus.CounterVec
	resets            *prometheus.CounterVec
	interviewsStarted prometheus.Counter
	interviewAnswers  prometheus.Counter
	activeInterviews  prometheus.Gauge
	migrationRuns     *prometheus.CounterVec
	migrationDuration prometheus.Histogram
	httpRequests      *prometheus.CounterVec
	httpDuration      *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		scoreUpdates: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "interviewer_score_updates_total",
				Help: "Score submissions by storage backend and outcome",
			},
			[]string{"backend", "status"}, // backend: document/sqlite, status: success/failure
		),
		resets: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "interviewer_statistics_resets_total",
				Help: "Statistics resets by scope",
			},
			[]string{"scope"}, // position, chapter, question
		),
		interviewsStarted: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "interviewer_interviews_started_total",
				Help: "Interview sessions started",
			},
		),
		interviewAnswers: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "interviewer_interview_answers_total",
				Help: "Answers accepted inside interview sessions",
			},
		),
		activeInterviews: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "interviewer_interviews_active",
				Help: "Interview sessions currently registered",
			},
		),
		migrationRuns: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "interviewer_migrations_total",
				Help: "Migration runs by outcome",
			},
			[]string{"status"},
		),
		migrationDuration: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "interviewer_migration_duration_seconds",
				Help:    "Time spent migrating into the relational store",
				Buckets: prometheus.DefBuckets,
			},
		),
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "interviewer_http_requests_total",
				Help: "HTTP requests by method, route pattern and status code",
			},
			[]string{"method", "route", "status"},
		),
		httpDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "interviewer_http_request_duration_seconds",
				Help:    "HTTP request latency by method and route pattern",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route"},
		),
	}
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) ObserveScoreUpdate(backend string, err error) {
	if m == nil {
		return
	}
	m.scoreUpdates.WithLabelValues(backend, status(err == nil)).Inc()
}

func (m *Metrics) ObserveReset(scope string) {
	if m == nil {
		return
	}
	m.resets.WithLabelValues(scope).Inc()
}

func (m *Metrics) InterviewStarted() {
	if m == nil {
		return
	}
	m.interviewsStarted.Inc()
	m.activeInterviews.Inc()
}

func (m *Metrics) InterviewRemoved() {
	if m == nil {
		return
	}
	m.activeInterviews.Dec()
}

func (m *Metrics) InterviewAnswered() {
	if m == nil {
		return
	}
	m.interviewAnswers.Inc()
}

func (m *Metrics) ObserveMigration(success bool, d time.Duration) {
	if m == nil {
		return
	}
	m.migrationRuns.WithLabelValues(status(success)).Inc()
	m.migrationDuration.Observe(d.Seconds())
}

func (m *Metrics) ObserveHTTP(method, route string, code int, d time.Duration) {
	if m == nil {
		return
	}
	if route == "" {
		route = "unmatched"
	}
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func status(ok bool) string {
	if ok {
		return "success"
	}
	return "failure"
}
