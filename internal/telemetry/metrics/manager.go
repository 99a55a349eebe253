package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterRequests                *prometheus.CounterVec
	CounterHandleRequestPanic      prometheus.Counter
	CounterTdeeCalculations        prometheus.Counter
	CounterOneRepMaxCalculations   prometheus.Counter
	CounterAnalyticsWriteFailures  *prometheus.CounterVec
	CounterAnalyticsDroppedRecords *prometheus.CounterVec

	// gauges
	GaugeRequests        prometheus.Gauge
	GaugeOpenConns       prometheus.Gauge
	GaugeLifeSignal      prometheus.Gauge
	GaugeAnalyticsQueued prometheus.Gauge

	// histograms
	HistogramRequestDuration       *prometheus.HistogramVec
	HistogramAnalyticsWriteSeconds *prometheus.HistogramVec
}

func NewTestManager() *Manager {
	return NewManager("fitcalc", "test_server", prometheus.NewRegistry())
}

func NewTestManagerAndRegistry() (*Manager, *prometheus.Registry) {
	reg := prometheus.NewRegistry()
	return NewManager("fitcalc", "test_server", reg), reg
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterRequests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request",
		Help:      "The total number of incoming requests",
	}, []string{"method", "status"})
	counterHandleRequestPanic := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "handle_request_panic",
		Help:      "The total number of serve request panics",
	})
	counterTdee := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "tdee_calculations",
		Help:      "The total number of computed TDEE values",
	})
	counterOneRepMax := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "one_rep_max_calculations",
		Help:      "The total number of computed one-rep-max values",
	})
	counterWriteFailures := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "analytics_write_failures",
		Help:      "The total number of analytics records that failed to persist",
	}, []string{"table"})
	counterDropped := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "analytics_dropped_records",
		Help:      "The total number of analytics records dropped because the write queue was full or closed",
	}, []string{"table"})

	gaugeRequests := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "current_requests",
		Help:      "Current number of requests served",
	})
	gaugeOpenConns := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "open_connections",
		Help:      "Current number of open client connections",
	})
	gaugeLifeSignal := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "life_signal",
		Help:      "Shows whether the service is alive",
	})
	gaugeQueued := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "analytics_queued_records",
		Help:      "Analytics records waiting in the async write queue",
	})

	histogramRequestDuration := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request_duration_seconds",
		Help:      "Histogram of response time for requests in seconds",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
	}, []string{"route", "method", "status_code"})
	histogramWrite := factory.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "analytics_write_duration_seconds",
		Help:      "Duration of a single analytics record write in seconds",
		Buckets:   []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
	}, []string{"table"})

	return &Manager{
		CounterRequests:                counterRequests,
		CounterHandleRequestPanic:      counterHandleRequestPanic,
		CounterTdeeCalculations:        counterTdee,
		CounterOneRepMaxCalculations:   counterOneRepMax,
		CounterAnalyticsWriteFailures:  counterWriteFailures,
		CounterAnalyticsDroppedRecords: counterDropped,
		GaugeRequests:                  gaugeRequests,
		GaugeOpenConns:                 gaugeOpenConns,
		GaugeLifeSignal:                gaugeLifeSignal,
		GaugeAnalyticsQueued:           gaugeQueued,
		HistogramRequestDuration:       histogramRequestDuration,
		HistogramAnalyticsWriteSeconds: histogramWrite,
	}
}
