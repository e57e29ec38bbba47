package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Manager struct {
	// counters
	CounterSyncRuns           *prometheus.CounterVec
	CounterWorkoutsSynced     prometheus.Counter
	CounterWorkoutsSkipped    prometheus.Counter
	CounterInvalidRecords     prometheus.Counter
	CounterIndexFailures      prometheus.Counter
	CounterTemplatesSynced    prometheus.Counter
	CounterHandleRequestPanic prometheus.Counter
	CounterRequests           *prometheus.CounterVec

	// gauges
	GaugeSyncsInFlight prometheus.Gauge
	GaugeRequests      prometheus.Gauge

	// histograms
	HistSyncDuration    prometheus.Histogram
	HistRequestDuration prometheus.Histogram
}

func NewTestManager() *Manager {
	return NewManager("formava", "test_sync", prometheus.NewRegistry())
}

func NewManager(namespace, subsystem string, reg prometheus.Registerer) *Manager {
	factory := promauto.With(reg)

	counterSyncRuns := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "sync_runs",
		Help:      "The total number of sync runs, by terminal status",
	}, []string{"status"})
	counterWorkoutsSynced := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "workouts_synced",
		Help:      "The total number of workouts written to the primary store",
	})
	counterWorkoutsSkipped := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "workouts_skipped",
		Help:      "The total number of workouts skipped as duplicates",
	})
	counterInvalidRecords := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "invalid_records",
		Help:      "The total number of remote records dropped for missing required fields",
	})
	counterIndexFailures := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "index_failures",
		Help:      "The total number of search index projection failures",
	})
	counterTemplatesSynced := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "exercise_templates_synced",
		Help:      "The total number of exercise templates upserted",
	})
	counterHandleRequestPanic := factory.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "handle_request_panic",
		Help:      "The total number of serve request panics",
	})

	counterRequests := factory.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "requests",
		Help:      "The total number of served http requests",
	}, []string{"method", "status"})

	gaugeSyncsInFlight := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "syncs_in_flight",
		Help:      "Current number of sync runs in progress",
	})

	gaugeRequests := factory.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "requests_in_flight",
		Help:      "Current number of open http connections",
	})

	histSyncDuration := factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "sync_duration_seconds",
		Help:      "Duration of sync runs",
		Buckets:   []float64{0.5, 1, 2.5, 5, 10, 30, 60, 120, 300},
	})
	histRequestDuration := factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "request_duration_seconds",
		Help:      "Duration of served http requests",
		Buckets:   []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
	})

	return &Manager{
		CounterSyncRuns:           counterSyncRuns,
		CounterWorkoutsSynced:     counterWorkoutsSynced,
		CounterWorkoutsSkipped:    counterWorkoutsSkipped,
		CounterInvalidRecords:     counterInvalidRecords,
		CounterIndexFailures:      counterIndexFailures,
		CounterTemplatesSynced:    counterTemplatesSynced,
		CounterHandleRequestPanic: counterHandleRequestPanic,
		CounterRequests:           counterRequests,
		GaugeSyncsInFlight:        gaugeSyncsInFlight,
		GaugeRequests:             gaugeRequests,
		HistSyncDuration:          histSyncDuration,
		HistRequestDuration:       histRequestDuration,
	}
}
