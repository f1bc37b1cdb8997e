package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics
type Metrics struct {
	DocumentsSaved prometheus.Counter
	SaveFailures   prometheus.Counter
	Rollbacks      prometheus.Counter
	MigrationsRun  prometheus.Counter
	ImportsRun     prometheus.Counter
	PhotosUploaded prometheus.Counter
	SaveTime       prometheus.Histogram
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		DocumentsSaved: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "documents_saved_total",
			Help:      "The total number of whole-document writes committed",
		}),
		SaveFailures: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "save_failures_total",
			Help:      "The total number of failed document writes",
		}),
		Rollbacks: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rollbacks_total",
			Help:      "The total number of optimistic updates rolled back",
		}),
		MigrationsRun: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "migrations_total",
			Help:      "The total number of legacy owner migrations performed",
		}),
		ImportsRun: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "imports_total",
			Help:      "The total number of local-to-remote imports performed",
		}),
		PhotosUploaded: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "photos_uploaded_total",
			Help:      "The total number of dog photos uploaded",
		}),
		SaveTime: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "document_save_time_seconds",
			Help:      "Time taken to persist a whole document",
			Buckets:   prometheus.DefBuckets,
		}),
	}
}
