package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the media pipeline collectors
type Metrics struct {
	registry *prometheus.Registry

	UploadsTotal       *prometheus.CounterVec
	UploadBytesTotal   prometheus.Counter
	OrphanedBlobsTotal prometheus.Counter
	BulkItemsTotal     *prometheus.CounterVec
	ReconcilerSweeps   prometheus.Counter
}

// New creates the media pipeline metrics on a dedicated registry
func New() *Metrics {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Metrics{
		registry: registry,

		UploadsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "media_uploads_total",
			Help: "Total number of upload attempts, labelled by outcome.",
		}, []string{"status"}),

		UploadBytesTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "media_upload_bytes_total",
			Help: "Total number of bytes accepted into object storage.",
		}),

		OrphanedBlobsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "media_orphaned_blobs_total",
			Help: "Blobs left without a metadata row (compensation failed or delete skipped).",
		}),

		BulkItemsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "media_bulk_items_total",
			Help: "Per-item outcomes of bulk operations.",
		}, []string{"op", "outcome"}),

		ReconcilerSweeps: factory.NewCounter(prometheus.CounterOpts{
			Name: "media_reconciler_sweeps_total",
			Help: "Completed reconciliation sweeps over the object store.",
		}),
	}
}

// Registry returns the prometheus registry for the HTTP handler
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
