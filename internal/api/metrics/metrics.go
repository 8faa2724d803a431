// Package metrics defines and registers all custom Prometheus metrics for the
// study-materials API. It is the single source of truth for metric names,
// labels, and help strings; metrics self-register with the default registry
// at package initialisation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "studyshare"

// MaterialsCreatedTotal counts created materials.
// Label:
//   - kind: "file", "link", or "both" (a material may carry both)
var MaterialsCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "materials_created_total",
		Help:      "Total number of materials created, by backing kind.",
	},
	[]string{"kind"},
)

// MaterialsDeletedTotal counts deleted materials, including cascade deletes.
var MaterialsDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "materials_deleted_total",
		Help:      "Total number of materials deleted.",
	},
)

// SubjectsCreatedTotal counts created subjects.
var SubjectsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "subjects_created_total",
		Help:      "Total number of subjects created.",
	},
)

// SubjectsDeletedTotal counts deleted subjects (each cascades over its materials).
var SubjectsDeletedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "subjects_deleted_total",
		Help:      "Total number of subjects deleted.",
	},
)

// DownloadsTotal counts download / download-URL resolutions.
// Label:
//   - mode: "stream" (direct download) or "url" (presigned/link resolution)
var DownloadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "downloads_total",
		Help:      "Total number of material download resolutions, by mode.",
	},
	[]string{"mode"},
)

// UploadBytes observes the size of accepted file uploads.
var UploadBytes = promauto.NewHistogram(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upload_size_bytes",
		Help:      "Size distribution of accepted file uploads.",
		// 1 KiB up to the 10 MiB limit.
		Buckets: prometheus.ExponentialBuckets(1024, 4, 8),
	},
)

// AuthFailuresTotal counts rejected requests at the auth gates.
// Label:
//   - reason: short failure cause (e.g. "missing_header", "invalid_token", "not_admin")
var AuthFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_failures_total",
		Help:      "Total number of requests rejected by the auth middleware, by reason.",
	},
	[]string{"reason"},
)
