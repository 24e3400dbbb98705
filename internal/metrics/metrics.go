package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "assetscan"

// Outcome label values.
const (
	OK           = "ok"
	Invalid      = "invalid"
	NotFound     = "not_found"
	Unauthorized = "unauthorized"
	NetworkError = "network_error"
	Failed       = "failed"
)

var (
	Lookups = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "lookups_total",
		Help:      "Registration lookups by outcome.",
	}, []string{"outcome"})

	Updates = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "updates_total",
		Help:      "Single asset saves by outcome.",
	}, []string{"outcome"})

	ImportRows = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "import_rows_total",
		Help:      "Spreadsheet rows by outcome.",
	}, []string{"outcome"})

	Decodes = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "qr_decodes_total",
		Help:      "Uploaded image decodes by outcome.",
	}, []string{"outcome"})

	SetupChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "setup_changes_total",
		Help:      "Master list mutations by list, action and outcome.",
	}, []string{"list", "action", "outcome"})
)
