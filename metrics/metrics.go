package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Promotions counts successful promotions, by origin (panel or api).
	Promotions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emoji_panel_promotions_total",
			Help: "Items promoted to the front of the recent list",
		},
		[]string{"origin"},
	)

	// StorageFailures counts backend errors surfaced by the recent store.
	StorageFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "emoji_panel_storage_failures_total",
			Help: "Recent list backend failures",
		},
		[]string{"op"},
	)

	ClipboardFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "emoji_panel_clipboard_failures_total",
			Help: "Failed clipboard writes",
		},
	)

	// AttachedPanels is the number of panels with a live UI connection.
	AttachedPanels = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "emoji_panel_attached_panels",
			Help: "Panels currently attached to a UI transport",
		},
	)
)
