package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DeploymentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "promptforge_deployments_total",
			Help: "Total number of version deployments by environment and status",
		},
		[]string{"environment", "status"},
	)

	ResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "promptforge_resolutions_total",
			Help: "Total number of prompt resolutions by source and status",
		},
		[]string{"source", "status"},
	)

	VersionsCreatedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "promptforge_versions_created_total",
			Help: "Total number of versions created by model type",
		},
		[]string{"model_type"},
	)
)
