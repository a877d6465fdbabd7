package db

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	maintenanceRuns = promauto.NewCounter(prometheus.CounterOpts{
		Name: "paywall_db_maintenance_runs_total",
		Help: "Total number of maintenance operations",
	})

	maintenanceOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "paywall_db_maintenance_outcomes_total",
		Help: "Total number of maintenance operations by outcome",
	}, []string{"status"})

	maintenanceDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "paywall_db_maintenance_duration_seconds",
		Help:    "Duration of maintenance operations",
		Buckets: prometheus.DefBuckets,
	})

	walCheckpoints = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "paywall_db_wal_checkpoint_total",
		Help: "Total number of WAL checkpoint operations",
	}, []string{"mode"})

	dbSize = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "paywall_db_size_bytes",
		Help: "Database size in bytes including WAL and SHM files",
	})
)
