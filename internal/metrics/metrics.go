package metrics

import (
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Watcher metrics
	NextBlock = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "paywall_watcher_next_block",
			Help: "The first block the watcher has not scanned yet",
		},
	)

	SettledHead = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "paywall_watcher_settled_head",
			Help: "The chain head the watcher scans up to under the configured finality",
		},
	)

	BlocksScanned = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "paywall_watcher_blocks_scanned_total",
			Help: "Total number of blocks scanned for transfers",
		},
	)

	TransfersProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paywall_watcher_transfers_total",
			Help: "Total number of token transfers processed by outcome",
		},
		[]string{"outcome"},
	)

	WindowProcessingTime = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "paywall_watcher_window_duration_seconds",
			Help:    "Time taken to fetch and reconcile one block window",
			Buckets: prometheus.DefBuckets,
		},
	)

	WindowSplits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "paywall_watcher_window_splits_total",
			Help: "Total number of block windows narrowed after a too many results error",
		},
	)

	// Address book metrics
	AddressBookSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "paywall_address_book_sellers",
			Help: "Number of seller wallets the watcher listens for",
		},
	)

	AddressBookReloads = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "paywall_address_book_reloads_total",
			Help: "Total number of address book reloads",
		},
	)

	// Marketplace metrics
	InvoicesIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "paywall_invoices_issued_total",
			Help: "Total number of invoices returned to buyers",
		},
	)

	ItemsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "paywall_items_created_total",
			Help: "Total number of content items created",
		},
	)

	// System metrics
	Uptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "paywall_uptime_seconds",
			Help: "Application uptime in seconds",
		},
	)

	Errors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "paywall_errors_total",
			Help: "Total number of errors by component and severity",
		},
		[]string{"component", "severity"},
	)

	ComponentHealth = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "paywall_component_health",
			Help: "Component health status (1=healthy, 0=unhealthy)",
		},
		[]string{"component"},
	)

	Goroutines = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "paywall_goroutines",
			Help: "Number of active goroutines",
		},
	)

	MemoryUsage = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "paywall_memory_usage_bytes",
			Help: "Memory usage statistics",
		},
		[]string{"type"},
	)

	startTime = time.Now()
)

func NextBlockSet(block uint64) {
	NextBlock.Set(float64(block))
}

func SettledHeadSet(block uint64) {
	SettledHead.Set(float64(block))
}

func BlocksScannedAdd(count uint64) {
	BlocksScanned.Add(float64(count))
}

func TransferProcessedInc(outcome string) {
	TransfersProcessed.WithLabelValues(outcome).Inc()
}

func WindowProcessingTimeLog(duration time.Duration) {
	WindowProcessingTime.Observe(duration.Seconds())
}

func AddressBookSizeSet(size int) {
	AddressBookSize.Set(float64(size))
}

func ErrorsInc(component, severity string) {
	Errors.WithLabelValues(component, severity).Inc()
}

func ComponentHealthSet(component string, healthy bool) {
	boolAsFloat := float64(1)
	if !healthy {
		boolAsFloat = 0
	}

	ComponentHealth.WithLabelValues(component).Set(boolAsFloat)
}

// UpdateSystemMetrics refreshes runtime gauges. The metrics server calls it periodically.
func UpdateSystemMetrics() {
	Uptime.Set(time.Since(startTime).Seconds())
	Goroutines.Set(float64(runtime.NumGoroutine()))

	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	MemoryUsage.WithLabelValues("alloc").Set(float64(m.Alloc))
	MemoryUsage.WithLabelValues("total_alloc").Set(float64(m.TotalAlloc))
	MemoryUsage.WithLabelValues("sys").Set(float64(m.Sys))
	MemoryUsage.WithLabelValues("heap_inuse").Set(float64(m.HeapInuse))
}
