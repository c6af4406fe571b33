// file: internal/metrics/metrics.go
// version: 2.0.0
// guid: 9f8e7d6c-5b4a-3210-9fed-cba876543210

package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "cover_preview"

var (
	registerOnce sync.Once

	actionsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "actions_total",
		Help:      "Total number of actions applied to preview sessions by type and result",
	}, []string{"type", "result"})
	keysTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "keys_total",
		Help:      "Total number of key presses by canonical key name",
	}, []string{"key"})
	spinCoalesced = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "spin_coalesced_total",
		Help:      "Spin presses absorbed by a later press inside the debounce window",
	})
	snapshotRestoreFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "snapshot_restore_failures_total",
		Help:      "Stored snapshots that could not be decoded and were replaced by defaults",
	})
	snapshotWrites = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "snapshot_writes_total",
		Help:      "Snapshot writes by result",
	}, []string{"result"})
	catalogReloads = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_reloads_total",
		Help:      "Catalog reloads triggered by file changes, by result",
	}, []string{"result"})
	operationDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "operation_duration_seconds",
		Help:      "Histogram of operation durations in seconds by type",
		Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12), // 0.5ms up to ~1s
	}, []string{"type"})

	sessionsGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "sessions_active",
		Help:      "Number of open preview sessions",
	})
	editionsGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "catalog_editions",
		Help:      "Number of editions in the loaded catalog",
	})
	friendsGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "catalog_friends",
		Help:      "Number of friends in the loaded catalog",
	})
	memoryAllocGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "process_memory_alloc_bytes",
		Help:      "Current process memory allocation (runtime.Alloc)",
	})
	goroutinesGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "process_goroutines",
		Help:      "Number of currently running goroutines",
	})
)

// Register initializes metrics with the global Prometheus registry (idempotent)
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(actionsTotal, keysTotal, spinCoalesced, snapshotRestoreFailures, snapshotWrites,
			catalogReloads, operationDuration, sessionsGauge, editionsGauge, friendsGauge, memoryAllocGauge, goroutinesGauge)
	})
}

func result(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}

// Counters
func IncAction(actionType string, err error) { actionsTotal.WithLabelValues(actionType, result(err)).Inc() }
func IncKey(key string)                      { keysTotal.WithLabelValues(key).Inc() }
func IncSpinCoalesced()                      { spinCoalesced.Inc() }
func IncSnapshotRestoreFailure()             { snapshotRestoreFailures.Inc() }
func IncSnapshotWrite(err error)             { snapshotWrites.WithLabelValues(result(err)).Inc() }
func IncCatalogReload(err error)             { catalogReloads.WithLabelValues(result(err)).Inc() }
func ObserveOperationDuration(opType string, d time.Duration) {
	operationDuration.WithLabelValues(opType).Observe(d.Seconds())
}

// Gauges
func SetSessions(n int)       { sessionsGauge.Set(float64(n)) }
func SetEditions(n int)       { editionsGauge.Set(float64(n)) }
func SetFriends(n int)        { friendsGauge.Set(float64(n)) }
func SetMemoryAlloc(b uint64) { memoryAllocGauge.Set(float64(b)) }
func SetGoroutines(n int)     { goroutinesGauge.Set(float64(n)) }
