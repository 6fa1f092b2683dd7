package prometheus

import (
	"time"

	"pos-service/internal/model"
	"pos-service/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HttpRequestsTotal   *prometheus.CounterVec
	HttpRequestDuration *prometheus.HistogramVec

	// Sales metrics
	TransactionsCounter *prometheus.CounterVec
	RevenueCounter      prometheus.Counter
	ItemsSoldCounter    prometheus.Counter

	// Bulk import metrics
	ImportRowsCounter     prometheus.Counter
	ImportRejectedCounter *prometheus.CounterVec

	// Catalog metrics
	CatalogOperationsCounter *prometheus.CounterVec
	StoreSaveDuration        *prometheus.HistogramVec

	// Inventory metrics
	InventoryGauge prometheus.GaugeVec
	LowStockGauge  prometheus.Gauge

	// Session metrics
	SessionsCounter *prometheus.CounterVec

	initialized bool
)

// InitMetrics registers every metric on reg under the configured prefix
func InitMetrics(cfg *config.Config, reg prometheus.Registerer) {
	prefix := cfg.Metrics.Prefix
	factory := promauto.With(reg)

	HttpRequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HttpRequestDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	TransactionsCounter = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_transactions_total",
			Help: "Total number of committed sales by payment method",
		},
		[]string{"payment_method"},
	)

	RevenueCounter = factory.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_revenue_total",
			Help: "Sum of committed transaction totals, tax included",
		},
	)

	ItemsSoldCounter = factory.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_items_sold_total",
			Help: "Total number of units sold",
		},
	)

	ImportRowsCounter = factory.NewCounter(
		prometheus.CounterOpts{
			Name: prefix + "_import_rows_total",
			Help: "Total number of inventory rows merged by bulk import",
		},
	)

	ImportRejectedCounter = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_import_rejected_total",
			Help: "Total number of rejected inventory imports by reason",
		},
		[]string{"reason"},
	)

	CatalogOperationsCounter = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_catalog_operations_total",
			Help: "Total number of committed catalog mutations",
		},
		[]string{"operation"},
	)

	StoreSaveDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_store_save_duration_seconds",
			Help:    "Duration of catalog slot writes in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	InventoryGauge = *factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: prefix + "_variant_inventory",
			Help: "Current stock per product variant",
		},
		[]string{"product_id", "product_name", "size"},
	)

	LowStockGauge = factory.NewGauge(
		prometheus.GaugeOpts{
			Name: prefix + "_low_stock_variants",
			Help: "Number of variants at or below their low-stock threshold",
		},
	)

	SessionsCounter = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_sessions_total",
			Help: "Total number of sessions opened by role",
		},
		[]string{"role"},
	)

	initialized = true
}

// TrackStoreSave returns a function that records the duration of a slot write
func TrackStoreSave(operation string) func(startTime time.Time) {
	return func(startTime time.Time) {
		if !initialized {
			return
		}
		StoreSaveDuration.WithLabelValues(operation).Observe(time.Since(startTime).Seconds())
	}
}

// RecordCatalogOperation increments the counter for committed mutations
func RecordCatalogOperation(operation string) {
	if !initialized {
		return
	}
	CatalogOperationsCounter.WithLabelValues(operation).Inc()
}

// RecordTransaction records a committed sale
func RecordTransaction(tx model.Transaction) {
	if !initialized {
		return
	}
	TransactionsCounter.WithLabelValues(string(tx.PaymentMethod)).Inc()
	revenue, _ := tx.Total.Float64()
	RevenueCounter.Add(revenue)
	ItemsSoldCounter.Add(float64(tx.TotalQuantity()))
}

// RecordImport records the number of rows merged by a bulk import
func RecordImport(rows int) {
	if !initialized {
		return
	}
	ImportRowsCounter.Add(float64(rows))
}

// RecordImportRejected records an import refused before merging
func RecordImportRejected(reason string) {
	if !initialized {
		return
	}
	ImportRejectedCounter.WithLabelValues(reason).Inc()
}

// RecordSession records a user picked on the login screen
func RecordSession(role model.Role) {
	if !initialized {
		return
	}
	SessionsCounter.WithLabelValues(string(role)).Inc()
}

// RecordHTTPRequest records one served request
func RecordHTTPRequest(method, path, status string, duration time.Duration) {
	if !initialized {
		return
	}
	HttpRequestsTotal.WithLabelValues(method, path, status).Inc()
	HttpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// UpdateInventory resets the inventory gauges from a catalog state. Variants
// that no longer exist disappear from the series.
func UpdateInventory(state model.State) {
	if !initialized {
		return
	}
	InventoryGauge.Reset()
	low := 0
	for _, p := range state.Products {
		for _, v := range p.Variants {
			InventoryGauge.WithLabelValues(p.ID, p.Name, v.Size).Set(float64(v.Stock))
			if v.IsLowStock() {
				low++
			}
		}
	}
	LowStockGauge.Set(float64(low))
}
