package util

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SalesCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "sales_created_total",
		Help: "Total number of sales recorded",
	})

	SalesFailedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "sales_failed_total",
		Help: "Total number of rejected or failed sale attempts",
	}, []string{"reason"})

	SaleProcessingLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "sale_processing_latency_seconds",
		Help:    "Latency of the sale recording transaction",
		Buckets: prometheus.DefBuckets,
	})

	SaleItemsPerSale = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "sale_items_per_sale",
		Help:    "Number of line items per recorded sale",
		Buckets: []float64{1, 2, 3, 5, 8, 13, 21},
	})

	StockAdjustmentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "stock_adjustments_total",
		Help: "Total number of manual stock adjustments",
	}, []string{"direction"})

	ExchangesCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "exchanges_created_total",
		Help: "Total number of exchange requests opened",
	})

	ExchangesUpdatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "exchanges_updated_total",
		Help: "Total number of exchange status transitions",
	}, []string{"status"})

	LowStockProducts = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "low_stock_products",
		Help: "Number of products at or below their minimum stock threshold",
	})

	ProductCacheHits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "product_cache_hits_total",
		Help: "Product reads served from the Redis cache",
	})

	ProductCacheMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "product_cache_misses_total",
		Help: "Product reads that fell through to the database",
	})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})
)
