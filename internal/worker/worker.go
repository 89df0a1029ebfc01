package worker

import (
	"context"

	"pos-service/internal/broker"
	"pos-service/internal/models"
	"pos-service/internal/redisclient"
	"pos-service/internal/store"
	"pos-service/internal/util"

	"go.uber.org/zap"
)

// CacheWorker consumes sale and stock events, drops stale product cache
// entries and keeps the low-stock gauge current
type CacheWorker struct {
	consumer     *broker.Consumer
	eventHandler *broker.EventHandler
	store        *store.Store
	cache        *redisclient.Client
	logger       *zap.Logger
}

// NewCacheWorker creates a new cache worker
func NewCacheWorker(consumer *broker.Consumer, store *store.Store, cache *redisclient.Client) *CacheWorker {
	w := &CacheWorker{
		consumer: consumer,
		store:    store,
		cache:    cache,
		logger:   util.GetLogger(),
	}

	eventHandler := broker.NewEventHandler()
	eventHandler.OnSaleCompleted(w.handleSaleCompleted)
	eventHandler.OnStockAdjusted(w.handleStockAdjusted)
	w.eventHandler = eventHandler

	return w
}

// Start starts the worker
func (w *CacheWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting cache worker")
	return w.consumer.StartConsuming(ctx, w.eventHandler.HandleMessage)
}

// Stop stops the worker
func (w *CacheWorker) Stop() error {
	w.logger.Info("Stopping cache worker")
	return w.consumer.Close()
}

func (w *CacheWorker) handleSaleCompleted(ctx context.Context, event *models.SaleCompletedEvent) error {
	ids := make([]int64, len(event.Items))
	for i, item := range event.Items {
		ids[i] = item.ProductID
	}

	if err := w.cache.InvalidateProducts(ctx, ids); err != nil {
		w.logger.Error("Failed to invalidate product cache after sale",
			zap.Int64("sale_id", event.SaleID),
			zap.Error(err))
		return err
	}

	w.refreshLowStockGauge(ctx, ids)
	return nil
}

func (w *CacheWorker) handleStockAdjusted(ctx context.Context, event *models.StockAdjustedEvent) error {
	if err := w.cache.InvalidateProduct(ctx, event.ProductID); err != nil {
		w.logger.Error("Failed to invalidate product cache after adjustment",
			zap.Int64("product_id", event.ProductID),
			zap.Error(err))
		return err
	}

	w.refreshLowStockGauge(ctx, []int64{event.ProductID})
	return nil
}

// refreshLowStockGauge recounts low-stock products and logs any of the
// affected products that crossed their threshold
func (w *CacheWorker) refreshLowStockGauge(ctx context.Context, affected []int64) {
	products, err := w.store.GetLowStockProducts(ctx)
	if err != nil {
		w.logger.Error("Failed to query low-stock products", zap.Error(err))
		return
	}
	util.LowStockProducts.Set(float64(len(products)))

	affectedSet := make(map[int64]struct{}, len(affected))
	for _, id := range affected {
		affectedSet[id] = struct{}{}
	}
	for _, p := range products {
		if _, ok := affectedSet[p.ID]; ok {
			w.logger.Warn("Product low on stock",
				zap.Int64("product_id", p.ID),
				zap.String("name", p.Name),
				zap.Int("stock_quantity", p.StockQuantity),
				zap.Int("min_stock", p.MinStock))
		}
	}
}
