package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pos-service/internal/broker"
	"pos-service/internal/models"
	"pos-service/internal/redisclient"
	"pos-service/internal/store"
	"pos-service/internal/util"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ProductService handles catalog reads and writes. Reads go through the
// Redis cache; every mutation invalidates the cached entry.
type ProductService struct {
	store          *store.Store
	cache          *redisclient.Client
	eventPublisher *broker.EventPublisher
	logger         *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(store *store.Store, cache *redisclient.Client, eventPublisher *broker.EventPublisher) *ProductService {
	return &ProductService{
		store:          store,
		cache:          cache,
		eventPublisher: eventPublisher,
		logger:         util.GetLogger(),
	}
}

// CreateProductRequest represents a request to create a product
type CreateProductRequest struct {
	Name          string           `json:"name" binding:"required"`
	Description   *string          `json:"description,omitempty"`
	Price         decimal.Decimal  `json:"price"`
	CostPrice     *decimal.Decimal `json:"cost_price,omitempty"`
	StockQuantity int              `json:"stock_quantity"`
	MinStock      int              `json:"min_stock"`
	Category      *string          `json:"category,omitempty"`
	Barcode       *string          `json:"barcode,omitempty"`
	ImageURL      *string          `json:"image_url,omitempty"`
}

// UpdateProductRequest represents a partial product update
type UpdateProductRequest struct {
	Name          *string          `json:"name,omitempty"`
	Description   *string          `json:"description,omitempty"`
	Price         *decimal.Decimal `json:"price,omitempty"`
	CostPrice     *decimal.Decimal `json:"cost_price,omitempty"`
	StockQuantity *int             `json:"stock_quantity,omitempty"`
	MinStock      *int             `json:"min_stock,omitempty"`
	Category      *string          `json:"category,omitempty"`
	Barcode       *string          `json:"barcode,omitempty"`
	ImageURL      *string          `json:"image_url,omitempty"`
}

// CreateProduct validates and inserts a new catalog product
func (ps *ProductService) CreateProduct(ctx context.Context, req *CreateProductRequest) (*models.Product, error) {
	if req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidRequest)
	}
	if req.StockQuantity < 0 {
		return nil, fmt.Errorf("%w: stock quantity must not be negative", ErrInvalidRequest)
	}
	if req.MinStock < 0 {
		return nil, fmt.Errorf("%w: min stock must not be negative", ErrInvalidRequest)
	}

	product := &models.Product{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		CostPrice:     req.CostPrice,
		StockQuantity: req.StockQuantity,
		MinStock:      req.MinStock,
		Category:      req.Category,
		Barcode:       req.Barcode,
		ImageURL:      req.ImageURL,
	}
	if err := ps.store.CreateProduct(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	ps.logger.Info("Product created", zap.Int64("product_id", product.ID), zap.String("name", product.Name))
	return product, nil
}

// GetProduct retrieves a product, preferring the cache
func (ps *ProductService) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	if cached, err := ps.cache.GetProduct(ctx, id); err == nil {
		util.ProductCacheHits.Inc()
		return cached, nil
	} else if !errors.Is(err, redisclient.ErrCacheMiss) {
		ps.logger.Warn("Product cache read failed", zap.Int64("product_id", id), zap.Error(err))
	}
	util.ProductCacheMisses.Inc()

	product, err := ps.store.GetProductByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := ps.cache.SetProduct(ctx, product); err != nil {
		ps.logger.Warn("Product cache write failed", zap.Int64("product_id", id), zap.Error(err))
	}
	return product, nil
}

// ListProducts retrieves the full catalog
func (ps *ProductService) ListProducts(ctx context.Context) ([]models.Product, error) {
	return ps.store.GetProducts(ctx)
}

// ListLowStockProducts retrieves products at or below their minimum stock
// and refreshes the low-stock gauge
func (ps *ProductService) ListLowStockProducts(ctx context.Context) ([]models.Product, error) {
	products, err := ps.store.GetLowStockProducts(ctx)
	if err != nil {
		return nil, err
	}
	util.LowStockProducts.Set(float64(len(products)))
	return products, nil
}

// UpdateProduct applies a partial update and invalidates the cache entry
func (ps *ProductService) UpdateProduct(ctx context.Context, id int64, req *UpdateProductRequest) (*models.Product, error) {
	if req.Price != nil && req.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must not be negative", ErrInvalidRequest)
	}
	if req.StockQuantity != nil && *req.StockQuantity < 0 {
		return nil, fmt.Errorf("%w: stock quantity must not be negative", ErrInvalidRequest)
	}

	product, err := ps.store.UpdateProduct(ctx, id, &store.ProductPatch{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		CostPrice:     req.CostPrice,
		StockQuantity: req.StockQuantity,
		MinStock:      req.MinStock,
		Category:      req.Category,
		Barcode:       req.Barcode,
		ImageURL:      req.ImageURL,
	})
	if err != nil {
		return nil, err
	}

	if err := ps.cache.InvalidateProduct(ctx, id); err != nil {
		ps.logger.Warn("Product cache invalidation failed", zap.Int64("product_id", id), zap.Error(err))
	}
	return product, nil
}

// DeleteProduct removes a product and its cache entry. Products with sale
// history are protected and the delete is rejected.
func (ps *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	if err := ps.store.DeleteProduct(ctx, id); err != nil {
		return err
	}
	if err := ps.cache.InvalidateProduct(ctx, id); err != nil {
		ps.logger.Warn("Product cache invalidation failed", zap.Int64("product_id", id), zap.Error(err))
	}
	return nil
}

// AdjustStock applies a signed manual stock correction outside the sale
// path, using the same conditional-decrement discipline
func (ps *ProductService) AdjustStock(ctx context.Context, id int64, delta int) (*models.Product, error) {
	ctx, span := util.StartSpan(ctx, "ProductService.AdjustStock")
	defer span.End()

	if delta == 0 {
		return nil, fmt.Errorf("%w: stock adjustment must not be zero", ErrInvalidRequest)
	}

	product, err := ps.store.AdjustStock(ctx, id, delta)
	if err != nil {
		return nil, err
	}

	direction := "in"
	if delta < 0 {
		direction = "out"
	}
	util.StockAdjustmentsTotal.WithLabelValues(direction).Inc()
	ps.logger.Info("Stock adjusted",
		zap.Int64("product_id", id),
		zap.Int("delta", delta),
		zap.Int("stock_quantity", product.StockQuantity))

	if err := ps.cache.InvalidateProduct(ctx, id); err != nil {
		ps.logger.Warn("Product cache invalidation failed", zap.Int64("product_id", id), zap.Error(err))
	}

	event := &models.StockAdjustedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeStockAdjusted,
			Timestamp: time.Now(),
		},
		ProductID:   id,
		Delta:       delta,
		NewQuantity: product.StockQuantity,
	}
	if err := ps.eventPublisher.PublishStockAdjusted(ctx, event); err != nil {
		ps.logger.Error("Failed to publish StockAdjusted event", zap.Error(err))
	}

	return product, nil
}
