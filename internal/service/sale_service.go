package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"pos-service/internal/broker"
	"pos-service/internal/models"
	"pos-service/internal/store"
	"pos-service/internal/util"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ErrInvalidRequest marks validation failures surfaced to the caller as
// bad requests. Wrapped errors carry the specific field problem.
var ErrInvalidRequest = errors.New("invalid request")

// SaleService records sales: one cart in, one committed sale (header,
// items, stock decrements) or nothing at all.
type SaleService struct {
	store          *store.Store
	eventPublisher *broker.EventPublisher
	logger         *zap.Logger
}

// NewSaleService creates a new sale service
func NewSaleService(store *store.Store, eventPublisher *broker.EventPublisher) *SaleService {
	return &SaleService{
		store:          store,
		eventPublisher: eventPublisher,
		logger:         util.GetLogger(),
	}
}

// CreateSaleRequest represents a request to record a sale
type CreateSaleRequest struct {
	ClientID            *int64            `json:"client_id,omitempty"`
	TotalAmount         decimal.Decimal   `json:"total_amount"`
	DiscountAmount      *decimal.Decimal  `json:"discount_amount,omitempty"`
	PaymentMethod       string            `json:"payment_method" binding:"required"`
	PaymentInstallments *int              `json:"payment_installments,omitempty"`
	InstallmentAmount   *decimal.Decimal  `json:"installment_amount,omitempty"`
	Notes               *string           `json:"notes,omitempty"`
	Items               []SaleItemRequest `json:"items" binding:"required"`
}

// SaleItemRequest represents one cart line. UnitPrice is the authoritative
// price snapshot supplied by the register; TotalPrice must equal
// quantity x unit price.
type SaleItemRequest struct {
	ProductID  int64           `json:"product_id" binding:"required"`
	Quantity   int             `json:"quantity" binding:"required"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// SaleResponse is a sale header together with its items
type SaleResponse struct {
	Sale  *models.Sale      `json:"sale"`
	Items []models.SaleItem `json:"items"`
}

// ValidateSaleRequest checks cart shape, payment vocabulary and the price
// arithmetic before any storage work happens. The register's unit prices
// are trusted as snapshots; the sums are not.
func ValidateSaleRequest(req *CreateSaleRequest) error {
	if len(req.Items) == 0 {
		return fmt.Errorf("%w: sale must contain at least one item", ErrInvalidRequest)
	}
	if !models.ValidPaymentMethod(req.PaymentMethod) {
		return fmt.Errorf("%w: unknown payment method %q", ErrInvalidRequest, req.PaymentMethod)
	}
	if req.PaymentInstallments != nil && *req.PaymentInstallments < 1 {
		return fmt.Errorf("%w: payment installments must be at least 1", ErrInvalidRequest)
	}

	discount := decimal.Zero
	if req.DiscountAmount != nil {
		discount = *req.DiscountAmount
	}
	if discount.IsNegative() {
		return fmt.Errorf("%w: discount amount must not be negative", ErrInvalidRequest)
	}

	sum := decimal.Zero
	for i, item := range req.Items {
		if item.Quantity <= 0 {
			return fmt.Errorf("%w: item %d quantity must be positive", ErrInvalidRequest, i)
		}
		if item.UnitPrice.IsNegative() {
			return fmt.Errorf("%w: item %d unit price must not be negative", ErrInvalidRequest, i)
		}
		expected := item.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
		if !item.TotalPrice.Equal(expected) {
			return fmt.Errorf("%w: item %d total price %s does not equal %d x %s",
				ErrInvalidRequest, i, item.TotalPrice, item.Quantity, item.UnitPrice)
		}
		sum = sum.Add(item.TotalPrice)
	}

	if !req.TotalAmount.Equal(sum.Sub(discount)) {
		return fmt.Errorf("%w: total amount %s does not equal item sum %s minus discount %s",
			ErrInvalidRequest, req.TotalAmount, sum, discount)
	}
	return nil
}

// CreateSale validates the cart and records it atomically. On any
// failure (missing product, insufficient stock, storage error) nothing is
// persisted and product stock is unchanged.
func (s *SaleService) CreateSale(ctx context.Context, req *CreateSaleRequest) (*SaleResponse, error) {
	ctx, span := util.StartSpan(ctx, "SaleService.CreateSale")
	defer span.End()

	start := time.Now()
	defer func() {
		util.SaleProcessingLatency.Observe(time.Since(start).Seconds())
	}()

	if err := ValidateSaleRequest(req); err != nil {
		util.SalesFailedTotal.WithLabelValues("invalid_request").Inc()
		return nil, err
	}

	sale := &models.Sale{
		ClientID:            req.ClientID,
		TotalAmount:         req.TotalAmount,
		PaymentMethod:       req.PaymentMethod,
		PaymentInstallments: 1,
		InstallmentAmount:   req.InstallmentAmount,
		Notes:               req.Notes,
	}
	if req.DiscountAmount != nil {
		sale.DiscountAmount = *req.DiscountAmount
	}
	if req.PaymentInstallments != nil {
		sale.PaymentInstallments = *req.PaymentInstallments
	}

	items := make([]models.SaleItem, len(req.Items))
	for i, item := range req.Items {
		items[i] = models.SaleItem{
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			UnitPrice:  item.UnitPrice,
			TotalPrice: item.TotalPrice,
		}
	}

	if err := s.store.CreateSale(ctx, sale, items); err != nil {
		util.SalesFailedTotal.WithLabelValues(saleFailureReason(err)).Inc()
		s.logger.Warn("Sale rejected", zap.Error(err))
		return nil, err
	}

	util.SalesCreatedTotal.Inc()
	util.SaleItemsPerSale.Observe(float64(len(items)))
	s.logger.Info("Sale recorded",
		zap.Int64("sale_id", sale.ID),
		zap.String("total_amount", sale.TotalAmount.String()),
		zap.Int("items", len(items)))

	event := &models.SaleCompletedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeSaleCompleted,
			Timestamp: time.Now(),
		},
		SaleID:      sale.ID,
		ClientID:    sale.ClientID,
		TotalAmount: sale.TotalAmount,
		Items:       saleItemData(items),
	}
	if err := s.eventPublisher.PublishSaleCompleted(ctx, event); err != nil {
		s.logger.Error("Failed to publish SaleCompleted event", zap.Error(err))
	}

	return &SaleResponse{Sale: sale, Items: items}, nil
}

func saleItemData(items []models.SaleItem) []models.SaleItemData {
	data := make([]models.SaleItemData, len(items))
	for i, item := range items {
		data[i] = models.SaleItemData{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitPrice: item.UnitPrice,
		}
	}
	return data
}

func saleFailureReason(err error) string {
	switch {
	case errors.Is(err, store.ErrProductNotFound):
		return "product_not_found"
	case errors.Is(err, store.ErrInsufficientStock):
		return "insufficient_stock"
	default:
		return "db_error"
	}
}

// GetSale retrieves a sale with its items in submission order
func (s *SaleService) GetSale(ctx context.Context, saleID int64) (*SaleResponse, error) {
	sale, err := s.store.GetSaleByID(ctx, saleID)
	if err != nil {
		return nil, err
	}

	items, err := s.store.GetSaleItems(ctx, saleID)
	if err != nil {
		return nil, err
	}

	return &SaleResponse{Sale: sale, Items: items}, nil
}

// ListSales retrieves all sales with their items, newest first
func (s *SaleService) ListSales(ctx context.Context) ([]SaleResponse, error) {
	sales, err := s.store.GetSales(ctx)
	if err != nil {
		return nil, err
	}

	responses := make([]SaleResponse, len(sales))
	for i := range sales {
		items, err := s.store.GetSaleItems(ctx, sales[i].ID)
		if err != nil {
			return nil, err
		}
		responses[i] = SaleResponse{Sale: &sales[i], Items: items}
	}
	return responses, nil
}

// GetSalesStats aggregates completed-sale figures for the dashboard
func (s *SaleService) GetSalesStats(ctx context.Context) (*models.SalesStats, error) {
	now := time.Now().UTC()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	stats, err := s.store.GetSalesStats(ctx, monthStart)
	if err != nil {
		return nil, err
	}

	if stats.TotalSales > 0 {
		stats.AverageTicket = stats.TotalRevenue.
			Div(decimal.NewFromInt(int64(stats.TotalSales))).Round(2)
	}
	return stats, nil
}
