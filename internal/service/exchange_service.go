package service

import (
	"context"
	"fmt"
	"time"

	"pos-service/internal/broker"
	"pos-service/internal/models"
	"pos-service/internal/store"
	"pos-service/internal/util"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ExchangeService handles return/exchange requests. Status transitions do
// not mutate product stock; corrections go through the manual stock
// adjustment operation.
type ExchangeService struct {
	store          *store.Store
	eventPublisher *broker.EventPublisher
	logger         *zap.Logger
}

// NewExchangeService creates a new exchange service
func NewExchangeService(store *store.Store, eventPublisher *broker.EventPublisher) *ExchangeService {
	return &ExchangeService{
		store:          store,
		eventPublisher: eventPublisher,
		logger:         util.GetLogger(),
	}
}

// CreateExchangeRequest represents a request to open an exchange
type CreateExchangeRequest struct {
	SaleID       int64   `json:"sale_id" binding:"required"`
	ProductID    int64   `json:"product_id" binding:"required"`
	Reason       string  `json:"reason" binding:"required"`
	Description  *string `json:"description,omitempty"`
	NewProductID *int64  `json:"new_product_id,omitempty"`
}

// UpdateExchangeRequest represents a partial exchange update
type UpdateExchangeRequest struct {
	Status       *string `json:"status,omitempty"`
	NewProductID *int64  `json:"new_product_id,omitempty"`
	Description  *string `json:"description,omitempty"`
}

// CreateExchange opens an exchange after the store verifies the
// (sale, product) pair exists in sale history
func (es *ExchangeService) CreateExchange(ctx context.Context, req *CreateExchangeRequest) (*models.Exchange, error) {
	exchange := &models.Exchange{
		SaleID:       req.SaleID,
		ProductID:    req.ProductID,
		Reason:       req.Reason,
		Description:  req.Description,
		NewProductID: req.NewProductID,
	}
	if err := es.store.CreateExchange(ctx, exchange); err != nil {
		return nil, err
	}

	util.ExchangesCreatedTotal.Inc()
	es.logger.Info("Exchange created",
		zap.Int64("exchange_id", exchange.ID),
		zap.Int64("sale_id", exchange.SaleID),
		zap.Int64("product_id", exchange.ProductID))

	event := &models.ExchangeCreatedEvent{
		BaseEvent: models.BaseEvent{
			EventID:   uuid.New().String(),
			EventType: models.EventTypeExchangeCreated,
			Timestamp: time.Now(),
		},
		ExchangeID: exchange.ID,
		SaleID:     exchange.SaleID,
		ProductID:  exchange.ProductID,
		Reason:     exchange.Reason,
	}
	if err := es.eventPublisher.PublishExchangeCreated(ctx, event); err != nil {
		es.logger.Error("Failed to publish ExchangeCreated event", zap.Error(err))
	}

	return exchange, nil
}

// GetExchange retrieves an exchange by ID
func (es *ExchangeService) GetExchange(ctx context.Context, id int64) (*models.Exchange, error) {
	return es.store.GetExchangeByID(ctx, id)
}

// ListExchanges retrieves all exchanges, newest first
func (es *ExchangeService) ListExchanges(ctx context.Context) ([]models.Exchange, error) {
	return es.store.GetExchanges(ctx)
}

// UpdateExchange applies a partial update. A status change must be a
// valid transition from the current state: pending may move to completed
// or cancelled, both of which are terminal.
func (es *ExchangeService) UpdateExchange(ctx context.Context, id int64, req *UpdateExchangeRequest) (*models.Exchange, error) {
	if req.Status != nil {
		current, err := es.store.GetExchangeByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if !models.ValidExchangeTransition(current.Status, *req.Status) {
			return nil, fmt.Errorf("%w: cannot transition exchange from %q to %q",
				ErrInvalidRequest, current.Status, *req.Status)
		}
	}

	exchange, err := es.store.UpdateExchange(ctx, id, &store.ExchangePatch{
		Status:       req.Status,
		NewProductID: req.NewProductID,
		Description:  req.Description,
	})
	if err != nil {
		return nil, err
	}

	if req.Status != nil {
		util.ExchangesUpdatedTotal.WithLabelValues(exchange.Status).Inc()
		es.logger.Info("Exchange status updated",
			zap.Int64("exchange_id", exchange.ID),
			zap.String("status", exchange.Status))

		event := &models.ExchangeUpdatedEvent{
			BaseEvent: models.BaseEvent{
				EventID:   uuid.New().String(),
				EventType: models.EventTypeExchangeUpdated,
				Timestamp: time.Now(),
			},
			ExchangeID: exchange.ID,
			Status:     exchange.Status,
		}
		if err := es.eventPublisher.PublishExchangeUpdated(ctx, event); err != nil {
			es.logger.Error("Failed to publish ExchangeUpdated event", zap.Error(err))
		}
	}

	return exchange, nil
}

// DeleteExchange removes an exchange record
func (es *ExchangeService) DeleteExchange(ctx context.Context, id int64) error {
	return es.store.DeleteExchange(ctx, id)
}
