package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event types
const (
	EventTypeSaleCompleted   = "SALE_COMPLETED"
	EventTypeStockAdjusted   = "STOCK_ADJUSTED"
	EventTypeExchangeCreated = "EXCHANGE_CREATED"
	EventTypeExchangeUpdated = "EXCHANGE_UPDATED"
)

// BaseEvent contains common fields for all events
type BaseEvent struct {
	EventID   string    `json:"event_id"`
	EventType string    `json:"event_type"`
	Timestamp time.Time `json:"timestamp"`
}

// SaleCompletedEvent published after a sale commits
type SaleCompletedEvent struct {
	BaseEvent
	SaleID      int64           `json:"sale_id"`
	ClientID    *int64          `json:"client_id,omitempty"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Items       []SaleItemData  `json:"items"`
}

// StockAdjustedEvent published after a manual stock adjustment
type StockAdjustedEvent struct {
	BaseEvent
	ProductID   int64 `json:"product_id"`
	Delta       int   `json:"delta"`
	NewQuantity int   `json:"new_quantity"`
}

// ExchangeCreatedEvent published when an exchange request is opened
type ExchangeCreatedEvent struct {
	BaseEvent
	ExchangeID int64  `json:"exchange_id"`
	SaleID     int64  `json:"sale_id"`
	ProductID  int64  `json:"product_id"`
	Reason     string `json:"reason"`
}

// ExchangeUpdatedEvent published on an exchange status transition
type ExchangeUpdatedEvent struct {
	BaseEvent
	ExchangeID int64  `json:"exchange_id"`
	Status     string `json:"status"`
}

// SaleItemData represents item data carried in events
type SaleItemData struct {
	ProductID int64           `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}
