package store

import (
	"errors"
	"fmt"
)

// Sentinel errors for missing rows and rejected writes
var (
	ErrProductNotFound   = errors.New("product not found")
	ErrClientNotFound    = errors.New("client not found")
	ErrSaleNotFound      = errors.New("sale not found")
	ErrExchangeNotFound  = errors.New("exchange not found")
	ErrSettingsNotFound  = errors.New("company settings not found")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrProductInUse      = errors.New("product is referenced by sale history")
	ErrSaleItemNotFound  = errors.New("product not found in the specified sale")
)

// ProductNotFoundError identifies the cart line whose product is missing
type ProductNotFoundError struct {
	ProductID int64
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product not found: %d", e.ProductID)
}

func (e *ProductNotFoundError) Is(target error) bool {
	return target == ErrProductNotFound
}

// InsufficientStockError identifies the cart line that failed its stock
// check, with the requested and available quantities at check time.
type InsufficientStockError struct {
	ProductID int64
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d: requested=%d, available=%d",
		e.ProductID, e.Requested, e.Available)
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
