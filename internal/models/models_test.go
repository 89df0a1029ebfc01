package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidPaymentMethod(t *testing.T) {
	for _, m := range []string{"credit", "debit", "pix", "cash"} {
		assert.True(t, ValidPaymentMethod(m), m)
	}
	for _, m := range []string{"check", "CASH", "", "boleto"} {
		assert.False(t, ValidPaymentMethod(m), m)
	}
}

func TestValidExchangeTransition(t *testing.T) {
	assert.True(t, ValidExchangeTransition(ExchangeStatusPending, ExchangeStatusCompleted))
	assert.True(t, ValidExchangeTransition(ExchangeStatusPending, ExchangeStatusCancelled))

	// Terminal states never move
	assert.False(t, ValidExchangeTransition(ExchangeStatusCompleted, ExchangeStatusPending))
	assert.False(t, ValidExchangeTransition(ExchangeStatusCompleted, ExchangeStatusCancelled))
	assert.False(t, ValidExchangeTransition(ExchangeStatusCancelled, ExchangeStatusCompleted))

	// Setting the same status again is a no-op, not a transition
	assert.True(t, ValidExchangeTransition(ExchangeStatusPending, ExchangeStatusPending))
	assert.True(t, ValidExchangeTransition(ExchangeStatusCompleted, ExchangeStatusCompleted))

	assert.False(t, ValidExchangeTransition(ExchangeStatusPending, "refunded"))
}

func TestProductLowStock(t *testing.T) {
	p := Product{StockQuantity: 3, MinStock: 5}
	assert.True(t, p.LowStock())

	p = Product{StockQuantity: 5, MinStock: 5}
	assert.True(t, p.LowStock())

	p = Product{StockQuantity: 6, MinStock: 5}
	assert.False(t, p.LowStock())
}
