package service

import (
	"errors"
	"fmt"
	"testing"

	"pos-service/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func validRequest() *CreateSaleRequest {
	return &CreateSaleRequest{
		TotalAmount:   dec("50.00"),
		PaymentMethod: "cash",
		Items: []SaleItemRequest{
			{ProductID: 1, Quantity: 5, UnitPrice: dec("10.00"), TotalPrice: dec("50.00")},
		},
	}
}

func TestValidateSaleRequest(t *testing.T) {
	require.NoError(t, ValidateSaleRequest(validRequest()))
}

func TestValidateSaleRequestEmptyCart(t *testing.T) {
	req := validRequest()
	req.Items = nil

	err := ValidateSaleRequest(req)
	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.Contains(t, err.Error(), "at least one item")
}

func TestValidateSaleRequestUnknownPaymentMethod(t *testing.T) {
	req := validRequest()
	req.PaymentMethod = "check"

	err := ValidateSaleRequest(req)
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestValidateSaleRequestNonPositiveQuantity(t *testing.T) {
	for _, q := range []int{0, -3} {
		req := validRequest()
		req.Items[0].Quantity = q
		req.Items[0].TotalPrice = dec("10.00").Mul(decimal.NewFromInt(int64(q)))
		req.TotalAmount = req.Items[0].TotalPrice

		err := ValidateSaleRequest(req)
		assert.ErrorIs(t, err, ErrInvalidRequest, "quantity=%d", q)
	}
}

func TestValidateSaleRequestLineTotalMismatch(t *testing.T) {
	req := validRequest()
	req.Items[0].TotalPrice = dec("49.99")
	req.TotalAmount = dec("49.99")

	err := ValidateSaleRequest(req)
	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.Contains(t, err.Error(), "total price")
}

func TestValidateSaleRequestHeaderTotalMismatch(t *testing.T) {
	req := validRequest()
	req.TotalAmount = dec("45.00")

	err := ValidateSaleRequest(req)
	assert.ErrorIs(t, err, ErrInvalidRequest)
	assert.Contains(t, err.Error(), "total amount")
}

func TestValidateSaleRequestDiscountApplied(t *testing.T) {
	req := validRequest()
	discount := dec("5.00")
	req.DiscountAmount = &discount
	req.TotalAmount = dec("45.00")

	require.NoError(t, ValidateSaleRequest(req))
}

func TestValidateSaleRequestNegativeDiscount(t *testing.T) {
	req := validRequest()
	discount := dec("-1.00")
	req.DiscountAmount = &discount

	err := ValidateSaleRequest(req)
	assert.ErrorIs(t, err, ErrInvalidRequest)
}

func TestValidateSaleRequestMultipleLines(t *testing.T) {
	req := &CreateSaleRequest{
		TotalAmount:   dec("35.50"),
		PaymentMethod: "pix",
		Items: []SaleItemRequest{
			{ProductID: 1, Quantity: 2, UnitPrice: dec("10.00"), TotalPrice: dec("20.00")},
			{ProductID: 2, Quantity: 1, UnitPrice: dec("15.50"), TotalPrice: dec("15.50")},
		},
	}

	require.NoError(t, ValidateSaleRequest(req))
}

func TestValidateSaleRequestInstallments(t *testing.T) {
	req := validRequest()
	zero := 0
	req.PaymentInstallments = &zero

	err := ValidateSaleRequest(req)
	assert.ErrorIs(t, err, ErrInvalidRequest)

	three := 3
	req.PaymentInstallments = &three
	require.NoError(t, ValidateSaleRequest(req))
}

func TestSaleFailureReason(t *testing.T) {
	cases := []struct {
		err    error
		reason string
	}{
		{&store.ProductNotFoundError{ProductID: 7}, "product_not_found"},
		{&store.InsufficientStockError{ProductID: 7, Requested: 2, Available: 1}, "insufficient_stock"},
		{fmt.Errorf("wrapped: %w", &store.InsufficientStockError{ProductID: 7}), "insufficient_stock"},
		{errors.New("connection reset"), "db_error"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.reason, saleFailureReason(tc.err))
	}
}
