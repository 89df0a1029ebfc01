package store

import (
	"context"
	"testing"

	"pos-service/internal/models"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductCRUD(t *testing.T) {
	t.Skip("Integration test - requires database")

	s := testStore(t)
	ctx := context.Background()

	p := seedProduct(t, s, "Keyboard", "120.00", 8)
	assert.NotZero(t, p.ID)
	assert.False(t, p.CreatedAt.IsZero())

	// Partial update: only the price changes, everything else stays
	newPrice := decimal.RequireFromString("99.90")
	updated, err := s.UpdateProduct(ctx, p.ID, &ProductPatch{Price: &newPrice})
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(newPrice))
	assert.Equal(t, "Keyboard", updated.Name)
	assert.Equal(t, 8, updated.StockQuantity)

	require.NoError(t, s.DeleteProduct(ctx, p.ID))

	_, err = s.GetProductByID(ctx, p.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestDeleteProductWithSaleHistory(t *testing.T) {
	t.Skip("Integration test - requires database")

	s := testStore(t)
	ctx := context.Background()

	p := seedProduct(t, s, "Headset", "80.00", 5)
	sale, items := saleOf(line(p.ID, 1, "80.00"))
	require.NoError(t, s.CreateSale(ctx, sale, items))

	err := s.DeleteProduct(ctx, p.ID)
	assert.ErrorIs(t, err, ErrProductInUse)
}

func TestAdjustStock(t *testing.T) {
	t.Skip("Integration test - requires database")

	s := testStore(t)
	ctx := context.Background()

	p := seedProduct(t, s, "Cable", "5.00", 2)

	restocked, err := s.AdjustStock(ctx, p.ID, 10)
	require.NoError(t, err)
	assert.Equal(t, 12, restocked.StockQuantity)

	corrected, err := s.AdjustStock(ctx, p.ID, -4)
	require.NoError(t, err)
	assert.Equal(t, 8, corrected.StockQuantity)

	// A correction below zero is rejected and leaves stock untouched
	_, err = s.AdjustStock(ctx, p.ID, -9)
	assert.ErrorIs(t, err, ErrInsufficientStock)

	after, err := s.GetProductByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, after.StockQuantity)
}

func TestExchangeRequiresSaleItem(t *testing.T) {
	t.Skip("Integration test - requires database")

	s := testStore(t)
	ctx := context.Background()

	p := seedProduct(t, s, "Boots", "150.00", 3)
	other := seedProduct(t, s, "Sandals", "60.00", 3)

	sale, items := saleOf(line(p.ID, 1, "150.00"))
	require.NoError(t, s.CreateSale(ctx, sale, items))

	// Product was sold in this sale: exchange opens as pending
	e := &models.Exchange{SaleID: sale.ID, ProductID: p.ID, Reason: "wrong size"}
	require.NoError(t, s.CreateExchange(ctx, e))
	assert.Equal(t, models.ExchangeStatusPending, e.Status)

	// Product never appeared in the sale: rejected
	bad := &models.Exchange{SaleID: sale.ID, ProductID: other.ID, Reason: "wrong size"}
	err := s.CreateExchange(ctx, bad)
	assert.ErrorIs(t, err, ErrSaleItemNotFound)
}

func TestExchangeDoesNotTouchStock(t *testing.T) {
	t.Skip("Integration test - requires database")

	s := testStore(t)
	ctx := context.Background()

	p := seedProduct(t, s, "Jacket", "200.00", 4)
	sale, items := saleOf(line(p.ID, 1, "200.00"))
	require.NoError(t, s.CreateSale(ctx, sale, items))

	e := &models.Exchange{SaleID: sale.ID, ProductID: p.ID, Reason: "defect"}
	require.NoError(t, s.CreateExchange(ctx, e))

	completed := models.ExchangeStatusCompleted
	_, err := s.UpdateExchange(ctx, e.ID, &ExchangePatch{Status: &completed})
	require.NoError(t, err)

	after, err := s.GetProductByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, after.StockQuantity, "completing an exchange never mutates stock")
}

func TestCompanySettingsSingleton(t *testing.T) {
	t.Skip("Integration test - requires database")

	s := testStore(t)
	ctx := context.Background()

	settings, err := s.GetCompanySettings(ctx)
	require.NoError(t, err)

	name := "Loja Exemplo LTDA"
	updated, err := s.UpdateCompanySettings(ctx, &SettingsPatch{CompanyName: &name})
	require.NoError(t, err)
	assert.Equal(t, settings.ID, updated.ID, "update targets the same singleton row")
	require.NotNil(t, updated.CompanyName)
	assert.Equal(t, name, *updated.CompanyName)
}

func TestClientCRUD(t *testing.T) {
	t.Skip("Integration test - requires database")

	s := testStore(t)
	ctx := context.Background()

	c := &models.Client{Name: "Maria Silva"}
	require.NoError(t, s.CreateClient(ctx, c))
	assert.NotZero(t, c.ID)

	phone := "11 99999-0000"
	updated, err := s.UpdateClient(ctx, c.ID, &ClientPatch{Phone: &phone})
	require.NoError(t, err)
	assert.Equal(t, "Maria Silva", updated.Name)
	require.NotNil(t, updated.Phone)
	assert.Equal(t, phone, *updated.Phone)

	require.NoError(t, s.DeleteClient(ctx, c.ID))
	_, err = s.GetClientByID(ctx, c.ID)
	assert.ErrorIs(t, err, ErrClientNotFound)
}
