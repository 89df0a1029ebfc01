package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductNotFoundErrorIs(t *testing.T) {
	err := fmt.Errorf("create sale: %w", &ProductNotFoundError{ProductID: 42})

	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.NotErrorIs(t, err, ErrInsufficientStock)

	var notFound *ProductNotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, int64(42), notFound.ProductID)
}

func TestInsufficientStockErrorIs(t *testing.T) {
	err := fmt.Errorf("create sale: %w", &InsufficientStockError{
		ProductID: 7,
		Requested: 10,
		Available: 4,
	})

	assert.ErrorIs(t, err, ErrInsufficientStock)
	assert.NotErrorIs(t, err, ErrProductNotFound)

	var insufficient *InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, int64(7), insufficient.ProductID)
	assert.Equal(t, 10, insufficient.Requested)
	assert.Equal(t, 4, insufficient.Available)
	assert.Contains(t, err.Error(), "requested=10")
	assert.Contains(t, err.Error(), "available=4")
}
