package store

import (
	"context"
	"database/sql"
	"errors"

	"pos-service/internal/models"
)

// ExchangePatch carries optional fields for a partial exchange update
type ExchangePatch struct {
	Status       *string
	NewProductID *int64
	Description  *string
}

const exchangeSelect = `
	SELECT e.id, e.sale_id, e.product_id, e.reason, e.description, e.new_product_id,
	       e.status, e.exchange_date,
	       s.sale_date AS sale_date,
	       p.name AS product_name,
	       np.name AS new_product_name
	FROM exchanges e
	LEFT JOIN sales s ON e.sale_id = s.id
	LEFT JOIN products p ON e.product_id = p.id
	LEFT JOIN products np ON e.new_product_id = np.id`

// CreateExchange inserts an exchange after verifying that the referenced
// (sale, product) pair exists as a prior sale item
func (s *Store) CreateExchange(ctx context.Context, e *models.Exchange) error {
	exists, err := s.SaleItemExists(ctx, e.SaleID, e.ProductID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrSaleItemNotFound
	}

	query := `
		INSERT INTO exchanges (sale_id, product_id, reason, description, new_product_id, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, exchange_date`

	e.Status = models.ExchangeStatusPending
	return s.db.GetContext(ctx, e, query,
		e.SaleID, e.ProductID, e.Reason, e.Description, e.NewProductID, e.Status)
}

// GetExchangeByID retrieves an exchange with joined sale and product names
func (s *Store) GetExchangeByID(ctx context.Context, id int64) (*models.Exchange, error) {
	var exchange models.Exchange
	err := s.db.GetContext(ctx, &exchange, exchangeSelect+" WHERE e.id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrExchangeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &exchange, nil
}

// GetExchanges retrieves all exchanges, newest first
func (s *Store) GetExchanges(ctx context.Context) ([]models.Exchange, error) {
	var exchanges []models.Exchange
	err := s.db.SelectContext(ctx, &exchanges, exchangeSelect+" ORDER BY e.exchange_date DESC")
	return exchanges, err
}

// UpdateExchange applies a partial update and returns the updated row.
// Status transition rules are enforced by the service layer before the
// write; the store applies whatever it is given.
func (s *Store) UpdateExchange(ctx context.Context, id int64, patch *ExchangePatch) (*models.Exchange, error) {
	query := `
		UPDATE exchanges SET
			status = COALESCE($2, status),
			new_product_id = COALESCE($3, new_product_id),
			description = COALESCE($4, description)
		WHERE id = $1
		RETURNING id, sale_id, product_id, reason, description, new_product_id, status, exchange_date`

	var exchange models.Exchange
	err := s.db.GetContext(ctx, &exchange, query, id,
		patch.Status, patch.NewProductID, patch.Description)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrExchangeNotFound
	}
	if err != nil {
		return nil, err
	}
	return &exchange, nil
}

// DeleteExchange removes an exchange record
func (s *Store) DeleteExchange(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM exchanges WHERE id = $1", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrExchangeNotFound
	}
	return nil
}
