package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"pos-service/internal/models"
)

// CreateSale persists a sale header, its items and the matching stock
// decrements in one transaction. Either every row commits or none does.
//
// The stock decrement is a single conditional UPDATE guarded by
// stock_quantity >= quantity and checked by affected-row count, so two
// concurrent sales can never oversell regardless of isolation level. A
// zero row count is disambiguated into ProductNotFoundError or
// InsufficientStockError by a follow-up read inside the same transaction.
func (s *Store) CreateSale(ctx context.Context, sale *models.Sale, items []models.SaleItem) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	headerQuery := `
		INSERT INTO sales (client_id, total_amount, discount_amount, payment_method, payment_installments, installment_amount, status, sale_date, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, sale_date`

	sale.Status = models.SaleStatusCompleted
	if err := tx.GetContext(ctx, sale, headerQuery,
		sale.ClientID, sale.TotalAmount, sale.DiscountAmount,
		sale.PaymentMethod, sale.PaymentInstallments, sale.InstallmentAmount,
		sale.Status, time.Now().UTC(), sale.Notes); err != nil {
		return fmt.Errorf("failed to insert sale: %w", err)
	}

	itemQuery := `
		INSERT INTO sale_items (sale_id, product_id, quantity, unit_price, total_price)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`

	for i := range items {
		item := &items[i]
		item.SaleID = sale.ID

		res, err := tx.ExecContext(ctx,
			"UPDATE products SET stock_quantity = stock_quantity - $1, updated_at = NOW() WHERE id = $2 AND stock_quantity >= $1",
			item.Quantity, item.ProductID)
		if err != nil {
			return fmt.Errorf("failed to decrement stock for product %d: %w", item.ProductID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("failed to read decrement result: %w", err)
		}
		if n == 0 {
			var available int
			err := tx.GetContext(ctx, &available,
				"SELECT stock_quantity FROM products WHERE id = $1", item.ProductID)
			if errors.Is(err, sql.ErrNoRows) {
				return &ProductNotFoundError{ProductID: item.ProductID}
			}
			if err != nil {
				return fmt.Errorf("failed to read stock for product %d: %w", item.ProductID, err)
			}
			return &InsufficientStockError{
				ProductID: item.ProductID,
				Requested: item.Quantity,
				Available: available,
			}
		}

		if err := tx.GetContext(ctx, &item.ID, itemQuery,
			item.SaleID, item.ProductID, item.Quantity, item.UnitPrice, item.TotalPrice); err != nil {
			return fmt.Errorf("failed to insert sale item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit sale: %w", err)
	}
	return nil
}

// GetSaleByID retrieves a sale header with the client name joined in
func (s *Store) GetSaleByID(ctx context.Context, id int64) (*models.Sale, error) {
	query := `
		SELECT s.id, s.client_id, s.total_amount, s.discount_amount, s.payment_method,
		       s.payment_installments, s.installment_amount, s.status, s.sale_date, s.notes,
		       c.name AS client_name
		FROM sales s
		LEFT JOIN clients c ON s.client_id = c.id
		WHERE s.id = $1`

	var sale models.Sale
	err := s.db.GetContext(ctx, &sale, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSaleNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sale, nil
}

// GetSales retrieves all sales, newest first
func (s *Store) GetSales(ctx context.Context) ([]models.Sale, error) {
	query := `
		SELECT s.id, s.client_id, s.total_amount, s.discount_amount, s.payment_method,
		       s.payment_installments, s.installment_amount, s.status, s.sale_date, s.notes,
		       c.name AS client_name
		FROM sales s
		LEFT JOIN clients c ON s.client_id = c.id
		ORDER BY s.sale_date DESC`

	var sales []models.Sale
	err := s.db.SelectContext(ctx, &sales, query)
	return sales, err
}

// GetSaleItems retrieves the items of a sale in submission order
func (s *Store) GetSaleItems(ctx context.Context, saleID int64) ([]models.SaleItem, error) {
	query := `
		SELECT si.id, si.sale_id, si.product_id, si.quantity, si.unit_price, si.total_price,
		       p.name AS product_name
		FROM sale_items si
		LEFT JOIN products p ON si.product_id = p.id
		WHERE si.sale_id = $1
		ORDER BY si.id`

	var items []models.SaleItem
	err := s.db.SelectContext(ctx, &items, query, saleID)
	return items, err
}

// SaleItemExists checks that a (sale, product) pair appears in sale history
func (s *Store) SaleItemExists(ctx context.Context, saleID, productID int64) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists,
		"SELECT EXISTS(SELECT 1 FROM sale_items WHERE sale_id = $1 AND product_id = $2)",
		saleID, productID)
	return exists, err
}

// GetSalesStats aggregates completed-sale counts and revenue, including
// month-to-date figures relative to monthStart
func (s *Store) GetSalesStats(ctx context.Context, monthStart time.Time) (*models.SalesStats, error) {
	query := `
		SELECT
			COUNT(*)::INTEGER AS total_sales,
			COALESCE(SUM(total_amount), 0) AS total_revenue,
			COUNT(CASE WHEN sale_date >= $1 THEN 1 END)::INTEGER AS sales_this_month,
			COALESCE(SUM(CASE WHEN sale_date >= $1 THEN total_amount ELSE 0 END), 0) AS revenue_this_month
		FROM sales
		WHERE status = $2`

	var stats models.SalesStats
	if err := s.db.GetContext(ctx, &stats, query, monthStart, models.SaleStatusCompleted); err != nil {
		return nil, err
	}
	return &stats, nil
}
