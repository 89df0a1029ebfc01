package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"pos-service/internal/models"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

const productColumns = `id, name, description, price, cost_price, stock_quantity,
	min_stock, category, barcode, image_url, created_at, updated_at`

// ProductPatch carries optional fields for a partial product update. Nil
// fields keep the current column value (COALESCE semantics).
type ProductPatch struct {
	Name          *string
	Description   *string
	Price         *decimal.Decimal
	CostPrice     *decimal.Decimal
	StockQuantity *int
	MinStock      *int
	Category      *string
	Barcode       *string
	ImageURL      *string
}

// CreateProduct inserts a new product and fills in its generated fields
func (s *Store) CreateProduct(ctx context.Context, p *models.Product) error {
	query := `
		INSERT INTO products (name, description, price, cost_price, stock_quantity, min_stock, category, barcode, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`

	return s.db.GetContext(ctx, p, query,
		p.Name, p.Description, p.Price, p.CostPrice, p.StockQuantity,
		p.MinStock, p.Category, p.Barcode, p.ImageURL)
}

// GetProductByID retrieves a product by ID
func (s *Store) GetProductByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	err := s.db.GetContext(ctx, &product,
		"SELECT "+productColumns+" FROM products WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &ProductNotFoundError{ProductID: id}
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// GetProducts retrieves all products ordered by name
func (s *Store) GetProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := s.db.SelectContext(ctx, &products,
		"SELECT "+productColumns+" FROM products ORDER BY name ASC")
	return products, err
}

// GetLowStockProducts retrieves products at or below their minimum stock
func (s *Store) GetLowStockProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := s.db.SelectContext(ctx, &products,
		"SELECT "+productColumns+" FROM products WHERE stock_quantity <= min_stock ORDER BY name ASC")
	return products, err
}

// UpdateProduct applies a partial update and returns the updated row
func (s *Store) UpdateProduct(ctx context.Context, id int64, patch *ProductPatch) (*models.Product, error) {
	query := `
		UPDATE products SET
			name = COALESCE($2, name),
			description = COALESCE($3, description),
			price = COALESCE($4::numeric, price),
			cost_price = COALESCE($5::numeric, cost_price),
			stock_quantity = COALESCE($6, stock_quantity),
			min_stock = COALESCE($7, min_stock),
			category = COALESCE($8, category),
			barcode = COALESCE($9, barcode),
			image_url = COALESCE($10, image_url),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + productColumns

	var product models.Product
	err := s.db.GetContext(ctx, &product, query, id,
		patch.Name, patch.Description, patch.Price, patch.CostPrice,
		patch.StockQuantity, patch.MinStock, patch.Category, patch.Barcode,
		patch.ImageURL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, &ProductNotFoundError{ProductID: id}
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// DeleteProduct removes a product. Products referenced by sale history are
// protected by the sale_items foreign key and cannot be deleted.
func (s *Store) DeleteProduct(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM products WHERE id = $1", id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23503" {
			return ErrProductInUse
		}
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return &ProductNotFoundError{ProductID: id}
	}
	return nil
}

// AdjustStock applies a signed stock delta and returns the updated row.
// Negative deltas are conditional: the row is only updated if the result
// stays non-negative, so a concurrent sale cannot be undercut.
func (s *Store) AdjustStock(ctx context.Context, id int64, delta int) (*models.Product, error) {
	query := `
		UPDATE products
		SET stock_quantity = stock_quantity + $2, updated_at = NOW()
		WHERE id = $1 AND stock_quantity + $2 >= 0
		RETURNING ` + productColumns

	var product models.Product
	err := s.db.GetContext(ctx, &product, query, id, delta)
	if errors.Is(err, sql.ErrNoRows) {
		// Row untouched: either the product is missing or the delta would
		// have driven stock negative.
		available, lookupErr := s.currentStock(ctx, id)
		if lookupErr != nil {
			return nil, lookupErr
		}
		return nil, &InsufficientStockError{ProductID: id, Requested: -delta, Available: available}
	}
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (s *Store) currentStock(ctx context.Context, id int64) (int, error) {
	var available int
	err := s.db.GetContext(ctx, &available,
		"SELECT stock_quantity FROM products WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, &ProductNotFoundError{ProductID: id}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to read stock for product %d: %w", id, err)
	}
	return available, nil
}
