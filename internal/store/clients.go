package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"pos-service/internal/models"
)

const clientColumns = `id, name, email, phone, cpf_cnpj, address, city, state,
	zip_code, birth_date, created_at, updated_at`

// ClientPatch carries optional fields for a partial client update
type ClientPatch struct {
	Name      *string
	Email     *string
	Phone     *string
	CpfCnpj   *string
	Address   *string
	City      *string
	State     *string
	ZipCode   *string
	BirthDate *time.Time
}

// CreateClient inserts a new client and fills in its generated fields
func (s *Store) CreateClient(ctx context.Context, c *models.Client) error {
	query := `
		INSERT INTO clients (name, email, phone, cpf_cnpj, address, city, state, zip_code, birth_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`

	return s.db.GetContext(ctx, c, query,
		c.Name, c.Email, c.Phone, c.CpfCnpj, c.Address, c.City, c.State,
		c.ZipCode, c.BirthDate)
}

// GetClientByID retrieves a client by ID
func (s *Store) GetClientByID(ctx context.Context, id int64) (*models.Client, error) {
	var client models.Client
	err := s.db.GetContext(ctx, &client,
		"SELECT "+clientColumns+" FROM clients WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// GetClients retrieves all clients ordered by name
func (s *Store) GetClients(ctx context.Context) ([]models.Client, error) {
	var clients []models.Client
	err := s.db.SelectContext(ctx, &clients,
		"SELECT "+clientColumns+" FROM clients ORDER BY name ASC")
	return clients, err
}

// UpdateClient applies a partial update and returns the updated row
func (s *Store) UpdateClient(ctx context.Context, id int64, patch *ClientPatch) (*models.Client, error) {
	query := `
		UPDATE clients SET
			name = COALESCE($2, name),
			email = COALESCE($3, email),
			phone = COALESCE($4, phone),
			cpf_cnpj = COALESCE($5, cpf_cnpj),
			address = COALESCE($6, address),
			city = COALESCE($7, city),
			state = COALESCE($8, state),
			zip_code = COALESCE($9, zip_code),
			birth_date = COALESCE($10, birth_date),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + clientColumns

	var client models.Client
	err := s.db.GetContext(ctx, &client, query, id,
		patch.Name, patch.Email, patch.Phone, patch.CpfCnpj, patch.Address,
		patch.City, patch.State, patch.ZipCode, patch.BirthDate)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrClientNotFound
	}
	if err != nil {
		return nil, err
	}
	return &client, nil
}

// DeleteClient removes a client. Sales keep a nullable reference, so
// deleting a client does not touch sale history.
func (s *Store) DeleteClient(ctx context.Context, id int64) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM clients WHERE id = $1", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrClientNotFound
	}
	return nil
}
