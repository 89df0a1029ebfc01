package store

import (
	"context"
	"database/sql"
	"errors"

	"pos-service/internal/models"
)

const settingsColumns = `id, company_name, trade_name, cnpj, state_registration,
	address, city, state, zip_code, phone, email, website, logo_url, pix_key,
	pix_qr_code_url, updated_at`

// SettingsPatch carries optional fields for a partial settings update
type SettingsPatch struct {
	CompanyName       *string
	TradeName         *string
	Cnpj              *string
	StateRegistration *string
	Address           *string
	City              *string
	State             *string
	ZipCode           *string
	Phone             *string
	Email             *string
	Website           *string
	LogoURL           *string
	PixKey            *string
	PixQrCodeURL      *string
}

// GetCompanySettings retrieves the single company settings row. The row is
// seeded by the initial migration, so a miss means the schema is broken.
func (s *Store) GetCompanySettings(ctx context.Context) (*models.CompanySettings, error) {
	var settings models.CompanySettings
	err := s.db.GetContext(ctx, &settings,
		"SELECT "+settingsColumns+" FROM company_settings ORDER BY id ASC LIMIT 1")
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}

// UpdateCompanySettings applies a partial update to the singleton row and
// returns the result
func (s *Store) UpdateCompanySettings(ctx context.Context, patch *SettingsPatch) (*models.CompanySettings, error) {
	query := `
		UPDATE company_settings SET
			company_name = COALESCE($1, company_name),
			trade_name = COALESCE($2, trade_name),
			cnpj = COALESCE($3, cnpj),
			state_registration = COALESCE($4, state_registration),
			address = COALESCE($5, address),
			city = COALESCE($6, city),
			state = COALESCE($7, state),
			zip_code = COALESCE($8, zip_code),
			phone = COALESCE($9, phone),
			email = COALESCE($10, email),
			website = COALESCE($11, website),
			logo_url = COALESCE($12, logo_url),
			pix_key = COALESCE($13, pix_key),
			pix_qr_code_url = COALESCE($14, pix_qr_code_url),
			updated_at = NOW()
		WHERE id = (SELECT id FROM company_settings ORDER BY id ASC LIMIT 1)
		RETURNING ` + settingsColumns

	var settings models.CompanySettings
	err := s.db.GetContext(ctx, &settings, query,
		patch.CompanyName, patch.TradeName, patch.Cnpj, patch.StateRegistration,
		patch.Address, patch.City, patch.State, patch.ZipCode, patch.Phone,
		patch.Email, patch.Website, patch.LogoURL, patch.PixKey, patch.PixQrCodeURL)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, err
	}
	return &settings, nil
}
