package service

import (
	"context"

	"pos-service/internal/models"
	"pos-service/internal/store"
	"pos-service/internal/util"

	"go.uber.org/zap"
)

// SettingsService serves the single company settings row
type SettingsService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewSettingsService creates a new settings service
func NewSettingsService(store *store.Store) *SettingsService {
	return &SettingsService{
		store:  store,
		logger: util.GetLogger(),
	}
}

// UpdateSettingsRequest represents a partial company settings update
type UpdateSettingsRequest struct {
	CompanyName       *string `json:"company_name,omitempty"`
	TradeName         *string `json:"trade_name,omitempty"`
	Cnpj              *string `json:"cnpj,omitempty"`
	StateRegistration *string `json:"state_registration,omitempty"`
	Address           *string `json:"address,omitempty"`
	City              *string `json:"city,omitempty"`
	State             *string `json:"state,omitempty"`
	ZipCode           *string `json:"zip_code,omitempty"`
	Phone             *string `json:"phone,omitempty"`
	Email             *string `json:"email,omitempty"`
	Website           *string `json:"website,omitempty"`
	LogoURL           *string `json:"logo_url,omitempty"`
	PixKey            *string `json:"pix_key,omitempty"`
	PixQrCodeURL      *string `json:"pix_qr_code_url,omitempty"`
}

// GetSettings retrieves the company settings
func (ss *SettingsService) GetSettings(ctx context.Context) (*models.CompanySettings, error) {
	return ss.store.GetCompanySettings(ctx)
}

// UpdateSettings applies a partial company settings update
func (ss *SettingsService) UpdateSettings(ctx context.Context, req *UpdateSettingsRequest) (*models.CompanySettings, error) {
	settings, err := ss.store.UpdateCompanySettings(ctx, &store.SettingsPatch{
		CompanyName:       req.CompanyName,
		TradeName:         req.TradeName,
		Cnpj:              req.Cnpj,
		StateRegistration: req.StateRegistration,
		Address:           req.Address,
		City:              req.City,
		State:             req.State,
		ZipCode:           req.ZipCode,
		Phone:             req.Phone,
		Email:             req.Email,
		Website:           req.Website,
		LogoURL:           req.LogoURL,
		PixKey:            req.PixKey,
		PixQrCodeURL:      req.PixQrCodeURL,
	})
	if err != nil {
		return nil, err
	}

	ss.logger.Info("Company settings updated")
	return settings, nil
}
