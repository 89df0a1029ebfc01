package service

import (
	"context"
	"time"

	"pos-service/internal/models"
	"pos-service/internal/store"
	"pos-service/internal/util"

	"go.uber.org/zap"
)

// ClientService handles the customer registry
type ClientService struct {
	store  *store.Store
	logger *zap.Logger
}

// NewClientService creates a new client service
func NewClientService(store *store.Store) *ClientService {
	return &ClientService{
		store:  store,
		logger: util.GetLogger(),
	}
}

// CreateClientRequest represents a request to register a client
type CreateClientRequest struct {
	Name      string     `json:"name" binding:"required"`
	Email     *string    `json:"email,omitempty"`
	Phone     *string    `json:"phone,omitempty"`
	CpfCnpj   *string    `json:"cpf_cnpj,omitempty"`
	Address   *string    `json:"address,omitempty"`
	City      *string    `json:"city,omitempty"`
	State     *string    `json:"state,omitempty"`
	ZipCode   *string    `json:"zip_code,omitempty"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
}

// UpdateClientRequest represents a partial client update
type UpdateClientRequest struct {
	Name      *string    `json:"name,omitempty"`
	Email     *string    `json:"email,omitempty"`
	Phone     *string    `json:"phone,omitempty"`
	CpfCnpj   *string    `json:"cpf_cnpj,omitempty"`
	Address   *string    `json:"address,omitempty"`
	City      *string    `json:"city,omitempty"`
	State     *string    `json:"state,omitempty"`
	ZipCode   *string    `json:"zip_code,omitempty"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
}

// CreateClient registers a new client
func (cs *ClientService) CreateClient(ctx context.Context, req *CreateClientRequest) (*models.Client, error) {
	client := &models.Client{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		CpfCnpj:   req.CpfCnpj,
		Address:   req.Address,
		City:      req.City,
		State:     req.State,
		ZipCode:   req.ZipCode,
		BirthDate: req.BirthDate,
	}
	if err := cs.store.CreateClient(ctx, client); err != nil {
		return nil, err
	}

	cs.logger.Info("Client created", zap.Int64("client_id", client.ID))
	return client, nil
}

// GetClient retrieves a client by ID
func (cs *ClientService) GetClient(ctx context.Context, id int64) (*models.Client, error) {
	return cs.store.GetClientByID(ctx, id)
}

// ListClients retrieves all clients ordered by name
func (cs *ClientService) ListClients(ctx context.Context) ([]models.Client, error) {
	return cs.store.GetClients(ctx)
}

// UpdateClient applies a partial update
func (cs *ClientService) UpdateClient(ctx context.Context, id int64, req *UpdateClientRequest) (*models.Client, error) {
	return cs.store.UpdateClient(ctx, id, &store.ClientPatch{
		Name:      req.Name,
		Email:     req.Email,
		Phone:     req.Phone,
		CpfCnpj:   req.CpfCnpj,
		Address:   req.Address,
		City:      req.City,
		State:     req.State,
		ZipCode:   req.ZipCode,
		BirthDate: req.BirthDate,
	})
}

// DeleteClient removes a client; sale history keeps a nulled reference
func (cs *ClientService) DeleteClient(ctx context.Context, id int64) error {
	return cs.store.DeleteClient(ctx, id)
}
