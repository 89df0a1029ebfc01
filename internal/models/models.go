package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a catalog product with its mutable stock level
type Product struct {
	ID            int64            `db:"id" json:"id"`
	Name          string           `db:"name" json:"name"`
	Description   *string          `db:"description" json:"description,omitempty"`
	Price         decimal.Decimal  `db:"price" json:"price"`
	CostPrice     *decimal.Decimal `db:"cost_price" json:"cost_price,omitempty"`
	StockQuantity int              `db:"stock_quantity" json:"stock_quantity"`
	MinStock      int              `db:"min_stock" json:"min_stock"`
	Category      *string          `db:"category" json:"category,omitempty"`
	Barcode       *string          `db:"barcode" json:"barcode,omitempty"`
	ImageURL      *string          `db:"image_url" json:"image_url,omitempty"`
	CreatedAt     time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time        `db:"updated_at" json:"updated_at"`
}

// LowStock reports whether the product is at or below its minimum stock
// threshold. Informational only, never enforced.
func (p *Product) LowStock() bool {
	return p.StockQuantity <= p.MinStock
}

// Client represents a registered customer
type Client struct {
	ID        int64      `db:"id" json:"id"`
	Name      string     `db:"name" json:"name"`
	Email     *string    `db:"email" json:"email,omitempty"`
	Phone     *string    `db:"phone" json:"phone,omitempty"`
	CpfCnpj   *string    `db:"cpf_cnpj" json:"cpf_cnpj,omitempty"`
	Address   *string    `db:"address" json:"address,omitempty"`
	City      *string    `db:"city" json:"city,omitempty"`
	State     *string    `db:"state" json:"state,omitempty"`
	ZipCode   *string    `db:"zip_code" json:"zip_code,omitempty"`
	BirthDate *time.Time `db:"birth_date" json:"birth_date,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt time.Time  `db:"updated_at" json:"updated_at"`
}

// Sale represents a sale header. ClientName is joined in for reads and is
// not a column of the sales table.
type Sale struct {
	ID                  int64            `db:"id" json:"id"`
	ClientID            *int64           `db:"client_id" json:"client_id,omitempty"`
	TotalAmount         decimal.Decimal  `db:"total_amount" json:"total_amount"`
	DiscountAmount      decimal.Decimal  `db:"discount_amount" json:"discount_amount"`
	PaymentMethod       string           `db:"payment_method" json:"payment_method"`
	PaymentInstallments int              `db:"payment_installments" json:"payment_installments"`
	InstallmentAmount   *decimal.Decimal `db:"installment_amount" json:"installment_amount,omitempty"`
	Status              string           `db:"status" json:"status"`
	SaleDate            time.Time        `db:"sale_date" json:"sale_date"`
	Notes               *string          `db:"notes" json:"notes,omitempty"`
	ClientName          *string          `db:"client_name" json:"client_name,omitempty"`
}

// SaleItem represents one line of a sale. UnitPrice is a snapshot taken at
// sale time; it never tracks later catalog price changes.
type SaleItem struct {
	ID          int64           `db:"id" json:"id"`
	SaleID      int64           `db:"sale_id" json:"sale_id"`
	ProductID   int64           `db:"product_id" json:"product_id"`
	Quantity    int             `db:"quantity" json:"quantity"`
	UnitPrice   decimal.Decimal `db:"unit_price" json:"unit_price"`
	TotalPrice  decimal.Decimal `db:"total_price" json:"total_price"`
	ProductName *string         `db:"product_name" json:"product_name,omitempty"`
}

// Exchange represents a return/exchange request against a prior sale item
type Exchange struct {
	ID             int64      `db:"id" json:"id"`
	SaleID         int64      `db:"sale_id" json:"sale_id"`
	ProductID      int64      `db:"product_id" json:"product_id"`
	Reason         string     `db:"reason" json:"reason"`
	Description    *string    `db:"description" json:"description,omitempty"`
	NewProductID   *int64     `db:"new_product_id" json:"new_product_id,omitempty"`
	Status         string     `db:"status" json:"status"`
	ExchangeDate   time.Time  `db:"exchange_date" json:"exchange_date"`
	SaleDate       *time.Time `db:"sale_date" json:"sale_date,omitempty"`
	ProductName    *string    `db:"product_name" json:"product_name,omitempty"`
	NewProductName *string    `db:"new_product_name" json:"new_product_name,omitempty"`
}

// CompanySettings holds the business identity consumed by print templates.
// Exactly one row exists.
type CompanySettings struct {
	ID                int64     `db:"id" json:"id"`
	CompanyName       *string   `db:"company_name" json:"company_name,omitempty"`
	TradeName         *string   `db:"trade_name" json:"trade_name,omitempty"`
	Cnpj              *string   `db:"cnpj" json:"cnpj,omitempty"`
	StateRegistration *string   `db:"state_registration" json:"state_registration,omitempty"`
	Address           *string   `db:"address" json:"address,omitempty"`
	City              *string   `db:"city" json:"city,omitempty"`
	State             *string   `db:"state" json:"state,omitempty"`
	ZipCode           *string   `db:"zip_code" json:"zip_code,omitempty"`
	Phone             *string   `db:"phone" json:"phone,omitempty"`
	Email             *string   `db:"email" json:"email,omitempty"`
	Website           *string   `db:"website" json:"website,omitempty"`
	LogoURL           *string   `db:"logo_url" json:"logo_url,omitempty"`
	PixKey            *string   `db:"pix_key" json:"pix_key,omitempty"`
	PixQrCodeURL      *string   `db:"pix_qr_code_url" json:"pix_qr_code_url,omitempty"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

// SalesStats aggregates sale counts and revenue for the dashboard
type SalesStats struct {
	TotalSales       int             `db:"total_sales" json:"total_sales"`
	TotalRevenue     decimal.Decimal `db:"total_revenue" json:"total_revenue"`
	AverageTicket    decimal.Decimal `json:"average_ticket"`
	SalesThisMonth   int             `db:"sales_this_month" json:"sales_this_month"`
	RevenueThisMonth decimal.Decimal `db:"revenue_this_month" json:"revenue_this_month"`
}

// Sale status: sales are recorded as completed, there is no pending state
const (
	SaleStatusCompleted = "completed"
)

// Payment methods
const (
	PaymentMethodCredit = "credit"
	PaymentMethodDebit  = "debit"
	PaymentMethodPix    = "pix"
	PaymentMethodCash   = "cash"
)

// ValidPaymentMethod reports whether m belongs to the accepted vocabulary
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCredit, PaymentMethodDebit, PaymentMethodPix, PaymentMethodCash:
		return true
	}
	return false
}

// Exchange statuses: pending is the only non-terminal state
const (
	ExchangeStatusPending   = "pending"
	ExchangeStatusCompleted = "completed"
	ExchangeStatusCancelled = "cancelled"
)

// ValidExchangeTransition reports whether an exchange may move from one
// status to another. Completed and cancelled are terminal.
func ValidExchangeTransition(from, to string) bool {
	if from == to {
		return true
	}
	return from == ExchangeStatusPending &&
		(to == ExchangeStatusCompleted || to == ExchangeStatusCancelled)
}
