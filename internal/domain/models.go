package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultSupplier is the canonical vendor label for supplier-owned listings.
// Orders are only relayed when every line item carries this vendor.
const DefaultSupplier = "AzanWholeSale"

// TenantConfig holds a shop's supplier credentials and feature flags.
// At most one active record exists per shop domain.
type TenantConfig struct {
	ID                 uuid.UUID
	ShopDomain         string
	AppID              string
	SecretKey          string
	AuthTokenHash      string
	StorefrontToken    string
	SandboxManage      bool
	OrderManage        bool
	FullOrderManage    bool
	ProductsManagement bool
	DebugManagement    bool
	IsActive           bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// IsConfigured reports whether the tenant can make supplier API calls.
func (t *TenantConfig) IsConfigured() bool {
	return t.AppID != "" && t.SecretKey != ""
}

// CatalogMirrorEntry is the local record of a supplier product that has been
// pushed to the storefront. Price and stock carry the last value successfully
// applied to the storefront listing.
type CatalogMirrorEntry struct {
	ID                  uuid.UUID
	ShopDomain          string
	StorefrontProductID *int64
	SKU                 string
	SupplierProductID   int64
	Name                string
	WholesalePrice      decimal.Decimal
	MRPPrice            decimal.Decimal
	Stock               int
	Picture             string
	Supplier            string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// OrderLogEntry records one non-skipped relay attempt. SupplierOrderID is nil
// when the supplier response carried no order id.
type OrderLogEntry struct {
	ID              uuid.UUID
	ShopDomain      string
	OrderID         int64
	SupplierOrderID *string
	CreatedAt       time.Time
}

// DebugLogEntry is an optional trace row written when a tenant has debug
// management enabled.
type DebugLogEntry struct {
	ID         uuid.UUID
	ShopDomain string
	Type       string
	Message    string
	URL        string
	CreatedAt  time.Time
}

// ResolvedStockPush carries the field values applied by a stock push after
// mirror fallbacks have been resolved.
type ResolvedStockPush struct {
	SKU      string
	Supplier string
	Name     string
	Price    decimal.Decimal
	Cost     decimal.Decimal
	Stock    int
}
