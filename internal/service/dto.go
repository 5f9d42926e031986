package service

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/azanlabs/supplysync/internal/domain"
)

// InboundOrder is the storefront order webhook payload (the subset the relay
// consumes)
type InboundOrder struct {
	ID             int64             `json:"id" binding:"required"`
	SourceName     string            `json:"source_name"`
	SubtotalPrice  decimal.Decimal   `json:"subtotal_price"`
	Customer       InboundCustomer   `json:"customer"`
	BillingAddress InboundAddress    `json:"billing_address"`
	LineItems      []InboundLineItem `json:"line_items" binding:"required,min=1"`
}

type InboundCustomer struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	CreatedAt string `json:"created_at"`
}

type InboundAddress struct {
	Name     string `json:"name"`
	Address1 string `json:"address1"`
	City     string `json:"city"`
}

type InboundLineItem struct {
	ID              int64           `json:"id"`
	Name            string          `json:"name"`
	SKU             string          `json:"sku"`
	Vendor          string          `json:"vendor"`
	CurrentQuantity int             `json:"current_quantity"`
	Price           decimal.Decimal `json:"price"`
}

// RelayResult is the outcome of relaying one inbound order. Skips are
// well-defined results, not errors.
type RelayResult struct {
	Outcome         domain.RelayOutcome `json:"outcome"`
	SupplierOrderID *string             `json:"supplier_order_id,omitempty"`
	Message         string              `json:"message"`
}

// ImportRequest selects supplier products for one reconciliation batch. Page
// and PerPage re-fetch the listing page the identifiers came from.
type ImportRequest struct {
	SelectedIDs []int64 `json:"selected_ids" binding:"required,min=1"`
	Page        int     `json:"page"`
	PerPage     int     `json:"per_page"`
}

// ImportFailure records one isolated per-item failure
type ImportFailure struct {
	Name   string            `json:"name"`
	Step   domain.ImportStep `json:"step"`
	Reason string            `json:"reason"`
}

// ImportOutcome aggregates one reconciliation batch
type ImportOutcome struct {
	Created  int             `json:"created"`
	Updated  int             `json:"updated"`
	Failures []ImportFailure `json:"failures"`
}

// Success reports whether the batch completed without per-item failures
func (o *ImportOutcome) Success() bool {
	return len(o.Failures) == 0
}

// Summary renders the human-readable result message
func (o *ImportOutcome) Summary() string {
	msg := fmt.Sprintf("Imported %d new products, Updated %d products.", o.Created, o.Updated)
	if len(o.Failures) == 0 {
		return msg
	}
	names := make([]string, len(o.Failures))
	for i, f := range o.Failures {
		names[i] = f.Name
	}
	return fmt.Sprintf("%s Failed to import %d products: %s", msg, len(o.Failures), strings.Join(names, ", "))
}

// StockPushRequest is the supplier-originated stock/price update payload.
// Name, price and cost fall back to the stored mirror values when absent.
type StockPushRequest struct {
	SKU      string           `json:"sku" binding:"required"`
	Supplier string           `json:"supplier" binding:"required"`
	Name     *string          `json:"name"`
	Price    *decimal.Decimal `json:"price"`
	Cost     *decimal.Decimal `json:"cost"`
	Stock    int              `json:"stock"`
}
