package supplier

import (
	"bytes"
	"encoding/json"
	"strconv"

	"github.com/shopspring/decimal"
)

// Supplier-side constants for the order payload. The wholesale API only
// accepts cash-on-delivery submissions from resellers.
const (
	PaymentTypeCOD        = "cash_on_delivery"
	PaymentStatusCOD      = "COD"
	DeliveryStatusShipped = "Shipped"
)

// FlexInt unmarshals from a JSON number or numeric string. The supplier feed
// mixes both; malformed values decode to zero.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(data []byte) error {
	data = bytes.Trim(data, `"`)
	if len(data) == 0 || string(data) == "null" {
		*f = 0
		return nil
	}
	n, err := strconv.Atoi(string(data))
	if err != nil {
		*f = 0
		return nil
	}
	*f = FlexInt(n)
	return nil
}

// FlexString unmarshals from a JSON string or number.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	if string(data) == "null" {
		*f = ""
		return nil
	}
	*f = FlexString(data)
	return nil
}

// Product is one supplier catalog entry as returned by the listing endpoint
type Product struct {
	ID             int64           `json:"id"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	Description    string          `json:"description"`
	Pictures       []string        `json:"pictures"`
	WholesalePrice decimal.Decimal `json:"wholesale_price"`
	MRPPrice       decimal.Decimal `json:"mrp_price"`
	Stock          FlexInt         `json:"stock"`
}

// PageMeta is the listing pagination envelope
type PageMeta struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
}

// ProductListResponse is the paginated listing response
type ProductListResponse struct {
	Data []Product `json:"data"`
	Meta PageMeta  `json:"meta"`
}

// StockEntry is one row of the stock-check response
type StockEntry struct {
	SKU   string  `json:"sku"`
	Stock FlexInt `json:"stock"`
}

// StockResponse wraps the stock-check response
type StockResponse struct {
	Data []StockEntry `json:"data"`
}

// OrderDetailProduct is the nested product block inside an order line
type OrderDetailProduct struct {
	ID                int64           `json:"id"`
	Name              string          `json:"name"`
	Supplier          string          `json:"supplier"`
	SKU               string          `json:"sku"`
	SupplierProductID string          `json:"supplier_product_id"`
	UnitPrice         decimal.Decimal `json:"unit_price"`
	SalesPrice        decimal.Decimal `json:"sales_price"`
}

// OrderDetail is one line of the supplier order payload
type OrderDetail struct {
	Supplier          string             `json:"supplier"`
	SKU               string             `json:"sku"`
	SupplierProductID string             `json:"supplier_product_id"`
	ProductID         int64              `json:"product_id"`
	Quantity          int                `json:"quantity"`
	WholesalePrice    string             `json:"wholesale_price"`
	MRPPrice          decimal.Decimal    `json:"mrp_price"`
	UnitPrice         decimal.Decimal    `json:"unit_price"`
	TotalPrice        decimal.Decimal    `json:"total_price"`
	Discount          string             `json:"discount"`
	RewardPointUsed   int                `json:"reward_point_used"`
	Product           OrderDetailProduct `json:"product"`
}

// ShippingAddress is the supplier-side shipping address block. It is sent
// empty when the tenant has order management disabled.
type ShippingAddress struct {
	Name    string  `json:"name,omitempty"`
	Email   string  `json:"email,omitempty"`
	Address string  `json:"address,omitempty"`
	CityID  string  `json:"city_id,omitempty"`
	State   string  `json:"state,omitempty"`
	ZoneID  string  `json:"zone_id,omitempty"`
	City    string  `json:"city,omitempty"`
	AreaID  *string `json:"area_id,omitempty"`
	Area    *string `json:"area,omitempty"`
	Phone   string  `json:"phone,omitempty"`
}

// OrderUser identifies the buyer. Empty unless order management is enabled.
type OrderUser struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email,omitempty"`
}

// OrderPayload is the canonical order submission body
type OrderPayload struct {
	ResellerPackageType string          `json:"reseller_package_type"`
	PlatformOrderID     int64           `json:"platform_order_id"`
	PlatformUserID      int64           `json:"platform_user_id"`
	OrderSource         string          `json:"order_source"`
	PlatformSource      string          `json:"platform_source"`
	ShippingAddress     ShippingAddress `json:"shipping_address"`
	PaymentType         string          `json:"payment_type"`
	PaymentStatus       string          `json:"payment_status"`
	DeliveryStatus      string          `json:"delivery_status"`
	Date                string          `json:"date"`
	Note                *string         `json:"note"`
	IsRecurring         int             `json:"is_recurring"`
	GrandTotal          decimal.Decimal `json:"grand_total"`
	ShippingCost        decimal.Decimal `json:"shipping_cost"`
	CouponCode          *string         `json:"coupon_code"`
	CouponDiscount      decimal.Decimal `json:"coupon_discount"`
	RewardPointUsed     int             `json:"reward_point_used"`
	OrderDetails        []OrderDetail   `json:"order_details"`
	User                OrderUser       `json:"user"`
}

// OrderCreateResponse is the supplier's order-creation response. OrderID may
// be absent.
type OrderCreateResponse struct {
	OrderID FlexString `json:"order_id"`
}
