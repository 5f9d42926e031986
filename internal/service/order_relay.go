package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/azanlabs/supplysync/internal/domain"
	"github.com/azanlabs/supplysync/internal/repository"
	"github.com/azanlabs/supplysync/internal/supplier"
	"github.com/azanlabs/supplysync/pkg/errors"
)

type orderRelay struct {
	repos  *repository.Repositories
	sup    SupplierAPI
	logger *zap.Logger
}

// NewOrderRelay creates an order relay bound to one tenant's supplier client
func NewOrderRelay(repos *repository.Repositories, sup SupplierAPI, logger *zap.Logger) *orderRelay {
	return &orderRelay{
		repos:  repos,
		sup:    sup,
		logger: logger,
	}
}

// Relay gates and forwards one inbound storefront order to the supplier.
// Vendor mismatch and out-of-stock are ordinary skip results; only transport
// or persistence failures return an error. The stock check always completes
// before submission.
func (s *orderRelay) Relay(ctx context.Context, tenant *domain.TenantConfig, order *InboundOrder) (*RelayResult, error) {
	if !tenant.IsConfigured() {
		return nil, &errors.ErrNotConfigured{ShopDomain: tenant.ShopDomain}
	}

	skus := make([]string, 0, len(order.LineItems))
	for _, item := range order.LineItems {
		skus = append(skus, item.SKU)
	}

	entries, err := s.repos.CatalogMirror.GetBySKUs(ctx, tenant.ShopDomain, skus)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve wholesale prices: %w", err)
	}
	wholesaleBySKU := make(map[string]decimal.Decimal, len(entries))
	for _, e := range entries {
		wholesaleBySKU[e.SKU] = e.WholesalePrice
	}

	allMatch := true
	details := make([]supplier.OrderDetail, 0, len(order.LineItems))
	for _, item := range order.LineItems {
		if item.Vendor != domain.DefaultSupplier {
			allMatch = false
		}

		// Empty when the SKU was never imported into the mirror.
		wholesale := ""
		if price, ok := wholesaleBySKU[item.SKU]; ok {
			wholesale = price.String()
		}

		details = append(details, supplier.OrderDetail{
			Supplier:          item.Vendor,
			SKU:               item.SKU,
			SupplierProductID: "",
			ProductID:         item.ID,
			Quantity:          item.CurrentQuantity,
			WholesalePrice:    wholesale,
			MRPPrice:          item.Price,
			UnitPrice:         item.Price,
			TotalPrice:        item.Price.Mul(decimal.NewFromInt(int64(item.CurrentQuantity))),
			Discount:          "",
			RewardPointUsed:   0,
			Product: supplier.OrderDetailProduct{
				ID:                item.ID,
				Name:              item.Name,
				Supplier:          item.Vendor,
				SKU:               item.SKU,
				SupplierProductID: "",
				UnitPrice:         item.Price,
				SalesPrice:        item.Price,
			},
		})
	}

	if !allMatch {
		s.logger.Info("Order skipped: vendor mismatch",
			zap.String("shop_domain", tenant.ShopDomain),
			zap.Int64("order_id", order.ID),
		)
		logDebug(ctx, s.repos, s.logger, tenant, "warning", "Order skipped: mismatched vendor", "")
		return &RelayResult{
			Outcome: domain.RelayOutcomeVendorMismatch,
			Message: "Some products do not match the default supplier. API call skipped.",
		}, nil
	}

	// Repeated webhook delivery of an already-forwarded order must not
	// create a second supplier order.
	if existing, err := s.repos.OrderLog.GetByOrderID(ctx, tenant.ShopDomain, order.ID); err == nil {
		if existing.SupplierOrderID != nil {
			return &RelayResult{
				Outcome:         domain.RelayOutcomeAlreadySubmitted,
				SupplierOrderID: existing.SupplierOrderID,
				Message:         "Order was already forwarded to the supplier.",
			}, nil
		}
	} else if _, ok := err.(*errors.ErrNotFound); !ok {
		return nil, fmt.Errorf("failed to check order log: %w", err)
	}

	stock, err := s.sup.CheckStock(ctx, skus)
	if err != nil {
		return nil, fmt.Errorf("supplier stock check failed: %w", err)
	}
	for _, entry := range stock {
		if entry.Stock <= 0 {
			s.logger.Info("Order skipped: out of stock",
				zap.String("shop_domain", tenant.ShopDomain),
				zap.Int64("order_id", order.ID),
				zap.String("sku", entry.SKU),
			)
			logDebug(ctx, s.repos, s.logger, tenant, "warning", "Order skipped: one or more products out of stock", "")
			return &RelayResult{
				Outcome: domain.RelayOutcomeOutOfStock,
				Message: "One or more products are out of stock. Order not created.",
			}, nil
		}
	}

	payload := s.buildPayload(tenant, order, details)

	resp, submitErr := s.sup.CreateOrder(ctx, payload)

	// A non-skipped attempt is logged whether or not the submission
	// succeeded.
	entry := &domain.OrderLogEntry{
		ShopDomain: tenant.ShopDomain,
		OrderID:    order.ID,
	}
	if submitErr == nil && resp.OrderID != "" {
		id := string(resp.OrderID)
		entry.SupplierOrderID = &id
	}
	if err := s.repos.OrderLog.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("failed to record order log entry: %w", err)
	}

	if submitErr != nil {
		logDebug(ctx, s.repos, s.logger, tenant, "warning", "Order submission failed", "")
		return nil, submitErr
	}

	logDebug(ctx, s.repos, s.logger, tenant, "success", "Order forwarded to supplier", "")
	return &RelayResult{
		Outcome:         domain.RelayOutcomeSubmitted,
		SupplierOrderID: entry.SupplierOrderID,
		Message:         "Order forwarded to supplier.",
	}, nil
}

// buildPayload assembles the canonical supplier order payload. Shipping
// address and buyer identity are only populated when the tenant has order
// management enabled; otherwise the supplier receives empty structures and
// no PII.
func (s *orderRelay) buildPayload(tenant *domain.TenantConfig, order *InboundOrder, details []supplier.OrderDetail) *supplier.OrderPayload {
	packageType := domain.PackageTypeStandard
	if tenant.FullOrderManage {
		packageType = domain.PackageTypeFull
	}

	var shipping supplier.ShippingAddress
	var user supplier.OrderUser
	if tenant.OrderManage {
		shipping = supplier.ShippingAddress{
			Name:    order.BillingAddress.Name,
			Email:   order.Customer.Email,
			Address: order.BillingAddress.Address1,
			CityID:  order.BillingAddress.City,
			City:    order.BillingAddress.City,
		}
		user = supplier.OrderUser{
			ID:    fmt.Sprintf("%d", order.Customer.ID),
			Name:  order.BillingAddress.Name,
			Email: order.Customer.Email,
		}
	}

	return &supplier.OrderPayload{
		ResellerPackageType: string(packageType),
		PlatformOrderID:     order.ID,
		PlatformUserID:      order.Customer.ID,
		OrderSource:         order.SourceName,
		PlatformSource:      "",
		ShippingAddress:     shipping,
		PaymentType:         supplier.PaymentTypeCOD,
		PaymentStatus:       supplier.PaymentStatusCOD,
		DeliveryStatus:      supplier.DeliveryStatusShipped,
		Date:                order.Customer.CreatedAt,
		Note:                nil,
		IsRecurring:         1,
		GrandTotal:          order.SubtotalPrice,
		ShippingCost:        decimal.Zero,
		CouponCode:          nil,
		CouponDiscount:      decimal.Zero,
		RewardPointUsed:     0,
		OrderDetails:        details,
		User:                user,
	}
}
