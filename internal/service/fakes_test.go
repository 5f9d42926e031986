package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/azanlabs/supplysync/internal/domain"
	"github.com/azanlabs/supplysync/internal/repository"
	"github.com/azanlabs/supplysync/internal/storefront"
	"github.com/azanlabs/supplysync/internal/supplier"
	"github.com/azanlabs/supplysync/pkg/errors"
)

// fakeSupplier is an in-memory SupplierAPI
type fakeSupplier struct {
	mu sync.Mutex

	listing    *supplier.ProductListResponse
	listingErr error

	stock    []supplier.StockEntry
	stockErr error

	orderResp *supplier.OrderCreateResponse
	orderErr  error

	listCalls       int
	checkStockCalls int
	createCalls     int
	lastPayload     *supplier.OrderPayload
}

func (f *fakeSupplier) ListProducts(ctx context.Context, page, perPage int, selectedOnly bool) (*supplier.ProductListResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	if f.listingErr != nil {
		return nil, f.listingErr
	}
	return f.listing, nil
}

func (f *fakeSupplier) CheckStock(ctx context.Context, skus []string) ([]supplier.StockEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.checkStockCalls++
	if f.stockErr != nil {
		return nil, f.stockErr
	}
	return f.stock, nil
}

func (f *fakeSupplier) CreateOrder(ctx context.Context, payload *supplier.OrderPayload) (*supplier.OrderCreateResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	f.lastPayload = payload
	if f.orderErr != nil {
		return nil, f.orderErr
	}
	return f.orderResp, nil
}

// fakeStorefront is an in-memory StorefrontAPI. Matches are keyed by the SKU
// passed to FindProductBySKU; inventory levels by inventory item ID.
type fakeStorefront struct {
	mu sync.Mutex

	matches   map[string]*storefront.ProductMatch
	inventory map[int64]int

	locationID  int64
	locationErr error

	nextProductID int64
	createErr     error
	updateErr     error

	setCalls       int
	createCalls    int
	updateCalls    []int64
	lastUpdate     storefront.ProductUpdateInput
	createdInputs  []storefront.ProductInput
	setLevels      map[int64]int
}

func newFakeStorefront() *fakeStorefront {
	return &fakeStorefront{
		matches:       map[string]*storefront.ProductMatch{},
		inventory:     map[int64]int{},
		locationID:    9001,
		nextProductID: 7000,
		setLevels:     map[int64]int{},
	}
}

func (f *fakeStorefront) FindProductBySKU(ctx context.Context, sku string) (*storefront.ProductMatch, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.matches[sku], nil
}

func (f *fakeStorefront) PrimaryLocationID(ctx context.Context) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.locationErr != nil {
		return 0, f.locationErr
	}
	return f.locationID, nil
}

func (f *fakeStorefront) GetInventoryLevel(ctx context.Context, inventoryItemID, locationID int64) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inventory[inventoryItemID], nil
}

func (f *fakeStorefront) SetInventoryLevel(ctx context.Context, inventoryItemID, locationID int64, available int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setCalls++
	f.inventory[inventoryItemID] = available
	f.setLevels[inventoryItemID] = available
	return nil
}

func (f *fakeStorefront) CreateProduct(ctx context.Context, input storefront.ProductInput) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createCalls++
	if f.createErr != nil {
		return 0, f.createErr
	}
	f.nextProductID++
	f.createdInputs = append(f.createdInputs, input)
	return f.nextProductID, nil
}

func (f *fakeStorefront) UpdateProduct(ctx context.Context, productID int64, input storefront.ProductUpdateInput) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updateCalls = append(f.updateCalls, productID)
	f.lastUpdate = input
	return f.updateErr
}

// fakeTenantRepo resolves tenants by shop domain or by plaintext token
type fakeTenantRepo struct {
	byDomain map[string]*domain.TenantConfig
	byToken  map[string]*domain.TenantConfig
	hashes   map[string]string
}

func newFakeTenantRepo() *fakeTenantRepo {
	return &fakeTenantRepo{
		byDomain: map[string]*domain.TenantConfig{},
		byToken:  map[string]*domain.TenantConfig{},
		hashes:   map[string]string{},
	}
}

func (f *fakeTenantRepo) GetByShopDomain(ctx context.Context, shopDomain string) (*domain.TenantConfig, error) {
	t, ok := f.byDomain[shopDomain]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "tenant_config", ID: shopDomain}
	}
	return t, nil
}

func (f *fakeTenantRepo) GetByAuthToken(ctx context.Context, token string) (*domain.TenantConfig, error) {
	t, ok := f.byToken[token]
	if !ok {
		return nil, &errors.ErrUnauthorized{Message: "invalid API key"}
	}
	return t, nil
}

func (f *fakeTenantRepo) Upsert(ctx context.Context, cfg *domain.TenantConfig) error {
	f.byDomain[cfg.ShopDomain] = cfg
	return nil
}

func (f *fakeTenantRepo) UpdateAuthTokenHash(ctx context.Context, shopDomain, hash string) error {
	if _, ok := f.byDomain[shopDomain]; !ok {
		return &errors.ErrNotFound{Resource: "tenant_config", ID: shopDomain}
	}
	f.hashes[shopDomain] = hash
	return nil
}

// fakeMirrorRepo is an in-memory catalog mirror keyed on (shop, sku, supplier)
type fakeMirrorRepo struct {
	mu      sync.Mutex
	entries map[string]*domain.CatalogMirrorEntry

	upsertBatches int
	applyCalls    int
	applyErr      error
}

func newFakeMirrorRepo() *fakeMirrorRepo {
	return &fakeMirrorRepo{entries: map[string]*domain.CatalogMirrorEntry{}}
}

func mirrorKey(shopDomain, sku, supplierName string) string {
	return fmt.Sprintf("%s|%s|%s", shopDomain, sku, supplierName)
}

func (f *fakeMirrorRepo) seed(e *domain.CatalogMirrorEntry) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	f.entries[mirrorKey(e.ShopDomain, e.SKU, e.Supplier)] = e
}

func (f *fakeMirrorRepo) GetBySKUAndSupplier(ctx context.Context, shopDomain, sku, supplierName string) (*domain.CatalogMirrorEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	e, ok := f.entries[mirrorKey(shopDomain, sku, supplierName)]
	if !ok {
		return nil, &errors.ErrNotFound{Resource: "catalog_mirror_entry", ID: sku}
	}
	return e, nil
}

func (f *fakeMirrorRepo) GetBySKUs(ctx context.Context, shopDomain string, skus []string) ([]*domain.CatalogMirrorEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.CatalogMirrorEntry
	for _, sku := range skus {
		if e, ok := f.entries[mirrorKey(shopDomain, sku, domain.DefaultSupplier)]; ok {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeMirrorRepo) ListByShopDomain(ctx context.Context, shopDomain string, limit, offset int) ([]*domain.CatalogMirrorEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.CatalogMirrorEntry
	for _, e := range f.entries {
		if e.ShopDomain == shopDomain {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeMirrorRepo) UpsertBatch(ctx context.Context, shopDomain string, entries []*domain.CatalogMirrorEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.upsertBatches++
	for _, e := range entries {
		key := mirrorKey(shopDomain, e.SKU, e.Supplier)
		if existing, ok := f.entries[key]; ok {
			if e.StorefrontProductID == nil {
				e.StorefrontProductID = existing.StorefrontProductID
			}
			e.ID = existing.ID
		} else if e.ID == uuid.Nil {
			e.ID = uuid.New()
		}
		e.ShopDomain = shopDomain
		f.entries[key] = e
	}
	return nil
}

func (f *fakeMirrorRepo) ApplyStockPush(ctx context.Context, id uuid.UUID, applied *domain.ResolvedStockPush) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.applyCalls++
	if f.applyErr != nil {
		return f.applyErr
	}
	for _, e := range f.entries {
		if e.ID == id {
			e.Name = applied.Name
			e.MRPPrice = applied.Price
			e.WholesalePrice = applied.Cost
			e.Stock = applied.Stock
			return nil
		}
	}
	return &errors.ErrNotFound{Resource: "catalog_mirror_entry", ID: id.String()}
}

// fakeOrderLogRepo is an append-only in-memory order log
type fakeOrderLogRepo struct {
	entries []*domain.OrderLogEntry
}

func (f *fakeOrderLogRepo) Create(ctx context.Context, entry *domain.OrderLogEntry) error {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeOrderLogRepo) GetByOrderID(ctx context.Context, shopDomain string, orderID int64) (*domain.OrderLogEntry, error) {
	for i := len(f.entries) - 1; i >= 0; i-- {
		if f.entries[i].ShopDomain == shopDomain && f.entries[i].OrderID == orderID {
			return f.entries[i], nil
		}
	}
	return nil, &errors.ErrNotFound{Resource: "order_log_entry", ID: fmt.Sprintf("%d", orderID)}
}

func (f *fakeOrderLogRepo) ListByShopDomain(ctx context.Context, shopDomain string, limit, offset int) ([]*domain.OrderLogEntry, error) {
	var out []*domain.OrderLogEntry
	for _, e := range f.entries {
		if e.ShopDomain == shopDomain {
			out = append(out, e)
		}
	}
	return out, nil
}

// fakeDebugLogRepo collects debug trace rows
type fakeDebugLogRepo struct {
	mu      sync.Mutex
	entries []*domain.DebugLogEntry
}

func (f *fakeDebugLogRepo) Create(ctx context.Context, entry *domain.DebugLogEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeDebugLogRepo) ListByShopDomain(ctx context.Context, shopDomain string, limit, offset int) ([]*domain.DebugLogEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.entries, nil
}

// newFakeRepos wires all in-memory fakes into a Repositories aggregate
func newFakeRepos() (*repository.Repositories, *fakeTenantRepo, *fakeMirrorRepo, *fakeOrderLogRepo) {
	tenants := newFakeTenantRepo()
	mirror := newFakeMirrorRepo()
	orderLog := &fakeOrderLogRepo{}
	repos := &repository.Repositories{
		TenantConfig:  tenants,
		CatalogMirror: mirror,
		OrderLog:      orderLog,
		DebugLog:      &fakeDebugLogRepo{},
	}
	return repos, tenants, mirror, orderLog
}

func testTenant() *domain.TenantConfig {
	return &domain.TenantConfig{
		ID:              uuid.New(),
		ShopDomain:      "test-shop.myshopify.com",
		AppID:           "app-id",
		SecretKey:       "secret-key",
		StorefrontToken: "shpat_test",
		IsActive:        true,
	}
}
