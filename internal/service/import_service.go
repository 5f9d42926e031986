package service

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"github.com/azanlabs/supplysync/internal/domain"
	"github.com/azanlabs/supplysync/internal/repository"
	"github.com/azanlabs/supplysync/internal/storefront"
	"github.com/azanlabs/supplysync/internal/supplier"
	"github.com/azanlabs/supplysync/pkg/errors"
)

const (
	defaultImportPageSize = 28
	importWorkers         = 4
)

type importService struct {
	repos  *repository.Repositories
	sup    SupplierAPI
	store  StorefrontAPI
	logger *zap.Logger
}

// NewImportService creates a catalog reconciliation service bound to one
// tenant's clients
func NewImportService(repos *repository.Repositories, sup SupplierAPI, store StorefrontAPI, logger *zap.Logger) *importService {
	return &importService{
		repos:  repos,
		sup:    sup,
		store:  store,
		logger: logger,
	}
}

// itemResult is the outcome of reconciling one supplier product. state is the
// terminal step (Done or Failed); failedStep records where a failed item was.
type itemResult struct {
	product      domain.CatalogMirrorEntry
	created      bool
	wroteStock   bool
	state        domain.ImportStep
	failedStep   domain.ImportStep
	failedReason string
	name         string
}

// Run reconciles the selected supplier products against the storefront.
// The listing page that produced the selection is re-fetched, each selected
// item is created or stock-diffed independently, and non-failed items are
// written to the catalog mirror in one batch. A per-item failure never aborts
// the rest of the batch; the outcome reports success only when the failure
// list is empty.
func (s *importService) Run(ctx context.Context, tenant *domain.TenantConfig, req ImportRequest) (*ImportOutcome, error) {
	if !tenant.IsConfigured() {
		return nil, &errors.ErrNotConfigured{ShopDomain: tenant.ShopDomain}
	}

	page := req.Page
	if page < 1 {
		page = 1
	}
	perPage := req.PerPage
	if perPage < 1 {
		perPage = defaultImportPageSize
	}

	listing, err := s.sup.ListProducts(ctx, page, perPage, tenant.ProductsManagement)
	if err != nil {
		logDebug(ctx, s.repos, s.logger, tenant, "warning", "Failed to fetch products", "")
		return nil, fmt.Errorf("failed to fetch supplier listing: %w", err)
	}
	logDebug(ctx, s.repos, s.logger, tenant, "success", "Fetched products successfully", "")

	selected := make(map[int64]bool, len(req.SelectedIDs))
	for _, id := range req.SelectedIDs {
		selected[id] = true
	}

	var batch []itemJob
	for _, p := range listing.Data {
		if selected[p.ID] {
			batch = append(batch, itemJob{product: p})
		}
	}

	results := make([]itemResult, len(batch))
	var wg sync.WaitGroup
	sem := make(chan struct{}, importWorkers)
	for i := range batch {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int) {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = s.reconcileItem(ctx, batch[i])
		}(i)
	}
	wg.Wait()

	outcome := &ImportOutcome{}
	var mirror []*domain.CatalogMirrorEntry
	for i := range results {
		r := &results[i]
		if r.state == domain.ImportStepFailed {
			outcome.Failures = append(outcome.Failures, ImportFailure{
				Name:   r.name,
				Step:   r.failedStep,
				Reason: r.failedReason,
			})
			continue
		}
		if r.created {
			outcome.Created++
		} else if r.wroteStock {
			outcome.Updated++
		}
		entry := r.product
		mirror = append(mirror, &entry)
	}

	// A mirror write failure is fatal to the run even though the storefront
	// writes already happened; the caller must not see a clean outcome.
	if err := s.repos.CatalogMirror.UpsertBatch(ctx, tenant.ShopDomain, mirror); err != nil {
		return nil, fmt.Errorf("failed to persist catalog mirror batch: %w", err)
	}

	s.logger.Info("Import batch completed",
		zap.String("shop_domain", tenant.ShopDomain),
		zap.Int("created", outcome.Created),
		zap.Int("updated", outcome.Updated),
		zap.Int("failed", len(outcome.Failures)),
	)
	return outcome, nil
}

type itemJob struct {
	product supplier.Product
}

// reconcileItem walks one product through the per-item call chain:
// search -> resolve location -> resolve inventory -> decide -> write. The
// chain is strictly ordered within the item; items run concurrently.
func (s *importService) reconcileItem(ctx context.Context, job itemJob) itemResult {
	p := job.product
	res := itemResult{name: p.Name}
	step := domain.ImportStepSearching

	fail := func(err error) itemResult {
		s.logger.Warn("Failed to import/update product",
			zap.String("product", p.Name),
			zap.String("step", string(step)),
			zap.Error(err),
		)
		res.state = domain.ImportStepFailed
		res.failedStep = step
		res.failedReason = err.Error()
		return res
	}

	// Listings are matched by the supplier product identifier in the SKU
	// field, not the supplier's own SKU value. Listings created by earlier
	// connector versions were keyed this way; changing it would orphan them.
	match, err := s.store.FindProductBySKU(ctx, strconv.FormatInt(p.ID, 10))
	if err != nil {
		return fail(err)
	}

	if match != nil {
		step = domain.ImportStepResolvingLocation
		locationID, err := s.store.PrimaryLocationID(ctx)
		if err != nil {
			return fail(err)
		}

		step = domain.ImportStepResolvingInventory
		current, err := s.store.GetInventoryLevel(ctx, match.InventoryItemID, locationID)
		if err != nil {
			return fail(err)
		}

		step = domain.ImportStepDeciding
		newStock := int(p.Stock)
		if current != newStock {
			step = domain.ImportStepWriting
			if err := s.store.SetInventoryLevel(ctx, match.InventoryItemID, locationID, newStock); err != nil {
				return fail(err)
			}
			res.wroteStock = true
		}

		productID, err := storefront.ExtractIDFromGID(match.ProductGID)
		if err != nil {
			return fail(err)
		}
		res.state = domain.ImportStepDone
		res.product = s.mirrorEntry(p, &productID)
		return res
	}

	step = domain.ImportStepWriting
	productID, err := s.store.CreateProduct(ctx, buildListing(p))
	if err != nil {
		return fail(err)
	}
	res.state = domain.ImportStepDone
	res.created = true
	res.product = s.mirrorEntry(p, &productID)
	return res
}

func (s *importService) mirrorEntry(p supplier.Product, storefrontID *int64) domain.CatalogMirrorEntry {
	picture := ""
	if len(p.Pictures) > 0 {
		picture = p.Pictures[0]
	}
	return domain.CatalogMirrorEntry{
		StorefrontProductID: storefrontID,
		SKU:                 p.SKU,
		SupplierProductID:   p.ID,
		Name:                p.Name,
		WholesalePrice:      p.WholesalePrice,
		MRPPrice:            p.MRPPrice,
		Stock:               int(p.Stock),
		Picture:             picture,
		Supplier:            domain.DefaultSupplier,
	}
}

// buildListing constructs the storefront listing for a supplier product:
// one stock-tracked variant at MRP price, the image list, and a metafield
// recording the supplier's product id.
func buildListing(p supplier.Product) storefront.ProductInput {
	images := make([]storefront.ImageInput, 0, len(p.Pictures))
	for _, url := range p.Pictures {
		images = append(images, storefront.ImageInput{Src: url})
	}
	return storefront.ProductInput{
		Title:       p.Name,
		BodyHTML:    fmt.Sprintf("<strong>%s</strong>", p.Description),
		Vendor:      domain.DefaultSupplier,
		ProductType: "imported",
		Images:      images,
		Variants: []storefront.VariantInput{
			{
				Price:               p.MRPPrice.String(),
				SKU:                 p.SKU,
				InventoryQuantity:   int(p.Stock),
				InventoryManagement: "shopify",
				InventoryPolicy:     "deny",
			},
		},
		Metafields: []storefront.MetafieldInput{
			{
				Namespace: "custom",
				Key:       "supplier_product_id",
				Value:     strconv.FormatInt(p.ID, 10),
				Type:      "single_line_text_field",
			},
		},
	}
}
