package storefront

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Client calls the storefront Admin API for one shop
type Client struct {
	shopDomain  string
	accessToken string
	apiVersion  string
	httpClient  *http.Client
	limiter     *rate.Limiter
	logger      *zap.Logger
}

// NewClient creates a storefront Admin API client. The limiter keeps the
// client inside the platform's 2 req/s bucket.
func NewClient(shopDomain, accessToken, apiVersion string, logger *zap.Logger) *Client {
	// Normalize shop domain - remove https://, http://, and trailing slashes
	shopDomain = strings.TrimPrefix(shopDomain, "https://")
	shopDomain = strings.TrimPrefix(shopDomain, "http://")
	shopDomain = strings.TrimSuffix(shopDomain, "/")

	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		shopDomain:  shopDomain,
		accessToken: accessToken,
		apiVersion:  apiVersion,
		httpClient:  &http.Client{Timeout: 30 * time.Second},
		limiter:     rate.NewLimiter(2, 4),
		logger:      logger,
	}
}

func (c *Client) restURL(path string) string {
	return fmt.Sprintf("https://%s/admin/api/%s/%s", c.shopDomain, c.apiVersion, path)
}

func (c *Client) do(ctx context.Context, method, rawURL string, body []byte) (int, []byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, nil, err
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewBuffer(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, rawURL, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Shopify-Access-Token", c.accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read response: %w", err)
	}
	return resp.StatusCode, respBody, nil
}

// getJSON issues a GET with bounded backoff and decodes into out
func (c *Client) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	backoff := retry.WithMaxRetries(2, retry.NewExponential(500*time.Millisecond))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		status, body, err := c.do(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return retry.RetryableError(err)
		}
		if status != http.StatusOK {
			c.logger.Warn("Storefront GET returned non-200",
				zap.String("url", rawURL),
				zap.Int("status", status),
			)
			return retry.RetryableError(fmt.Errorf("storefront API error: status %d, body: %s", status, string(body)))
		}
		if err := json.Unmarshal(body, out); err != nil {
			return fmt.Errorf("failed to unmarshal response: %w", err)
		}
		return nil
	})
}

// Execute executes a GraphQL query/mutation
func (c *Client) Execute(ctx context.Context, query string, variables map[string]interface{}) (*GraphQLResponse, error) {
	jsonData, err := json.Marshal(GraphQLRequest{Query: query, Variables: variables})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	status, body, err := c.do(ctx, http.MethodPost, c.restURL("graphql.json"), jsonData)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("storefront API error: status %d, body: %s", status, string(body))
	}

	var graphQLResp GraphQLResponse
	if err := json.Unmarshal(body, &graphQLResp); err != nil {
		return nil, fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if len(graphQLResp.Errors) > 0 {
		return nil, fmt.Errorf("graphQL errors: %v", graphQLResp.Errors)
	}
	return &graphQLResp, nil
}

// productSearchQuery builds the search document. The term lands inside a
// quoted string literal in the query, so quotes and backslashes must be
// escaped even though callers today only pass numeric supplier ids.
func productSearchQuery(sku string) string {
	escaped := strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(sku)
	return fmt.Sprintf(ProductBySKUQueryTemplate, escaped)
}

// FindProductBySKU searches listings for a variant whose SKU equals sku.
// Returns (nil, nil) when no listing matches.
func (c *Client) FindProductBySKU(ctx context.Context, sku string) (*ProductMatch, error) {
	query := productSearchQuery(sku)
	resp, err := c.Execute(ctx, query, nil)
	if err != nil {
		return nil, fmt.Errorf("product search failed: %w", err)
	}

	var result struct {
		Products struct {
			Edges []struct {
				Node struct {
					ID       string `json:"id"`
					Title    string `json:"title"`
					Variants struct {
						Edges []struct {
							Node struct {
								ID            string `json:"id"`
								SKU           string `json:"sku"`
								InventoryItem struct {
									ID string `json:"id"`
								} `json:"inventoryItem"`
							} `json:"node"`
						} `json:"edges"`
					} `json:"variants"`
				} `json:"node"`
			} `json:"edges"`
		} `json:"products"`
	}
	if err := json.Unmarshal(resp.Data, &result); err != nil {
		return nil, fmt.Errorf("failed to parse search response: %w", err)
	}

	if len(result.Products.Edges) == 0 {
		return nil, nil
	}
	node := result.Products.Edges[0].Node
	if len(node.Variants.Edges) == 0 {
		return nil, nil
	}
	variant := node.Variants.Edges[0].Node

	inventoryItemID, err := ExtractIDFromGID(variant.InventoryItem.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to extract inventory item ID: %w", err)
	}

	return &ProductMatch{
		ProductGID:      node.ID,
		Title:           node.Title,
		VariantGID:      variant.ID,
		VariantSKU:      variant.SKU,
		InventoryItemID: inventoryItemID,
	}, nil
}

// PrimaryLocationID returns the shop's first stock location
func (c *Client) PrimaryLocationID(ctx context.Context) (int64, error) {
	var out locationsResponse
	if err := c.getJSON(ctx, c.restURL("locations.json"), &out); err != nil {
		return 0, fmt.Errorf("failed to list locations: %w", err)
	}
	if len(out.Locations) == 0 {
		return 0, fmt.Errorf("no location found for inventory update")
	}
	return out.Locations[0].ID, nil
}

// GetInventoryLevel returns the available quantity for an inventory item at
// a location. A missing level reads as zero.
func (c *Client) GetInventoryLevel(ctx context.Context, inventoryItemID, locationID int64) (int, error) {
	rawURL := c.restURL(fmt.Sprintf("inventory_levels.json?inventory_item_ids=%d&location_ids=%d", inventoryItemID, locationID))
	var out inventoryLevelsResponse
	if err := c.getJSON(ctx, rawURL, &out); err != nil {
		return 0, fmt.Errorf("failed to get inventory level: %w", err)
	}
	if len(out.InventoryLevels) == 0 || out.InventoryLevels[0].Available == nil {
		return 0, nil
	}
	return *out.InventoryLevels[0].Available, nil
}

// SetInventoryLevel sets the available quantity for an inventory item at a
// location
func (c *Client) SetInventoryLevel(ctx context.Context, inventoryItemID, locationID int64, available int) error {
	jsonData, err := json.Marshal(setInventoryRequest{
		InventoryItemID: inventoryItemID,
		LocationID:      locationID,
		Available:       available,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal inventory request: %w", err)
	}

	status, body, err := c.do(ctx, http.MethodPost, c.restURL("inventory_levels/set.json"), jsonData)
	if err != nil {
		return fmt.Errorf("failed to set inventory level: %w", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("inventory set failed: status %d, body: %s", status, string(body))
	}
	return nil
}

// CreateProduct creates a new listing and returns its product ID
func (c *Client) CreateProduct(ctx context.Context, input ProductInput) (int64, error) {
	jsonData, err := json.Marshal(productCreateRequest{Product: input})
	if err != nil {
		return 0, fmt.Errorf("failed to marshal product: %w", err)
	}

	status, body, err := c.do(ctx, http.MethodPost, c.restURL("products.json"), jsonData)
	if err != nil {
		return 0, fmt.Errorf("failed to create product: %w", err)
	}
	if status != http.StatusOK && status != http.StatusCreated {
		return 0, fmt.Errorf("product create failed: status %d, body: %s", status, string(body))
	}

	var out productCreateResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return 0, fmt.Errorf("failed to parse create response: %w", err)
	}
	if out.Product.ID == 0 {
		return 0, fmt.Errorf("product create returned no ID: %s", string(body))
	}
	return out.Product.ID, nil
}

// UpdateProduct updates an existing listing
func (c *Client) UpdateProduct(ctx context.Context, productID int64, input ProductUpdateInput) error {
	input.ID = productID
	jsonData, err := json.Marshal(productUpdateRequest{Product: input})
	if err != nil {
		return fmt.Errorf("failed to marshal product update: %w", err)
	}

	status, body, err := c.do(ctx, http.MethodPut, c.restURL(fmt.Sprintf("products/%d.json", productID)), jsonData)
	if err != nil {
		return fmt.Errorf("failed to update product: %w", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("product update failed: status %d, body: %s", status, string(body))
	}
	return nil
}

// ExtractIDFromGID pulls the trailing numeric ID out of a storefront GID,
// e.g. "gid://shopify/InventoryItem/123456" -> 123456.
func ExtractIDFromGID(gid string) (int64, error) {
	parts := strings.Split(gid, "/")
	if len(parts) < 4 {
		return 0, fmt.Errorf("invalid GID format: %s", gid)
	}
	id, err := strconv.ParseInt(parts[len(parts)-1], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("failed to parse ID from GID: %w", err)
	}
	return id, nil
}
