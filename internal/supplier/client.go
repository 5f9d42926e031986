package supplier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sethvargo/go-retry"
	"go.uber.org/zap"
)

// Client calls the wholesale supplier API with tenant credentials
type Client struct {
	baseURL    string
	appID      string
	secretKey  string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a supplier API client. baseURL is the sandbox or
// production host selected from the tenant's sandbox flag.
func NewClient(baseURL, appID, secretKey string, logger *zap.Logger) *Client {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		appID:      appID,
		secretKey:  secretKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     logger,
	}
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/json")
	req.Header.Set("App-ID", c.appID)
	req.Header.Set("Secret-Key", c.secretKey)
	req.Header.Set("Content-Type", "application/json")
}

// getWithRetry issues a GET with bounded exponential backoff. Transport
// failures and non-2xx responses are retried up to two more times.
func (c *Client) getWithRetry(ctx context.Context, rawURL string) ([]byte, error) {
	var body []byte
	backoff := retry.WithMaxRetries(2, retry.NewExponential(500*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
		if err != nil {
			return err
		}
		c.setHeaders(req)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			c.logger.Warn("Supplier GET failed", zap.String("url", rawURL), zap.Error(err))
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return retry.RetryableError(err)
		}
		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			c.logger.Warn("Supplier GET returned non-2xx",
				zap.String("url", rawURL),
				zap.Int("status", resp.StatusCode),
			)
			return retry.RetryableError(fmt.Errorf("supplier API error: status %d, body: %s", resp.StatusCode, string(b)))
		}
		body = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return body, nil
}

// ListProducts fetches one page of the supplier catalog. selectedOnly narrows
// the listing to the previously-selected subset (selected_product=1).
func (c *Client) ListProducts(ctx context.Context, page, perPage int, selectedOnly bool) (*ProductListResponse, error) {
	selected := "0"
	if selectedOnly {
		selected = "1"
	}
	rawURL := fmt.Sprintf("%s/api/en/products/by-api?per_page=%d&page=%d&selected_product=%s",
		c.baseURL, perPage, page, selected)

	body, err := c.getWithRetry(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to list supplier products: %w", err)
	}

	var out ProductListResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to parse product listing: %w", err)
	}
	return &out, nil
}

// CheckStock fetches current stock for the given SKUs
func (c *Client) CheckStock(ctx context.Context, skus []string) ([]StockEntry, error) {
	params := make([]string, 0, len(skus))
	for _, sku := range skus {
		params = append(params, "skus[]="+url.QueryEscape(sku))
	}
	rawURL := fmt.Sprintf("%s/api/en/products/by-api?%s", c.baseURL, strings.Join(params, "&"))

	body, err := c.getWithRetry(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to check supplier stock: %w", err)
	}

	var out StockResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to parse stock response: %w", err)
	}
	return out.Data, nil
}

// CreateOrder submits an order payload. Never retried: the endpoint is not
// idempotent and a retry could duplicate the order.
func (c *Client) CreateOrder(ctx context.Context, payload *OrderPayload) (*OrderCreateResponse, error) {
	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal order payload: %w", err)
	}

	rawURL := c.baseURL + "/api/orders/store"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rawURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to submit order: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read order response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("supplier order API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	var out OrderCreateResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to parse order response: %w", err)
	}

	c.logger.Info("Supplier order created",
		zap.Int64("platform_order_id", payload.PlatformOrderID),
		zap.String("supplier_order_id", string(out.OrderID)),
	)
	return &out, nil
}
