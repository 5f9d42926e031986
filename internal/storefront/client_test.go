package storefront

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractIDFromGID(t *testing.T) {
	id, err := ExtractIDFromGID("gid://shopify/InventoryItem/123456")
	require.NoError(t, err)
	assert.Equal(t, int64(123456), id)

	id, err = ExtractIDFromGID("gid://shopify/Product/42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), id)

	_, err = ExtractIDFromGID("not-a-gid")
	assert.Error(t, err)

	_, err = ExtractIDFromGID("gid://shopify/Product/abc")
	assert.Error(t, err)
}

func TestProductSearchQueryEscapesTerm(t *testing.T) {
	query := productSearchQuery("12345")
	assert.Contains(t, query, `query: "sku:12345"`)

	// A hostile term must not break out of the string literal
	query = productSearchQuery(`x") { shop { name } } #`)
	assert.Contains(t, query, `sku:x\") { shop { name } } #`)
	assert.NotContains(t, query, `sku:x") `)

	query = productSearchQuery(`a\b`)
	assert.Contains(t, query, `sku:a\\b`)
}

func TestNewClientNormalizesShopDomain(t *testing.T) {
	client := NewClient("https://my-shop.myshopify.com/", "token", "2024-01", nil)
	assert.Equal(t, "https://my-shop.myshopify.com/admin/api/2024-01/products.json", client.restURL("products.json"))

	client = NewClient("http://my-shop.myshopify.com", "token", "2024-01", nil)
	assert.Equal(t, "https://my-shop.myshopify.com/admin/api/2024-01/graphql.json", client.restURL("graphql.json"))
}
