package storefront

import "encoding/json"

// GraphQLRequest represents a GraphQL request
type GraphQLRequest struct {
	Query     string                 `json:"query"`
	Variables map[string]interface{} `json:"variables,omitempty"`
}

// GraphQLResponse represents a GraphQL response
type GraphQLResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []GraphQLError  `json:"errors,omitempty"`
}

// GraphQLError represents a GraphQL error
type GraphQLError struct {
	Message string   `json:"message"`
	Path    []string `json:"path,omitempty"`
}

// ProductBySKUQueryTemplate finds an existing listing whose variant SKU equals
// the supplied value. The search term must be a string literal inside the
// query document; productSearchQuery escapes and interpolates it.
const ProductBySKUQueryTemplate = `
query {
  products(first: 1, query: "sku:%s") {
    edges {
      node {
        id
        title
        variants(first: 1) {
          edges {
            node {
              id
              sku
              inventoryItem {
                id
              }
            }
          }
        }
      }
    }
  }
}
`

// ProductMatch is the listing resolved by a SKU search
type ProductMatch struct {
	ProductGID      string
	Title           string
	VariantGID      string
	VariantSKU      string
	InventoryItemID int64
}

// Location is one storefront stock location
type Location struct {
	ID int64 `json:"id"`
}

type locationsResponse struct {
	Locations []Location `json:"locations"`
}

// InventoryLevel is the available quantity of an inventory item at a location
type InventoryLevel struct {
	InventoryItemID int64 `json:"inventory_item_id"`
	LocationID      int64 `json:"location_id"`
	Available       *int  `json:"available"`
}

type inventoryLevelsResponse struct {
	InventoryLevels []InventoryLevel `json:"inventory_levels"`
}

// VariantInput is one variant of a product create/update call
type VariantInput struct {
	Price               string `json:"price,omitempty"`
	Cost                string `json:"cost,omitempty"`
	SKU                 string `json:"sku,omitempty"`
	InventoryQuantity   int    `json:"inventory_quantity"`
	InventoryManagement string `json:"inventory_management,omitempty"`
	InventoryPolicy     string `json:"inventory_policy,omitempty"`
}

// ImageInput is one product image by source URL
type ImageInput struct {
	Src string `json:"src"`
}

// MetafieldInput attaches a custom field to a created product
type MetafieldInput struct {
	Namespace string `json:"namespace"`
	Key       string `json:"key"`
	Value     string `json:"value"`
	Type      string `json:"type"`
}

// ProductInput is the body of a product create call
type ProductInput struct {
	Title       string           `json:"title"`
	BodyHTML    string           `json:"body_html"`
	Vendor      string           `json:"vendor"`
	ProductType string           `json:"product_type"`
	Images      []ImageInput     `json:"images"`
	Variants    []VariantInput   `json:"variants"`
	Metafields  []MetafieldInput `json:"metafields,omitempty"`
}

// ProductUpdateInput is the body of a product update call
type ProductUpdateInput struct {
	ID       int64          `json:"id"`
	Title    string         `json:"title,omitempty"`
	Variants []VariantInput `json:"variants,omitempty"`
}

type productCreateRequest struct {
	Product ProductInput `json:"product"`
}

type productUpdateRequest struct {
	Product ProductUpdateInput `json:"product"`
}

type productCreateResponse struct {
	Product struct {
		ID int64 `json:"id"`
	} `json:"product"`
}

type setInventoryRequest struct {
	InventoryItemID int64 `json:"inventory_item_id"`
	LocationID      int64 `json:"location_id"`
	Available       int   `json:"available"`
}
