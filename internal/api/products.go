package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Products lists the catalog, optionally narrowed by the filter.
func (c *Client) Products(ctx context.Context, filter ProductFilter) ([]Product, error) {
	endpoint := "/api/products"
	if query := filter.encode(); query != "" {
		endpoint += "?" + query
	}
	req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	return doList[Product](c, req)
}

// Product fetches a single catalog entry by id.
func (c *Client) Product(ctx context.Context, id int64) (*Product, error) {
	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/api/products/%d", id), nil)
	if err != nil {
		return nil, err
	}
	return doJSON[Product](c, req)
}

// StoreProducts lists the authenticated store owner's own products.
func (c *Client) StoreProducts(ctx context.Context) ([]Product, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/products/store", nil)
	if err != nil {
		return nil, err
	}
	return doList[Product](c, req)
}

// CreateProduct adds a product to the authenticated store's catalog.
func (c *Client) CreateProduct(ctx context.Context, product ProductUpsert) (*Product, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/api/products", product)
	if err != nil {
		return nil, err
	}
	return doJSON[Product](c, req)
}

// UpdateProduct replaces the editable fields of an existing product.
func (c *Client) UpdateProduct(ctx context.Context, id int64, product ProductUpsert) (*Product, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPut, fmt.Sprintf("/api/products/%d", id), product)
	if err != nil {
		return nil, err
	}
	return doJSON[Product](c, req)
}

// UpdateProductStock adjusts only the stock level of a product.
func (c *Client) UpdateProductStock(ctx context.Context, id int64, quantity int) (*Product, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPatch, fmt.Sprintf("/api/products/%d/stock", id), UpdateStockRequest{StockQuantity: quantity})
	if err != nil {
		return nil, err
	}
	return doJSON[Product](c, req)
}

// DeleteProduct removes a product from the authenticated store's catalog.
func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	req, err := c.newRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/products/%d", id), nil)
	if err != nil {
		return err
	}
	return doEmpty(c, req)
}

// doList decodes an array response, mapping an absent body to an empty
// slice so callers can range without nil checks.
func doList[T any](c *Client, req *http.Request) ([]T, error) {
	items, err := doJSON[[]T](c, req)
	if err != nil {
		return nil, err
	}
	if items == nil {
		return []T{}, nil
	}
	return *items, nil
}

func (f ProductFilter) encode() string {
	q := url.Values{}
	if f.Title != "" {
		q.Set("title", f.Title)
	}
	if f.Type != "" {
		q.Set("type", f.Type)
	}
	if f.Brand != "" {
		q.Set("brand", f.Brand)
	}
	if f.MinPrice != nil {
		q.Set("minPrice", strconv.FormatFloat(*f.MinPrice, 'f', -1, 64))
	}
	if f.MaxPrice != nil {
		q.Set("maxPrice", strconv.FormatFloat(*f.MaxPrice, 'f', -1, 64))
	}
	if f.StoreID != nil {
		q.Set("storeId", strconv.FormatInt(*f.StoreID, 10))
	}
	return q.Encode()
}
