package api

import (
	"context"
	"fmt"
	"net/http"
)

// Stores lists every store on the marketplace.
func (c *Client) Stores(ctx context.Context) ([]Store, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/stores", nil)
	if err != nil {
		return nil, err
	}
	return doList[Store](c, req)
}

// Store fetches a single store by id.
func (c *Client) Store(ctx context.Context, id int64) (*Store, error) {
	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/api/stores/%d", id), nil)
	if err != nil {
		return nil, err
	}
	return doJSON[Store](c, req)
}

// StoreStats aggregates dashboard figures for the authenticated store owner.
func (c *Client) StoreStats(ctx context.Context) (*StoreStats, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/stores/stats", nil)
	if err != nil {
		return nil, err
	}
	return doJSON[StoreStats](c, req)
}

// CustomerStats aggregates dashboard figures for the authenticated customer.
func (c *Client) CustomerStats(ctx context.Context) (*CustomerStats, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/customers/stats", nil)
	if err != nil {
		return nil, err
	}
	return doJSON[CustomerStats](c, req)
}
