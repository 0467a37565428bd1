package api

import (
	"context"
	"fmt"
	"net/http"
)

const idempotencyHeader = "Idempotency-Key"

// Checkout submits the mocked payment details. The backend validates
// the card shape, decrements stock and creates per-store orders. The
// idempotency key guards against double submission of the payment form.
func (c *Client) Checkout(ctx context.Context, payment PaymentRequest, idempotencyKey string) (*CheckoutResult, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/api/orders/checkout", payment)
	if err != nil {
		return nil, err
	}
	if idempotencyKey != "" {
		req.Header.Set(idempotencyHeader, idempotencyKey)
	}
	return doJSON[CheckoutResult](c, req)
}

// CompleteOrder finalizes the caller's open orders after checkout.
func (c *Client) CompleteOrder(ctx context.Context) ([]Order, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/orders", nil)
	if err != nil {
		return nil, err
	}
	return doList[Order](c, req)
}

// CustomerOrders lists the authenticated customer's order history.
func (c *Client) CustomerOrders(ctx context.Context) ([]Order, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/orders", nil)
	if err != nil {
		return nil, err
	}
	return doList[Order](c, req)
}

// RecentOrders lists the most recent orders for the caller, capped at limit.
func (c *Client) RecentOrders(ctx context.Context, limit int) ([]Order, error) {
	endpoint := "/api/orders/recent"
	if limit > 0 {
		endpoint = fmt.Sprintf("%s?limit=%d", endpoint, limit)
	}
	req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	return doList[Order](c, req)
}

// StoreOrders lists orders placed against the authenticated store.
func (c *Client) StoreOrders(ctx context.Context) ([]Order, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/orders/store", nil)
	if err != nil {
		return nil, err
	}
	return doList[Order](c, req)
}

// Order fetches a single order visible to the caller.
func (c *Client) Order(ctx context.Context, id int64) (*Order, error) {
	req, err := c.newRequest(ctx, http.MethodGet, fmt.Sprintf("/api/orders/%d", id), nil)
	if err != nil {
		return nil, err
	}
	return doJSON[Order](c, req)
}
