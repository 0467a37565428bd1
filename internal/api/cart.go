package api

import (
	"context"
	"fmt"
	"net/http"
)

// Cart fetches the caller's shopping cart. The backend answers 404
// with code NotFoundException when no cart exists yet for the session;
// callers treat that as an empty cart.
func (c *Client) Cart(ctx context.Context) (*Cart, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/cart", nil)
	if err != nil {
		return nil, err
	}
	return doJSON[Cart](c, req)
}

// AddCartItem puts a product into the cart and returns the updated cart.
func (c *Client) AddCartItem(ctx context.Context, productID int64, quantity int) (*Cart, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/api/cart/items", AddCartItemRequest{ProductID: productID, Quantity: quantity})
	if err != nil {
		return nil, err
	}
	return doJSON[Cart](c, req)
}

// UpdateCartItem changes the quantity of an existing cart line.
func (c *Client) UpdateCartItem(ctx context.Context, productID int64, quantity int) (*Cart, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPut, fmt.Sprintf("/api/cart/items/%d", productID), UpdateCartItemRequest{Quantity: quantity})
	if err != nil {
		return nil, err
	}
	return doJSON[Cart](c, req)
}

// RemoveCartItem deletes a line from the cart.
func (c *Client) RemoveCartItem(ctx context.Context, productID int64) (*Cart, error) {
	req, err := c.newRequest(ctx, http.MethodDelete, fmt.Sprintf("/api/cart/items/%d", productID), nil)
	if err != nil {
		return nil, err
	}
	return doJSON[Cart](c, req)
}
