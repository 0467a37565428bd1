// Package cart derives the lightweight cart badge state from the
// backend shopping cart. The snapshot is recomputed on every fetch and
// never mutated incrementally.
package cart

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"uom-eshop.org/storefront/internal/api"
)

// notFoundCode is the backend's way of saying no cart exists yet for
// this session.
const notFoundCode = "NotFoundException"

// API is the backend collaborator the service depends on.
type API interface {
	Cart(ctx context.Context) (*api.Cart, error)
}

// Snapshot is the most recently fetched cart plus the derived badge
// count. The zero value is the empty cart.
type Snapshot struct {
	Cart      *api.Cart
	ItemCount int
}

// Empty reports whether the snapshot holds no lines.
func (s Snapshot) Empty() bool {
	return s.Cart == nil || len(s.Cart.Items) == 0
}

// TotalPrice returns the backend-computed cart total, zero when empty.
func (s Snapshot) TotalPrice() float64 {
	if s.Cart == nil {
		return 0
	}
	return s.Cart.TotalPrice
}

// Service fetches cart snapshots. Failures never propagate: a broken
// cart badge must not block the rest of the page from rendering.
type Service struct {
	api    API
	logger *zap.Logger
}

// NewService wires the service to its collaborators.
func NewService(backend API, logger *zap.Logger) *Service {
	if backend == nil {
		panic("cart: api collaborator is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{api: backend, logger: logger}
}

// Snapshot fetches the cart and derives the item count. A 404 with
// code NotFoundException is a normal empty-cart outcome and stays
// silent; any other failure is logged and likewise reduces to the
// empty snapshot.
func (s *Service) Snapshot(ctx context.Context) Snapshot {
	fetched, err := s.api.Cart(ctx)
	if err != nil {
		if apiErr := api.Normalize(err); apiErr != nil &&
			apiErr.Status == http.StatusNotFound && apiErr.Code == notFoundCode {
			return Snapshot{}
		}
		s.logger.Warn("cart fetch failed", zap.Error(err))
		return Snapshot{}
	}
	return Snapshot{Cart: fetched, ItemCount: CountItems(fetched)}
}

// CountItems sums the line quantities; a missing cart counts zero.
func CountItems(c *api.Cart) int {
	if c == nil {
		return 0
	}
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}
