package cart_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"uom-eshop.org/storefront/internal/api"
	"uom-eshop.org/storefront/internal/cart"
)

type fakeCartAPI struct {
	cart *api.Cart
	err  error
}

func (f *fakeCartAPI) Cart(context.Context) (*api.Cart, error) {
	return f.cart, f.err
}

func TestSnapshotCountsItems(t *testing.T) {
	t.Parallel()

	id := int64(11)
	backend := &fakeCartAPI{cart: &api.Cart{
		CartID: &id,
		Items: []api.CartItem{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 3},
			{ProductID: 3, Quantity: 1},
		},
		TotalPrice: 59.97,
	}}
	svc := cart.NewService(backend, zap.NewNop())

	snap := svc.Snapshot(context.Background())
	require.Equal(t, 6, snap.ItemCount)
	require.False(t, snap.Empty())
	require.InDelta(t, 59.97, snap.TotalPrice(), 1e-9)
}

func TestSnapshotMissingCartCountsZero(t *testing.T) {
	t.Parallel()

	svc := cart.NewService(&fakeCartAPI{cart: nil}, zap.NewNop())
	snap := svc.Snapshot(context.Background())
	require.Zero(t, snap.ItemCount)
	require.True(t, snap.Empty())
	require.Zero(t, snap.TotalPrice())
}

func TestSnapshotTreatsNotFoundAsEmptyCartSilently(t *testing.T) {
	t.Parallel()

	core, logs := observer.New(zapcore.WarnLevel)
	backend := &fakeCartAPI{err: &api.RequestError{
		Status:     404,
		StatusText: "Not Found",
		URL:        "http://backend/api/cart",
		Payload: map[string]any{
			"status":  float64(404),
			"error":   "Not Found",
			"code":    "NotFoundException",
			"message": "cart missing",
		},
	}}
	svc := cart.NewService(backend, zap.New(core))

	snap := svc.Snapshot(context.Background())
	require.True(t, snap.Empty())
	require.Zero(t, snap.ItemCount)
	require.Zero(t, logs.Len(), "no-cart-yet must not be logged as an error")
}

func TestSnapshotLogsOtherFailuresAndStaysEmpty(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
	}{
		{name: "backend failure", err: &api.RequestError{Status: 500, URL: "http://backend/api/cart"}},
		{name: "plain 404 without the no-cart code", err: &api.RequestError{Status: 404, URL: "http://backend/api/cart"}},
		{name: "network failure", err: errors.New("dial tcp: connection refused")},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			core, logs := observer.New(zapcore.WarnLevel)
			svc := cart.NewService(&fakeCartAPI{err: tt.err}, zap.New(core))

			snap := svc.Snapshot(context.Background())
			require.True(t, snap.Empty())
			require.Zero(t, snap.ItemCount)
			require.Equal(t, 1, logs.Len())
		})
	}
}

func TestCountItems(t *testing.T) {
	t.Parallel()

	require.Zero(t, cart.CountItems(nil))
	require.Zero(t, cart.CountItems(&api.Cart{}))
	require.Equal(t, 5, cart.CountItems(&api.Cart{Items: []api.CartItem{{Quantity: 4}, {Quantity: 1}}}))
}
