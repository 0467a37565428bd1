package api

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseJSONEmptyBody(t *testing.T) {
	t.Parallel()

	for _, body := range [][]byte{nil, {}, []byte("   "), []byte("\n\t ")} {
		parsed, err := ParseJSON[Cart](body)
		require.NoError(t, err)
		require.Nil(t, parsed)
	}
}

func TestParseJSONMalformedBodyPropagates(t *testing.T) {
	t.Parallel()

	_, err := ParseJSON[Cart]([]byte("{not json"))
	require.Error(t, err)
}

func TestParseJSONDecodesValue(t *testing.T) {
	t.Parallel()

	cart, err := ParseJSON[Cart]([]byte(`{"cartId":3,"items":[{"productId":1,"quantity":2}],"totalPrice":19.9}`))
	require.NoError(t, err)
	require.NotNil(t, cart)
	require.NotNil(t, cart.CartID)
	require.EqualValues(t, 3, *cart.CartID)
	require.Len(t, cart.Items, 1)
	require.Equal(t, 2, cart.Items[0].Quantity)
	require.InDelta(t, 19.9, cart.TotalPrice, 1e-9)
}
