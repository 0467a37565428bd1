package status

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOrderBadges(t *testing.T) {
	t.Parallel()

	require.Equal(t, Badge{Label: "Pending", Tone: ToneWarning}, Order("PENDING"))
	require.Equal(t, Badge{Label: "Completed", Tone: ToneSuccess}, Order("completed"))
	require.Equal(t, Badge{Label: "Cancelled", Tone: ToneDanger}, Order(" CANCELLED "))
	require.Equal(t, Badge{Label: "SHIPPED", Tone: ToneNeutral}, Order("SHIPPED"))
	require.Equal(t, Badge{Label: "Unknown", Tone: ToneNeutral}, Order(""))
}

func TestStockBadges(t *testing.T) {
	t.Parallel()

	require.Equal(t, ToneDanger, Stock(0).Tone)
	require.Equal(t, ToneWarning, Stock(3).Tone)
	require.Equal(t, ToneSuccess, Stock(50).Tone)
}
