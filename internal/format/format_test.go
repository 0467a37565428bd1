package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPrice(t *testing.T) {
	t.Parallel()

	tests := []struct {
		amount float64
		want   string
	}{
		{0, "€0.00"},
		{9.99, "€9.99"},
		{1234.5, "€1,234.50"},
		{1000000, "€1,000,000.00"},
		{-42.25, "-€42.25"},
		{0.005, "€0.01"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, Price(tt.amount))
	}
}

func TestDate(t *testing.T) {
	t.Parallel()

	require.Empty(t, Date(time.Time{}))
	require.Equal(t, "Mar 5, 2025", Date(time.Date(2025, 3, 5, 10, 0, 0, 0, time.UTC)))
	require.Equal(t, "Mar 5, 2025 10:30", DateTime(time.Date(2025, 3, 5, 10, 30, 0, 0, time.UTC)))
}

func TestPlural(t *testing.T) {
	t.Parallel()

	require.Equal(t, "1 item", Plural(1, "item", "items"))
	require.Equal(t, "0 items", Plural(0, "item", "items"))
	require.Equal(t, "4 items", Plural(4, "item", "items"))
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	require.Equal(t, "short", Truncate("short", 10))
	require.Equal(t, "long…", Truncate("long description here", 4))
	require.Empty(t, Truncate("anything", 0))
}
