package seo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductSchema(t *testing.T) {
	out := JSON(Product(ProductInfo{
		Title:     "Espresso Beans",
		Brand:     "Aroma",
		Price:     12.5,
		InMarket:  true,
		StoreName: "Corner Cafe",
	}))

	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &m))
	assert.Equal(t, "Product", m["@type"])
	assert.Equal(t, "Espresso Beans", m["name"])

	offers := m["offers"].(map[string]any)
	assert.Equal(t, 12.5, offers["price"])
	assert.Equal(t, "https://schema.org/InStock", offers["availability"])
}

func TestProductSchemaOutOfStock(t *testing.T) {
	out := JSON(Product(ProductInfo{Title: "Mug", Price: 9}))

	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &m))
	offers := m["offers"].(map[string]any)
	assert.Equal(t, "https://schema.org/OutOfStock", offers["availability"])
	assert.NotContains(t, m, "brand")
}

func TestWebSiteSchemaSearchAction(t *testing.T) {
	out := JSON(WebSite("UoM eShop", "https://shop.example.org"))

	var m map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &m))
	action := m["potentialAction"].(map[string]any)
	assert.Contains(t, action["target"], "/marketplace?q=")
}

func TestJSONSwallowsMarshalErrors(t *testing.T) {
	assert.Equal(t, "", JSON(func() {}))
}
