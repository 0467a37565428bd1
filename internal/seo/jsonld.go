// Package seo builds schema.org JSON-LD payloads for the storefront
// pages so search engines can surface products and stores.
package seo

import "encoding/json"

// JSON marshals v to a compact JSON string. It returns an empty string
// on error; a broken structured-data block should never break a page.
func JSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}

// WebSite returns the WebSite schema with a SearchAction pointing at
// the marketplace search box.
func WebSite(name, baseURL string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "WebSite",
		"name":     name,
	}
	if baseURL != "" {
		m["url"] = baseURL
		m["potentialAction"] = map[string]any{
			"@type":       "SearchAction",
			"target":      baseURL + "/marketplace?q={search_term_string}",
			"query-input": "required name=search_term_string",
		}
	}
	return m
}

// ProductInfo is the subset of a catalog product the schema needs.
type ProductInfo struct {
	Title       string
	Brand       string
	Description string
	Price       float64
	InMarket    bool
	StoreName   string
}

// Product returns the Product schema with an embedded Offer.
func Product(p ProductInfo) map[string]any {
	availability := "https://schema.org/OutOfStock"
	if p.InMarket {
		availability = "https://schema.org/InStock"
	}
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Product",
		"name":     p.Title,
		"offers": map[string]any{
			"@type":         "Offer",
			"price":         p.Price,
			"priceCurrency": "EUR",
			"availability":  availability,
		},
	}
	if p.Brand != "" {
		m["brand"] = map[string]any{"@type": "Brand", "name": p.Brand}
	}
	if p.Description != "" {
		m["description"] = p.Description
	}
	if p.StoreName != "" {
		m["seller"] = map[string]any{"@type": "Organization", "name": p.StoreName}
	}
	return m
}

// Store returns the Organization schema for a marketplace store page.
func Store(name, owner string) map[string]any {
	m := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Organization",
		"name":     name,
	}
	if owner != "" {
		m["founder"] = map[string]any{"@type": "Person", "name": owner}
	}
	return m
}
