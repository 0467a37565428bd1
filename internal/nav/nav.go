package nav

import (
	"strings"

	"uom-eshop.org/storefront/internal/session"
)

// Item represents a top-level navigation item.
type Item struct {
	Path  string // e.g. "/marketplace"
	Label string
}

// RenderedItem is a view model for templates.
type RenderedItem struct {
	Href   string
	Label  string
	Active bool
}

// public is the navigation shown to everyone.
var public = []Item{
	{Path: "/marketplace", Label: "Marketplace"},
	{Path: "/stores", Label: "Stores"},
	{Path: "/about", Label: "About"},
}

// customer extends the public navigation for signed-in customers.
var customer = []Item{
	{Path: "/dashboard", Label: "Dashboard"},
	{Path: "/dashboard/orders", Label: "My Orders"},
	{Path: "/cart", Label: "Cart"},
}

// store is the navigation for signed-in store owners.
var store = []Item{
	{Path: "/store", Label: "Dashboard"},
	{Path: "/store/products", Label: "My Products"},
	{Path: "/store/orders", Label: "Orders"},
}

// Build renders the navigation for the session's role with active
// state for the current path.
func Build(state session.State, currentPath string) []RenderedItem {
	if currentPath == "" {
		currentPath = "/"
	}
	items := append([]Item(nil), public...)
	switch {
	case state.HasRole(session.RoleStore):
		items = append(items, store...)
	case state.IsAuthenticated:
		items = append(items, customer...)
	}

	rendered := make([]RenderedItem, 0, len(items))
	for _, it := range items {
		rendered = append(rendered, RenderedItem{
			Href:   it.Path,
			Label:  it.Label,
			Active: isActive(it.Path, currentPath),
		})
	}
	return rendered
}

func isActive(itemPath, currentPath string) bool {
	if itemPath == "/" {
		return currentPath == "/"
	}
	if currentPath == itemPath {
		return true
	}
	// "/store" must not light up for "/stores"; only a path-segment
	// boundary counts as a child.
	return strings.HasPrefix(currentPath, itemPath+"/")
}
