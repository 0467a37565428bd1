package httpserver

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"uom-eshop.org/storefront/internal/api"
)

type marketplaceView struct {
	Products []api.Product
	Filter   marketplaceFilter
}

// marketplaceFilter echoes the submitted filter form back into the
// template inputs.
type marketplaceFilter struct {
	Query    string
	Type     string
	Brand    string
	MinPrice string
	MaxPrice string
}

func (s *Server) handleMarketplace(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	form := marketplaceFilter{
		Query:    strings.TrimSpace(q.Get("q")),
		Type:     strings.TrimSpace(q.Get("type")),
		Brand:    strings.TrimSpace(q.Get("brand")),
		MinPrice: strings.TrimSpace(q.Get("min")),
		MaxPrice: strings.TrimSpace(q.Get("max")),
	}

	filter := api.ProductFilter{
		Title: form.Query,
		Type:  form.Type,
		Brand: form.Brand,
	}
	if v, err := strconv.ParseFloat(form.MinPrice, 64); err == nil {
		filter.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(form.MaxPrice, 64); err == nil {
		filter.MaxPrice = &v
	}

	products, err := s.api.Products(r.Context(), filter)
	if err != nil {
		s.failPage(w, r, err, "Marketplace")
		return
	}

	view := s.view(w, r, "Marketplace")
	view.Data = marketplaceView{Products: products, Filter: form}
	s.render(w, r, http.StatusOK, "marketplace", view)
}

type storesView struct {
	Stores []api.Store
}

func (s *Server) handleStores(w http.ResponseWriter, r *http.Request) {
	stores, err := s.api.Stores(r.Context())
	if err != nil {
		s.failPage(w, r, err, "Stores")
		return
	}
	view := s.view(w, r, "Stores")
	view.Data = storesView{Stores: stores}
	s.render(w, r, http.StatusOK, "stores", view)
}

type storeDetailView struct {
	Store    api.Store
	Products []api.Product
}

func (s *Server) handleStoreDetail(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, "storeID")
	if !ok {
		s.handleNotFound(w, r)
		return
	}

	store, err := s.api.Store(r.Context(), id)
	if err != nil {
		if notFoundStatus(err) {
			s.handleNotFound(w, r)
			return
		}
		s.failPage(w, r, err, "Store")
		return
	}
	if store == nil {
		s.failPage(w, r, errEmptyBackendBody, "Store")
		return
	}

	products, err := s.api.Products(r.Context(), api.ProductFilter{StoreID: &id})
	if err != nil {
		s.failPage(w, r, err, store.Name)
		return
	}

	view := s.view(w, r, store.Name)
	view.Data = storeDetailView{Store: *store, Products: products}
	s.render(w, r, http.StatusOK, "store_detail", view)
}

// notFoundStatus reports whether a backend failure was a plain 404.
func notFoundStatus(err error) bool {
	apiErr := api.Normalize(err)
	return apiErr != nil && apiErr.Status == http.StatusNotFound
}

func parseIDParam(r *http.Request, name string) (int64, bool) {
	raw, err := url.PathUnescape(chi.URLParam(r, name))
	if err != nil {
		return 0, false
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
