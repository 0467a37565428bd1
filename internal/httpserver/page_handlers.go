package httpserver

import (
	"errors"
	"net/http"

	"uom-eshop.org/storefront/internal/api"
	"uom-eshop.org/storefront/internal/cms"
)

const featuredProductCount = 8

type landingView struct {
	Featured []api.Product
	Stores   []api.Store
}

func (s *Server) handleLanding(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data := landingView{}

	// The landing page stays up even when the backend is unreachable.
	if products, err := s.api.Products(ctx, api.ProductFilter{}); err == nil {
		if len(products) > featuredProductCount {
			products = products[:featuredProductCount]
		}
		data.Featured = products
	} else if api.SessionExpired(err) {
		s.expireSession(w, r)
		return
	}
	if stores, err := s.api.Stores(ctx); err == nil {
		data.Stores = stores
	}

	view := s.view(w, r, "Marketplace for local stores")
	view.Data = data
	s.render(w, r, http.StatusOK, "landing", view)
}

type aboutView struct {
	Page cms.Page
}

func (s *Server) handleAbout(w http.ResponseWriter, r *http.Request) {
	page, err := s.content.Page("about")
	if err != nil {
		if errors.Is(err, cms.ErrNotFound) {
			s.handleNotFound(w, r)
			return
		}
		s.failPage(w, r, err, "About")
		return
	}
	view := s.view(w, r, page.Title)
	view.Data = aboutView{Page: page}
	s.render(w, r, http.StatusOK, "about", view)
}

func (s *Server) handleUnauthorized(w http.ResponseWriter, r *http.Request) {
	view := s.view(w, r, "Not allowed")
	s.render(w, r, http.StatusForbidden, "unauthorized", view)
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	view := s.view(w, r, "Page not found")
	s.render(w, r, http.StatusNotFound, "notfound", view)
}
