package httpserver

import (
	"net/http"

	"uom-eshop.org/storefront/internal/api"
)

const recentOrderCount = 5

type customerDashboardView struct {
	Stats  api.CustomerStats
	Recent []api.Order
}

func (s *Server) handleCustomerDashboard(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	stats, err := s.api.CustomerStats(ctx)
	if err != nil {
		s.failPage(w, r, err, "Dashboard")
		return
	}
	if stats == nil {
		s.failPage(w, r, errEmptyBackendBody, "Dashboard")
		return
	}

	recent, err := s.api.RecentOrders(ctx, recentOrderCount)
	if err != nil {
		s.failPage(w, r, err, "Dashboard")
		return
	}

	view := s.view(w, r, "Dashboard")
	view.Data = customerDashboardView{Stats: *stats, Recent: recent}
	s.render(w, r, http.StatusOK, "dashboard", view)
}

type ordersView struct {
	Orders []api.Order
}

func (s *Server) handleCustomerOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := s.api.CustomerOrders(r.Context())
	if err != nil {
		s.failPage(w, r, err, "My orders")
		return
	}

	view := s.view(w, r, "My orders")
	view.Data = ordersView{Orders: orders}
	s.render(w, r, http.StatusOK, "orders", view)
}
