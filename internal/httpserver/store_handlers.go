package httpserver

import (
	"net/http"
	"strconv"
	"strings"

	"uom-eshop.org/storefront/internal/api"
)

type storeDashboardView struct {
	Stats api.StoreStats
}

func (s *Server) handleStoreDashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := s.api.StoreStats(r.Context())
	if err != nil {
		s.failPage(w, r, err, "Store dashboard")
		return
	}
	if stats == nil {
		s.failPage(w, r, errEmptyBackendBody, "Store dashboard")
		return
	}

	view := s.view(w, r, "Store dashboard")
	view.Data = storeDashboardView{Stats: *stats}
	s.render(w, r, http.StatusOK, "store_dashboard", view)
}

type storeProductsView struct {
	Products []api.Product
}

func (s *Server) handleStoreProducts(w http.ResponseWriter, r *http.Request) {
	products, err := s.api.StoreProducts(r.Context())
	if err != nil {
		s.failPage(w, r, err, "My products")
		return
	}

	view := s.view(w, r, "My products")
	view.Data = storeProductsView{Products: products}
	s.render(w, r, http.StatusOK, "store_products", view)
}

func (s *Server) handleProductCreate(w http.ResponseWriter, r *http.Request) {
	product, msg := productFromForm(r)
	if msg != "" {
		setFlash(w, msg)
		http.Redirect(w, r, "/store/products", http.StatusSeeOther)
		return
	}

	if _, err := s.api.CreateProduct(r.Context(), product); err != nil {
		s.failAction(w, r, err, "/store/products")
		return
	}
	setFlash(w, "Product created.")
	http.Redirect(w, r, "/store/products", http.StatusSeeOther)
}

func (s *Server) handleProductUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, "productID")
	if !ok {
		s.handleNotFound(w, r)
		return
	}

	product, msg := productFromForm(r)
	if msg != "" {
		setFlash(w, msg)
		http.Redirect(w, r, "/store/products", http.StatusSeeOther)
		return
	}

	if _, err := s.api.UpdateProduct(r.Context(), id, product); err != nil {
		s.failAction(w, r, err, "/store/products")
		return
	}
	setFlash(w, "Product updated.")
	http.Redirect(w, r, "/store/products", http.StatusSeeOther)
}

func (s *Server) handleProductStock(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, "productID")
	if !ok {
		s.handleNotFound(w, r)
		return
	}

	quantity, err := strconv.Atoi(r.PostFormValue("stockQuantity"))
	if err != nil || quantity < 0 {
		setFlash(w, "Stock must be zero or a positive number.")
		http.Redirect(w, r, "/store/products", http.StatusSeeOther)
		return
	}

	if _, err := s.api.UpdateProductStock(r.Context(), id, quantity); err != nil {
		s.failAction(w, r, err, "/store/products")
		return
	}
	http.Redirect(w, r, "/store/products", http.StatusSeeOther)
}

func (s *Server) handleProductDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := parseIDParam(r, "productID")
	if !ok {
		s.handleNotFound(w, r)
		return
	}

	if err := s.api.DeleteProduct(r.Context(), id); err != nil {
		s.failAction(w, r, err, "/store/products")
		return
	}
	setFlash(w, "Product removed.")
	http.Redirect(w, r, "/store/products", http.StatusSeeOther)
}

func (s *Server) handleStoreOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := s.api.StoreOrders(r.Context())
	if err != nil {
		s.failPage(w, r, err, "Store orders")
		return
	}

	view := s.view(w, r, "Store orders")
	view.Data = ordersView{Orders: orders}
	s.render(w, r, http.StatusOK, "store_orders", view)
}

// productFromForm parses the shared create/update form. The returned
// message is empty when the form is valid.
func productFromForm(r *http.Request) (api.ProductUpsert, string) {
	product := api.ProductUpsert{
		Title:       strings.TrimSpace(r.PostFormValue("title")),
		Type:        strings.TrimSpace(r.PostFormValue("type")),
		Brand:       strings.TrimSpace(r.PostFormValue("brand")),
		Description: strings.TrimSpace(r.PostFormValue("description")),
	}
	if product.Title == "" {
		return product, "A product title is required."
	}

	price, err := strconv.ParseFloat(r.PostFormValue("price"), 64)
	if err != nil || price < 0 {
		return product, "The price must be zero or a positive number."
	}
	product.Price = price

	stock, err := strconv.Atoi(r.PostFormValue("stockQuantity"))
	if err != nil || stock < 0 {
		return product, "Stock must be zero or a positive number."
	}
	product.StockQuantity = stock

	return product, ""
}
