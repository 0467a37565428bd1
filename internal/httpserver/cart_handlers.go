package httpserver

import (
	"net/http"
	"strconv"

	"uom-eshop.org/storefront/internal/api"
	"uom-eshop.org/storefront/internal/cart"
)

type cartView struct {
	Snapshot cart.Snapshot
}

func (s *Server) handleCartView(w http.ResponseWriter, r *http.Request) {
	snapshot := s.cart.Snapshot(r.Context())

	view := s.view(w, r, "Your cart")
	view.CartCount = snapshot.ItemCount
	view.Data = cartView{Snapshot: snapshot}
	s.render(w, r, http.StatusOK, "cart", view)
}

func (s *Server) handleCartAdd(w http.ResponseWriter, r *http.Request) {
	productID, err := strconv.ParseInt(r.PostFormValue("productId"), 10, 64)
	if err != nil || productID <= 0 {
		setFlash(w, "That product could not be added.")
		http.Redirect(w, r, "/marketplace", http.StatusSeeOther)
		return
	}
	quantity := parseQuantity(r.PostFormValue("quantity"))

	if _, err := s.api.AddCartItem(r.Context(), productID, quantity); err != nil {
		s.failAction(w, r, err, backTo(r, "/marketplace"))
		return
	}
	setFlash(w, "Added to cart.")
	http.Redirect(w, r, backTo(r, "/cart"), http.StatusSeeOther)
}

func (s *Server) handleCartUpdate(w http.ResponseWriter, r *http.Request) {
	productID, ok := parseIDParam(r, "productID")
	if !ok {
		s.handleNotFound(w, r)
		return
	}
	quantity := parseQuantity(r.PostFormValue("quantity"))

	var err error
	if quantity <= 0 {
		_, err = s.api.RemoveCartItem(r.Context(), productID)
	} else {
		_, err = s.api.UpdateCartItem(r.Context(), productID, quantity)
	}
	if err != nil {
		s.failAction(w, r, err, "/cart")
		return
	}
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func (s *Server) handleCartRemove(w http.ResponseWriter, r *http.Request) {
	productID, ok := parseIDParam(r, "productID")
	if !ok {
		s.handleNotFound(w, r)
		return
	}
	if _, err := s.api.RemoveCartItem(r.Context(), productID); err != nil {
		// A line that is already gone is fine.
		if !isCartMiss(err) {
			s.failAction(w, r, err, "/cart")
			return
		}
	}
	http.Redirect(w, r, "/cart", http.StatusSeeOther)
}

func isCartMiss(err error) bool {
	apiErr := api.Normalize(err)
	return apiErr != nil && apiErr.Status == http.StatusNotFound
}

func parseQuantity(raw string) int {
	q, err := strconv.Atoi(raw)
	if err != nil {
		return 1
	}
	return q
}

// backTo returns the submitted return path when it is a safe relative
// target, otherwise the fallback.
func backTo(r *http.Request, fallback string) string {
	if next := safeNext(r.PostFormValue("back")); next != "" {
		return next
	}
	return fallback
}
