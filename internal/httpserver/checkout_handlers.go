package httpserver

import (
	"net/http"
	"strings"

	"github.com/oklog/ulid/v2"

	"uom-eshop.org/storefront/internal/api"
	"uom-eshop.org/storefront/internal/cart"
)

type checkoutView struct {
	Snapshot cart.Snapshot
	Form     checkoutForm
}

type checkoutForm struct {
	CardNumber     string
	CardHolderName string
	ExpiryDate     string
	CVV            string
}

func (s *Server) handleCheckoutForm(w http.ResponseWriter, r *http.Request) {
	snapshot := s.cart.Snapshot(r.Context())
	if snapshot.Empty() {
		setFlash(w, "Your cart is empty.")
		http.Redirect(w, r, "/cart", http.StatusSeeOther)
		return
	}

	view := s.view(w, r, "Checkout")
	view.CartCount = snapshot.ItemCount
	view.Data = checkoutView{Snapshot: snapshot}
	s.render(w, r, http.StatusOK, "checkout", view)
}

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	form := checkoutForm{
		CardNumber:     strings.TrimSpace(r.PostFormValue("cardNumber")),
		CardHolderName: strings.TrimSpace(r.PostFormValue("cardHolderName")),
		ExpiryDate:     strings.TrimSpace(r.PostFormValue("expiryDate")),
		CVV:            strings.TrimSpace(r.PostFormValue("cvv")),
	}

	if msg := validateCheckoutForm(form); msg != "" {
		snapshot := s.cart.Snapshot(r.Context())
		view := s.view(w, r, "Checkout")
		view.CartCount = snapshot.ItemCount
		view.Error = msg
		view.Data = checkoutView{Snapshot: snapshot, Form: form}
		s.render(w, r, http.StatusUnprocessableEntity, "checkout", view)
		return
	}

	payment := api.PaymentRequest{
		CardNumber:     form.CardNumber,
		CardHolderName: form.CardHolderName,
		ExpiryDate:     form.ExpiryDate,
		CVV:            form.CVV,
	}

	// The key makes a double submit replay the first attempt instead of
	// charging twice.
	key := ulid.Make().String()
	result, err := s.api.Checkout(r.Context(), payment, key)
	if err != nil {
		s.failAction(w, r, err, "/checkout")
		return
	}
	if result == nil {
		s.failAction(w, r, errEmptyBackendBody, "/checkout")
		return
	}

	if !strings.EqualFold(result.PaymentStatus, "SUCCESS") {
		snapshot := s.cart.Snapshot(r.Context())
		view := s.view(w, r, "Checkout")
		view.CartCount = snapshot.ItemCount
		view.Error = paymentFailureMessage(result)
		view.Data = checkoutView{Snapshot: snapshot, Form: form}
		s.render(w, r, http.StatusUnprocessableEntity, "checkout", view)
		return
	}

	if _, err := s.api.CompleteOrder(r.Context()); err != nil {
		s.failAction(w, r, err, "/checkout")
		return
	}

	setFlash(w, "Order placed. Thank you!")
	http.Redirect(w, r, "/dashboard/orders", http.StatusSeeOther)
}

func validateCheckoutForm(form checkoutForm) string {
	switch {
	case form.CardNumber == "", form.CardHolderName == "", form.ExpiryDate == "", form.CVV == "":
		return "All payment fields are required."
	case len(stripSpaces(form.CardNumber)) < 12:
		return "The card number looks too short."
	case len(form.CVV) < 3 || len(form.CVV) > 4:
		return "The CVV must be 3 or 4 digits."
	default:
		return ""
	}
}

func paymentFailureMessage(result *api.CheckoutResult) string {
	if result != nil && strings.TrimSpace(result.Message) != "" {
		return result.Message
	}
	return "Payment was declined. Please check your card details."
}

func stripSpaces(s string) string {
	return strings.ReplaceAll(strings.ReplaceAll(s, " ", ""), "-", "")
}
