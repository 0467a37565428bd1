package httpserver

import (
	"errors"
	"net/http"
	"net/url"

	"go.uber.org/zap"

	"uom-eshop.org/storefront/internal/api"
	"uom-eshop.org/storefront/internal/nav"
	"uom-eshop.org/storefront/internal/session"
)

// errEmptyBackendBody marks a 2xx backend reply that carried none of
// the payload the page needed.
var errEmptyBackendBody = errors.New("backend returned an empty response")

// isAuthPage reports whether the path renders its own credential form.
// Expired-session redirects are suppressed there so a failed login does
// not bounce the visitor back to the same page.
func isAuthPage(path string) bool {
	return path == "/login" || path == "/register"
}

// failPage handles a backend error for a full-page request: an expired
// session clears the cookies and redirects to login, anything else
// renders the error page with the normalized message.
func (s *Server) failPage(w http.ResponseWriter, r *http.Request, err error, title string) {
	if api.SessionExpired(err) && !isAuthPage(r.URL.Path) {
		s.expireSession(w, r)
		return
	}
	s.logger.Warn("backend request failed",
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	view := s.view(w, r, title)
	view.Error = api.ErrorMessage(err, "Something went wrong. Please try again.")
	s.render(w, r, http.StatusBadGateway, "error", view)
}

// failAction handles a backend error for a form submission: an expired
// session redirects to login, anything else flashes the message and
// sends the visitor back where they came from.
func (s *Server) failAction(w http.ResponseWriter, r *http.Request, err error, backTo string) {
	if api.SessionExpired(err) && !isAuthPage(r.URL.Path) {
		s.expireSession(w, r)
		return
	}
	s.logger.Warn("backend action failed",
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)
	setFlash(w, api.ErrorMessage(err, "Something went wrong. Please try again."))
	http.Redirect(w, r, backTo, http.StatusSeeOther)
}

// expireSession clears the persisted session and bounces to login with
// the original destination preserved.
func (s *Server) expireSession(w http.ResponseWriter, r *http.Request) {
	s.sessions.Logout(w)
	dest := "/login"
	if r.Method == http.MethodGet && r.URL.Path != "/" {
		dest += "?next=" + url.QueryEscape(r.URL.RequestURI())
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

// render executes the page or falls back to a plain 500 when the
// template itself fails.
func (s *Server) render(w http.ResponseWriter, r *http.Request, status int, page string, view View) {
	if err := s.renderer.Render(w, status, page, view); err != nil {
		s.logger.Error("render failed",
			zap.String("page", page),
			zap.Error(err),
		)
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

// view assembles the common page envelope: session state, navigation,
// cart badge, pending flash and the CSRF token for forms.
func (s *Server) view(w http.ResponseWriter, r *http.Request, title string) View {
	state := session.FromContext(r.Context())
	v := View{
		Title:      title,
		Path:       r.URL.Path,
		State:      state,
		IsCustomer: state.IsAuthenticated && state.HasRole(session.RoleCustomer),
		IsStore:    state.IsAuthenticated && state.HasRole(session.RoleStore),
		Flash:      popFlash(w, r),
		CSRF:       csrfFromContext(r.Context()),
	}
	if v.IsCustomer {
		v.CartCount = s.cart.Snapshot(r.Context()).ItemCount
	}
	v.Nav = nav.Build(state, r.URL.Path)
	return v
}
