package httpserver

import (
	"net/http"
	"strings"

	"uom-eshop.org/storefront/internal/api"
	"uom-eshop.org/storefront/internal/session"
)

type loginView struct {
	Next     string
	Username string
	Notice   string
}

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	state := session.FromContext(r.Context())
	if state.IsAuthenticated {
		http.Redirect(w, r, homeFor(state), http.StatusSeeOther)
		return
	}
	view := s.view(w, r, "Sign in")
	view.Data = loginView{Next: safeNext(r.URL.Query().Get("next"))}
	s.render(w, r, http.StatusOK, "login", view)
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	creds := session.Credentials{
		Username: strings.TrimSpace(r.PostFormValue("username")),
		Password: r.PostFormValue("password"),
	}
	next := safeNext(r.PostFormValue("next"))

	if creds.Username == "" || creds.Password == "" {
		view := s.view(w, r, "Sign in")
		view.Error = "Username and password are required."
		view.Data = loginView{Next: next, Username: creds.Username}
		s.render(w, r, http.StatusUnprocessableEntity, "login", view)
		return
	}

	state, err := s.sessions.Login(r.Context(), w, creds)
	if err != nil {
		view := s.view(w, r, "Sign in")
		view.Error = api.ErrorMessage(err, "Login failed. Please try again.")
		view.Data = loginView{Next: next, Username: creds.Username}
		s.render(w, r, http.StatusUnauthorized, "login", view)
		return
	}

	if next == "" {
		next = homeFor(state)
	}
	http.Redirect(w, r, next, http.StatusSeeOther)
}

type registerView struct {
	Form   api.RegisterRequest
	Notice string
}

func (s *Server) handleRegisterForm(w http.ResponseWriter, r *http.Request) {
	state := session.FromContext(r.Context())
	if state.IsAuthenticated {
		http.Redirect(w, r, homeFor(state), http.StatusSeeOther)
		return
	}
	view := s.view(w, r, "Create account")
	view.Data = registerView{}
	s.render(w, r, http.StatusOK, "register", view)
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	form := api.RegisterRequest{
		Username:  strings.TrimSpace(r.PostFormValue("username")),
		Email:     strings.TrimSpace(r.PostFormValue("email")),
		Password:  r.PostFormValue("password"),
		Role:      string(session.ParseRole(r.PostFormValue("role"))),
		FirstName: strings.TrimSpace(r.PostFormValue("firstName")),
		LastName:  strings.TrimSpace(r.PostFormValue("lastName")),
		TaxID:     strings.TrimSpace(r.PostFormValue("taxId")),
		StoreName: strings.TrimSpace(r.PostFormValue("storeName")),
		OwnerName: strings.TrimSpace(r.PostFormValue("ownerName")),
	}

	if form.Username == "" || form.Email == "" || form.Password == "" {
		view := s.view(w, r, "Create account")
		view.Error = "Username, email and password are required."
		view.Data = registerView{Form: form}
		s.render(w, r, http.StatusUnprocessableEntity, "register", view)
		return
	}

	if _, err := s.sessions.Register(r.Context(), w, form); err != nil {
		view := s.view(w, r, "Create account")
		view.Error = api.ErrorMessage(err, "Registration failed. Please try again.")
		view.Data = registerView{Form: form}
		s.render(w, r, http.StatusUnprocessableEntity, "register", view)
		return
	}

	// Registration does not issue a token; the account must sign in.
	setFlash(w, "Account created. Please sign in.")
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	s.sessions.Logout(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// homeFor picks the landing page for an authenticated session.
func homeFor(state session.State) string {
	if state.HasRole(session.RoleStore) {
		return "/store"
	}
	return "/dashboard"
}

// safeNext only allows same-site relative redirect targets.
func safeNext(next string) string {
	if next == "" || !strings.HasPrefix(next, "/") || strings.HasPrefix(next, "//") {
		return ""
	}
	return next
}
