package httpserver

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"uom-eshop.org/storefront/internal/api"
	"uom-eshop.org/storefront/internal/cart"
	"uom-eshop.org/storefront/internal/cms"
	"uom-eshop.org/storefront/internal/session"
)

// Config holds the collaborators and runtime options for the storefront
// HTTP server.
type Config struct {
	API      *api.Client
	Sessions *session.Manager
	Cart     *cart.Service
	Content  *cms.Library
	Renderer *Renderer
	Logger   *zap.Logger

	PublicDir string
	CSRF      CSRFConfig
}

// Server renders the storefront pages against the backend API.
type Server struct {
	api      *api.Client
	sessions *session.Manager
	cart     *cart.Service
	content  *cms.Library
	renderer *Renderer
	logger   *zap.Logger

	publicDir string
	csrf      CSRFConfig
}

// New validates the configuration and builds the server.
func New(cfg Config) (*Server, error) {
	if cfg.API == nil {
		return nil, errors.New("httpserver: API client is required")
	}
	if cfg.Sessions == nil {
		return nil, errors.New("httpserver: session manager is required")
	}
	if cfg.Cart == nil {
		return nil, errors.New("httpserver: cart service is required")
	}
	if cfg.Renderer == nil {
		return nil, errors.New("httpserver: renderer is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	content := cfg.Content
	if content == nil {
		content = cms.NewLibrary()
	}
	return &Server{
		api:       cfg.API,
		sessions:  cfg.Sessions,
		cart:      cfg.Cart,
		content:   content,
		renderer:  cfg.Renderer,
		logger:    logger,
		publicDir: cfg.PublicDir,
		csrf:      cfg.CSRF.withDefaults(),
	}, nil
}

// Handler assembles the middleware stack and route table.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(s.requestLogger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(session.Middleware(s.sessions))
	r.Use(s.csrfProtect)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	if s.publicDir != "" {
		assets := http.StripPrefix("/assets/", http.FileServer(http.Dir(s.publicDir)))
		r.Handle("/assets/*", assets)
	}

	// Public pages
	r.Get("/", s.handleLanding)
	r.Get("/about", s.handleAbout)
	r.Get("/marketplace", s.handleMarketplace)
	r.Get("/stores", s.handleStores)
	r.Get("/stores/{storeID}", s.handleStoreDetail)
	r.Get("/unauthorized", s.handleUnauthorized)

	// Auth
	r.Get("/login", s.handleLoginForm)
	r.Post("/login", s.handleLogin)
	r.Get("/register", s.handleRegisterForm)
	r.Post("/register", s.handleRegister)
	r.Post("/logout", s.handleLogout)

	// Customer area
	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Use(s.requireRole(session.RoleCustomer))

		r.Get("/cart", s.handleCartView)
		r.Post("/cart/items", s.handleCartAdd)
		r.Post("/cart/items/{productID}", s.handleCartUpdate)
		r.Post("/cart/items/{productID}/remove", s.handleCartRemove)

		r.Get("/checkout", s.handleCheckoutForm)
		r.Post("/checkout", s.handleCheckout)

		r.Get("/dashboard", s.handleCustomerDashboard)
		r.Get("/dashboard/orders", s.handleCustomerOrders)
	})

	// Store owner area
	r.Group(func(r chi.Router) {
		r.Use(s.requireAuth)
		r.Use(s.requireRole(session.RoleStore))

		r.Get("/store", s.handleStoreDashboard)
		r.Get("/store/products", s.handleStoreProducts)
		r.Post("/store/products", s.handleProductCreate)
		r.Post("/store/products/{productID}", s.handleProductUpdate)
		r.Post("/store/products/{productID}/stock", s.handleProductStock)
		r.Post("/store/products/{productID}/delete", s.handleProductDelete)
		r.Get("/store/orders", s.handleStoreOrders)
	})

	r.NotFound(s.handleNotFound)
	return r
}
