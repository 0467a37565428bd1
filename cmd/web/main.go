package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"uom-eshop.org/storefront/internal/api"
	"uom-eshop.org/storefront/internal/cart"
	"uom-eshop.org/storefront/internal/cms"
	"uom-eshop.org/storefront/internal/httpserver"
	"uom-eshop.org/storefront/internal/session"
)

func main() {
	var (
		tmplPath    string
		pubPath     string
		contentPath string
		addr        string
	)
	// Port resolution: prefer ESHOP_WEB_PORT, then PORT, else 3000.
	port := os.Getenv("ESHOP_WEB_PORT")
	if port == "" {
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = "3000"
	}
	flag.StringVar(&addr, "addr", ":"+port, "HTTP listen address")
	flag.StringVar(&tmplPath, "templates", "templates", "templates directory")
	flag.StringVar(&pubPath, "public", "public/assets", "public assets directory")
	flag.StringVar(&contentPath, "content", "content", "markdown content directory")
	flag.Parse()

	devMode := os.Getenv("ESHOP_WEB_DEV") != "" || os.Getenv("DEV") != ""

	logger, err := newLogger(devMode)
	if err != nil {
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	backendURL := os.Getenv("ESHOP_API_URL")
	if backendURL == "" {
		backendURL = "http://localhost:8080"
	}
	client, err := api.New(backendURL)
	if err != nil {
		logger.Fatal("backend client", zap.Error(err))
	}

	store, err := session.NewCookieStore(session.CookieStoreConfig{
		HashKey:  sessionKey(logger, "ESHOP_SESSION_HASH_KEY"),
		BlockKey: decodeKey(os.Getenv("ESHOP_SESSION_BLOCK_KEY")),
		Secure:   os.Getenv("ESHOP_COOKIE_SECURE") != "",
	})
	if err != nil {
		logger.Fatal("session store", zap.Error(err))
	}
	sessions := session.NewManager(client, store)

	renderer, err := httpserver.NewRenderer(tmplPath, devMode)
	if err != nil {
		logger.Fatal("templates", zap.Error(err))
	}

	server, err := httpserver.New(httpserver.Config{
		API:       client,
		Sessions:  sessions,
		Cart:      cart.NewService(client, logger),
		Content:   cms.NewLibrary(cms.WithDir(contentPath)),
		Renderer:  renderer,
		Logger:    logger,
		PublicDir: pubPath,
		CSRF: httpserver.CSRFConfig{
			Secure: os.Getenv("ESHOP_COOKIE_SECURE") != "",
		},
	})
	if err != nil {
		logger.Fatal("server", zap.Error(err))
	}

	srv := &http.Server{
		Addr:              addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("web listening",
			zap.String("addr", addr),
			zap.String("backend", backendURL),
			zap.Bool("dev", devMode),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("listen", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown", zap.Error(err))
	}
	logger.Info("web stopped")
}

func newLogger(dev bool) (*zap.Logger, error) {
	if dev {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// sessionKey reads a hex-encoded key from the environment, generating
// an ephemeral one when unset. Ephemeral keys invalidate sessions on
// restart, so production deployments must set the variable.
func sessionKey(logger *zap.Logger, envVar string) []byte {
	if key := decodeKey(os.Getenv(envVar)); key != nil {
		return key
	}
	logger.Warn("generated ephemeral session key; set for stable sessions",
		zap.String("env", envVar),
	)
	key := make([]byte, 32)
	_, _ = rand.Read(key)
	return key
}

func decodeKey(raw string) []byte {
	if raw == "" {
		return nil
	}
	if key, err := hex.DecodeString(raw); err == nil {
		return key
	}
	return []byte(raw)
}
