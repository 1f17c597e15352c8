package main

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pnoren1/Course-App-sub003/internal/api"
	"github.com/pnoren1/Course-App-sub003/internal/config"
	internaldb "github.com/pnoren1/Course-App-sub003/internal/db"
	"github.com/pnoren1/Course-App-sub003/internal/db/repository"
	"github.com/pnoren1/Course-App-sub003/internal/identity"
	"github.com/pnoren1/Course-App-sub003/internal/middleware"
	"github.com/pnoren1/Course-App-sub003/internal/service/security"
)

func main() {
	ctx := context.Background()

	// Load .env file (if present)
	if err := config.LoadDotEnv(".env"); err != nil {
		slog.Warn("could not load .env", "error", err)
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.SlogLevel(),
	}))
	slog.SetDefault(logger)
	for _, w := range cfg.Warnings {
		logger.Warn(w)
	}

	if !cfg.Auth.OIDCEnabled() && cfg.Auth.JWTSecret == "" && !cfg.IsProduction() {
		logger.Warn("no identity provider or JWT secret configured, using the dev secret")
		cfg.Auth.JWTSecret = "dev-secret-change-in-production"
	}
	if err := cfg.Auth.Validate(); err != nil {
		logger.Error("invalid auth configuration", "error", err)
		os.Exit(1)
	}

	// Open the profile store with hardened connection settings.
	// Privileged: single-connection pool for serialized writes and
	// policy-bypassing profile reads. Scoped: 4-connection read pool for
	// directory counts.
	priv, scoped, err := internaldb.OpenHandles(cfg.ProfileDBPath, 4)
	if err != nil {
		logger.Error("failed to open profile store", "path", cfg.ProfileDBPath, "error", err)
		os.Exit(1)
	}
	defer func() { _ = internaldb.Close(priv, scoped) }()

	logger.Info("running profile store migrations")
	if err := internaldb.RunMigrations(priv.DB); err != nil {
		logger.Error("migration failed", "error", err)
		os.Exit(1)
	}

	profileRepo := repository.NewProfileRepo(priv)
	directoryRepo := repository.NewDirectoryRepo(scoped)

	validator, err := buildTokenValidator(ctx, &cfg.Auth, logger)
	if err != nil {
		logger.Error("failed to configure token validation", "error", err)
		os.Exit(1)
	}

	resolver := identity.NewResolver(validator, cfg.Auth.VerifyTimeout)
	guard := security.NewGuard(resolver, profileRepo, cfg.Auth.SessionCookie, logger)
	recipientSvc := security.NewRecipientService(directoryRepo)
	profileSvc := security.NewProfileService(profileRepo, cfg.Auth.BootstrapAdmin, logger)

	handler := api.NewHandler(guard, recipientSvc, profileSvc, logger)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.RateLimiter(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		Burst:             cfg.RateLimitBurst,
	}))
	r.Mount("/", handler.Routes())

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	logger.Info("admin API listening",
		"addr", cfg.ListenAddr,
		"tls", cfg.TLSCertFile != "",
		"oidc", cfg.Auth.OIDCEnabled())
	logger.Info("try: curl http://" + curlHostForListenAddr(cfg.ListenAddr) + "/healthz")

	if cfg.TLSCertFile != "" && cfg.TLSKeyFile != "" {
		err = srv.ListenAndServeTLS(cfg.TLSCertFile, cfg.TLSKeyFile)
	} else {
		err = srv.ListenAndServe()
	}
	if err != nil && err != http.ErrServerClosed {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// buildTokenValidator picks the token verification strategy from config:
// OIDC discovery when an issuer is set, a fixed JWKS endpoint when only the
// JWKS URL is set, otherwise the HS256 shared secret for local development.
func buildTokenValidator(ctx context.Context, auth *config.AuthConfig, logger *slog.Logger) (identity.TokenValidator, error) {
	switch {
	case auth.IssuerURL != "" && auth.JWKSURL == "":
		logger.Info("token validation via OIDC discovery", "issuer", auth.IssuerURL)
		return identity.NewOIDCValidator(ctx, auth.IssuerURL, auth.Audience, auth.AllowedIssuers)
	case auth.JWKSURL != "":
		logger.Info("token validation via JWKS endpoint", "jwks_url", auth.JWKSURL)
		return identity.NewOIDCValidatorFromJWKS(ctx, auth.JWKSURL, auth.IssuerURL, auth.Audience, auth.AllowedIssuers)
	default:
		logger.Warn("token validation via HS256 shared secret (development mode)")
		return identity.NewHS256Validator(auth.JWTSecret)
	}
}

// curlHostForListenAddr turns a listen address into something pasteable into
// a curl command. Wildcard hosts become localhost.
func curlHostForListenAddr(listenAddr string) string {
	addr := strings.TrimSpace(listenAddr)
	if addr == "" {
		return "localhost:8080"
	}

	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return addr
	}
	switch host {
	case "", "0.0.0.0", "::":
		host = "localhost"
	}
	return net.JoinHostPort(host, port)
}
