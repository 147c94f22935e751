package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	_ "github.com/danielgtaylor/huma/v2/formats/cbor"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/pathlet/pathlet-api/internal/config"
	"github.com/pathlet/pathlet-api/internal/http/health"
	"github.com/pathlet/pathlet-api/internal/http/v1/info"
	"github.com/pathlet/pathlet-api/internal/http/v1/routes"
	"github.com/pathlet/pathlet-api/internal/platform/firebase"
	applog "github.com/pathlet/pathlet-api/internal/platform/logging"
	appmiddleware "github.com/pathlet/pathlet-api/internal/platform/middleware"
	"github.com/pathlet/pathlet-api/internal/platform/respond"
	"github.com/pathlet/pathlet-api/internal/service/narrative"
	"github.com/pathlet/pathlet-api/internal/service/reading"
)

// Version can be overridden at build time: -ldflags "-X main.Version=1.2.3"
var Version = "dev"

const docsPath = "/docs"

func main() {
	defer func() {
		if err := applog.Sync(); err != nil {
			applog.LogError(context.Background(), "logger sync error", err)
		}
	}()
	if err := applog.Err(); err != nil {
		applog.LogError(context.Background(), "logger init error", err)
	}

	cfg, err := config.Load()
	if err != nil {
		applog.LogFatal(context.Background(), "invalid configuration", err)
	}
	if cfg.Version == "dev" {
		cfg.Version = Version
	}
	if err := applog.SetLevel(cfg.Log.Level); err != nil {
		applog.LogError(context.Background(), "invalid log level", err)
	}
	applog.SetProjectID(cfg.GCP.ProjectID)

	ctx := context.Background()
	gen, closeGen, err := newGenerator(ctx, cfg)
	if err != nil {
		applog.LogFatal(ctx, "narrative setup failed", err)
	}
	defer func() {
		if err := closeGen(); err != nil {
			applog.LogError(context.Background(), "narrative shutdown error", err)
		}
	}()

	svc := reading.New(
		reading.WithGenerator(gen),
		reading.WithNarrativeTimeout(cfg.Narrative.Timeout),
	)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           newRouter(cfg, svc, gen.Provider()),
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
		MaxHeaderBytes:    64 << 10, // 64 KB
	}

	listenErr := make(chan error, 1)
	go func() {
		applog.LogInfo(context.Background(), "server listening",
			zap.String("addr", srv.Addr),
			zap.String("narrativeProvider", gen.Provider()),
			zap.String("narrativeCache", cfg.Narrative.Cache.Backend),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			listenErr <- err
		}
	}()

	// Graceful shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-listenErr:
		applog.LogFatal(context.Background(), "listen failed", err, zap.String("addr", srv.Addr))
	case <-stop:
		applog.LogInfo(context.Background(), "shutdown signal received")
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		applog.LogError(shutdownCtx, "server shutdown error", err)
	}
	applog.LogInfo(context.Background(), "server exited")
}

// newRouter builds the HTTP handler: base middleware, the plain health probe
// and every huma operation.
func newRouter(cfg *config.Config, svc *reading.Service, provider string) http.Handler {
	router := chi.NewRouter()
	router.NotFound(respond.NotFoundHandler())
	router.MethodNotAllowed(respond.MethodNotAllowedHandler())

	// Base middleware stack
	middlewares := []func(http.Handler) http.Handler{
		appmiddleware.Security(docsPath),
		appmiddleware.Vary(),
		appmiddleware.CORSWithMaxAge(cfg.CORS.MaxAge, cfg.CORS.AllowedOrigins...),
		appmiddleware.RequestID(),
		// RealIP extracts client IP from X-Real-IP or X-Forwarded-For headers.
		// SECURITY: Only use behind a trusted reverse proxy (e.g., Cloud Run, nginx).
		// Without a trusted proxy, clients can spoof their IP address and
		// sidestep the rate limiter.
		chimiddleware.RealIP,
		chimiddleware.RequestSize(cfg.HTTP.MaxBodyBytes),
		applog.RequestLogger(),
		applog.AccessLogger("/healthz"),
	}
	if cfg.RateLimit.Enabled {
		limiter := appmiddleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst)
		middlewares = append(middlewares, limiter.Middleware("/healthz", "/health", docsPath, "/openapi", "/schemas"))
	}
	middlewares = append(middlewares, respond.Recoverer())
	router.Use(middlewares...)

	router.Get("/healthz", health.Handler)

	humaCfg := huma.DefaultConfig(info.ServiceName, cfg.Version)
	humaCfg.DocsPath = docsPath
	humaCfg.Info.Description = "Numerology, design type and compatibility readings from birth details."
	api := humachi.New(router, humaCfg)

	// Add CBOR content type to OpenAPI requests and responses
	api.OpenAPI().OnAddOperation = append(api.OpenAPI().OnAddOperation,
		func(_ *huma.OpenAPI, op *huma.Operation) {
			if op.RequestBody != nil && op.RequestBody.Content != nil {
				if jsonContent, ok := op.RequestBody.Content["application/json"]; ok {
					op.RequestBody.Content["application/cbor"] = jsonContent
				}
			}
			for _, resp := range op.Responses {
				if resp.Content == nil {
					continue
				}
				if jsonContent, ok := resp.Content["application/json"]; ok {
					resp.Content["application/cbor"] = jsonContent
				}
			}
		},
	)

	routes.Register(api, svc, routes.Options{
		Version:           cfg.Version,
		NarrativeProvider: provider,
	})
	return router
}

// newGenerator builds the configured narrative generator and its cache. The
// returned close function releases backing clients.
func newGenerator(ctx context.Context, cfg *config.Config) (narrative.Generator, func() error, error) {
	noop := func() error { return nil }

	var gen narrative.Generator
	switch cfg.Narrative.Provider {
	case config.ProviderHuggingFace:
		opts := []narrative.HFOption{narrative.WithAPIKey(cfg.Narrative.APIKey)}
		if cfg.Narrative.Model != "" {
			opts = append(opts, narrative.WithModel(cfg.Narrative.Model))
		}
		if cfg.Narrative.BaseURL != "" {
			opts = append(opts, narrative.WithBaseURL(cfg.Narrative.BaseURL))
		}
		gen = narrative.NewHuggingFace(&http.Client{Timeout: cfg.Narrative.Timeout}, opts...)
	case config.ProviderGenAI:
		g, err := narrative.NewGenAI(ctx, cfg.Narrative.APIKey, cfg.Narrative.Model)
		if err != nil {
			return nil, noop, err
		}
		gen = g
	default:
		return narrative.Disabled{}, noop, nil
	}

	switch cfg.Narrative.Cache.Backend {
	case config.CacheMemory:
		return narrative.NewCached(gen, narrative.NewMemoryCache(cfg.Narrative.Cache.TTL)), noop, nil
	case config.CacheFirestore:
		clients, err := firebase.NewClients(ctx, firebase.Config{
			ProjectID:       cfg.GCP.ProjectID,
			CredentialsFile: cfg.GCP.CredentialsFile,
		})
		if err != nil {
			return nil, noop, fmt.Errorf("narrative cache: %w", err)
		}
		cache := narrative.NewFirestoreCache(clients.Firestore, cfg.Narrative.Cache.Collection, cfg.Narrative.Cache.TTL)
		return narrative.NewCached(gen, cache), clients.Close, nil
	default:
		return gen, noop, nil
	}
}

