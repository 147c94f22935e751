package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/fxamacker/cbor/v2"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/pathlet/pathlet-api/internal/config"
	"github.com/pathlet/pathlet-api/internal/http/health"
	"github.com/pathlet/pathlet-api/internal/http/v1/info"
	"github.com/pathlet/pathlet-api/internal/service/narrative"
	"github.com/pathlet/pathlet-api/internal/service/reading"
)

func testConfig() *config.Config {
	cfg := config.Default()
	cfg.Version = "test"
	cfg.RateLimit.Enabled = false
	return cfg
}

func testServer() http.Handler {
	router := newRouter(testConfig(), reading.New(), "disabled").(chi.Router)
	router.Get("/panic", func(http.ResponseWriter, *http.Request) {
		panic("boom")
	})
	return router
}

func TestHealth(t *testing.T) {
	srv := testServer()
	for _, path := range []string{"/health", "/healthz"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req.Header.Set(chimiddleware.RequestIDHeader, "test-health-req")
		req.Header.Set("Accept", "application/json")
		resp := httptest.NewRecorder()
		srv.ServeHTTP(resp, req)

		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected status 200 got %d", path, resp.Code)
		}

		var h health.Response
		if err := json.Unmarshal(resp.Body.Bytes(), &h); err != nil {
			t.Fatalf("%s: failed to unmarshal response: %v", path, err)
		}
		if h.Status != health.StatusHealthy {
			t.Fatalf("%s: expected status 'healthy', got %s", path, h.Status)
		}
	}
}

func TestServiceInfo(t *testing.T) {
	srv := testServer()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	resp := httptest.NewRecorder()
	srv.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected status 200 got %d", resp.Code)
	}
	var data info.Data
	if err := json.Unmarshal(resp.Body.Bytes(), &data); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if data.Service != info.ServiceName || data.Version != "test" || data.Narrative != "disabled" {
		t.Fatalf("unexpected info %+v", data)
	}
	if len(data.Endpoints) == 0 {
		t.Fatal("expected endpoints to be listed")
	}
}

func TestNotFoundReturnsProblemDetails(t *testing.T) {
	srv := testServer()
	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	req.Header.Set(chimiddleware.RequestIDHeader, "test-404-req")
	resp := httptest.NewRecorder()
	srv.ServeHTTP(resp, req)

	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/problem+json" {
		t.Fatalf("expected application/problem+json content type, got %q", ct)
	}

	var problem huma.ErrorModel
	if err := json.Unmarshal(resp.Body.Bytes(), &problem); err != nil {
		t.Fatalf("failed to unmarshal 404 response: %v", err)
	}
	if problem.Status != http.StatusNotFound || problem.Detail != "resource not found" {
		t.Fatalf("unexpected problem: %+v", problem)
	}
}

func TestMethodNotAllowedReturnsProblemDetails(t *testing.T) {
	srv := testServer()
	req := httptest.NewRequest(http.MethodGet, "/v1/numerology", nil)
	req.Header.Set(chimiddleware.RequestIDHeader, "test-405-req")
	resp := httptest.NewRecorder()
	srv.ServeHTTP(resp, req)

	if resp.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405 got %d", resp.Code)
	}
	if allow := resp.Header().Get("Allow"); !strings.Contains(allow, http.MethodPost) {
		t.Fatalf("expected Allow header to list POST, got %q", allow)
	}
	var problem huma.ErrorModel
	if err := json.Unmarshal(resp.Body.Bytes(), &problem); err != nil {
		t.Fatalf("failed to unmarshal 405 response: %v", err)
	}
	if !strings.Contains(problem.Detail, "GET") {
		t.Fatalf("expected detail to mention GET, got %s", problem.Detail)
	}
}

func TestRecovererReturnsProblemDetails(t *testing.T) {
	srv := testServer()
	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	req.Header.Set(chimiddleware.RequestIDHeader, "test-500-req")
	resp := httptest.NewRecorder()
	srv.ServeHTTP(resp, req)

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", resp.Code)
	}
	var problem huma.ErrorModel
	if err := json.Unmarshal(resp.Body.Bytes(), &problem); err != nil {
		t.Fatalf("failed to unmarshal 500 response: %v", err)
	}
	if problem.Detail != "internal server error" {
		t.Fatalf("unexpected detail: %s", problem.Detail)
	}
}

func TestSecurityAndCORSHeaders(t *testing.T) {
	srv := testServer()
	req := httptest.NewRequest(http.MethodOptions, "/v1/numerology", nil)
	req.Header.Set("Origin", "https://app.example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	resp := httptest.NewRecorder()
	srv.ServeHTTP(resp, req)

	if got := resp.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Fatalf("expected wildcard CORS origin, got %q", got)
	}
	if got := resp.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Fatalf("expected nosniff, got %q", got)
	}
}

func TestRequestBodyLimit(t *testing.T) {
	cfg := testConfig()
	cfg.HTTP.MaxBodyBytes = 1024
	srv := newRouter(cfg, reading.New(), "disabled")

	body := `{"birth_date":"1990-05-15","birth_location":"` + strings.Repeat("x", 2048) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/v1/numerology", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	srv.ServeHTTP(resp, req)

	if resp.Code != http.StatusRequestEntityTooLarge && resp.Code != http.StatusBadRequest {
		t.Fatalf("expected oversized body to be rejected, got %d", resp.Code)
	}
}

func TestRateLimitAppliesToOperationsOnly(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit.Enabled = true
	cfg.RateLimit.RequestsPerMinute = 1
	cfg.RateLimit.Burst = 1
	srv := newRouter(cfg, reading.New(), "disabled")

	send := func(method, path, body string) int {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		req.RemoteAddr = "203.0.113.9:4000"
		resp := httptest.NewRecorder()
		srv.ServeHTTP(resp, req)
		return resp.Code
	}

	if code := send(http.MethodPost, "/v1/numerology", `{"birth_date":"1990-05-15"}`); code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if code := send(http.MethodPost, "/v1/numerology", `{"birth_date":"1990-05-15"}`); code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", code)
	}
	if code := send(http.MethodGet, "/healthz", ""); code != http.StatusOK {
		t.Fatalf("health probe should not be limited, got %d", code)
	}
}

func TestCBORAcceptHeader(t *testing.T) {
	srv := testServer()
	req := httptest.NewRequest(http.MethodPost, "/v1/numerology", strings.NewReader(`{"birth_date":"1990-05-15"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/cbor")
	resp := httptest.NewRecorder()
	srv.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	if ct := resp.Header().Get("Content-Type"); ct != "application/cbor" {
		t.Fatalf("expected application/cbor, got %q", ct)
	}
	var out map[string]any
	if err := cbor.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("cbor unmarshal: %v", err)
	}
	if out["life_path_number"] != uint64(3) {
		t.Fatalf("expected life path 3, got %#v", out["life_path_number"])
	}
}

func TestOpenAPICBORContentTypes(t *testing.T) {
	srv := testServer()
	req := httptest.NewRequest(http.MethodGet, "/openapi.json", nil)
	resp := httptest.NewRecorder()
	srv.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	var doc struct {
		Paths map[string]map[string]struct {
			RequestBody struct {
				Content map[string]any `json:"content"`
			} `json:"requestBody"`
			Responses map[string]struct {
				Content map[string]any `json:"content"`
			} `json:"responses"`
		} `json:"paths"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &doc); err != nil {
		t.Fatalf("failed to unmarshal OpenAPI: %v", err)
	}
	op := doc.Paths["/v1/numerology"]["post"]
	if _, ok := op.RequestBody.Content["application/cbor"]; !ok {
		t.Fatal("expected CBOR request content type")
	}
	if _, ok := op.Responses["200"].Content["application/cbor"]; !ok {
		t.Fatal("expected CBOR response content type")
	}
}

func TestNewGeneratorDisabled(t *testing.T) {
	cfg := testConfig()
	gen, closeFn, err := newGenerator(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = closeFn() }()
	if _, ok := gen.(narrative.Disabled); !ok {
		t.Fatalf("expected disabled generator, got %T", gen)
	}
}

func TestNewGeneratorHuggingFaceWithMemoryCache(t *testing.T) {
	cfg := testConfig()
	cfg.Narrative.Provider = config.ProviderHuggingFace
	cfg.Narrative.Model = "custom/model"
	gen, closeFn, err := newGenerator(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = closeFn() }()
	if _, ok := gen.(*narrative.Cached); !ok {
		t.Fatalf("expected cached generator, got %T", gen)
	}
	if gen.Provider() != "huggingface" || gen.Model() != "custom/model" {
		t.Fatalf("unexpected generator %s/%s", gen.Provider(), gen.Model())
	}
}

func TestNewGeneratorUncached(t *testing.T) {
	cfg := testConfig()
	cfg.Narrative.Provider = config.ProviderHuggingFace
	cfg.Narrative.Cache.Backend = config.CacheNone
	gen, _, err := newGenerator(context.Background(), cfg)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := gen.(*narrative.HuggingFace); !ok {
		t.Fatalf("expected bare HuggingFace generator, got %T", gen)
	}
}

func TestNewGeneratorGenAIRequiresKey(t *testing.T) {
	cfg := testConfig()
	cfg.Narrative.Provider = config.ProviderGenAI
	if _, _, err := newGenerator(context.Background(), cfg); err == nil {
		t.Fatal("expected error without api key")
	}
}

func TestVersionVariable(t *testing.T) {
	if Version == "" {
		t.Fatal("Version should have a default value")
	}
}
