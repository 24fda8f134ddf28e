package main

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/JaimeStill/vibematch/internal/background"
	"github.com/JaimeStill/vibematch/internal/config"
	"github.com/JaimeStill/vibematch/internal/infrastructure"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	t.Setenv("VIBEMATCH_BACKGROUND_PROVIDER", background.ProviderNone)

	cfg, err := config.LoadFile(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	return cfg
}

func TestHealthRoutes(t *testing.T) {
	cfg := testConfig(t)
	infra, err := infrastructure.New(cfg)
	if err != nil {
		t.Fatalf("infrastructure.New: %v", err)
	}

	router := buildRouter(infra)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("healthz: got %d, want 200", rec.Code)
	}

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/readyz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("readyz before startup: got %d, want 503", rec.Code)
	}

	infra.Lifecycle.WaitForStartup()

	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest("GET", "/readyz", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("readyz after startup: got %d, want 200", rec.Code)
	}
}

func TestNewServerMountsAPI(t *testing.T) {
	srv, err := NewServer(testConfig(t))
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}

	rec := httptest.NewRecorder()
	srv.http.http.Handler.ServeHTTP(rec, httptest.NewRequest("GET", "/api/vocabulary", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("vocabulary: got %d, want 200", rec.Code)
	}
}

func TestNewServerWriteTimeoutCoversRun(t *testing.T) {
	cfg := testConfig(t)
	srv, err := NewServer(cfg)
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}

	if srv.runBudget != cfg.Pipeline.RunBudget() {
		t.Errorf("run budget: got %v, want %v", srv.runBudget, cfg.Pipeline.RunBudget())
	}
	if srv.http.http.WriteTimeout <= srv.runBudget {
		t.Errorf("write timeout %v does not exceed run budget %v", srv.http.http.WriteTimeout, srv.runBudget)
	}
}
