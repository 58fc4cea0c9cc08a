package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/championship-organizer/internal/config"
	"github.com/riskibarqy/championship-organizer/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/championship-organizer/internal/platform/logging"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:                 config.EnvDev,
		ServiceName:            "championship-organizer",
		HTTPAddr:               ":0",
		ReadTimeout:            time.Second,
		WriteTimeout:           time.Second,
		StorageDriver:          config.StorageMemory,
		CacheEnabled:           true,
		CacheTTL:               time.Minute,
		AuthProvider:           config.AuthJWT,
		JWTSecret:              "test-secret",
		MatchClockTick:         time.Minute,
		MatchStoppageTolerance: 15,
		FixtureRoundInterval:   7 * 24 * time.Hour,
		LogoMaxBytes:           1 << 20,
	}
}

func TestNew_MemoryDriverServesSeededChampionship(t *testing.T) {
	t.Parallel()

	a, err := New(context.Background(), memoryConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	t.Cleanup(func() { a.Close(context.Background()) })

	rec := httptest.NewRecorder()
	a.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz status: got=%d want=200", rec.Code)
	}

	rec = httptest.NewRecorder()
	a.Server.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/championships/"+memory.ChampionshipIDDemo, nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("get championship status: got=%d body=%s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), memory.ChampionshipIDDemo) {
		t.Fatalf("expected seeded championship in body: %s", rec.Body.String())
	}
}

func TestNew_RejectsMissingJWTSecret(t *testing.T) {
	t.Parallel()

	cfg := memoryConfig()
	cfg.JWTSecret = ""
	if _, err := New(context.Background(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for missing jwt secret")
	}
}

func TestNew_RejectsUnknownAuthProvider(t *testing.T) {
	t.Parallel()

	cfg := memoryConfig()
	cfg.AuthProvider = "ldap"
	if _, err := New(context.Background(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for unknown auth provider")
	}
}
