package notifier

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/championship-organizer/internal/domain/match"
	"github.com/riskibarqy/championship-organizer/internal/platform/logging"
	"github.com/riskibarqy/championship-organizer/internal/platform/resilience"
	"github.com/riskibarqy/championship-organizer/internal/usecase"
)

func newTestWebhook(t *testing.T, url string, breaker resilience.CircuitBreakerConfig) *Webhook {
	t.Helper()
	w, err := NewWebhook(WebhookConfig{
		URL:            url,
		Secret:         "hook-secret",
		Timeout:        2 * time.Second,
		Workers:        2,
		CircuitBreaker: breaker,
	}, logging.NewNop())
	if err != nil {
		t.Fatalf("new webhook: %v", err)
	}
	t.Cleanup(func() { _ = w.Close(time.Second) })
	return w
}

func TestWebhook_PublishSignsAndDelivers(t *testing.T) {
	t.Parallel()

	received := make(chan *http.Request, 1)
	bodies := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		bodies <- string(raw)
		received <- r
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	hook := newTestWebhook(t, srv.URL, resilience.CircuitBreakerConfig{Enabled: false})
	m := match.Match{ID: "m1", Status: match.StatusInProgress, HomeScore: 1}
	hook.Publish(context.Background(), usecase.LiveUpdate{Kind: usecase.LiveMatchUpdated, MatchID: "m1", Match: &m})

	select {
	case r := <-received:
		body := <-bodies
		if got := r.Header.Get(EventHeader); got != "match_updated" {
			t.Fatalf("unexpected event header: %s", got)
		}
		if got, want := r.Header.Get(SignatureHeader), Sign([]byte("hook-secret"), []byte(body)); got != want {
			t.Fatalf("unexpected signature: got=%s want=%s", got, want)
		}
		if !strings.Contains(body, `"match_id":"m1"`) {
			t.Fatalf("unexpected body: %s", body)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("webhook was not delivered")
	}
}

func TestWebhook_DeliverOpensCircuitOnServerErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	hook := newTestWebhook(t, srv.URL, resilience.CircuitBreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      time.Hour,
		HalfOpenMaxReq:   1,
	})

	for i := 0; i < 2; i++ {
		if err := hook.Deliver(context.Background(), "clock_tick", []byte(`{}`)); !errors.Is(err, errWebhookTransient) {
			t.Fatalf("attempt %d: expected transient error, got %v", i, err)
		}
	}
	if err := hook.Deliver(context.Background(), "clock_tick", []byte(`{}`)); !errors.Is(err, resilience.ErrCircuitOpen) {
		t.Fatalf("expected open circuit, got %v", err)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("unexpected receiver calls: got=%d want=2", got)
	}
}

func TestWebhook_ClientErrorsDoNotTripCircuit(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	hook := newTestWebhook(t, srv.URL, resilience.CircuitBreakerConfig{Enabled: true, FailureThreshold: 1, OpenTimeout: time.Hour, HalfOpenMaxReq: 1})
	for i := 0; i < 3; i++ {
		err := hook.Deliver(context.Background(), "match_updated", []byte(`{}`))
		if err == nil || errors.Is(err, errWebhookTransient) || errors.Is(err, resilience.ErrCircuitOpen) {
			t.Fatalf("attempt %d: expected permanent error, got %v", i, err)
		}
	}
}

func TestNewWebhook_RejectsBadURL(t *testing.T) {
	t.Parallel()

	for _, raw := range []string{"", "ftp://example.com/hook", "http://"} {
		if _, err := NewWebhook(WebhookConfig{URL: raw}, logging.NewNop()); err == nil {
			t.Fatalf("expected error for url %q", raw)
		}
	}
}
