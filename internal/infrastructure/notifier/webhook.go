package notifier

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/championship-organizer/internal/infrastructure/livefeed"
	"github.com/riskibarqy/championship-organizer/internal/platform/logging"
	"github.com/riskibarqy/championship-organizer/internal/platform/resilience"
	"github.com/riskibarqy/championship-organizer/internal/usecase"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"
)

const (
	SignatureHeader = "X-Championship-Signature"
	EventHeader     = "X-Championship-Event"
)

var errWebhookTransient = crerr.New("webhook transient failure")

type WebhookConfig struct {
	URL            string
	Secret         string
	Timeout        time.Duration
	Workers        int
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Webhook posts live updates to one HTTP endpoint. Deliveries run on a
// bounded worker pool; when every worker is busy the update is dropped.
type Webhook struct {
	client  *fasthttp.Client
	url     string
	secret  []byte
	timeout time.Duration
	pool    *ants.Pool
	breaker *resilience.CircuitBreaker
	logger  *logging.Logger
}

func NewWebhook(cfg WebhookConfig, logger *logging.Logger) (*Webhook, error) {
	if logger == nil {
		logger = logging.Default()
	}
	target, err := validateHTTPURL(cfg.URL)
	if err != nil {
		return nil, crerr.Wrap(err, "invalid WEBHOOK_URL")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}

	pool, err := ants.NewPool(workers,
		ants.WithNonblocking(true),
		ants.WithPanicHandler(func(p any) {
			logger.Error("webhook delivery panicked", "panic", fmt.Sprint(p))
		}),
	)
	if err != nil {
		return nil, crerr.Wrap(err, "create webhook worker pool")
	}

	return &Webhook{
		client: &fasthttp.Client{
			Name:         "championship-organizer-webhook",
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		url:     target,
		secret:  []byte(cfg.Secret),
		timeout: timeout,
		pool:    pool,
		breaker: resilience.NewCircuitBreaker(cfg.CircuitBreaker),
		logger:  logger,
	}, nil
}

func (w *Webhook) Publish(ctx context.Context, update usecase.LiveUpdate) {
	body, err := livefeed.Encode(update)
	if err != nil {
		w.logger.ErrorContext(ctx, "encode webhook payload", "match_id", update.MatchID, "error", err)
		return
	}

	ctx = context.WithoutCancel(ctx)
	if err := w.pool.Submit(func() {
		if err := w.Deliver(ctx, string(update.Kind), body); err != nil {
			w.logger.WarnContext(ctx, "webhook delivery failed",
				"match_id", update.MatchID,
				"kind", string(update.Kind),
				"error", err,
			)
		}
	}); err != nil {
		w.logger.WarnContext(ctx, "webhook delivery dropped", "match_id", update.MatchID, "kind", string(update.Kind), "error", err)
	}
}

// Deliver posts body synchronously and reports whether the receiver
// accepted it.
func (w *Webhook) Deliver(ctx context.Context, kind string, body []byte) error {
	err := w.breaker.Call(func() error {
		return w.post(ctx, kind, body)
	}, func(err error) bool {
		return errors.Is(err, errWebhookTransient)
	})
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return fmt.Errorf("webhook is temporarily unavailable: %w", err)
	}
	return err
}

func (w *Webhook) post(ctx context.Context, kind string, body []byte) error {
	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(w.url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	req.Header.Set(EventHeader, kind)
	if len(w.secret) > 0 {
		req.Header.Set(SignatureHeader, Sign(w.secret, body))
	}
	req.SetBodyRaw(body)

	timeout := w.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if remaining := time.Until(deadline); remaining < timeout {
			timeout = remaining
		}
	}
	if err := w.client.DoTimeout(req, resp, timeout); err != nil {
		return fmt.Errorf("%w: post webhook url=%s: %v", errWebhookTransient, w.url, err)
	}

	status := resp.StatusCode()
	if status/100 == 2 {
		return nil
	}
	snippet := truncateForLog(strings.TrimSpace(string(resp.Body())), 512)
	if isRetryableStatus(status) {
		return fmt.Errorf("%w: webhook status=%d body=%s", errWebhookTransient, status, snippet)
	}
	return fmt.Errorf("webhook status=%d body=%s", status, snippet)
}

// Close waits up to timeout for in-flight deliveries.
func (w *Webhook) Close(timeout time.Duration) error {
	if err := w.pool.ReleaseTimeout(timeout); err != nil {
		return crerr.Wrap(err, "release webhook worker pool")
	}
	return nil
}

// Sign returns the "sha256=<hex>" HMAC of body.
func Sign(secret, body []byte) string {
	mac := hmac.New(sha256.New, secret)
	_, _ = mac.Write(body)

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)
	_, _ = buf.WriteString("sha256=")
	_, _ = buf.WriteString(hex.EncodeToString(mac.Sum(nil)))
	return buf.String()
}

func validateHTTPURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", crerr.New("value is empty")
	}
	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme=%q; expected http or https", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", crerr.Newf("%q has empty host", candidate)
	}
	return candidate, nil
}

func isRetryableStatus(status int) bool {
	return status == fasthttp.StatusRequestTimeout ||
		status == fasthttp.StatusTooManyRequests ||
		status >= fasthttp.StatusInternalServerError
}

func truncateForLog(value string, max int) string {
	if max <= 0 || len(value) <= max {
		return value
	}
	return value[:max] + "...(truncated " + strconv.Itoa(len(value)-max) + " bytes)"
}
