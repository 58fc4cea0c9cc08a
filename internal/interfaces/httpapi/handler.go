package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/championship-organizer/internal/domain/user"
	"github.com/riskibarqy/championship-organizer/internal/platform/logging"
	"github.com/riskibarqy/championship-organizer/internal/usecase"
)

const maxJSONBodyBytes = 1 << 20

// LiveStream upgrades a request into a subscription on one match room.
type LiveStream interface {
	Serve(w http.ResponseWriter, r *http.Request, matchID string) error
}

type Services struct {
	Championships *usecase.ChampionshipService
	Teams         *usecase.TeamService
	Fixtures      *usecase.FixtureService
	Matches       *usecase.MatchService
	Standings     *usecase.StandingService
	Predictions   *usecase.PredictionService
	Live          LiveStream
}

type Handler struct {
	championshipService *usecase.ChampionshipService
	teamService         *usecase.TeamService
	fixtureService      *usecase.FixtureService
	matchService        *usecase.MatchService
	standingService     *usecase.StandingService
	predictionService   *usecase.PredictionService
	live                LiveStream
	maxLogoBytes        int64
	logger              *logging.Logger
	validator           *validator.Validate
}

func NewHandler(services Services, maxLogoBytes int64, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if maxLogoBytes <= 0 {
		maxLogoBytes = 2 << 20
	}

	return &Handler{
		championshipService: services.Championships,
		teamService:         services.Teams,
		fixtureService:      services.Fixtures,
		matchService:        services.Matches,
		standingService:     services.Standings,
		predictionService:   services.Predictions,
		live:                services.Live,
		maxLogoBytes:        maxLogoBytes,
		logger:              logger,
		validator:           validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeSuccess(r.Context(), w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

// decodeRequest reads a JSON body strictly and validates it.
func (h *Handler) decodeRequest(ctx context.Context, r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(io.LimitReader(r.Body, maxJSONBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return h.validateRequest(ctx, dst)
}

func actorFrom(ctx context.Context) (user.Principal, error) {
	principal, ok := principalFromContext(ctx)
	if !ok {
		return user.Principal{}, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized)
	}
	return principal, nil
}

func parseDate(field, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	v, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s must be YYYY-MM-DD", usecase.ErrInvalidInput, field)
	}
	return v, nil
}

func parseQueryInt(r *http.Request, key string, fallback int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		return 0, fmt.Errorf("%w: %s must be a non-negative integer", usecase.ErrInvalidInput, key)
	}
	return v, nil
}

// logFailure logs rejections at warn and everything else at error.
func (h *Handler) logFailure(ctx context.Context, msg string, err error, kv ...any) {
	args := append(kv, "error", err)
	if mapError(err).HTTPStatus >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, msg, args...)
		return
	}
	h.logger.WarnContext(ctx, msg, args...)
}
