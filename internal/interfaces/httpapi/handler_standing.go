package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/championship-organizer/internal/usecase"
)

var errLiveDisabled = fmt.Errorf("%w: live feed is disabled", usecase.ErrDependencyUnavailable)

const defaultPlayerStatsLimit = 20

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandings")
	defer span.End()

	championshipID := r.PathValue("championshipID")
	overview, err := h.standingService.Overview(ctx, championshipID)
	if err != nil {
		h.logFailure(ctx, "get standings failed", err, "championship_id", championshipID)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, overviewToDTO(overview))
}

func (h *Handler) ListPlayerStats(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayerStats")
	defer span.End()

	limit, err := parseQueryInt(r, "limit", defaultPlayerStatsLimit)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	championshipID := r.PathValue("championshipID")
	items, err := h.standingService.ListPlayerStats(ctx, usecase.ListPlayerStatsInput{
		ChampionshipID: championshipID,
		TeamID:         r.URL.Query().Get("team_id"),
		SortBy:         r.URL.Query().Get("sort"),
		Limit:          limit,
	})
	if err != nil {
		h.logFailure(ctx, "list player stats failed", err, "championship_id", championshipID)
		writeError(ctx, w, err)
		return
	}

	out := make([]playerStatDTO, 0, len(items))
	for _, item := range items {
		out = append(out, playerStatToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) ResetStatistics(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResetStatistics")
	defer span.End()

	actor, err := actorFrom(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	championshipID := r.PathValue("championshipID")
	reset, err := h.standingService.ResetChampionshipStatistics(ctx, actor, championshipID)
	if err != nil {
		h.logFailure(ctx, "reset statistics failed", err, "championship_id", championshipID)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "championship statistics reset", "championship_id", championshipID, "matches", reset)
	writeSuccess(ctx, w, http.StatusOK, resetDTO{ChampionshipID: championshipID, MatchesReset: reset})
}
