package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/championship-organizer/internal/domain/match"
	"github.com/riskibarqy/championship-organizer/internal/domain/tournament"
	"github.com/riskibarqy/championship-organizer/internal/usecase"
)

func (h *Handler) GetFormat(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetFormat")
	defer span.End()

	championshipID := r.PathValue("championshipID")
	format, groups, err := h.fixtureService.GetFormat(ctx, championshipID)
	if err != nil {
		h.logFailure(ctx, "get format failed", err, "championship_id", championshipID)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, formatToDTO(format, groups))
}

func (h *Handler) GenerateFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GenerateFixtures")
	defer span.End()

	actor, err := actorFrom(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var req generateFixturesRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	kind, ok := tournament.ParseKind(req.Kind)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: unknown format kind %q", usecase.ErrInvalidInput, req.Kind))
		return
	}

	input := usecase.GenerateFixturesInput{
		Actor:          actor,
		ChampionshipID: r.PathValue("championshipID"),
		Kind:           kind,
		HomeAndAway:    req.HomeAndAway,
		NumberOfGroups: req.NumberOfGroups,
		TeamsAdvancing: req.TeamsAdvancing,
		Shuffle:        req.Shuffle,
	}
	if req.FirstRoundAt != nil {
		input.FirstRoundAt = *req.FirstRoundAt
	}

	result, err := h.fixtureService.Generate(ctx, input)
	if err != nil {
		h.logFailure(ctx, "generate fixtures failed", err, "championship_id", input.ChampionshipID, "kind", kind)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "fixtures generated",
		"championship_id", input.ChampionshipID,
		"matches", len(result.Matches),
		"removed", result.Removed,
	)
	writeSuccess(ctx, w, http.StatusCreated, generateFixturesDTO{
		Format:  formatToDTO(result.Format, result.Groups),
		Matches: matchesToDTO(result.Matches),
		Removed: result.Removed,
	})
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	championshipID := r.PathValue("championshipID")
	items, err := h.fixtureService.ListMatches(ctx, championshipID)
	if err != nil {
		h.logFailure(ctx, "list matches failed", err, "championship_id", championshipID)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, matchesToDTO(items))
}

func (h *Handler) CreateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateMatch")
	defer span.End()

	actor, err := actorFrom(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var req createMatchRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	phase, ok := match.ParsePhase(req.Phase)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: unknown phase %q", usecase.ErrInvalidInput, req.Phase))
		return
	}

	item, err := h.fixtureService.CreateMatch(ctx, usecase.CreateMatchInput{
		Actor:          actor,
		ChampionshipID: r.PathValue("championshipID"),
		HomeTeamID:     req.HomeTeamID,
		AwayTeamID:     req.AwayTeamID,
		GroupID:        req.GroupID,
		Round:          req.Round,
		Phase:          phase,
		Venue:          req.Venue,
		MatchDate:      req.MatchDate,
	})
	if err != nil {
		h.logFailure(ctx, "create match failed", err, "championship_id", r.PathValue("championshipID"))
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, matchToDTO(item))
}

func (h *Handler) UpdateMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateMatch")
	defer span.End()

	actor, err := actorFrom(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var req updateMatchRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	input := usecase.UpdateMatchInput{
		Actor:   actor,
		MatchID: r.PathValue("matchID"),
		Venue:   req.Venue,
		Round:   req.Round,
	}
	if req.MatchDate != nil {
		input.MatchDate = *req.MatchDate
	}
	if req.Phase != "" {
		phase, ok := match.ParsePhase(req.Phase)
		if !ok {
			writeError(ctx, w, fmt.Errorf("%w: unknown phase %q", usecase.ErrInvalidInput, req.Phase))
			return
		}
		input.Phase = phase
	}

	item, err := h.fixtureService.UpdateMatch(ctx, input)
	if err != nil {
		h.logFailure(ctx, "update match failed", err, "match_id", input.MatchID)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) DeleteMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.DeleteMatch")
	defer span.End()

	actor, err := actorFrom(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	matchID := r.PathValue("matchID")
	if err := h.fixtureService.DeleteMatch(ctx, actor, matchID); err != nil {
		h.logFailure(ctx, "delete match failed", err, "match_id", matchID)
		writeError(ctx, w, err)
		return
	}
	writeNoContent(w)
}
