package httpapi

import (
	"fmt"
	"net/http"

	"github.com/riskibarqy/championship-organizer/internal/domain/match"
	"github.com/riskibarqy/championship-organizer/internal/domain/matchevent"
	"github.com/riskibarqy/championship-organizer/internal/usecase"
)

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	matchID := r.PathValue("matchID")
	item, err := h.matchService.Get(ctx, matchID)
	if err != nil {
		h.logFailure(ctx, "get match failed", err, "match_id", matchID)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) TransitionMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.TransitionMatch")
	defer span.End()

	actor, err := actorFrom(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var req transitionRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	action, err := match.ParseAction(req.Action)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %w", usecase.ErrInvalidInput, err))
		return
	}

	matchID := r.PathValue("matchID")
	item, err := h.matchService.Transition(ctx, usecase.TransitionInput{Actor: actor, MatchID: matchID, Action: action})
	if err != nil {
		h.logFailure(ctx, "transition match failed", err, "match_id", matchID, "action", action)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) ListEvents(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListEvents")
	defer span.End()

	matchID := r.PathValue("matchID")
	items, err := h.matchService.ListEvents(ctx, matchID)
	if err != nil {
		h.logFailure(ctx, "list events failed", err, "match_id", matchID)
		writeError(ctx, w, err)
		return
	}

	out := make([]eventDTO, 0, len(items))
	for _, item := range items {
		out = append(out, eventToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) RecordEvent(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordEvent")
	defer span.End()

	actor, err := actorFrom(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var req recordEventRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	eventType, err := matchevent.ParseType(req.Type)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: %w", usecase.ErrInvalidInput, err))
		return
	}

	matchID := r.PathValue("matchID")
	result, err := h.matchService.RecordEvent(ctx, usecase.RecordEventInput{
		Actor:             actor,
		MatchID:           matchID,
		TeamID:            req.TeamID,
		PlayerID:          req.PlayerID,
		Type:              eventType,
		Minute:            req.Minute,
		SecondaryPlayerID: req.SecondaryPlayerID,
	})
	if err != nil {
		h.logFailure(ctx, "record event failed", err, "match_id", matchID, "type", eventType)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, recordEventDTO{
		Event: eventToDTO(result.Event),
		Match: matchToDTO(result.Match),
	})
}

func (h *Handler) ApplyStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ApplyStandings")
	defer span.End()

	actor, err := actorFrom(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	matchID := r.PathValue("matchID")
	item, err := h.matchService.ApplyStandings(ctx, actor, matchID)
	if err != nil {
		h.logFailure(ctx, "apply standings failed", err, "match_id", matchID)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

// WatchMatch upgrades to a websocket that streams live frames of one
// match. The match must exist.
func (h *Handler) WatchMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.WatchMatch")
	defer span.End()

	matchID := r.PathValue("matchID")
	item, err := h.matchService.Get(ctx, matchID)
	if err != nil {
		h.logFailure(ctx, "watch match failed", err, "match_id", matchID)
		writeError(ctx, w, err)
		return
	}
	if h.live == nil {
		writeError(ctx, w, errLiveDisabled)
		return
	}
	// Upgrade writes its own error response on a failed handshake.
	if err := h.live.Serve(w, r, item.ID); err != nil {
		h.logger.WarnContext(ctx, "live upgrade failed", "match_id", item.ID, "error", err)
	}
}
