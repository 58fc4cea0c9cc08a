package httpapi

import (
	"net/http"

	"github.com/riskibarqy/championship-organizer/internal/usecase"
)

func (h *Handler) GetPredictions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPredictions")
	defer span.End()

	matchID := r.PathValue("matchID")
	stats, err := h.predictionService.Stats(ctx, matchID)
	if err != nil {
		h.logFailure(ctx, "get predictions failed", err, "match_id", matchID)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, predictionToDTO(stats))
}

func (h *Handler) Vote(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Vote")
	defer span.End()

	var req voteRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	matchID := r.PathValue("matchID")
	stats, err := h.predictionService.Vote(ctx, usecase.VoteInput{
		MatchID:    matchID,
		Choice:     req.Choice,
		ClientAddr: resolveClientIP(r),
	})
	if err != nil {
		h.logFailure(ctx, "vote failed", err, "match_id", matchID)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusCreated, predictionToDTO(stats))
}
