package httpapi

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/riskibarqy/championship-organizer/internal/usecase"
)

func (h *Handler) ListChampionships(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListChampionships")
	defer span.End()

	items, err := h.championshipService.List(ctx)
	if err != nil {
		h.logFailure(ctx, "list championships failed", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]championshipDTO, 0, len(items))
	for _, item := range items {
		out = append(out, championshipToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetChampionship(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetChampionship")
	defer span.End()

	championshipID := r.PathValue("championshipID")
	item, err := h.championshipService.Get(ctx, championshipID)
	if err != nil {
		h.logFailure(ctx, "get championship failed", err, "championship_id", championshipID)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, championshipToDTO(item))
}

func (h *Handler) CreateChampionship(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateChampionship")
	defer span.End()

	h.upsertChampionship(ctx, w, r, "", http.StatusCreated)
}

func (h *Handler) UpdateChampionship(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateChampionship")
	defer span.End()

	h.upsertChampionship(ctx, w, r, r.PathValue("championshipID"), http.StatusOK)
}

func (h *Handler) upsertChampionship(ctx context.Context, w http.ResponseWriter, r *http.Request, championshipID string, status int) {
	actor, err := actorFrom(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	var req upsertChampionshipRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	startDate, err := parseDate("start_date", req.StartDate)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	endDate, err := parseDate("end_date", req.EndDate)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	item, err := h.championshipService.Upsert(ctx, usecase.UpsertChampionshipInput{
		Actor:          actor,
		ChampionshipID: championshipID,
		Name:           req.Name,
		Category:       req.Category,
		StartDate:      startDate,
		EndDate:        endDate,
		Rules:          req.Rules,
		IsActive:       isActive,
	})
	if err != nil {
		h.logFailure(ctx, "upsert championship failed", err, "championship_id", championshipID, "user_id", actor.UserID)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, status, championshipToDTO(item))
}

func (h *Handler) UploadChampionshipLogo(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UploadChampionshipLogo")
	defer span.End()

	input, err := h.readLogo(ctx, w, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	input.ChampionshipID = r.PathValue("championshipID")

	item, err := h.championshipService.UploadChampionshipLogo(ctx, input)
	if err != nil {
		h.logFailure(ctx, "upload championship logo failed", err, "championship_id", input.ChampionshipID)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, championshipToDTO(item))
}

func (h *Handler) UploadTeamLogo(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UploadTeamLogo")
	defer span.End()

	input, err := h.readLogo(ctx, w, r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	input.TeamID = r.PathValue("teamID")

	item, err := h.championshipService.UploadTeamLogo(ctx, input)
	if err != nil {
		h.logFailure(ctx, "upload team logo failed", err, "team_id", input.TeamID)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, teamToDTO(item))
}

// readLogo takes the raw image body; the content type comes from the
// request header.
func (h *Handler) readLogo(ctx context.Context, w http.ResponseWriter, r *http.Request) (usecase.UploadLogoInput, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return usecase.UploadLogoInput{}, err
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxLogoBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return usecase.UploadLogoInput{}, fmt.Errorf("%w: logo exceeds %d bytes", usecase.ErrInvalidInput, h.maxLogoBytes)
		}
		return usecase.UploadLogoInput{}, fmt.Errorf("%w: read logo body: %v", usecase.ErrInvalidInput, err)
	}

	return usecase.UploadLogoInput{
		Actor:       actor,
		ContentType: r.Header.Get("Content-Type"),
		Body:        bytes.NewReader(body),
		Size:        int64(len(body)),
	}, nil
}
