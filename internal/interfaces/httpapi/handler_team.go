package httpapi

import (
	"context"
	"net/http"

	"github.com/riskibarqy/championship-organizer/internal/usecase"
)

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	championshipID := r.PathValue("championshipID")
	items, err := h.teamService.ListByChampionship(ctx, championshipID)
	if err != nil {
		h.logFailure(ctx, "list teams failed", err, "championship_id", championshipID)
		writeError(ctx, w, err)
		return
	}

	out := make([]teamDTO, 0, len(items))
	for _, item := range items {
		out = append(out, teamToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	teamID := r.PathValue("teamID")
	item, err := h.teamService.Get(ctx, teamID)
	if err != nil {
		h.logFailure(ctx, "get team failed", err, "team_id", teamID)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, teamToDTO(item))
}

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTeam")
	defer span.End()

	h.upsertTeam(ctx, w, r, usecase.UpsertTeamInput{ChampionshipID: r.PathValue("championshipID")}, http.StatusCreated)
}

func (h *Handler) UpdateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateTeam")
	defer span.End()

	h.upsertTeam(ctx, w, r, usecase.UpsertTeamInput{TeamID: r.PathValue("teamID")}, http.StatusOK)
}

func (h *Handler) upsertTeam(ctx context.Context, w http.ResponseWriter, r *http.Request, input usecase.UpsertTeamInput, status int) {
	actor, err := actorFrom(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var req upsertTeamRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	input.Actor = actor
	input.Name = req.Name
	input.CoachName = req.CoachName
	input.PrimaryColor = req.PrimaryColor
	input.SecondaryColor = req.SecondaryColor

	item, err := h.teamService.Upsert(ctx, input)
	if err != nil {
		h.logFailure(ctx, "upsert team failed", err, "championship_id", input.ChampionshipID, "team_id", input.TeamID)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, status, teamToDTO(item))
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	teamID := r.PathValue("teamID")
	items, err := h.teamService.ListPlayers(ctx, teamID)
	if err != nil {
		h.logFailure(ctx, "list players failed", err, "team_id", teamID)
		writeError(ctx, w, err)
		return
	}

	out := make([]playerDTO, 0, len(items))
	for _, item := range items {
		out = append(out, playerToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) CreatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreatePlayer")
	defer span.End()

	h.upsertPlayer(ctx, w, r, usecase.UpsertPlayerInput{TeamID: r.PathValue("teamID")}, http.StatusCreated)
}

func (h *Handler) UpdatePlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdatePlayer")
	defer span.End()

	h.upsertPlayer(ctx, w, r, usecase.UpsertPlayerInput{PlayerID: r.PathValue("playerID")}, http.StatusOK)
}

func (h *Handler) upsertPlayer(ctx context.Context, w http.ResponseWriter, r *http.Request, input usecase.UpsertPlayerInput, status int) {
	actor, err := actorFrom(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	var req upsertPlayerRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	birthDate, err := parseDate("birth_date", req.BirthDate)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	input.Actor = actor
	input.Name = req.Name
	input.Position = req.Position
	input.BirthDate = birthDate
	input.JerseyNumber = req.JerseyNumber
	input.PhotoURL = req.PhotoURL

	item, err := h.teamService.UpsertPlayer(ctx, input)
	if err != nil {
		h.logFailure(ctx, "upsert player failed", err, "team_id", input.TeamID, "player_id", input.PlayerID)
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, status, playerToDTO(item))
}
