package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET "+openAPIPath, handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/championships", handler.ListChampionships)
	mux.HandleFunc("GET /v1/championships/{championshipID}", handler.GetChampionship)
	mux.HandleFunc("GET /v1/championships/{championshipID}/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/championships/{championshipID}/format", handler.GetFormat)
	mux.HandleFunc("GET /v1/championships/{championshipID}/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/championships/{championshipID}/standings", handler.GetStandings)
	mux.HandleFunc("GET /v1/championships/{championshipID}/player-stats", handler.ListPlayerStats)

	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeam)
	mux.HandleFunc("GET /v1/teams/{teamID}/players", handler.ListPlayers)

	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("GET /v1/matches/{matchID}/events", handler.ListEvents)
	mux.HandleFunc("GET /v1/matches/{matchID}/live", handler.WatchMatch)
	mux.HandleFunc("GET /v1/matches/{matchID}/predictions", handler.GetPredictions)
	// Voting is anonymous; one vote per client address.
	mux.HandleFunc("POST /v1/matches/{matchID}/predictions", handler.Vote)
}

func registerOrganizerRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	auth := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(verifier, h)
	}

	mux.Handle("POST /v1/championships", auth(handler.CreateChampionship))
	mux.Handle("PUT /v1/championships/{championshipID}", auth(handler.UpdateChampionship))
	mux.Handle("PUT /v1/championships/{championshipID}/logo", auth(handler.UploadChampionshipLogo))
	mux.Handle("POST /v1/championships/{championshipID}/teams", auth(handler.CreateTeam))
	mux.Handle("POST /v1/championships/{championshipID}/fixtures", auth(handler.GenerateFixtures))
	mux.Handle("POST /v1/championships/{championshipID}/matches", auth(handler.CreateMatch))
	mux.Handle("POST /v1/championships/{championshipID}/statistics/reset", auth(handler.ResetStatistics))

	mux.Handle("PUT /v1/teams/{teamID}", auth(handler.UpdateTeam))
	mux.Handle("PUT /v1/teams/{teamID}/logo", auth(handler.UploadTeamLogo))
	mux.Handle("POST /v1/teams/{teamID}/players", auth(handler.CreatePlayer))
	mux.Handle("PUT /v1/players/{playerID}", auth(handler.UpdatePlayer))

	mux.Handle("PATCH /v1/matches/{matchID}", auth(handler.UpdateMatch))
	mux.Handle("DELETE /v1/matches/{matchID}", auth(handler.DeleteMatch))
	mux.Handle("POST /v1/matches/{matchID}/transitions", auth(handler.TransitionMatch))
	mux.Handle("POST /v1/matches/{matchID}/events", auth(handler.RecordEvent))
	mux.Handle("POST /v1/matches/{matchID}/standings", auth(handler.ApplyStandings))
}
