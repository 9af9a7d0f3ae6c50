package httpapi

import "net/http"

type routes struct {
	mux *http.ServeMux
}

func (rt routes) handle(pattern string, fn http.HandlerFunc) {
	rt.mux.Handle(pattern, withRoute(pattern, fn))
}

func registerSystemRoutes(rt routes, handler *Handler, swaggerEnabled bool) {
	rt.handle("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	rt.handle("GET /openapi.yaml", handler.OpenAPI)
	rt.handle("GET /docs", handler.SwaggerUI)
	rt.handle("GET /docs/", handler.SwaggerUI)
}

func registerRosterRoutes(rt routes, handler *Handler) {
	rt.handle("POST /v1/leagues", handler.CreateLeague)
	rt.handle("GET /v1/leagues", handler.ListLeagues)
	rt.handle("GET /v1/leagues/{leagueID}", handler.GetLeague)
	rt.handle("POST /v1/leagues/{leagueID}/teams", handler.CreateTeam)
	rt.handle("GET /v1/leagues/{leagueID}/teams", handler.ListTeamsByLeague)
	rt.handle("GET /v1/teams/{teamID}/players", handler.ListPlayersByTeam)
	rt.handle("POST /v1/players/pool", handler.AddPlayersToPool)
	rt.handle("GET /v1/players/available", handler.ListAvailablePlayers)
	rt.handle("GET /v1/players/{playerID}", handler.GetPlayer)
}

func registerDraftRoutes(rt routes, handler *Handler) {
	rt.handle("POST /v1/leagues/{leagueID}/draft", handler.StartDraft)
	rt.handle("GET /v1/leagues/{leagueID}/draft", handler.GetDraft)
	rt.handle("POST /v1/leagues/{leagueID}/draft/picks", handler.SubmitPick)
	rt.handle("GET /v1/leagues/{leagueID}/draft/picks", handler.ListPicks)
}

func registerScoringRoutes(rt routes, handler *Handler) {
	rt.handle("POST /v1/players/{playerID}/games", handler.RecordGame)
	rt.handle("GET /v1/players/{playerID}/games", handler.ListGames)
	rt.handle("POST /v1/players/{playerID}/eliminate", handler.EliminatePlayer)
	rt.handle("GET /v1/leagues/{leagueID}/standings", handler.ListStandings)
	rt.handle("POST /v1/leagues/{leagueID}/standings/snapshot", handler.SnapshotStandings)
}

func registerIngestionRoutes(rt routes, handler *Handler) {
	rt.handle("POST /v1/ingestion/ncaa/games/{gameID}", handler.ImportNCAAGame)
	rt.handle("POST /v1/ingestion/ncaa/scoreboard/{date}", handler.ImportNCAAScoreboard)
}
