package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	sonic "github.com/bytedance/sonic"

	"github.com/riskibarqy/fantasy-madness/internal/infrastructure/repository/memory"
	idgen "github.com/riskibarqy/fantasy-madness/internal/platform/id"
	"github.com/riskibarqy/fantasy-madness/internal/platform/logging"
	"github.com/riskibarqy/fantasy-madness/internal/usecase"
)

type apiResponse struct {
	APIVersion string `json:"apiVersion"`
	Data       any    `json:"data"`
	Error      *struct {
		Code     int               `json:"code"`
		Status   string            `json:"status"`
		Message  string            `json:"message"`
		Metadata map[string]string `json:"metadata"`
	} `json:"error"`
}

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	store := memory.NewStore()
	leagueRepo := memory.NewLeagueRepository(store)
	teamRepo := memory.NewTeamRepository(store)
	playerRepo := memory.NewPlayerRepository(store)
	gameRepo := memory.NewGameRepository(store)
	draftRepo := memory.NewDraftRepository(store)
	standingRepo := memory.NewStandingRepository(store)
	ids := idgen.NewUUIDGenerator()
	logger := logging.NewNop()

	scoring := usecase.NewScoringService(playerRepo, gameRepo, ids, logger)
	handler := NewHandler(
		usecase.NewLeagueService(leagueRepo, teamRepo, ids, logger),
		usecase.NewPlayerService(playerRepo, teamRepo, ids, logger),
		usecase.NewDraftService(leagueRepo, teamRepo, playerRepo, draftRepo, ids, 2, logger),
		scoring,
		usecase.NewStandingService(leagueRepo, teamRepo, playerRepo, standingRepo, logger),
		usecase.NewIngestionService(nil, playerRepo, scoring, 2, logger),
		logger,
	)
	return NewRouter(handler, logger, RouterConfig{})
}

func doRequest(t *testing.T, router http.Handler, method, path, body string) (int, apiResponse) {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body == "" {
		req.ContentLength = 0
	}
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var out apiResponse
	if err := sonic.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal %s %s response: %v body=%s", method, path, err, rec.Body.String())
	}
	if out.APIVersion != googleAPIVersion {
		t.Fatalf("expected apiVersion=%s, got %q", googleAPIVersion, out.APIVersion)
	}
	return rec.Code, out
}

func dataField(t *testing.T, resp apiResponse, key string) any {
	t.Helper()

	obj, ok := resp.Data.(map[string]any)
	if !ok {
		t.Fatalf("expected object data, got %T", resp.Data)
	}
	return obj[key]
}

func dataString(t *testing.T, resp apiResponse, key string) string {
	t.Helper()

	v, _ := dataField(t, resp, key).(string)
	return v
}

type draftFixture struct {
	leagueID  string
	order     []string
	playerIDs []string
}

// setupDraft creates a league with two teams and four pool players and
// starts a two round draft.
func setupDraft(t *testing.T, router http.Handler) draftFixture {
	t.Helper()

	status, resp := doRequest(t, router, http.MethodPost, "/v1/leagues", `{"name":"Office Pool"}`)
	if status != http.StatusCreated {
		t.Fatalf("create league: expected 201, got %d", status)
	}
	leagueID := dataString(t, resp, "id")

	for _, name := range []string{"Alpha", "Bravo"} {
		status, _ = doRequest(t, router, http.MethodPost, "/v1/leagues/"+leagueID+"/teams", `{"name":"`+name+`","owner":"`+name+` Owner"}`)
		if status != http.StatusCreated {
			t.Fatalf("create team %s: expected 201, got %d", name, status)
		}
	}

	status, resp = doRequest(t, router, http.MethodPost, "/v1/players/pool", `{"players":[
		{"name":"Cooper Flagg","source_team":"Duke","seed":1},
		{"name":"Johni Broome","source_team":"Auburn","seed":1},
		{"name":"Walter Clayton","source_team":"Florida","seed":1},
		{"name":"Mark Sears","source_team":"Alabama","seed":2}
	]}`)
	if status != http.StatusCreated {
		t.Fatalf("add players: expected 201, got %d", status)
	}
	items, ok := resp.Data.([]any)
	if !ok || len(items) != 4 {
		t.Fatalf("expected 4 players, got %v", resp.Data)
	}
	fixture := draftFixture{leagueID: leagueID}
	for _, item := range items {
		fixture.playerIDs = append(fixture.playerIDs, item.(map[string]any)["id"].(string))
	}

	status, resp = doRequest(t, router, http.MethodPost, "/v1/leagues/"+leagueID+"/draft", "")
	if status != http.StatusCreated {
		t.Fatalf("start draft: expected 201, got %d", status)
	}
	rawOrder, _ := dataField(t, resp, "order").([]any)
	for _, id := range rawOrder {
		fixture.order = append(fixture.order, id.(string))
	}
	if len(fixture.order) != 4 {
		t.Fatalf("expected 4 slots in snake order, got %v", fixture.order)
	}
	if fixture.order[0] != fixture.order[3] || fixture.order[1] != fixture.order[2] {
		t.Fatalf("expected snake order, got %v", fixture.order)
	}
	return fixture
}

func TestDraftFlow_PickScoreAndRank(t *testing.T) {
	router := newTestRouter(t)
	fx := setupDraft(t, router)
	base := "/v1/leagues/" + fx.leagueID

	for i, teamID := range fx.order {
		status, resp := doRequest(t, router, http.MethodPost, base+"/draft/picks",
			`{"team_id":"`+teamID+`","player_id":"`+fx.playerIDs[i]+`"}`)
		if status != http.StatusCreated {
			t.Fatalf("pick %d: expected 201, got %d (%+v)", i+1, status, resp.Error)
		}
		if got, _ := dataField(t, resp, "pick_number").(float64); int(got) != i+1 {
			t.Fatalf("pick %d: expected pick_number=%d, got %v", i+1, i+1, got)
		}
	}

	status, resp := doRequest(t, router, http.MethodPost, base+"/draft/picks",
		`{"team_id":"`+fx.order[0]+`","player_id":"`+fx.playerIDs[0]+`"}`)
	if status != http.StatusConflict {
		t.Fatalf("pick after completion: expected 409, got %d", status)
	}
	if resp.Error == nil || resp.Error.Status != "FAILED_PRECONDITION" {
		t.Fatalf("expected FAILED_PRECONDITION, got %+v", resp.Error)
	}

	_, resp = doRequest(t, router, http.MethodGet, base+"/draft", "")
	if complete, _ := dataField(t, resp, "complete").(bool); !complete {
		t.Fatalf("expected draft to be complete")
	}

	status, resp = doRequest(t, router, http.MethodPost, "/v1/players/"+fx.playerIDs[1]+"/games",
		`{"opponent":"Houston","points_scored":21}`)
	if status != http.StatusCreated {
		t.Fatalf("record game: expected 201, got %d (%+v)", status, resp.Error)
	}
	teamObj, ok := dataField(t, resp, "team").(map[string]any)
	if !ok {
		t.Fatalf("expected team in game result")
	}
	if teamObj["id"] != fx.order[1] || teamObj["total_points"].(float64) != 21 {
		t.Fatalf("expected team %s with 21 points, got %v", fx.order[1], teamObj)
	}

	status, resp = doRequest(t, router, http.MethodGet, base+"/standings", "")
	if status != http.StatusOK {
		t.Fatalf("standings: expected 200, got %d", status)
	}
	rows, _ := resp.Data.([]any)
	if len(rows) != 2 {
		t.Fatalf("expected 2 standings rows, got %v", resp.Data)
	}
	top := rows[0].(map[string]any)
	if top["team_id"] != fx.order[1] || top["rank"].(float64) != 1 {
		t.Fatalf("expected %s ranked first, got %v", fx.order[1], top)
	}
}

func TestSubmitPick_OutOfTurnCarriesMetadata(t *testing.T) {
	router := newTestRouter(t)
	fx := setupDraft(t, router)

	status, resp := doRequest(t, router, http.MethodPost, "/v1/leagues/"+fx.leagueID+"/draft/picks",
		`{"team_id":"`+fx.order[1]+`","player_id":"`+fx.playerIDs[0]+`"}`)
	if status != http.StatusConflict {
		t.Fatalf("expected 409, got %d", status)
	}
	if resp.Error == nil || resp.Error.Status != "ABORTED" {
		t.Fatalf("expected ABORTED error, got %+v", resp.Error)
	}
	if got := resp.Error.Metadata["expected_team_id"]; got != fx.order[0] {
		t.Fatalf("expected expected_team_id=%s, got %q", fx.order[0], got)
	}
	if got := resp.Error.Metadata["pick_index"]; got != "0" {
		t.Fatalf("expected pick_index=0, got %q", got)
	}
}

func TestSubmitPick_UnknownPlayerFlagged(t *testing.T) {
	router := newTestRouter(t)
	fx := setupDraft(t, router)

	status, resp := doRequest(t, router, http.MethodPost, "/v1/leagues/"+fx.leagueID+"/draft/picks",
		`{"team_id":"`+fx.order[0]+`","player_id":"ghost"}`)
	if status != http.StatusConflict {
		t.Fatalf("expected 409, got %d", status)
	}
	if resp.Error.Metadata["unknown_player"] != "true" {
		t.Fatalf("expected unknown_player metadata, got %v", resp.Error.Metadata)
	}
}

func TestRecordGame_Rejections(t *testing.T) {
	router := newTestRouter(t)

	tests := []struct {
		name       string
		path       string
		body       string
		wantStatus int
	}{
		{name: "unknown player", path: "/v1/players/ghost/games", body: `{"opponent":"Duke","points_scored":10}`, wantStatus: http.StatusNotFound},
		{name: "missing points", path: "/v1/players/ghost/games", body: `{"opponent":"Duke"}`, wantStatus: http.StatusBadRequest},
		{name: "unknown field", path: "/v1/players/ghost/games", body: `{"opponent":"Duke","points_scored":1,"bonus":3}`, wantStatus: http.StatusBadRequest},
		{name: "malformed json", path: "/v1/players/ghost/games", body: `{"opponent":`, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := doRequest(t, router, http.MethodPost, tt.path, tt.body)
			if status != tt.wantStatus {
				t.Fatalf("expected %d, got %d (%+v)", tt.wantStatus, status, resp.Error)
			}
			if resp.Error == nil {
				t.Fatalf("expected error body")
			}
		})
	}
}

func TestStartDraft_ValidationErrors(t *testing.T) {
	router := newTestRouter(t)

	status, _ := doRequest(t, router, http.MethodPost, "/v1/leagues/missing/draft", "")
	if status != http.StatusNotFound {
		t.Fatalf("unknown league: expected 404, got %d", status)
	}

	_, resp := doRequest(t, router, http.MethodPost, "/v1/leagues", `{"name":"Empty"}`)
	leagueID := dataString(t, resp, "id")

	status, resp = doRequest(t, router, http.MethodPost, "/v1/leagues/"+leagueID+"/draft", `{"rounds":2}`)
	if status != http.StatusBadRequest {
		t.Fatalf("league without teams: expected 400, got %d", status)
	}
	if resp.Error.Status != "INVALID_ARGUMENT" {
		t.Fatalf("expected INVALID_ARGUMENT, got %s", resp.Error.Status)
	}

	status, _ = doRequest(t, router, http.MethodPost, "/v1/leagues/"+leagueID+"/draft", `{"rounds":65}`)
	if status != http.StatusBadRequest {
		t.Fatalf("too many rounds: expected 400, got %d", status)
	}
}

func TestImportNCAA_FeedDisabledAndBadDate(t *testing.T) {
	router := newTestRouter(t)

	status, resp := doRequest(t, router, http.MethodPost, "/v1/ingestion/ncaa/games/6384622", "")
	if status != http.StatusServiceUnavailable {
		t.Fatalf("disabled feed: expected 503, got %d", status)
	}
	if resp.Error.Status != "UNAVAILABLE" {
		t.Fatalf("expected UNAVAILABLE, got %s", resp.Error.Status)
	}

	status, _ = doRequest(t, router, http.MethodPost, "/v1/ingestion/ncaa/scoreboard/03-21-2025", "")
	if status != http.StatusBadRequest {
		t.Fatalf("bad date: expected 400, got %d", status)
	}
}

func TestListAvailablePlayers_ShrinksAfterPick(t *testing.T) {
	router := newTestRouter(t)
	fx := setupDraft(t, router)

	_, resp := doRequest(t, router, http.MethodGet, "/v1/players/available", "")
	if items, _ := resp.Data.([]any); len(items) != 4 {
		t.Fatalf("expected 4 available players, got %d", len(items))
	}

	status, _ := doRequest(t, router, http.MethodPost, "/v1/leagues/"+fx.leagueID+"/draft/picks",
		`{"team_id":"`+fx.order[0]+`","player_id":"`+fx.playerIDs[2]+`"}`)
	if status != http.StatusCreated {
		t.Fatalf("pick: expected 201, got %d", status)
	}

	_, resp = doRequest(t, router, http.MethodGet, "/v1/players/available", "")
	items, _ := resp.Data.([]any)
	if len(items) != 3 {
		t.Fatalf("expected 3 available players, got %d", len(items))
	}
	for _, item := range items {
		if item.(map[string]any)["id"] == fx.playerIDs[2] {
			t.Fatalf("drafted player still listed as available")
		}
	}

	_, resp = doRequest(t, router, http.MethodGet, "/v1/teams/"+fx.order[0]+"/players", "")
	roster, _ := resp.Data.([]any)
	if len(roster) != 1 || roster[0].(map[string]any)["id"] != fx.playerIDs[2] {
		t.Fatalf("expected roster with the drafted player, got %v", resp.Data)
	}
}

func TestSwaggerRoutes_OnlyWhenEnabled(t *testing.T) {
	handler := NewHandler(nil, nil, nil, nil, nil, nil, logging.NewNop())

	enabled := NewRouter(handler, logging.NewNop(), RouterConfig{SwaggerEnabled: true})
	rec := httptest.NewRecorder()
	enabled.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/openapi.yaml", nil))
	if rec.Code != http.StatusOK || !strings.HasPrefix(rec.Body.String(), "openapi: 3") {
		t.Fatalf("expected openapi document, got %d", rec.Code)
	}

	disabled := NewRouter(handler, logging.NewNop(), RouterConfig{})
	rec = httptest.NewRecorder()
	disabled.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/docs", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for docs when swagger disabled, got %d", rec.Code)
	}
}

func TestGetLeague_IncludeTeams(t *testing.T) {
	router := newTestRouter(t)
	fx := setupDraft(t, router)
	base := "/v1/leagues/" + fx.leagueID

	for i, teamID := range fx.order {
		status, resp := doRequest(t, router, http.MethodPost, base+"/draft/picks",
			`{"team_id":"`+teamID+`","player_id":"`+fx.playerIDs[i]+`"}`)
		if status != http.StatusCreated {
			t.Fatalf("pick %d: expected 201, got %d (%+v)", i+1, status, resp.Error)
		}
	}
	status, _ := doRequest(t, router, http.MethodPost, "/v1/players/"+fx.playerIDs[1]+"/games",
		`{"opponent":"Houston","points_scored":18}`)
	if status != http.StatusCreated {
		t.Fatalf("record game: expected 201, got %d", status)
	}

	_, resp := doRequest(t, router, http.MethodGet, base, "")
	if dataField(t, resp, "teams") != nil {
		t.Fatalf("expected no teams without include, got %v", dataField(t, resp, "teams"))
	}

	status, resp = doRequest(t, router, http.MethodGet, base+"?include=teams", "")
	if status != http.StatusOK {
		t.Fatalf("get league with teams: expected 200, got %d (%+v)", status, resp.Error)
	}
	teams, _ := dataField(t, resp, "teams").([]any)
	if len(teams) != 2 {
		t.Fatalf("expected 2 teams, got %v", dataField(t, resp, "teams"))
	}
	top := teams[0].(map[string]any)
	if top["id"] != fx.order[1] || top["total_points"].(float64) != 18 {
		t.Fatalf("expected %s first with 18 points, got %v", fx.order[1], top)
	}
	for _, raw := range teams {
		tm := raw.(map[string]any)
		players, _ := tm["players"].([]any)
		if len(players) != 2 {
			t.Fatalf("expected 2 players on team %v, got %v", tm["id"], tm["players"])
		}
		for _, p := range players {
			if p.(map[string]any)["assigned_team_id"] != tm["id"] {
				t.Fatalf("player %v listed under team %v", p, tm["id"])
			}
		}
	}

	status, resp = doRequest(t, router, http.MethodGet, base+"?include=games", "")
	if status != http.StatusBadRequest {
		t.Fatalf("unsupported include: expected 400, got %d (%+v)", status, resp.Error)
	}
}
