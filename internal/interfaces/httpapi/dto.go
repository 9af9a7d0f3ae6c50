package httpapi

import (
	"time"

	"github.com/riskibarqy/fantasy-madness/internal/domain/draft"
	"github.com/riskibarqy/fantasy-madness/internal/domain/game"
	"github.com/riskibarqy/fantasy-madness/internal/domain/league"
	"github.com/riskibarqy/fantasy-madness/internal/domain/player"
	"github.com/riskibarqy/fantasy-madness/internal/domain/standing"
	"github.com/riskibarqy/fantasy-madness/internal/domain/team"
	"github.com/riskibarqy/fantasy-madness/internal/usecase"
)

type createLeagueRequest struct {
	Name string `json:"name" validate:"required,max=120"`
}

type createTeamRequest struct {
	Name  string `json:"name" validate:"required,max=100"`
	Owner string `json:"owner" validate:"omitempty,max=100"`
}

type poolPlayerRequest struct {
	Name       string `json:"name" validate:"required,max=120"`
	SourceTeam string `json:"source_team" validate:"omitempty,max=120"`
	Seed       *int   `json:"seed" validate:"omitempty,gte=0"`
}

type addPlayersRequest struct {
	Players []poolPlayerRequest `json:"players" validate:"required,min=1,max=1000,dive"`
}

type startDraftRequest struct {
	Rounds    int      `json:"rounds" validate:"lte=64"`
	TeamOrder []string `json:"team_order" validate:"omitempty,dive,required"`
}

type submitPickRequest struct {
	TeamID   string `json:"team_id" validate:"required"`
	PlayerID string `json:"player_id" validate:"required"`
}

type recordGameRequest struct {
	Opponent     string     `json:"opponent" validate:"required,max=120"`
	PointsScored *int       `json:"points_scored" validate:"required"`
	PlayedAt     *time.Time `json:"played_at"`
	SourceRef    string     `json:"source_ref" validate:"omitempty,max=128"`
}

type leagueDTO struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	CreatedAt string `json:"created_at"`
}

type teamDTO struct {
	ID          string `json:"id"`
	LeagueID    string `json:"league_id"`
	Name        string `json:"name"`
	Owner       string `json:"owner"`
	TotalPoints int    `json:"total_points"`
	CreatedAt   string `json:"created_at"`
}

type leagueDetailDTO struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	CreatedAt string          `json:"created_at"`
	Teams     []leagueTeamDTO `json:"teams"`
}

type leagueTeamDTO struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Owner       string      `json:"owner"`
	TotalPoints int         `json:"total_points"`
	Players     []playerDTO `json:"players"`
}

type playerDTO struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	SourceTeam     string  `json:"source_team"`
	Seed           *int    `json:"seed,omitempty"`
	TotalPoints    int     `json:"total_points"`
	GamesPlayed    int     `json:"games_played"`
	IsEliminated   bool    `json:"is_eliminated"`
	IsAvailable    bool    `json:"is_available"`
	AssignedTeamID *string `json:"assigned_team_id"`
}

type draftDTO struct {
	SessionID     string   `json:"session_id"`
	LeagueID      string   `json:"league_id"`
	Rounds        int      `json:"rounds"`
	Order         []string `json:"order"`
	PickIndex     int      `json:"pick_index"`
	CurrentPicker string   `json:"current_picker,omitempty"`
	Complete      bool     `json:"complete"`
	Resumed       bool     `json:"resumed"`
	StartedAt     string   `json:"started_at"`
	CompletedAt   string   `json:"completed_at,omitempty"`
}

type assignmentDTO struct {
	PlayerID    string `json:"player_id"`
	TeamID      string `json:"team_id"`
	PickNumber  int    `json:"pick_number"`
	Round       int    `json:"round"`
	PickInRound int    `json:"pick_in_round"`
	PickedAt    string `json:"picked_at"`
}

type gameDTO struct {
	ID           string `json:"id"`
	PlayerID     string `json:"player_id"`
	Opponent     string `json:"opponent"`
	PointsScored int    `json:"points_scored"`
	PlayedAt     string `json:"played_at"`
	SourceRef    string `json:"source_ref,omitempty"`
}

type gameResultDTO struct {
	Game   gameDTO   `json:"game"`
	Player playerDTO `json:"player"`
	Team   *teamDTO  `json:"team"`
}

type standingDTO struct {
	Rank              int     `json:"rank"`
	TeamID            string  `json:"team_id"`
	TeamName          string  `json:"team_name"`
	Owner             string  `json:"owner"`
	TotalPoints       int     `json:"total_points"`
	PlayerCount       int     `json:"player_count"`
	ActivePlayerCount int     `json:"active_player_count"`
	PointsPerGame     float64 `json:"points_per_game"`
	Trend             int     `json:"trend"`
}

type snapshotDTO struct {
	LeagueID string         `json:"league_id"`
	Ranks    map[string]int `json:"ranks"`
	TakenAt  string         `json:"taken_at"`
}

func formatTime(v time.Time) string {
	if v.IsZero() {
		return ""
	}
	return v.UTC().Format(time.RFC3339)
}

func formatOptionalTime(v *time.Time) string {
	if v == nil {
		return ""
	}
	return formatTime(*v)
}

func leagueToDTO(v league.League) leagueDTO {
	return leagueDTO{ID: v.ID, Name: v.Name, CreatedAt: formatTime(v.CreatedAt)}
}

func teamToDTO(v team.Team) teamDTO {
	return teamDTO{
		ID:          v.ID,
		LeagueID:    v.LeagueID,
		Name:        v.Name,
		Owner:       v.Owner,
		TotalPoints: v.TotalPoints,
		CreatedAt:   formatTime(v.CreatedAt),
	}
}

func playerToDTO(v player.Player) playerDTO {
	return playerDTO{
		ID:             v.ID,
		Name:           v.Name,
		SourceTeam:     v.SourceTeam,
		Seed:           v.Seed,
		TotalPoints:    v.TotalPoints,
		GamesPlayed:    v.GamesPlayed,
		IsEliminated:   v.IsEliminated,
		IsAvailable:    v.IsAvailable(),
		AssignedTeamID: v.AssignedTeamID,
	}
}

func playersToDTO(items []player.Player) []playerDTO {
	out := make([]playerDTO, 0, len(items))
	for _, p := range items {
		out = append(out, playerToDTO(p))
	}
	return out
}

func draftToDTO(v usecase.DraftView) draftDTO {
	return draftDTO{
		SessionID:     v.State.ID,
		LeagueID:      v.State.LeagueID,
		Rounds:        v.State.Rounds,
		Order:         v.State.Order,
		PickIndex:     v.State.PickIndex,
		CurrentPicker: v.CurrentPicker,
		Complete:      v.State.IsComplete(),
		Resumed:       v.Resumed,
		StartedAt:     formatTime(v.State.StartedAt),
		CompletedAt:   formatOptionalTime(v.State.CompletedAt),
	}
}

func assignmentToDTO(v draft.Assignment) assignmentDTO {
	return assignmentDTO{
		PlayerID:    v.PlayerID,
		TeamID:      v.TeamID,
		PickNumber:  v.PickNumber,
		Round:       v.Round,
		PickInRound: v.PickInRound,
		PickedAt:    formatTime(v.PickedAt),
	}
}

func gameToDTO(v game.Game) gameDTO {
	return gameDTO{
		ID:           v.ID,
		PlayerID:     v.PlayerID,
		Opponent:     v.Opponent,
		PointsScored: v.PointsScored,
		PlayedAt:     formatTime(v.PlayedAt),
		SourceRef:    v.SourceRef,
	}
}

func gameResultToDTO(v game.Result) gameResultDTO {
	out := gameResultDTO{Game: gameToDTO(v.Game), Player: playerToDTO(v.Player)}
	if v.Team != nil {
		t := teamToDTO(*v.Team)
		out.Team = &t
	}
	return out
}

func standingToDTO(v standing.TeamStanding) standingDTO {
	return standingDTO{
		Rank:              v.Rank,
		TeamID:            v.TeamID,
		TeamName:          v.TeamName,
		Owner:             v.Owner,
		TotalPoints:       v.TotalPoints,
		PlayerCount:       v.PlayerCount,
		ActivePlayerCount: v.ActivePlayerCount,
		PointsPerGame:     v.PointsPerGame,
		Trend:             v.Trend,
	}
}
