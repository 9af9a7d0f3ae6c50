package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"

	"github.com/riskibarqy/fantasy-madness/internal/domain/draft"
	"github.com/riskibarqy/fantasy-madness/internal/domain/game"
	"github.com/riskibarqy/fantasy-madness/internal/domain/league"
	"github.com/riskibarqy/fantasy-madness/internal/domain/player"
	"github.com/riskibarqy/fantasy-madness/internal/domain/team"
	qb "github.com/riskibarqy/fantasy-madness/internal/platform/querybuilder"
)

type leagueTableModel struct {
	PublicID  string    `db:"public_id"`
	Name      string    `db:"name"`
	CreatedAt time.Time `db:"created_at"`
}

var leagueColumns = qb.Columns(leagueTableModel{})

func (m leagueTableModel) toDomain() league.League {
	return league.League{ID: m.PublicID, Name: m.Name, CreatedAt: m.CreatedAt}
}

type teamTableModel struct {
	PublicID       string    `db:"public_id"`
	LeaguePublicID string    `db:"league_public_id"`
	Name           string    `db:"name"`
	Owner          string    `db:"owner"`
	TotalPoints    int       `db:"total_points"`
	CreatedAt      time.Time `db:"created_at"`
}

var teamColumns = qb.Columns(teamTableModel{})

func (m teamTableModel) toDomain() team.Team {
	return team.Team{
		ID:          m.PublicID,
		LeagueID:    m.LeaguePublicID,
		Name:        m.Name,
		Owner:       m.Owner,
		TotalPoints: m.TotalPoints,
		CreatedAt:   m.CreatedAt,
	}
}

type playerTableModel struct {
	PublicID     string         `db:"public_id"`
	Name         string         `db:"name"`
	SourceTeam   string         `db:"source_team"`
	Seed         sql.NullInt64  `db:"seed"`
	TotalPoints  int            `db:"total_points"`
	GamesPlayed  int            `db:"games_played"`
	IsEliminated bool           `db:"is_eliminated"`
	TeamPublicID sql.NullString `db:"team_public_id"`
}

var playerColumns = qb.Columns(playerTableModel{})

func playerRowFromDomain(p player.Player) playerTableModel {
	row := playerTableModel{
		PublicID:   p.ID,
		Name:       p.Name,
		SourceTeam: p.SourceTeam,
	}
	if p.Seed != nil {
		row.Seed = sql.NullInt64{Int64: int64(*p.Seed), Valid: true}
	}
	return row
}

func (m playerTableModel) toDomain() player.Player {
	p := player.Player{
		ID:           m.PublicID,
		Name:         m.Name,
		SourceTeam:   m.SourceTeam,
		TotalPoints:  m.TotalPoints,
		GamesPlayed:  m.GamesPlayed,
		IsEliminated: m.IsEliminated,
	}
	if m.Seed.Valid {
		seed := int(m.Seed.Int64)
		p.Seed = &seed
	}
	if m.TeamPublicID.Valid {
		teamID := m.TeamPublicID.String
		p.AssignedTeamID = &teamID
	}
	return p
}

type gameTableModel struct {
	PublicID       string    `db:"public_id"`
	PlayerPublicID string    `db:"player_public_id"`
	Opponent       string    `db:"opponent"`
	PointsScored   int       `db:"points_scored"`
	PlayedAt       time.Time `db:"played_at"`
	SourceRef      string    `db:"source_ref"`
}

var gameColumns = qb.Columns(gameTableModel{})

func gameRowFromDomain(g game.Game) gameTableModel {
	return gameTableModel{
		PublicID:       g.ID,
		PlayerPublicID: g.PlayerID,
		Opponent:       g.Opponent,
		PointsScored:   g.PointsScored,
		PlayedAt:       g.PlayedAt,
		SourceRef:      g.SourceRef,
	}
}

func (m gameTableModel) toDomain() game.Game {
	return game.Game{
		ID:           m.PublicID,
		PlayerID:     m.PlayerPublicID,
		Opponent:     m.Opponent,
		PointsScored: m.PointsScored,
		PlayedAt:     m.PlayedAt,
		SourceRef:    m.SourceRef,
	}
}

type draftSessionTableModel struct {
	PublicID       string         `db:"public_id"`
	LeaguePublicID string         `db:"league_public_id"`
	Rounds         int            `db:"rounds"`
	PickOrder      pq.StringArray `db:"pick_order"`
	PickIndex      int            `db:"pick_index"`
	StartedAt      time.Time      `db:"started_at"`
	CompletedAt    *time.Time     `db:"completed_at"`
}

var draftSessionColumns = qb.Columns(draftSessionTableModel{})

func (m draftSessionTableModel) toDomain(drafted []string) draft.State {
	set := make(map[string]struct{}, len(drafted))
	for _, id := range drafted {
		set[id] = struct{}{}
	}
	return draft.State{
		ID:          m.PublicID,
		LeagueID:    m.LeaguePublicID,
		Rounds:      m.Rounds,
		Order:       append([]string(nil), m.PickOrder...),
		PickIndex:   m.PickIndex,
		Drafted:     set,
		StartedAt:   m.StartedAt,
		CompletedAt: m.CompletedAt,
	}
}

type draftPickTableModel struct {
	SessionPublicID string    `db:"session_public_id"`
	PlayerPublicID  string    `db:"player_public_id"`
	TeamPublicID    string    `db:"team_public_id"`
	PickNumber      int       `db:"pick_number"`
	Round           int       `db:"round"`
	PickInRound     int       `db:"pick_in_round"`
	PickedAt        time.Time `db:"picked_at"`
}

var draftPickColumns = qb.Columns(draftPickTableModel{})

func (m draftPickTableModel) toDomain() draft.Assignment {
	return draft.Assignment{
		SessionID:   m.SessionPublicID,
		PlayerID:    m.PlayerPublicID,
		TeamID:      m.TeamPublicID,
		PickNumber:  m.PickNumber,
		Round:       m.Round,
		PickInRound: m.PickInRound,
		PickedAt:    m.PickedAt,
	}
}

type standingSnapshotTableModel struct {
	LeaguePublicID string    `db:"league_public_id"`
	TeamPublicID   string    `db:"team_public_id"`
	Rank           int       `db:"rank"`
	TakenAt        time.Time `db:"taken_at"`
}
