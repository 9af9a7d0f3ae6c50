package standing

import (
	"sort"
	"time"

	"github.com/riskibarqy/fantasy-madness/internal/domain/player"
	"github.com/riskibarqy/fantasy-madness/internal/domain/team"
)

// TeamStanding is one row of a league table.
type TeamStanding struct {
	TeamID            string
	TeamName          string
	Owner             string
	Rank              int
	TotalPoints       int
	PlayerCount       int
	ActivePlayerCount int
	PointsPerGame     float64
	// Trend is previous rank minus current rank; positive means moved up.
	Trend int
}

// Snapshot is a stored baseline of ranks keyed by team id.
type Snapshot struct {
	LeagueID string
	Ranks    map[string]int
	TakenAt  time.Time
}

// Rank orders teams by total points descending, team id ascending on ties.
func Rank(teams []team.Team, players []player.Player) []TeamStanding {
	type counts struct{ total, active int }
	byTeam := make(map[string]counts, len(teams))
	for _, p := range players {
		if p.AssignedTeamID == nil {
			continue
		}
		c := byTeam[*p.AssignedTeamID]
		c.total++
		if !p.IsEliminated {
			c.active++
		}
		byTeam[*p.AssignedTeamID] = c
	}

	out := make([]TeamStanding, 0, len(teams))
	for _, t := range teams {
		c := byTeam[t.ID]
		row := TeamStanding{
			TeamID:            t.ID,
			TeamName:          t.Name,
			Owner:             t.Owner,
			TotalPoints:       t.TotalPoints,
			PlayerCount:       c.total,
			ActivePlayerCount: c.active,
		}
		if c.total > 0 {
			row.PointsPerGame = float64(t.TotalPoints) / float64(c.total)
		}
		out = append(out, row)
	}

	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalPoints != out[j].TotalPoints {
			return out[i].TotalPoints > out[j].TotalPoints
		}
		return out[i].TeamID < out[j].TeamID
	})
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

// ApplyTrend fills Trend from a previous rank baseline. Teams missing from
// the baseline keep a zero trend.
func ApplyTrend(standings []TeamStanding, previous map[string]int) {
	for i := range standings {
		prev, ok := previous[standings[i].TeamID]
		if !ok {
			continue
		}
		standings[i].Trend = prev - standings[i].Rank
	}
}

// Ranks extracts the team id to rank mapping for a snapshot.
func Ranks(standings []TeamStanding) map[string]int {
	out := make(map[string]int, len(standings))
	for _, s := range standings {
		out[s.TeamID] = s.Rank
	}
	return out
}
