package memory

import (
	"fmt"
	"time"

	"github.com/riskibarqy/fantasy-madness/internal/domain/league"
	"github.com/riskibarqy/fantasy-madness/internal/domain/player"
	"github.com/riskibarqy/fantasy-madness/internal/domain/team"
)

const DemoLeagueID = "demo-league"

type seedPlayer struct {
	name   string
	school string
	seed   int
}

var demoPool = []seedPlayer{
	{"Cooper Flagg", "Duke", 1},
	{"Johni Broome", "Auburn", 1},
	{"Walter Clayton Jr.", "Florida", 1},
	{"L.J. Cryer", "Houston", 1},
	{"Mark Sears", "Alabama", 2},
	{"Chaz Lanier", "Tennessee", 2},
	{"Tahaad Pettiford", "Auburn", 1},
	{"Kon Knueppel", "Duke", 1},
	{"RJ Luis Jr.", "St. John's", 2},
	{"Jaxson Robinson", "Kentucky", 3},
	{"Braden Smith", "Purdue", 4},
	{"Alex Condon", "Florida", 1},
}

// SeedDemo loads a small league for local development. It is a no-op when
// the demo league already exists.
func SeedDemo(store *Store, now time.Time) {
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, ok := store.leagues[DemoLeagueID]; ok {
		return
	}

	store.leagues[DemoLeagueID] = league.League{ID: DemoLeagueID, Name: "Office Bracket Pool", CreatedAt: now}
	store.leagueOrder = append(store.leagueOrder, DemoLeagueID)

	for i, owner := range []string{"Avery", "Jordan", "Riley"} {
		id := fmt.Sprintf("demo-team-%d", i+1)
		store.teams[id] = team.Team{
			ID:        id,
			LeagueID:  DemoLeagueID,
			Name:      owner + "'s Squad",
			Owner:     owner,
			CreatedAt: now.Add(time.Duration(i) * time.Second),
		}
		store.teamOrder = append(store.teamOrder, id)
	}

	for i, sp := range demoPool {
		id := fmt.Sprintf("demo-player-%02d", i+1)
		seed := sp.seed
		store.players[id] = player.Player{ID: id, Name: sp.name, SourceTeam: sp.school, Seed: &seed}
		store.playerOrder = append(store.playerOrder, id)
	}
}
