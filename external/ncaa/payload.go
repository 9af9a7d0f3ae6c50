package ncaa

import (
	"bytes"
	"strconv"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
)

const gameStateFinal = "final"

// flexInt accepts both `12` and `"12"`; the provider is inconsistent.
type flexInt int

func (v *flexInt) UnmarshalJSON(raw []byte) error {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		*v = 0
		return nil
	}
	if raw[0] == '"' {
		var s string
		if err := sonic.Unmarshal(raw, &s); err != nil {
			return err
		}
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			*v = 0
			return nil
		}
		*v = flexInt(n)
		return nil
	}
	var n float64
	if err := sonic.Unmarshal(raw, &n); err != nil {
		return err
	}
	*v = flexInt(int(n))
	return nil
}

type boxScoreEnvelope struct {
	GameID string         `json:"gameID"`
	Teams  []boxScoreTeam `json:"teams"`
}

type boxScoreTeam struct {
	Name      string           `json:"name"`
	NameShort string           `json:"nameShort"`
	Players   []boxScorePlayer `json:"players"`
}

func (t boxScoreTeam) label() string {
	return firstNonEmpty(t.Name, t.NameShort)
}

type boxScorePlayer struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Points    flexInt `json:"points"`
}

func (p boxScorePlayer) label() string {
	full := strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
	return firstNonEmpty(p.Name, full)
}

type scoreboardEnvelope struct {
	Games []scoreboardItem `json:"games"`
}

type scoreboardItem struct {
	Game scoreboardGame `json:"game"`
}

type scoreboardGame struct {
	GameID         string         `json:"gameID"`
	GameState      string         `json:"gameState"`
	StartTimeEpoch string         `json:"startTimeEpoch"`
	Away           scoreboardSide `json:"away"`
	Home           scoreboardSide `json:"home"`
}

func (g scoreboardGame) isFinal() bool {
	return strings.EqualFold(strings.TrimSpace(g.GameState), gameStateFinal)
}

// startedAt prefers the provider epoch and falls back to the scoreboard day.
func (g scoreboardGame) startedAt(day time.Time) time.Time {
	if secs, err := strconv.ParseInt(strings.TrimSpace(g.StartTimeEpoch), 10, 64); err == nil && secs > 0 {
		return time.Unix(secs, 0).UTC()
	}
	return day
}

type scoreboardSide struct {
	Names scoreboardNames `json:"names"`
}

type scoreboardNames struct {
	Short string `json:"short"`
	Full  string `json:"full"`
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
