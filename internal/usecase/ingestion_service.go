package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/fantasy-madness/internal/domain/game"
	"github.com/riskibarqy/fantasy-madness/internal/domain/player"
	"github.com/riskibarqy/fantasy-madness/internal/platform/logging"
)

const (
	ingestionStatusRecorded  = "recorded"
	ingestionStatusDuplicate = "duplicate"
	ingestionStatusUnmatched = "unmatched"
	ingestionStatusFailed    = "failed"

	defaultIngestionWorkers = 4
	feedSourcePrefix        = "ncaa:"
)

// ProposedGame is one player's line from a provider box score, before it is
// matched to a pool player.
type ProposedGame struct {
	ExternalGameID string
	PlayerName     string
	SourceTeam     string
	Opponent       string
	PointsScored   int
	PlayedAt       time.Time
}

// GameFeed is the third-party stats provider.
type GameFeed interface {
	BoxScore(ctx context.Context, gameID string) ([]ProposedGame, error)
	Scoreboard(ctx context.Context, day time.Time) ([]ProposedGame, error)
}

type IngestionOutcome struct {
	ExternalGameID string `json:"external_game_id"`
	PlayerName     string `json:"player_name"`
	SourceTeam     string `json:"source_team"`
	PlayerID       string `json:"player_id,omitempty"`
	PointsScored   int    `json:"points_scored"`
	Status         string `json:"status"`
	Message        string `json:"message,omitempty"`
}

type IngestionReport struct {
	ProposedCount  int                `json:"proposed_count"`
	RecordedCount  int                `json:"recorded_count"`
	DuplicateCount int                `json:"duplicate_count"`
	UnmatchedCount int                `json:"unmatched_count"`
	FailedCount    int                `json:"failed_count"`
	Outcomes       []IngestionOutcome `json:"outcomes"`
}

type IngestionService struct {
	feed       GameFeed
	playerRepo player.Repository
	scoring    *ScoringService
	workers    int
	logger     *logging.Logger
	newPool    func(size int) (*ants.Pool, error)
}

func NewIngestionService(
	feed GameFeed,
	playerRepo player.Repository,
	scoring *ScoringService,
	workers int,
	logger *logging.Logger,
) *IngestionService {
	if logger == nil {
		logger = logging.Default()
	}
	if workers < 1 {
		workers = defaultIngestionWorkers
	}

	return &IngestionService{
		feed:       feed,
		playerRepo: playerRepo,
		scoring:    scoring,
		workers:    workers,
		logger:     logger,
		newPool: func(size int) (*ants.Pool, error) {
			return ants.NewPool(size)
		},
	}
}

// ImportGame fetches one box score and records every line that matches a
// pool player.
func (s *IngestionService) ImportGame(ctx context.Context, gameID string) (IngestionReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.ImportGame")
	defer span.End()

	gameID = strings.TrimSpace(gameID)
	if gameID == "" {
		return IngestionReport{}, fmt.Errorf("%w: game id is required", ErrInvalidInput)
	}
	if s.feed == nil {
		return IngestionReport{}, fmt.Errorf("%w: stats feed is disabled", ErrDependencyUnavailable)
	}

	proposed, err := s.feed.BoxScore(ctx, gameID)
	if err != nil {
		return IngestionReport{}, fmt.Errorf("fetch box score game_id=%s: %w", gameID, err)
	}
	return s.ingest(ctx, proposed)
}

// ImportDate records every final game on the provider scoreboard for day.
func (s *IngestionService) ImportDate(ctx context.Context, day time.Time) (IngestionReport, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestionService.ImportDate")
	defer span.End()

	if day.IsZero() {
		return IngestionReport{}, fmt.Errorf("%w: date is required", ErrInvalidInput)
	}
	if s.feed == nil {
		return IngestionReport{}, fmt.Errorf("%w: stats feed is disabled", ErrDependencyUnavailable)
	}

	proposed, err := s.feed.Scoreboard(ctx, day)
	if err != nil {
		return IngestionReport{}, fmt.Errorf("fetch scoreboard date=%s: %w", day.Format("2006-01-02"), err)
	}
	return s.ingest(ctx, proposed)
}

// ingest runs only after the provider fetch has finished, so no network I/O
// happens while the store holds row locks.
func (s *IngestionService) ingest(ctx context.Context, proposed []ProposedGame) (IngestionReport, error) {
	report := IngestionReport{
		ProposedCount: len(proposed),
		Outcomes:      make([]IngestionOutcome, 0, len(proposed)),
	}
	if len(proposed) == 0 {
		return report, nil
	}

	pool, err := s.playerRepo.List(ctx)
	if err != nil {
		return IngestionReport{}, storeFailure("list players", err)
	}
	byKey := make(map[string]string, len(pool))
	for _, p := range pool {
		byKey[matchKey(p.Name, p.SourceTeam)] = p.ID
	}

	workerCount := s.workers
	if workerCount > len(proposed) {
		workerCount = len(proposed)
	}
	workerPool, err := s.newPool(workerCount)
	if err != nil {
		return IngestionReport{}, fmt.Errorf("create worker pool: %w", err)
	}
	defer workerPool.Release()

	results := make(chan IngestionOutcome, len(proposed))

	var recordedCount atomic.Int32
	var duplicateCount atomic.Int32
	var unmatchedCount atomic.Int32
	var failedCount atomic.Int32

	var workers sync.WaitGroup
	for _, row := range proposed {
		workers.Add(1)
		if err := workerPool.Submit(func() {
			defer workers.Done()

			outcome := IngestionOutcome{
				ExternalGameID: row.ExternalGameID,
				PlayerName:     row.PlayerName,
				SourceTeam:     row.SourceTeam,
				PointsScored:   row.PointsScored,
			}

			playerID, ok := byKey[matchKey(row.PlayerName, row.SourceTeam)]
			if !ok {
				outcome.Status = ingestionStatusUnmatched
				unmatchedCount.Add(1)
				results <- outcome
				return
			}
			outcome.PlayerID = playerID

			_, err := s.scoring.RecordGame(ctx, RecordGameInput{
				PlayerID:     playerID,
				Opponent:     row.Opponent,
				PointsScored: row.PointsScored,
				PlayedAt:     row.PlayedAt,
				SourceRef:    feedSourcePrefix + row.ExternalGameID,
			})
			switch {
			case err == nil:
				outcome.Status = ingestionStatusRecorded
				recordedCount.Add(1)
			case errors.Is(err, game.ErrDuplicateGame):
				outcome.Status = ingestionStatusDuplicate
				duplicateCount.Add(1)
			default:
				outcome.Status = ingestionStatusFailed
				outcome.Message = err.Error()
				failedCount.Add(1)
				s.logger.WarnContext(ctx, "ingest game line failed",
					"external_game_id", row.ExternalGameID,
					"player_id", playerID,
					"error", err,
				)
			}
			results <- outcome
		}); err != nil {
			workers.Done()
			// Lines already submitted still write to the store.
			workers.Wait()
			return IngestionReport{}, fmt.Errorf("submit task to worker pool: %w", err)
		}
	}

	workers.Wait()
	close(results)

	for outcome := range results {
		report.Outcomes = append(report.Outcomes, outcome)
	}
	sort.SliceStable(report.Outcomes, func(i, j int) bool {
		if report.Outcomes[i].ExternalGameID != report.Outcomes[j].ExternalGameID {
			return report.Outcomes[i].ExternalGameID < report.Outcomes[j].ExternalGameID
		}
		if report.Outcomes[i].SourceTeam != report.Outcomes[j].SourceTeam {
			return report.Outcomes[i].SourceTeam < report.Outcomes[j].SourceTeam
		}
		return report.Outcomes[i].PlayerName < report.Outcomes[j].PlayerName
	})

	report.RecordedCount = int(recordedCount.Load())
	report.DuplicateCount = int(duplicateCount.Load())
	report.UnmatchedCount = int(unmatchedCount.Load())
	report.FailedCount = int(failedCount.Load())

	s.logger.InfoContext(ctx, "stats feed ingested",
		"proposed", report.ProposedCount,
		"recorded", report.RecordedCount,
		"duplicate", report.DuplicateCount,
		"unmatched", report.UnmatchedCount,
		"failed", report.FailedCount,
	)
	return report, nil
}

func matchKey(name, sourceTeam string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " ")) + "|" +
		strings.ToLower(strings.Join(strings.Fields(sourceTeam), " "))
}
