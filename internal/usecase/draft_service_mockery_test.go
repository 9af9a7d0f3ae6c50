package usecase

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/fantasy-madness/internal/domain/draft"
	"github.com/riskibarqy/fantasy-madness/internal/domain/player"
	draftmock "github.com/riskibarqy/fantasy-madness/internal/mocks/domain/draft"
	leaguemock "github.com/riskibarqy/fantasy-madness/internal/mocks/domain/league"
	playermock "github.com/riskibarqy/fantasy-madness/internal/mocks/domain/player"
	teammock "github.com/riskibarqy/fantasy-madness/internal/mocks/domain/team"
	idgen "github.com/riskibarqy/fantasy-madness/internal/platform/id"
)

func TestDraftService_PickCommitFailureUsingMockery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		commitErr error
		wantRule  error
	}{
		{name: "pick index moved", commitErr: fmt.Errorf("commit pick: %w", draft.ErrOutOfTurn), wantRule: draft.ErrOutOfTurn},
		{name: "player taken", commitErr: fmt.Errorf("commit pick: %w", draft.ErrPlayerUnavailable), wantRule: draft.ErrPlayerUnavailable},
		{name: "connection lost", commitErr: errors.New("connection reset")},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()
			playerRepo := playermock.NewRepository(t)
			draftRepo := draftmock.NewRepository(t)
			service := NewDraftService(
				leaguemock.NewRepository(t),
				teammock.NewRepository(t),
				playerRepo,
				draftRepo,
				idgen.NewSequence(),
				1,
				nil,
			)

			state, err := draft.NewState("session-1", "L1", []string{"T1", "T2"}, 1, testNow)
			require.NoError(t, err)

			draftRepo.
				On("GetByLeague", mock.Anything, "L1").
				Return(state, true, nil).
				Once()
			playerRepo.
				On("GetByID", mock.Anything, "P1").
				Return(player.Player{ID: "P1", Name: "Cooper Flagg"}, true, nil).
				Once()
			draftRepo.
				On("CommitPick", mock.Anything, mock.MatchedBy(func(c draft.Commit) bool {
					return c.LeagueID == "L1" && c.ExpectedIndex == 0 &&
						c.Assignment.PlayerID == "P1" && c.Assignment.TeamID == "T1"
				})).
				Return(tc.commitErr).
				Once()

			_, err = service.Pick(ctx, PickInput{LeagueID: "L1", TeamID: "T1", PlayerID: "P1"})
			require.Error(t, err)

			var ruleErr *draft.RuleError
			if tc.wantRule == nil {
				assert.ErrorIs(t, err, ErrStoreUnavailable)
				assert.False(t, errors.As(err, &ruleErr))
				return
			}
			require.True(t, errors.As(err, &ruleErr), "expected *draft.RuleError, got %T", err)
			assert.ErrorIs(t, err, tc.wantRule)
			assert.NotErrorIs(t, err, ErrStoreUnavailable)
			assert.Equal(t, "L1", ruleErr.LeagueID)
			assert.Equal(t, "T1", ruleErr.TeamID)
			assert.Equal(t, "P1", ruleErr.PlayerID)
			assert.Zero(t, ruleErr.PickIndex)
		})
	}
}

func TestDraftService_GetStoreFailureUsingMockery(t *testing.T) {
	t.Parallel()

	draftRepo := draftmock.NewRepository(t)
	service := NewDraftService(nil, nil, nil, draftRepo, idgen.NewSequence(), 1, nil)

	draftRepo.
		On("GetByLeague", mock.Anything, "L1").
		Return(draft.State{}, false, context.DeadlineExceeded).
		Once()

	_, err := service.Get(context.Background(), "L1")
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
