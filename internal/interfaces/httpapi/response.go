package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/fantasy-madness/internal/domain/draft"
	"github.com/riskibarqy/fantasy-madness/internal/domain/game"
	"github.com/riskibarqy/fantasy-madness/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

const (
	googleAPIVersion = "2.0"
	errorDomain      = "fantasy-madness"
)

type googleResponseEnvelope struct {
	APIVersion string           `json:"apiVersion"`
	Data       any              `json:"data,omitempty"`
	Error      *googleErrorBody `json:"error,omitempty"`
}

type googleErrorBody struct {
	Code     int               `json:"code"`
	Message  string            `json:"message"`
	Status   string            `json:"status"`
	Errors   []googleErrorItem `json:"errors,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

type googleErrorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type mappedError struct {
	HTTPStatus int
	Reason     string
	Status     string
}

// errorKinds is checked in order; the first sentinel that matches wins.
var errorKinds = []struct {
	target error
	mapped mappedError
}{
	{usecase.ErrInvalidInput, mappedError{http.StatusBadRequest, "invalidInput", "INVALID_ARGUMENT"}},
	{draft.ErrInvalidConfiguration, mappedError{http.StatusBadRequest, "invalidConfiguration", "INVALID_ARGUMENT"}},
	{draft.ErrOutOfTurn, mappedError{http.StatusConflict, "outOfTurn", "ABORTED"}},
	{draft.ErrPlayerUnavailable, mappedError{http.StatusConflict, "playerUnavailable", "ABORTED"}},
	{draft.ErrDraftComplete, mappedError{http.StatusConflict, "draftComplete", "FAILED_PRECONDITION"}},
	{game.ErrDuplicateGame, mappedError{http.StatusConflict, "duplicateGame", "ALREADY_EXISTS"}},
	{game.ErrUnknownPlayer, mappedError{http.StatusNotFound, "unknownPlayer", "NOT_FOUND"}},
	{usecase.ErrNotFound, mappedError{http.StatusNotFound, "notFound", "NOT_FOUND"}},
	{usecase.ErrStoreUnavailable, mappedError{http.StatusServiceUnavailable, "storeUnavailable", "UNAVAILABLE"}},
	{usecase.ErrDependencyUnavailable, mappedError{http.StatusServiceUnavailable, "dependencyUnavailable", "UNAVAILABLE"}},
	{context.DeadlineExceeded, mappedError{http.StatusServiceUnavailable, "timeout", "UNAVAILABLE"}},
}

var internalError = mappedError{http.StatusInternalServerError, "internalError", "INTERNAL"}

const encodeFailureBody = `{"apiVersion":"2.0","error":{"code":500,"message":"encode response","status":"INTERNAL"}}`

func writeJSON(w http.ResponseWriter, status int, payload googleResponseEnvelope) {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := sonic.ConfigDefault.NewEncoder(buf).Encode(payload); err != nil {
		http.Error(w, encodeFailureBody, http.StatusInternalServerError)
		return
	}

	header := w.Header()
	header.Set("Content-Type", "application/json")
	header.Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(status)
	_, _ = w.Write(buf.B)
}

func writeSuccess(_ context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, googleResponseEnvelope{APIVersion: googleAPIVersion, Data: data})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	mapped := mapError(ctx, err)
	writeErrorBody(w, mapped, err.Error(), errorMetadata(err))
}

// writeInternalError hides the cause; it is only logged.
func writeInternalError(_ context.Context, w http.ResponseWriter) {
	writeErrorBody(w, internalError, "internal server error", nil)
}

func writeErrorBody(w http.ResponseWriter, mapped mappedError, message string, metadata map[string]string) {
	writeJSON(w, mapped.HTTPStatus, googleResponseEnvelope{
		APIVersion: googleAPIVersion,
		Error: &googleErrorBody{
			Code:     mapped.HTTPStatus,
			Message:  message,
			Status:   mapped.Status,
			Errors:   []googleErrorItem{{Domain: errorDomain, Reason: mapped.Reason, Message: message}},
			Metadata: metadata,
		},
	})
}

func mapError(_ context.Context, err error) mappedError {
	for _, kind := range errorKinds {
		if errors.Is(err, kind.target) {
			return kind.mapped
		}
	}
	return internalError
}

// errorMetadata exposes the structured fields of a draft rule violation.
func errorMetadata(err error) map[string]string {
	var ruleErr *draft.RuleError
	if !errors.As(err, &ruleErr) {
		return nil
	}

	out := map[string]string{"pick_index": strconv.Itoa(ruleErr.PickIndex)}
	set := func(key, value string) {
		if value != "" {
			out[key] = value
		}
	}
	set("league_id", ruleErr.LeagueID)
	set("team_id", ruleErr.TeamID)
	set("expected_team_id", ruleErr.ExpectedTeamID)
	set("player_id", ruleErr.PlayerID)
	if ruleErr.UnknownPlayer {
		out["unknown_player"] = "true"
	}
	return out
}
