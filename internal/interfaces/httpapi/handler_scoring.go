package httpapi

import (
	"net/http"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/fantasy-madness/internal/usecase"
)

func (h *Handler) RecordGame(w http.ResponseWriter, r *http.Request) {
	playerID := strings.TrimSpace(r.PathValue("playerID"))
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RecordGame", attribute.String("player_id", playerID))
	defer span.End()

	var req recordGameRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	var playedAt time.Time
	if req.PlayedAt != nil {
		playedAt = *req.PlayedAt
	}

	result, err := h.scoringService.RecordGame(ctx, usecase.RecordGameInput{
		PlayerID:     playerID,
		Opponent:     req.Opponent,
		PointsScored: *req.PointsScored,
		PlayedAt:     playedAt,
		SourceRef:    req.SourceRef,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "record game failed",
			"player_id", playerID,
			"points_scored", *req.PointsScored,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, gameResultToDTO(result))
}

func (h *Handler) ListGames(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListGames")
	defer span.End()

	playerID := strings.TrimSpace(r.PathValue("playerID"))
	items, err := h.scoringService.ListGames(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "list games failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]gameDTO, 0, len(items))
	for _, item := range items {
		out = append(out, gameToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) EliminatePlayer(w http.ResponseWriter, r *http.Request) {
	playerID := strings.TrimSpace(r.PathValue("playerID"))
	ctx, span := startSpan(r.Context(), "httpapi.Handler.EliminatePlayer", attribute.String("player_id", playerID))
	defer span.End()

	item, err := h.scoringService.Eliminate(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "eliminate player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(item))
}
