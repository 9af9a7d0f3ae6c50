package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/riskibarqy/fantasy-madness/internal/usecase"
)

const ingestionDateLayout = "2006-01-02"

func (h *Handler) ImportNCAAGame(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportNCAAGame")
	defer span.End()

	gameID := strings.TrimSpace(r.PathValue("gameID"))
	report, err := h.ingestionService.ImportGame(ctx, gameID)
	if err != nil {
		h.logger.WarnContext(ctx, "import ncaa game failed", "game_id", gameID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, report)
}

func (h *Handler) ImportNCAAScoreboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ImportNCAAScoreboard")
	defer span.End()

	raw := strings.TrimSpace(r.PathValue("date"))
	day, err := time.Parse(ingestionDateLayout, raw)
	if err != nil {
		writeError(ctx, w, fmt.Errorf("%w: date must use YYYY-MM-DD, got %q", usecase.ErrInvalidInput, raw))
		return
	}

	report, err := h.ingestionService.ImportDate(ctx, day)
	if err != nil {
		h.logger.WarnContext(ctx, "import ncaa scoreboard failed", "date", raw, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, report)
}
