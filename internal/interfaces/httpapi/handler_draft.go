package httpapi

import (
	"net/http"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/riskibarqy/fantasy-madness/internal/usecase"
)

// StartDraft accepts an empty body, which drafts with the default rounds and
// the league's team order.
func (h *Handler) StartDraft(w http.ResponseWriter, r *http.Request) {
	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StartDraft", attribute.String("league_id", leagueID))
	defer span.End()

	var req startDraftRequest
	if r.ContentLength != 0 {
		if err := h.decodeAndValidate(ctx, r, &req); err != nil {
			writeError(ctx, w, err)
			return
		}
	}

	view, err := h.draftService.Start(ctx, usecase.StartDraftInput{
		LeagueID:  leagueID,
		Rounds:    req.Rounds,
		TeamOrder: req.TeamOrder,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "start draft failed", "league_id", leagueID, "rounds", req.Rounds, "error", err)
		writeError(ctx, w, err)
		return
	}

	status := http.StatusCreated
	if view.Resumed {
		status = http.StatusOK
	}
	writeSuccess(ctx, w, status, draftToDTO(view))
}

func (h *Handler) GetDraft(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetDraft")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	view, err := h.draftService.Get(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "get draft failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, draftToDTO(view))
}

func (h *Handler) SubmitPick(w http.ResponseWriter, r *http.Request) {
	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitPick", attribute.String("league_id", leagueID))
	defer span.End()

	var req submitPickRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.draftService.Pick(ctx, usecase.PickInput{
		LeagueID: leagueID,
		TeamID:   req.TeamID,
		PlayerID: req.PlayerID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "submit pick failed",
			"league_id", leagueID,
			"team_id", req.TeamID,
			"player_id", req.PlayerID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, assignmentToDTO(item))
}

func (h *Handler) ListPicks(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPicks")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	items, err := h.draftService.ListPicks(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "list picks failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]assignmentDTO, 0, len(items))
	for _, item := range items {
		out = append(out, assignmentToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}
