package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/riskibarqy/fantasy-madness/internal/domain/league"
	"github.com/riskibarqy/fantasy-madness/internal/usecase"
)

const includeTeams = "teams"

func (h *Handler) CreateLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateLeague")
	defer span.End()

	var req createLeagueRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.leagueService.CreateLeague(ctx, usecase.CreateLeagueInput{Name: req.Name})
	if err != nil {
		h.logger.WarnContext(ctx, "create league failed", "name", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, leagueToDTO(item))
}

func (h *Handler) ListLeagues(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLeagues")
	defer span.End()

	items, err := h.leagueService.ListLeagues(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list leagues failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]leagueDTO, 0, len(items))
	for _, item := range items {
		out = append(out, leagueToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeague")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	item, err := h.leagueService.GetLeague(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "get league failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	switch include := strings.TrimSpace(r.URL.Query().Get("include")); include {
	case "":
		writeSuccess(ctx, w, http.StatusOK, leagueToDTO(item))
	case includeTeams:
		detail, err := h.leagueDetail(ctx, item)
		if err != nil {
			h.logger.WarnContext(ctx, "get league teams failed", "league_id", leagueID, "error", err)
			writeError(ctx, w, err)
			return
		}
		writeSuccess(ctx, w, http.StatusOK, detail)
	default:
		writeError(ctx, w, fmt.Errorf("%w: unsupported include %q", usecase.ErrInvalidInput, include))
	}
}

// leagueDetail embeds the league's teams, best total first, each with its
// roster.
func (h *Handler) leagueDetail(ctx context.Context, item league.League) (leagueDetailDTO, error) {
	teams, err := h.leagueService.ListTeamsByLeague(ctx, item.ID)
	if err != nil {
		return leagueDetailDTO{}, err
	}
	sort.SliceStable(teams, func(i, j int) bool {
		if teams[i].TotalPoints != teams[j].TotalPoints {
			return teams[i].TotalPoints > teams[j].TotalPoints
		}
		return teams[i].ID < teams[j].ID
	})

	out := leagueDetailDTO{
		ID:        item.ID,
		Name:      item.Name,
		CreatedAt: formatTime(item.CreatedAt),
		Teams:     make([]leagueTeamDTO, 0, len(teams)),
	}
	for _, t := range teams {
		roster, err := h.playerService.ListByTeam(ctx, t.ID)
		if err != nil {
			return leagueDetailDTO{}, err
		}
		entry := leagueTeamDTO{
			ID:          t.ID,
			Name:        t.Name,
			Owner:       t.Owner,
			TotalPoints: t.TotalPoints,
			Players:     make([]playerDTO, 0, len(roster)),
		}
		for _, p := range roster {
			entry.Players = append(entry.Players, playerToDTO(p))
		}
		out.Teams = append(out.Teams, entry)
	}
	return out, nil
}

func (h *Handler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CreateTeam")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))

	var req createTeamRequest
	if err := h.decodeAndValidate(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	item, err := h.leagueService.CreateTeam(ctx, usecase.CreateTeamInput{
		LeagueID: leagueID,
		Name:     req.Name,
		Owner:    req.Owner,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "create team failed", "league_id", leagueID, "name", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, teamToDTO(item))
}

func (h *Handler) ListTeamsByLeague(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamsByLeague")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	items, err := h.leagueService.ListTeamsByLeague(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "list teams failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]teamDTO, 0, len(items))
	for _, item := range items {
		out = append(out, teamToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}
