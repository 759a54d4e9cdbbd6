package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/victorgomez09/fantasy-manager/internal/domain/player"
	"github.com/victorgomez09/fantasy-manager/internal/usecase"
)

func (h *Handler) GetMyTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyTeam")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	view, err := h.teamService.GetMyTeam(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	roster := make([]playerDTO, 0, len(view.Roster))
	for _, p := range view.Roster {
		roster = append(roster, playerToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, teamViewDTO{
		ID:      view.Team.ID,
		Name:    view.Team.Name,
		Short:   view.Team.Short,
		Roster:  roster,
		Balance: view.Account.Balance,
	})
}

func (h *Handler) GetBudget(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetBudget")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	account, err := h.teamService.GetBudget(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "get budget failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, accountDTO{
		UserID:       account.UserID,
		Balance:      account.Balance,
		UpdatedAtUTC: account.UpdatedAt.UTC().Format(time.RFC3339),
	})
}

func (h *Handler) ListPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListPlayers")
	defer span.End()

	position := strings.TrimSpace(r.URL.Query().Get("position"))
	players, err := h.teamService.ListPlayers(ctx, position)
	if err != nil {
		h.logger.WarnContext(ctx, "list players failed", "position", position, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]playerDTO, 0, len(players))
	for _, p := range players {
		items = append(items, playerToDTO(p))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type teamViewDTO struct {
	ID      string      `json:"id"`
	Name    string      `json:"name"`
	Short   string      `json:"short"`
	Roster  []playerDTO `json:"roster"`
	Balance int64       `json:"balance"`
}

type accountDTO struct {
	UserID       string `json:"user_id"`
	Balance      int64  `json:"balance"`
	UpdatedAtUTC string `json:"updated_at_utc"`
}

type playerDTO struct {
	ID                   string   `json:"id"`
	Name                 string   `json:"name"`
	ShirtNumber          int      `json:"shirt_number,omitempty"`
	Position             string   `json:"position"`
	AlternativePositions []string `json:"alternative_positions,omitempty"`
	OwnerTeamID          string   `json:"owner_team_id,omitempty"`
	MarketValue          int64    `json:"market_value"`
	ImageURL             string   `json:"image_url,omitempty"`
}

func playerToDTO(v player.Player) playerDTO {
	alts := make([]string, 0, len(v.AlternativePositions))
	for _, alt := range v.AlternativePositions {
		alts = append(alts, string(alt))
	}

	return playerDTO{
		ID:                   v.ID,
		Name:                 v.Name,
		ShirtNumber:          v.ShirtNumber,
		Position:             string(v.Position),
		AlternativePositions: alts,
		OwnerTeamID:          v.OwnerTeamID,
		MarketValue:          v.MarketValue,
		ImageURL:             v.ImageURL,
	}
}
