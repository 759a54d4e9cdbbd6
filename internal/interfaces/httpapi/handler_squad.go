package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"

	"github.com/victorgomez09/fantasy-manager/internal/domain/formation"
	"github.com/victorgomez09/fantasy-manager/internal/domain/squad"
	"github.com/victorgomez09/fantasy-manager/internal/usecase"
)

func (h *Handler) GetSquad(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSquad")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	current, err := h.squadService.GetSquad(ctx, principal.UserID)
	if err != nil {
		h.logger.WarnContext(ctx, "get squad failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, squadToDTO(current))
}

func (h *Handler) SetFormation(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetFormation")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req setFormationRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	current, err := h.squadService.SetFormation(ctx, principal.UserID, req.FormationID)
	if err != nil {
		h.logger.WarnContext(ctx, "set formation failed", "user_id", principal.UserID, "formation_id", req.FormationID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, squadToDTO(current))
}

func (h *Handler) AssignPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AssignPlayer")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	slotID := strings.TrimSpace(r.PathValue("slotID"))

	var req assignPlayerRequest
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeError(ctx, w, fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err))
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	current, err := h.squadService.AssignPlayer(ctx, usecase.AssignPlayerInput{
		UserID:   principal.UserID,
		SlotID:   slotID,
		PlayerID: req.PlayerID,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "assign player failed", "user_id", principal.UserID, "slot_id", slotID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, squadToDTO(current))
}

func (h *Handler) ClearSlot(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ClearSlot")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	slotID := strings.TrimSpace(r.PathValue("slotID"))
	current, err := h.squadService.ClearSlot(ctx, principal.UserID, slotID)
	if err != nil {
		h.logger.WarnContext(ctx, "clear slot failed", "user_id", principal.UserID, "slot_id", slotID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, squadToDTO(current))
}

func (h *Handler) ValidateSquad(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ValidateSquad")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	formationID := strings.TrimSpace(r.URL.Query().Get("formation_id"))
	violations, err := h.squadService.ValidateCompleteness(ctx, principal.UserID, formationID)
	if err != nil {
		h.logger.WarnContext(ctx, "validate squad failed", "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]violationDTO, 0, len(violations))
	for _, v := range violations {
		items = append(items, violationDTO{
			SlotID:   v.SlotID,
			SlotName: v.SlotName,
			Position: string(v.Position),
			PlayerID: v.PlayerID,
			Reason:   string(v.Reason),
		})
	}

	writeSuccess(ctx, w, http.StatusOK, squadValidationDTO{
		Ready:      len(items) == 0,
		Violations: items,
	})
}

func (h *Handler) ListFormations(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListFormations")
	defer span.End()

	formations, err := h.squadService.ListFormations(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list formations failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]formationDTO, 0, len(formations))
	for _, f := range formations {
		items = append(items, formationToDTO(f))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

type setFormationRequest struct {
	FormationID string `json:"formation_id" validate:"required"`
}

type assignPlayerRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
}

type squadDTO struct {
	TeamID       string            `json:"team_id"`
	FormationID  string            `json:"formation_id"`
	Assignments  map[string]string `json:"assignments"`
	UpdatedAtUTC string            `json:"updated_at_utc"`
}

type squadValidationDTO struct {
	Ready      bool           `json:"ready"`
	Violations []violationDTO `json:"violations"`
}

type violationDTO struct {
	SlotID   string `json:"slot_id"`
	SlotName string `json:"slot_name"`
	Position string `json:"position"`
	PlayerID string `json:"player_id,omitempty"`
	Reason   string `json:"reason"`
}

type formationDTO struct {
	ID    string             `json:"id"`
	Name  string             `json:"name"`
	Slots []formationSlotDTO `json:"slots"`
}

type formationSlotDTO struct {
	ID        string       `json:"id"`
	Name      string       `json:"name"`
	Position  string       `json:"position"`
	Placement placementDTO `json:"placement"`
}

type placementDTO struct {
	Bottom offsetsDTO `json:"bottom"`
	Right  offsetsDTO `json:"right"`
}

type offsetsDTO struct {
	Mobile  int `json:"mobile"`
	Desktop int `json:"desktop"`
}

func squadToDTO(v squad.Squad) squadDTO {
	assignments := make(map[string]string, len(v.Assignments))
	for slotID, playerID := range v.Assignments {
		assignments[slotID] = playerID
	}

	return squadDTO{
		TeamID:       v.TeamID,
		FormationID:  v.FormationID,
		Assignments:  assignments,
		UpdatedAtUTC: v.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func formationToDTO(v formation.Formation) formationDTO {
	slots := make([]formationSlotDTO, 0, len(v.Slots))
	for _, s := range v.Slots {
		slots = append(slots, formationSlotDTO{
			ID:       s.ID,
			Name:     s.Name,
			Position: string(s.Position),
			Placement: placementDTO{
				Bottom: offsetsDTO{Mobile: s.Placement.Bottom.Mobile, Desktop: s.Placement.Bottom.Desktop},
				Right:  offsetsDTO{Mobile: s.Placement.Right.Mobile, Desktop: s.Placement.Right.Desktop},
			},
		})
	}

	return formationDTO{
		ID:    v.ID,
		Name:  v.Name,
		Slots: slots,
	}
}
