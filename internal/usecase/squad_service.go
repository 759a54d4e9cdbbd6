package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/victorgomez09/fantasy-manager/internal/domain/formation"
	"github.com/victorgomez09/fantasy-manager/internal/domain/player"
	"github.com/victorgomez09/fantasy-manager/internal/domain/squad"
)

// AssignPlayerInput places one owned player into one formation slot.
type AssignPlayerInput struct {
	UserID   string
	SlotID   string
	PlayerID string
}

// SquadService enforces formation and position compatibility when a
// manager arranges the starting line-up.
type SquadService struct {
	formationRepo formation.Repository
	uow           UnitOfWork
	logger        *slog.Logger
	now           func() time.Time
}

func NewSquadService(formationRepo formation.Repository, uow UnitOfWork, logger *slog.Logger) *SquadService {
	if logger == nil {
		logger = slog.Default()
	}

	return &SquadService{
		formationRepo: formationRepo,
		uow:           uow,
		logger:        logger,
		now:           time.Now,
	}
}

// AssignPlayer sets the slot's occupant, replacing whoever held the slot.
// It never relocates a player that already occupies a different slot;
// the caller must clear first and assign second (explicit move).
func (s *SquadService) AssignPlayer(ctx context.Context, input AssignPlayerInput) (squad.Squad, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.AssignPlayer")
	defer span.End()

	input.UserID = strings.TrimSpace(input.UserID)
	input.SlotID = strings.TrimSpace(input.SlotID)
	input.PlayerID = strings.TrimSpace(input.PlayerID)

	if input.UserID == "" {
		return squad.Squad{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}
	if input.SlotID == "" {
		return squad.Squad{}, fmt.Errorf("%w: slot id is required", ErrInvalidInput)
	}
	if input.PlayerID == "" {
		return squad.Squad{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}

	var updated squad.Squad
	err := s.uow.Do(ctx, func(ctx context.Context, r Repos) error {
		team, current, err := s.teamSquad(ctx, r, input.UserID)
		if err != nil {
			return err
		}

		f, ok, err := s.formationRepo.GetByID(ctx, current.FormationID)
		if err != nil {
			return fmt.Errorf("get formation: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: formation=%s", ErrNotFound, current.FormationID)
		}

		slot, ok := f.SlotByID(input.SlotID)
		if !ok {
			return fmt.Errorf("%w: slot=%s formation=%s", squad.ErrUnknownSlot, input.SlotID, f.ID)
		}

		p, ok, err := r.Players.GetByID(ctx, input.PlayerID)
		if err != nil {
			return fmt.Errorf("get player: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: player=%s", ErrNotFound, input.PlayerID)
		}
		if p.OwnerTeamID != team {
			return fmt.Errorf("%w: player=%s team=%s", squad.ErrPlayerNotOwned, p.ID, team)
		}
		if !squad.CanOccupy(p, slot) {
			return fmt.Errorf("%w: player=%s position=%s slot=%s wants=%s",
				squad.ErrPositionMismatch, p.ID, p.Position, slot.ID, slot.Position)
		}
		if occupied, ok := current.SlotOf(p.ID); ok && occupied != slot.ID {
			return fmt.Errorf("%w: player=%s slot=%s", squad.ErrPlayerAlreadyAssigned, p.ID, occupied)
		}

		if current.Assignments == nil {
			current.Assignments = make(map[string]string)
		}
		current.Assignments[slot.ID] = p.ID
		current.UpdatedAt = s.now().UTC()

		if err := current.Validate(); err != nil {
			return fmt.Errorf("validate squad: %w", err)
		}
		if err := r.Squads.Upsert(ctx, current); err != nil {
			return fmt.Errorf("upsert squad: %w", err)
		}

		updated = current
		return nil
	})
	if err != nil {
		return squad.Squad{}, err
	}

	s.logger.InfoContext(ctx, "player assigned",
		"team_id", updated.TeamID,
		"slot_id", input.SlotID,
		"player_id", input.PlayerID,
	)

	return updated, nil
}

func (s *SquadService) ClearSlot(ctx context.Context, userID, slotID string) (squad.Squad, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.ClearSlot")
	defer span.End()

	userID = strings.TrimSpace(userID)
	slotID = strings.TrimSpace(slotID)
	if userID == "" || slotID == "" {
		return squad.Squad{}, fmt.Errorf("%w: user_id and slot_id are required", ErrInvalidInput)
	}

	var updated squad.Squad
	err := s.uow.Do(ctx, func(ctx context.Context, r Repos) error {
		_, current, err := s.teamSquad(ctx, r, userID)
		if err != nil {
			return err
		}

		delete(current.Assignments, slotID)
		current.UpdatedAt = s.now().UTC()
		if err := r.Squads.Upsert(ctx, current); err != nil {
			return fmt.Errorf("upsert squad: %w", err)
		}

		updated = current
		return nil
	})
	if err != nil {
		return squad.Squad{}, err
	}

	return updated, nil
}

// SetFormation switches the team to another formation template. Slot IDs
// are formation-specific, so every assignment is dropped.
func (s *SquadService) SetFormation(ctx context.Context, userID, formationID string) (squad.Squad, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.SetFormation")
	defer span.End()

	userID = strings.TrimSpace(userID)
	formationID = strings.TrimSpace(formationID)
	if userID == "" || formationID == "" {
		return squad.Squad{}, fmt.Errorf("%w: user_id and formation_id are required", ErrInvalidInput)
	}

	f, ok, err := s.formationRepo.GetByID(ctx, formationID)
	if err != nil {
		return squad.Squad{}, fmt.Errorf("get formation: %w", err)
	}
	if !ok {
		return squad.Squad{}, fmt.Errorf("%w: formation=%s", ErrNotFound, formationID)
	}

	var updated squad.Squad
	err = s.uow.Do(ctx, func(ctx context.Context, r Repos) error {
		team, current, err := s.teamSquad(ctx, r, userID)
		if err != nil {
			return err
		}

		current = squad.Squad{
			TeamID:      team,
			FormationID: f.ID,
			Assignments: make(map[string]string),
			UpdatedAt:   s.now().UTC(),
		}
		if err := r.Squads.Upsert(ctx, current); err != nil {
			return fmt.Errorf("upsert squad: %w", err)
		}

		updated = current
		return nil
	})
	if err != nil {
		return squad.Squad{}, err
	}

	s.logger.InfoContext(ctx, "formation changed", "team_id", updated.TeamID, "formation_id", f.ID)

	return updated, nil
}

func (s *SquadService) GetSquad(ctx context.Context, userID string) (squad.Squad, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.GetSquad")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return squad.Squad{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	var current squad.Squad
	err := s.uow.Do(ctx, func(ctx context.Context, r Repos) error {
		_, sq, err := s.teamSquad(ctx, r, userID)
		if err != nil {
			return err
		}
		current = sq
		return nil
	})
	if err != nil {
		return squad.Squad{}, err
	}

	return current, nil
}

// ValidateCompleteness reports every unfilled slot and every mismatch;
// it returns violations, it does not fail on them. An external match
// context consumes the list before a squad may be declared ready.
func (s *SquadService) ValidateCompleteness(ctx context.Context, userID, formationID string) ([]squad.Violation, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.ValidateCompleteness")
	defer span.End()

	userID = strings.TrimSpace(userID)
	formationID = strings.TrimSpace(formationID)
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	var violations []squad.Violation
	err := s.uow.Do(ctx, func(ctx context.Context, r Repos) error {
		team, current, err := s.teamSquad(ctx, r, userID)
		if err != nil {
			return err
		}

		if formationID == "" {
			formationID = current.FormationID
		}
		f, ok, err := s.formationRepo.GetByID(ctx, formationID)
		if err != nil {
			return fmt.Errorf("get formation: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: formation=%s", ErrNotFound, formationID)
		}

		playersByID := make(map[string]player.Player, len(current.Assignments))
		for _, playerID := range current.Assignments {
			p, ok, err := r.Players.GetByID(ctx, playerID)
			if err != nil {
				return fmt.Errorf("get assigned player: %w", err)
			}
			if ok {
				playersByID[p.ID] = p
			}
		}

		violations = squad.Completeness(f, current, team, playersByID)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return violations, nil
}

// ListFormations exposes the formation template catalog.
func (s *SquadService) ListFormations(ctx context.Context) ([]formation.Formation, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SquadService.ListFormations")
	defer span.End()

	formations, err := s.formationRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list formations: %w", err)
	}

	return formations, nil
}

// teamSquad resolves the caller's team and its squad record, creating an
// empty squad on the default formation for first-time managers.
func (s *SquadService) teamSquad(ctx context.Context, r Repos, userID string) (string, squad.Squad, error) {
	team, ok, err := r.Teams.GetByOwner(ctx, userID)
	if err != nil {
		return "", squad.Squad{}, fmt.Errorf("get team by owner: %w", err)
	}
	if !ok {
		return "", squad.Squad{}, fmt.Errorf("%w: team for user=%s", ErrNotFound, userID)
	}

	current, found, err := r.Squads.GetByTeam(ctx, team.ID)
	if err != nil {
		return "", squad.Squad{}, fmt.Errorf("get squad: %w", err)
	}
	if !found {
		formations, err := s.formationRepo.List(ctx)
		if err != nil {
			return "", squad.Squad{}, fmt.Errorf("list formations: %w", err)
		}
		if len(formations) == 0 {
			return "", squad.Squad{}, fmt.Errorf("%w: no formation templates configured", ErrDependencyUnavailable)
		}
		current = squad.Squad{
			TeamID:      team.ID,
			FormationID: formations[0].ID,
			Assignments: make(map[string]string),
			UpdatedAt:   s.now().UTC(),
		}
	}
	if current.Assignments == nil {
		current.Assignments = make(map[string]string)
	}

	return team.ID, current, nil
}
