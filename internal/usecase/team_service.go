package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/victorgomez09/fantasy-manager/internal/domain/budget"
	"github.com/victorgomez09/fantasy-manager/internal/domain/player"
	"github.com/victorgomez09/fantasy-manager/internal/domain/team"
)

// TeamView joins a team with its roster and the owner's budget account.
type TeamView struct {
	Team    team.Team
	Roster  []player.Player
	Account budget.Account
}

// TeamService serves the manager's own team page: roster, balance and
// the squad summary all come from one consistent read.
type TeamService struct {
	uow    UnitOfWork
	logger *slog.Logger
}

func NewTeamService(uow UnitOfWork, logger *slog.Logger) *TeamService {
	if logger == nil {
		logger = slog.Default()
	}

	return &TeamService{
		uow:    uow,
		logger: logger,
	}
}

func (s *TeamService) GetMyTeam(ctx context.Context, userID string) (TeamView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetMyTeam")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return TeamView{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	var view TeamView
	err := s.uow.Do(ctx, func(ctx context.Context, r Repos) error {
		t, ok, err := r.Teams.GetByOwner(ctx, userID)
		if err != nil {
			return fmt.Errorf("get team by owner: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: team for user=%s", ErrNotFound, userID)
		}

		roster, err := r.Players.ListByOwner(ctx, t.ID)
		if err != nil {
			return fmt.Errorf("list roster: %w", err)
		}

		account, ok, err := r.Budgets.GetByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("get budget: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: budget account for user=%s", ErrNotFound, userID)
		}

		view = TeamView{Team: t, Roster: roster, Account: account}
		return nil
	})
	if err != nil {
		return TeamView{}, err
	}

	return view, nil
}

// GetBudget returns the caller's account on its own; the mobile header
// polls this more often than the full team view.
func (s *TeamService) GetBudget(ctx context.Context, userID string) (budget.Account, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.GetBudget")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return budget.Account{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	var account budget.Account
	err := s.uow.Do(ctx, func(ctx context.Context, r Repos) error {
		acc, ok, err := r.Budgets.GetByUser(ctx, userID)
		if err != nil {
			return fmt.Errorf("get budget: %w", err)
		}
		if !ok {
			return fmt.Errorf("%w: budget account for user=%s", ErrNotFound, userID)
		}
		account = acc
		return nil
	})
	if err != nil {
		return budget.Account{}, err
	}

	return account, nil
}

// ListPlayers is the public player directory. Position filters use the
// short code (GK, DEF, MID, FWD); an empty filter returns everyone.
func (s *TeamService) ListPlayers(ctx context.Context, position string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.ListPlayers")
	defer span.End()

	position = strings.ToUpper(strings.TrimSpace(position))
	if position != "" {
		if _, ok := player.AllPositions[player.Position(position)]; !ok {
			return nil, fmt.Errorf("%w: unknown position=%s", ErrInvalidInput, position)
		}
	}

	var players []player.Player
	err := s.uow.Do(ctx, func(ctx context.Context, r Repos) error {
		all, err := r.Players.List(ctx)
		if err != nil {
			return fmt.Errorf("list players: %w", err)
		}
		if position == "" {
			players = all
			return nil
		}
		players = make([]player.Player, 0, len(all))
		for _, p := range all {
			if string(p.Position) == position {
				players = append(players, p)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return players, nil
}
