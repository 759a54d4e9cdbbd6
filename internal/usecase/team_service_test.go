package usecase_test

import (
	"errors"
	"github.com/victorgomez09/fantasy-manager/internal/usecase"
	"testing"

	"github.com/victorgomez09/fantasy-manager/internal/domain/budget"
	"github.com/victorgomez09/fantasy-manager/internal/infrastructure/repository/memory"
)

func TestTeamService_GetMyTeam(t *testing.T) {
	store := memory.NewStore(memory.DefaultSeed())
	service := usecase.NewTeamService(store, testLogger())

	view, err := service.GetMyTeam(t.Context(), memory.UserIDAlice)
	if err != nil {
		t.Fatalf("get my team failed: %v", err)
	}
	if view.Team.ID != memory.TeamIDAlice {
		t.Fatalf("team %s, want %s", view.Team.ID, memory.TeamIDAlice)
	}
	if len(view.Roster) != 6 {
		t.Fatalf("expected 6 seeded players, got %d", len(view.Roster))
	}
	if view.Account.Balance != budget.InitialBalance {
		t.Fatalf("balance %d, want %d", view.Account.Balance, budget.InitialBalance)
	}
}

func TestTeamService_GetMyTeam_UnknownUser(t *testing.T) {
	store := memory.NewStore(memory.DefaultSeed())
	service := usecase.NewTeamService(store, testLogger())

	_, err := service.GetMyTeam(t.Context(), "user-ghost")
	if !errors.Is(err, usecase.ErrNotFound) {
		t.Fatalf("expected usecase.ErrNotFound, got %v", err)
	}
}

func TestTeamService_ListPlayers_FilterByPosition(t *testing.T) {
	store := memory.NewStore(memory.DefaultSeed())
	service := usecase.NewTeamService(store, testLogger())

	goalkeepers, err := service.ListPlayers(t.Context(), "gk")
	if err != nil {
		t.Fatalf("list players failed: %v", err)
	}
	if len(goalkeepers) != 3 {
		t.Fatalf("expected 3 goalkeepers, got %d", len(goalkeepers))
	}

	if _, err := service.ListPlayers(t.Context(), "SWEEPER"); !errors.Is(err, usecase.ErrInvalidInput) {
		t.Fatalf("expected usecase.ErrInvalidInput, got %v", err)
	}
}
