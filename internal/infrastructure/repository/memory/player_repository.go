package memory

import (
	"context"
	"sort"

	"github.com/victorgomez09/fantasy-manager/internal/domain/player"
)

type PlayerRepository struct {
	st *state
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	p, ok := r.st.players[playerID]
	return p, ok, nil
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	out := make([]player.Player, 0, len(r.st.players))
	for _, p := range r.st.players {
		out = append(out, p)
	}
	sortPlayers(out)
	return out, nil
}

func (r *PlayerRepository) ListByOwner(_ context.Context, teamID string) ([]player.Player, error) {
	var out []player.Player
	for _, p := range r.st.players {
		if p.OwnerTeamID == teamID {
			out = append(out, p)
		}
	}
	sortPlayers(out)
	return out, nil
}

func (r *PlayerRepository) ListFreeAgents(_ context.Context) ([]player.Player, error) {
	var out []player.Player
	for _, p := range r.st.players {
		if p.IsFreeAgent() {
			out = append(out, p)
		}
	}
	sortPlayers(out)
	return out, nil
}

func (r *PlayerRepository) Save(_ context.Context, p player.Player) error {
	r.st.players[p.ID] = p
	return nil
}

func sortPlayers(players []player.Player) {
	sort.SliceStable(players, func(i, j int) bool {
		return players[i].ID < players[j].ID
	})
}
