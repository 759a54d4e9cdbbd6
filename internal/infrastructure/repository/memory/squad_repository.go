package memory

import (
	"context"

	"github.com/victorgomez09/fantasy-manager/internal/domain/squad"
)

type SquadRepository struct {
	st *state
}

func (r *SquadRepository) GetByTeam(_ context.Context, teamID string) (squad.Squad, bool, error) {
	sq, ok := r.st.squads[teamID]
	return sq, ok, nil
}

func (r *SquadRepository) Upsert(_ context.Context, s squad.Squad) error {
	r.st.squads[s.TeamID] = s
	return nil
}

func (r *SquadRepository) ClearPlayer(_ context.Context, teamID, playerID string) error {
	sq, ok := r.st.squads[teamID]
	if !ok {
		return nil
	}
	for slotID, assigned := range sq.Assignments {
		if assigned == playerID {
			delete(sq.Assignments, slotID)
		}
	}
	r.st.squads[teamID] = sq
	return nil
}
