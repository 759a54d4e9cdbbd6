package memory

import (
	"context"

	"github.com/victorgomez09/fantasy-manager/internal/domain/team"
)

type TeamRepository struct {
	st *state
}

func (r *TeamRepository) GetByID(_ context.Context, teamID string) (team.Team, bool, error) {
	t, ok := r.st.teams[teamID]
	return t, ok, nil
}

func (r *TeamRepository) GetByOwner(_ context.Context, userID string) (team.Team, bool, error) {
	for _, t := range r.st.teams {
		if t.OwnerUserID == userID {
			return t, true, nil
		}
	}
	return team.Team{}, false, nil
}
