package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/victorgomez09/fantasy-manager/internal/domain/team"
)

type TeamRepository struct {
	tx *sqlx.Tx
}

func (r *TeamRepository) GetByID(ctx context.Context, teamID string) (team.Team, bool, error) {
	const query = `SELECT id, owner_user_id, name, short FROM teams WHERE id = $1`

	var row teamRowModel
	if err := r.tx.GetContext(ctx, &row, query, teamID); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *TeamRepository) GetByOwner(ctx context.Context, userID string) (team.Team, bool, error) {
	const query = `SELECT id, owner_user_id, name, short FROM teams WHERE owner_user_id = $1`

	var row teamRowModel
	if err := r.tx.GetContext(ctx, &row, query, userID); err != nil {
		if isNotFound(err) {
			return team.Team{}, false, nil
		}
		return team.Team{}, false, fmt.Errorf("get team by owner: %w", err)
	}

	return row.toDomain(), true, nil
}
