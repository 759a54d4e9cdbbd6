package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/victorgomez09/fantasy-manager/internal/domain/squad"
)

type SquadRepository struct {
	tx *sqlx.Tx
}

func (r *SquadRepository) GetByTeam(ctx context.Context, teamID string) (squad.Squad, bool, error) {
	const squadQuery = `SELECT team_id, formation_id, updated_at FROM squads WHERE team_id = $1`

	var row squadRowModel
	if err := r.tx.GetContext(ctx, &row, squadQuery, teamID); err != nil {
		if isNotFound(err) {
			return squad.Squad{}, false, nil
		}
		return squad.Squad{}, false, fmt.Errorf("get squad: %w", err)
	}

	const slotsQuery = `SELECT team_id, slot_id, player_id FROM squad_slots WHERE team_id = $1`

	var slotRows []squadSlotRowModel
	if err := r.tx.SelectContext(ctx, &slotRows, slotsQuery, teamID); err != nil {
		return squad.Squad{}, false, fmt.Errorf("list squad slots: %w", err)
	}

	assignments := make(map[string]string, len(slotRows))
	for _, slot := range slotRows {
		assignments[slot.SlotID] = slot.PlayerID
	}

	return squad.Squad{
		TeamID:      row.TeamID,
		FormationID: row.FormationID,
		Assignments: assignments,
		UpdatedAt:   row.UpdatedAt,
	}, true, nil
}

// Upsert replaces the stored assignment set wholesale. Squads are small
// (eleven slots), so delete-and-reinsert is simpler than diffing.
func (r *SquadRepository) Upsert(ctx context.Context, s squad.Squad) error {
	const upsertQuery = `
INSERT INTO squads (team_id, formation_id, updated_at)
VALUES ($1, $2, $3)
ON CONFLICT (team_id)
DO UPDATE SET formation_id = EXCLUDED.formation_id, updated_at = EXCLUDED.updated_at`

	if _, err := r.tx.ExecContext(ctx, upsertQuery, s.TeamID, s.FormationID, s.UpdatedAt); err != nil {
		return fmt.Errorf("upsert squad: %w", err)
	}

	const clearQuery = `DELETE FROM squad_slots WHERE team_id = $1`
	if _, err := r.tx.ExecContext(ctx, clearQuery, s.TeamID); err != nil {
		return fmt.Errorf("clear squad slots: %w", err)
	}

	const insertQuery = `INSERT INTO squad_slots (team_id, slot_id, player_id) VALUES ($1, $2, $3)`
	for slotID, playerID := range s.Assignments {
		if _, err := r.tx.ExecContext(ctx, insertQuery, s.TeamID, slotID, playerID); err != nil {
			return fmt.Errorf("insert squad slot %s: %w", slotID, err)
		}
	}

	return nil
}

func (r *SquadRepository) ClearPlayer(ctx context.Context, teamID, playerID string) error {
	const query = `DELETE FROM squad_slots WHERE team_id = $1 AND player_id = $2`

	if _, err := r.tx.ExecContext(ctx, query, teamID, playerID); err != nil {
		return fmt.Errorf("clear player from squad: %w", err)
	}

	const touchQuery = `UPDATE squads SET updated_at = NOW() WHERE team_id = $1`
	if _, err := r.tx.ExecContext(ctx, touchQuery, teamID); err != nil {
		return fmt.Errorf("touch squad: %w", err)
	}

	return nil
}
