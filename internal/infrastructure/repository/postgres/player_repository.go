package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/victorgomez09/fantasy-manager/internal/domain/player"
)

type PlayerRepository struct {
	tx *sqlx.Tx
}

const playerColumns = `id, name, shirt_number, position, alternative_positions, COALESCE(owner_team_id, '') AS owner_team_id, market_value, COALESCE(image_url, '') AS image_url`

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	query := fmt.Sprintf(`SELECT %s FROM players WHERE id = $1`, playerColumns)

	var row playerRowModel
	if err := r.tx.GetContext(ctx, &row, query, playerID); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("get player: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	query := fmt.Sprintf(`SELECT %s FROM players ORDER BY id`, playerColumns)

	var rows []playerRowModel
	if err := r.tx.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	return toDomainPlayers(rows), nil
}

func (r *PlayerRepository) ListByOwner(ctx context.Context, teamID string) ([]player.Player, error) {
	query := fmt.Sprintf(`SELECT %s FROM players WHERE owner_team_id = $1 ORDER BY id`, playerColumns)

	var rows []playerRowModel
	if err := r.tx.SelectContext(ctx, &rows, query, teamID); err != nil {
		return nil, fmt.Errorf("list players by owner: %w", err)
	}

	return toDomainPlayers(rows), nil
}

func (r *PlayerRepository) ListFreeAgents(ctx context.Context) ([]player.Player, error) {
	query := fmt.Sprintf(`SELECT %s FROM players WHERE owner_team_id IS NULL ORDER BY id`, playerColumns)

	var rows []playerRowModel
	if err := r.tx.SelectContext(ctx, &rows, query); err != nil {
		return nil, fmt.Errorf("list free agents: %w", err)
	}

	return toDomainPlayers(rows), nil
}

func (r *PlayerRepository) Save(ctx context.Context, p player.Player) error {
	const query = `
INSERT INTO players (id, name, shirt_number, position, alternative_positions, owner_team_id, market_value, image_url)
VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, NULLIF($8, ''))
ON CONFLICT (id)
DO UPDATE SET
    name = EXCLUDED.name,
    shirt_number = EXCLUDED.shirt_number,
    position = EXCLUDED.position,
    alternative_positions = EXCLUDED.alternative_positions,
    owner_team_id = EXCLUDED.owner_team_id,
    market_value = EXCLUDED.market_value,
    image_url = EXCLUDED.image_url`

	alts := make(pq.StringArray, 0, len(p.AlternativePositions))
	for _, alt := range p.AlternativePositions {
		alts = append(alts, string(alt))
	}

	if _, err := r.tx.ExecContext(ctx, query,
		p.ID,
		p.Name,
		p.ShirtNumber,
		string(p.Position),
		alts,
		p.OwnerTeamID,
		p.MarketValue,
		p.ImageURL,
	); err != nil {
		return fmt.Errorf("save player: %w", err)
	}

	return nil
}

func toDomainPlayers(rows []playerRowModel) []player.Player {
	players := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		players = append(players, row.toDomain())
	}
	return players
}
