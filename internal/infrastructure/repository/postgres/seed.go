package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/victorgomez09/fantasy-manager/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo league into an empty database. A database
// that already holds teams is left untouched.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM teams`); err != nil {
		return fmt.Errorf("count teams for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	seed := memory.DefaultSeed()

	for _, t := range seed.Teams {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO teams (id, owner_user_id, name, short)
VALUES ($1, $2, $3, $4)
ON CONFLICT (id) DO NOTHING`, t.ID, t.OwnerUserID, t.Name, t.Short); err != nil {
			return fmt.Errorf("seed team %s: %w", t.ID, err)
		}
	}

	for _, a := range seed.Accounts {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO budget_accounts (user_id, balance, updated_at)
VALUES ($1, $2, NOW())
ON CONFLICT (user_id) DO NOTHING`, a.UserID, a.Balance); err != nil {
			return fmt.Errorf("seed budget account %s: %w", a.UserID, err)
		}
	}

	for _, p := range seed.Players {
		alts := make(pq.StringArray, 0, len(p.AlternativePositions))
		for _, alt := range p.AlternativePositions {
			alts = append(alts, string(alt))
		}
		if _, err := tx.ExecContext(ctx, `
INSERT INTO players (id, name, shirt_number, position, alternative_positions, owner_team_id, market_value, image_url)
VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, NULLIF($8, ''))
ON CONFLICT (id) DO NOTHING`,
			p.ID, p.Name, p.ShirtNumber, string(p.Position), alts, p.OwnerTeamID, p.MarketValue, p.ImageURL); err != nil {
			return fmt.Errorf("seed player %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}
