package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/victorgomez09/fantasy-manager/internal/usecase"
)

const maxTxAttempts = 3

// Store implements usecase.UnitOfWork on a Postgres pool. Every call to
// Do runs fn inside one transaction; listing resolution takes a FOR
// UPDATE row lock, so two sweeps racing on the same listing serialize
// instead of double-settling.
type Store struct {
	db *sqlx.DB
}

func NewStore(db *sqlx.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Do(ctx context.Context, fn func(ctx context.Context, r usecase.Repos) error) error {
	var lastErr error
	for attempt := 1; attempt <= maxTxAttempts; attempt++ {
		err := s.runOnce(ctx, fn)
		if err == nil {
			return nil
		}
		if !isRetryableTxError(err) {
			return err
		}
		lastErr = err
	}

	return fmt.Errorf("%w: transaction retries exhausted: %v", usecase.ErrConflict, lastErr)
}

func (s *Store) runOnce(ctx context.Context, fn func(ctx context.Context, r usecase.Repos) error) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	repos := usecase.Repos{
		Market:  &MarketRepository{tx: tx},
		Budgets: &BudgetRepository{tx: tx},
		Players: &PlayerRepository{tx: tx},
		Teams:   &TeamRepository{tx: tx},
		Squads:  &SquadRepository{tx: tx},
	}

	if err := fn(ctx, repos); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}

	return nil
}
