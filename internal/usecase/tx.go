package usecase

import (
	"context"

	"github.com/victorgomez09/fantasy-manager/internal/domain/budget"
	"github.com/victorgomez09/fantasy-manager/internal/domain/market"
	"github.com/victorgomez09/fantasy-manager/internal/domain/player"
	"github.com/victorgomez09/fantasy-manager/internal/domain/squad"
	"github.com/victorgomez09/fantasy-manager/internal/domain/team"
)

// Repos bundles the repositories visible inside one transaction.
// Every multi-entity command (bid placement, resolution, assignment)
// reads and writes through this set only, so partial state is never
// observable outside the transaction.
type Repos struct {
	Market  market.Repository
	Budgets budget.Repository
	Players player.Repository
	Teams   team.Repository
	Squads  squad.Repository
}

// UnitOfWork runs fn atomically. Implementations must serialize
// conflicting work on the same rows (row locks or bounded optimistic
// retries) and surface ErrConflict once retries are exhausted. A non-nil
// error from fn rolls the transaction back.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, r Repos) error) error
}
