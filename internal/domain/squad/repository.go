package squad

import "context"

// Repository exposes squad persistence operations. ClearPlayer is used
// by market resolution to drop a sold player from the seller's pitch in
// the same transaction as the ownership transfer.
type Repository interface {
	GetByTeam(ctx context.Context, teamID string) (Squad, bool, error)
	Upsert(ctx context.Context, s Squad) error
	ClearPlayer(ctx context.Context, teamID, playerID string) error
}
