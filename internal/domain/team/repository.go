package team

import "context"

// Repository describes team persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, teamID string) (Team, bool, error)
	GetByOwner(ctx context.Context, userID string) (Team, bool, error)
}
