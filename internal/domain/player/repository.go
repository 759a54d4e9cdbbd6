package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, playerID string) (Player, bool, error)
	List(ctx context.Context) ([]Player, error)
	ListByOwner(ctx context.Context, teamID string) ([]Player, error)
	ListFreeAgents(ctx context.Context) ([]Player, error)
	Save(ctx context.Context, p Player) error
}
