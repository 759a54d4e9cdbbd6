package formation

import "context"

// Repository describes formation template lookups. Templates are static
// catalog data; there is no write path.
type Repository interface {
	List(ctx context.Context) ([]Formation, error)
	GetByID(ctx context.Context, formationID string) (Formation, bool, error)
}
