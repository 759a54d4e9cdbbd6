package budget

import "context"

// Repository describes budget account persistence needs from use cases.
// Mutations happen exclusively inside the transaction of the business
// operation that moves the money; the repository is never exposed as a
// standalone API surface.
type Repository interface {
	GetByUser(ctx context.Context, userID string) (Account, bool, error)
	Save(ctx context.Context, account Account) error
}
