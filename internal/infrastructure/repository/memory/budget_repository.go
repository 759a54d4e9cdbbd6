package memory

import (
	"context"

	"github.com/victorgomez09/fantasy-manager/internal/domain/budget"
)

type BudgetRepository struct {
	st *state
}

func (r *BudgetRepository) GetByUser(_ context.Context, userID string) (budget.Account, bool, error) {
	a, ok := r.st.accounts[userID]
	return a, ok, nil
}

func (r *BudgetRepository) Save(_ context.Context, account budget.Account) error {
	r.st.accounts[account.UserID] = account
	return nil
}
