package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/victorgomez09/fantasy-manager/internal/domain/budget"
)

type BudgetRepository struct {
	tx *sqlx.Tx
}

func (r *BudgetRepository) GetByUser(ctx context.Context, userID string) (budget.Account, bool, error) {
	const query = `SELECT user_id, balance, updated_at FROM budget_accounts WHERE user_id = $1 FOR UPDATE`

	var row accountRowModel
	if err := r.tx.GetContext(ctx, &row, query, userID); err != nil {
		if isNotFound(err) {
			return budget.Account{}, false, nil
		}
		return budget.Account{}, false, fmt.Errorf("get budget account: %w", err)
	}

	return row.toDomain(), true, nil
}

func (r *BudgetRepository) Save(ctx context.Context, account budget.Account) error {
	const query = `
INSERT INTO budget_accounts (user_id, balance, updated_at)
VALUES ($1, $2, $3)
ON CONFLICT (user_id)
DO UPDATE SET balance = EXCLUDED.balance, updated_at = EXCLUDED.updated_at`

	if _, err := r.tx.ExecContext(ctx, query, account.UserID, account.Balance, account.UpdatedAt); err != nil {
		return fmt.Errorf("save budget account: %w", err)
	}

	return nil
}
