package budget

import (
	"errors"
	"fmt"
	"time"
)

// InitialBalance is granted to every new account when it opens.
const InitialBalance int64 = 35_000_000

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidAmount     = errors.New("amount must not be negative")
)

// Account is a user's spendable transfer budget. Amounts are whole euros.
type Account struct {
	UserID    string
	Balance   int64
	UpdatedAt time.Time
}

// Debit withdraws amount from the account. The balance never goes
// negative; a debit that would is rejected untouched.
func (a *Account) Debit(amount int64) error {
	if amount < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidAmount, amount)
	}
	if a.Balance < amount {
		return fmt.Errorf("%w: balance=%d needed=%d", ErrInsufficientFunds, a.Balance, amount)
	}
	a.Balance -= amount

	return nil
}

// Credit deposits amount into the account.
func (a *Account) Credit(amount int64) error {
	if amount < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidAmount, amount)
	}
	a.Balance += amount

	return nil
}
