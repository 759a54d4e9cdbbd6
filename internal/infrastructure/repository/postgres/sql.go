package postgres

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"
)

func isNotFound(err error) bool {
	return err == sql.ErrNoRows
}

// isRetryableTxError matches serialization failures and deadlocks, the
// two SQLSTATEs Postgres raises when concurrent transactions collide on
// the same rows. Both are safe to retry from the top of the unit of work.
func isRetryableTxError(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	switch string(pqErr.Code) {
	case "40001", "40P01":
		return true
	default:
		return false
	}
}
