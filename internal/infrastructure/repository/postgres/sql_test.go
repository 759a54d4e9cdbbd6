package postgres

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestIsNotFound(t *testing.T) {
	if !isNotFound(sql.ErrNoRows) {
		t.Fatalf("expected true for sql.ErrNoRows")
	}
	if isNotFound(fmt.Errorf("boom")) {
		t.Fatalf("expected false for unrelated error")
	}
}

func TestIsRetryableTxError(t *testing.T) {
	t.Run("serialization failure", func(t *testing.T) {
		err := &pq.Error{Code: "40001"}
		if !isRetryableTxError(fmt.Errorf("resolve listing: %w", err)) {
			t.Fatalf("expected true for SQLSTATE 40001")
		}
	})

	t.Run("deadlock detected", func(t *testing.T) {
		err := &pq.Error{Code: "40P01"}
		if !isRetryableTxError(err) {
			t.Fatalf("expected true for SQLSTATE 40P01")
		}
	})

	t.Run("unique violation is not retried", func(t *testing.T) {
		err := &pq.Error{Code: "23505"}
		if isRetryableTxError(err) {
			t.Fatalf("expected false for SQLSTATE 23505")
		}
	})

	t.Run("plain error is not retried", func(t *testing.T) {
		if isRetryableTxError(fmt.Errorf("boom")) {
			t.Fatalf("expected false for plain error")
		}
	})
}
