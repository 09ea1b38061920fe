package postgres

import (
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
)

var statementColumns = []string{
	"id", "statement_id", "user_id", "user_email", "user_name", "bank_code", "bank_name",
	"reconciliation_date", "reconciliation_month", "balance_as_per_bank", "balance_as_per_book",
	"additions", "deductions", "book_additions", "book_deductions",
	"total_additions", "total_deductions", "corrected_balance",
	"total_book_additions", "total_book_deductions", "corrected_book_balance", "difference",
	"created_at", "updated_at",
}

var bankColumns = []string{"id", "code", "name", "created_at", "updated_at"}

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	pool, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("failed to create pgxmock pool: %v", err)
	}
	t.Cleanup(pool.Close)
	return pool
}

func assertExpectations(t *testing.T, pool pgxmock.PgxPoolIface) {
	t.Helper()
	if err := pool.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations were not met: %v", err)
	}
}

// statementRow returns a stored statement for BK1 in March 2024 with the
// given number.
func statementRow(id string, statementID int64) []any {
	created := time.Date(2024, time.April, 1, 9, 30, 0, 0, time.UTC)
	return []any{
		id, statementID, "u1", "ada@example.com", "Ada", "BK1", "First Bank",
		time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC), "February 2024", "1000", "1020",
		[]byte(`[{"narration":"Deposit-in-Transit","amount":"50"}]`),
		[]byte(`[{"narration":"Outstanding Cheque","amount":"25.5"}]`),
		[]byte(`[]`),
		[]byte(`[]`),
		"50", "25.5", "1024.5", "0", "0", "1020", "4.5",
		created, created,
	}
}

func anyArgs(n int) []any {
	args := make([]any, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}
