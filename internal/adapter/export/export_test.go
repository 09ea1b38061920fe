package export_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/bankrec/internal/domain"
)

func amount(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func sampleStatement(t *testing.T) *domain.Statement {
	t.Helper()
	s := &domain.Statement{
		ID:                 "01HZX",
		StatementID:        12,
		UserID:             "u1",
		UserName:           "Ada",
		UserEmail:          "ada@example.com",
		BankCode:           "BK1",
		BankName:           "First Bank",
		ReconciliationDate: time.Date(2024, time.April, 5, 0, 0, 0, 0, time.UTC),
		BalanceAsPerBank:   amount("1000"),
		BalanceAsPerBook:   amount("1020"),
		Additions: domain.AdjustmentList{
			{Narration: "Deposit-in-Transit", Amount: amount("50")},
			{Narration: "Short Deposit", Amount: amount("0")},
		},
		Deductions: domain.AdjustmentList{
			{Narration: "Outstanding Cheque", Amount: amount("25")},
		},
	}
	s.Recompute()
	return s
}
