package export

import (
	"github.com/shopspring/decimal"

	"github.com/iho/bankrec/internal/domain"
)

// StatementHeaders are the column titles of a statement export, in order.
var StatementHeaders = []string{
	"Statement ID",
	"Bank Name",
	"Bank Code",
	"Reconciliation Date",
	"Reconciliation Month",
	"Balance as per Bank",
	"Balance as per Book",
	"Corrected Bank Balance",
	"Corrected Book Balance",
	"Difference",
	"Bank Additions",
	"Bank Deductions",
	"Book Additions",
	"Book Deductions",
}

// UserHeaders prefix the statement columns on admin exports.
var UserHeaders = []string{"User Name", "User Email"}

// TableRow is the flat form of one statement.
type TableRow struct {
	UserName             string
	UserEmail            string
	StatementID          int64
	BankName             string
	BankCode             string
	ReconciliationDate   string
	ReconciliationMonth  string
	BalanceAsPerBank     decimal.Decimal
	BalanceAsPerBook     decimal.Decimal
	CorrectedBalance     decimal.Decimal
	CorrectedBookBalance decimal.Decimal
	Difference           decimal.Decimal
	Additions            string
	Deductions           string
	BookAdditions        string
	BookDeductions       string
}

// RowFromStatement flattens a statement. Adjustment lists are serialized as
// "narration: amount; narration: amount".
func RowFromStatement(s *domain.Statement) TableRow {
	row := TableRow{
		UserName:             s.UserName,
		UserEmail:            s.UserEmail,
		StatementID:          s.StatementID,
		BankName:             s.BankName,
		BankCode:             s.BankCode,
		ReconciliationMonth:  s.ReconciliationMonth,
		BalanceAsPerBank:     s.BalanceAsPerBank,
		BalanceAsPerBook:     s.BalanceAsPerBook,
		CorrectedBalance:     s.CorrectedBalance,
		CorrectedBookBalance: s.CorrectedBookBalance,
		Difference:           s.Difference,
		Additions:            s.Additions.Serialize(),
		Deductions:           s.Deductions.Serialize(),
		BookAdditions:        s.BookAdditions.Serialize(),
		BookDeductions:       s.BookDeductions.Serialize(),
	}
	if !s.ReconciliationDate.IsZero() {
		row.ReconciliationDate = s.ReconciliationDate.Format(domain.DateLayout)
	}
	return row
}

// TableRows flattens statements in the order given.
func TableRows(statements []*domain.Statement) []TableRow {
	rows := make([]TableRow, 0, len(statements))
	for _, s := range statements {
		rows = append(rows, RowFromStatement(s))
	}
	return rows
}

// Headers returns the column titles, with the owner columns first when
// withUser is set.
func Headers(withUser bool) []string {
	if !withUser {
		return append([]string(nil), StatementHeaders...)
	}
	return append(append([]string(nil), UserHeaders...), StatementHeaders...)
}

// Values returns the cells of the row matching Headers(withUser). Amounts are
// kept as decimals so writers can choose their own numeric form.
func (r TableRow) Values(withUser bool) []any {
	values := make([]any, 0, len(StatementHeaders)+len(UserHeaders))
	if withUser {
		values = append(values, r.UserName, r.UserEmail)
	}
	return append(values,
		r.StatementID,
		r.BankName,
		r.BankCode,
		r.ReconciliationDate,
		r.ReconciliationMonth,
		r.BalanceAsPerBank,
		r.BalanceAsPerBook,
		r.CorrectedBalance,
		r.CorrectedBookBalance,
		r.Difference,
		r.Additions,
		r.Deductions,
		r.BookAdditions,
		r.BookDeductions,
	)
}
