package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Statement is one persisted reconciliation for one bank, one user and one month.
type Statement struct {
	ID                  string
	StatementID         int64
	UserID              string
	BankCode            string
	BankName            string
	ReconciliationDate  time.Time
	ReconciliationMonth string

	BalanceAsPerBank decimal.Decimal
	BalanceAsPerBook decimal.Decimal
	Additions        AdjustmentList
	Deductions       AdjustmentList
	BookAdditions    AdjustmentList
	BookDeductions   AdjustmentList

	TotalAdditions       decimal.Decimal
	TotalDeductions      decimal.Decimal
	CorrectedBalance     decimal.Decimal
	TotalBookAdditions   decimal.Decimal
	TotalBookDeductions  decimal.Decimal
	CorrectedBookBalance decimal.Decimal
	Difference           decimal.Decimal

	CreatedAt time.Time
	UpdatedAt time.Time

	// Populated only on admin listings.
	UserName  string
	UserEmail string
}

// Inputs returns a copy of the user-entered values of the statement.
func (s *Statement) Inputs() Inputs {
	return Inputs{
		BalanceAsPerBank: s.BalanceAsPerBank,
		BalanceAsPerBook: s.BalanceAsPerBook,
		Additions:        s.Additions.Clone(),
		Deductions:       s.Deductions.Clone(),
		BookAdditions:    s.BookAdditions.Clone(),
		BookDeductions:   s.BookDeductions.Clone(),
	}
}

// SetInputs replaces the user-entered values of the statement.
func (s *Statement) SetInputs(in Inputs) {
	s.BalanceAsPerBank = in.BalanceAsPerBank
	s.BalanceAsPerBook = in.BalanceAsPerBook
	s.Additions = in.Additions.Clone()
	s.Deductions = in.Deductions.Clone()
	s.BookAdditions = in.BookAdditions.Clone()
	s.BookDeductions = in.BookDeductions.Clone()
}

// Totals returns the derived fields currently stamped on the statement.
func (s *Statement) Totals() Totals {
	return Totals{
		TotalAdditions:       s.TotalAdditions,
		TotalDeductions:      s.TotalDeductions,
		CorrectedBalance:     s.CorrectedBalance,
		TotalBookAdditions:   s.TotalBookAdditions,
		TotalBookDeductions:  s.TotalBookDeductions,
		CorrectedBookBalance: s.CorrectedBookBalance,
		Difference:           s.Difference,
	}
}

// Recompute derives the totals from the current inputs and stamps them, along
// with the reconciliation month label. It must run before every save.
func (s *Statement) Recompute() Totals {
	t := Compute(s.Inputs())
	s.Stamp(t)
	s.ReconciliationMonth = ReconciliationMonthLabel(s.ReconciliationDate)
	return t
}

// Stamp copies computed totals onto the statement.
func (s *Statement) Stamp(t Totals) {
	s.TotalAdditions = t.TotalAdditions
	s.TotalDeductions = t.TotalDeductions
	s.CorrectedBalance = t.CorrectedBalance
	s.TotalBookAdditions = t.TotalBookAdditions
	s.TotalBookDeductions = t.TotalBookDeductions
	s.CorrectedBookBalance = t.CorrectedBookBalance
	s.Difference = t.Difference
}

// IsReconciled reports whether the stamped difference is zero.
func (s *Statement) IsReconciled() bool {
	return s.Difference.IsZero()
}

// Period returns the calendar month of the reconciliation date.
func (s *Statement) Period() Period {
	return PeriodOf(NormalizeDate(s.ReconciliationDate))
}

// Clone returns a deep copy of the statement.
func (s *Statement) Clone() *Statement {
	c := *s
	c.Additions = s.Additions.Clone()
	c.Deductions = s.Deductions.Clone()
	c.BookAdditions = s.BookAdditions.Clone()
	c.BookDeductions = s.BookDeductions.Clone()
	return &c
}
