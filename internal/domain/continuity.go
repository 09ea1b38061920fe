package domain

import (
	"sort"
	"strconv"
	"strings"
	"time"
)

// Continuity is the outcome of checking a (bank, date) pair against a user's
// statement history.
type Continuity struct {
	BankCode    string
	Date        time.Time
	Duplicate   *Statement
	Predecessor *Statement
}

// HasDuplicate reports whether a statement already exists for the month.
func (c Continuity) HasDuplicate() bool {
	return c.Duplicate != nil
}

// CanCopyForward reports whether a copy-forward may be offered: no duplicate
// and a statement for the preceding month.
func (c Continuity) CanCopyForward() bool {
	return c.Duplicate == nil && c.Predecessor != nil
}

// FindDuplicate returns the statement for bankCode whose reconciliation date
// falls in the same calendar month as date, or nil.
func FindDuplicate(history []*Statement, bankCode string, date time.Time) *Statement {
	return findInPeriod(history, bankCode, PeriodOf(NormalizeDate(date)))
}

// FindPredecessor returns the statement for bankCode whose reconciliation date
// falls in the calendar month immediately before date's month, or nil.
func FindPredecessor(history []*Statement, bankCode string, date time.Time) *Statement {
	return findInPeriod(history, bankCode, PeriodOf(NormalizeDate(date)).Prev())
}

// CheckContinuity runs both lookups. The predecessor is only reported when no
// duplicate exists.
func CheckContinuity(history []*Statement, bankCode string, date time.Time) Continuity {
	c := Continuity{BankCode: bankCode, Date: NormalizeDate(date)}
	if bankCode == "" || date.IsZero() {
		return c
	}

	c.Duplicate = FindDuplicate(history, bankCode, date)
	if c.Duplicate == nil {
		c.Predecessor = FindPredecessor(history, bankCode, date)
	}
	return c
}

// findInPeriod picks the lowest statement id on ties so results are stable
// regardless of history order.
func findInPeriod(history []*Statement, bankCode string, p Period) *Statement {
	var found *Statement
	for _, s := range history {
		if s == nil || s.BankCode != bankCode || s.ReconciliationDate.IsZero() {
			continue
		}
		if s.Period() != p {
			continue
		}
		if found == nil || s.StatementID < found.StatementID {
			found = s
		}
	}
	return found
}

// CopyForwardInputs builds the starting inputs of a new statement from its
// predecessor: the corrected balances become the new starting balances and
// every list keeps its narrations with zero amounts.
func CopyForwardInputs(predecessor *Statement) Inputs {
	return Inputs{
		BalanceAsPerBank: predecessor.CorrectedBalance,
		BalanceAsPerBook: predecessor.CorrectedBookBalance,
		Additions:        predecessor.Additions.Zeroed(),
		Deductions:       predecessor.Deductions.Zeroed(),
		BookAdditions:    predecessor.BookAdditions.Zeroed(),
		BookDeductions:   predecessor.BookDeductions.Zeroed(),
	}
}

// NextStatementID returns 1 + the highest statement id in history, or 1.
func NextStatementID(history []*Statement) int64 {
	var maxID int64
	for _, s := range history {
		if s != nil && s.StatementID > maxID {
			maxID = s.StatementID
		}
	}
	return maxID + 1
}

// FilterStatements keeps statements whose bank name, date or statement id
// contains term, case-insensitively. When includeUser is set the user name and
// email are searched too. An empty term keeps everything.
func FilterStatements(statements []*Statement, term string, includeUser bool) []*Statement {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return append([]*Statement(nil), statements...)
	}

	out := make([]*Statement, 0, len(statements))
	for _, s := range statements {
		switch {
		case strings.Contains(strings.ToLower(s.BankName), term),
			strings.Contains(s.ReconciliationDate.Format(DateLayout), term),
			s.StatementID > 0 && strings.Contains(strconv.FormatInt(s.StatementID, 10), term),
			includeUser && strings.Contains(strings.ToLower(s.UserName), term),
			includeUser && strings.Contains(strings.ToLower(s.UserEmail), term):
			out = append(out, s)
		}
	}
	return out
}

// SortByStatementIDDesc orders statements newest number first.
func SortByStatementIDDesc(statements []*Statement) {
	sort.SliceStable(statements, func(i, j int) bool {
		return statements[i].StatementID > statements[j].StatementID
	})
}
