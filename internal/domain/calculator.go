package domain

import "github.com/shopspring/decimal"

// Inputs are the user-entered values a reconciliation is derived from.
type Inputs struct {
	BalanceAsPerBank decimal.Decimal
	BalanceAsPerBook decimal.Decimal
	Additions        AdjustmentList
	Deductions       AdjustmentList
	BookAdditions    AdjustmentList
	BookDeductions   AdjustmentList
}

// Totals are the values derived from Inputs. They are never edited directly.
type Totals struct {
	TotalAdditions       decimal.Decimal
	TotalDeductions      decimal.Decimal
	CorrectedBalance     decimal.Decimal
	TotalBookAdditions   decimal.Decimal
	TotalBookDeductions  decimal.Decimal
	CorrectedBookBalance decimal.Decimal
	Difference           decimal.Decimal
}

// IsReconciled reports whether the difference is exactly zero.
func (t Totals) IsReconciled() bool {
	return t.Difference.IsZero()
}

// Total sums the amounts of items. An empty list totals zero.
func Total(items AdjustmentList) decimal.Decimal {
	sum := decimal.Zero
	for _, item := range items {
		sum = sum.Add(item.Amount)
	}
	return sum
}

// CorrectedBalance returns starting + total(additions) - total(deductions).
// Negative results are valid.
func CorrectedBalance(starting decimal.Decimal, additions, deductions AdjustmentList) decimal.Decimal {
	return starting.Add(Total(additions)).Sub(Total(deductions))
}

// Difference returns correctedBank - correctedBook.
func Difference(correctedBank, correctedBook decimal.Decimal) decimal.Decimal {
	return correctedBank.Sub(correctedBook)
}

// Compute derives every total from in. It is pure and cheap enough to run on
// each keystroke.
func Compute(in Inputs) Totals {
	bank := CorrectedBalance(in.BalanceAsPerBank, in.Additions, in.Deductions)
	book := CorrectedBalance(in.BalanceAsPerBook, in.BookAdditions, in.BookDeductions)

	return Totals{
		TotalAdditions:       Total(in.Additions),
		TotalDeductions:      Total(in.Deductions),
		CorrectedBalance:     bank,
		TotalBookAdditions:   Total(in.BookAdditions),
		TotalBookDeductions:  Total(in.BookDeductions),
		CorrectedBookBalance: book,
		Difference:           Difference(bank, book),
	}
}

// Clone returns a deep copy of the inputs.
func (in Inputs) Clone() Inputs {
	return Inputs{
		BalanceAsPerBank: in.BalanceAsPerBank,
		BalanceAsPerBook: in.BalanceAsPerBook,
		Additions:        in.Additions.Clone(),
		Deductions:       in.Deductions.Clone(),
		BookAdditions:    in.BookAdditions.Clone(),
		BookDeductions:   in.BookDeductions.Clone(),
	}
}

// List returns the adjustment list for a category.
func (in *Inputs) List(c Category) *AdjustmentList {
	switch c {
	case CategoryBankAddition:
		return &in.Additions
	case CategoryBankDeduction:
		return &in.Deductions
	case CategoryBookAddition:
		return &in.BookAdditions
	case CategoryBookDeduction:
		return &in.BookDeductions
	}
	return nil
}
