package domain

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Category identifies which of the four adjustment lists an item belongs to.
type Category string

const (
	CategoryBankAddition  Category = "bank_addition"
	CategoryBankDeduction Category = "bank_deduction"
	CategoryBookAddition  Category = "book_addition"
	CategoryBookDeduction Category = "book_deduction"
)

// Categories lists every category in statement order.
var Categories = []Category{
	CategoryBankAddition,
	CategoryBankDeduction,
	CategoryBookAddition,
	CategoryBookDeduction,
}

// IsValid checks if the category is known.
func (c Category) IsValid() bool {
	switch c {
	case CategoryBankAddition, CategoryBankDeduction, CategoryBookAddition, CategoryBookDeduction:
		return true
	}
	return false
}

// AdjustmentItem is a single narrated amount on one side of a reconciliation.
// The sign is implied by the list holding it.
type AdjustmentItem struct {
	Narration string
	Amount    decimal.Decimal
}

// AdjustmentList is an ordered sequence of items. Insertion order is the
// order shown on exports.
type AdjustmentList []AdjustmentItem

// Append adds an item at the end of the list.
func (l *AdjustmentList) Append(item AdjustmentItem) {
	*l = append(*l, item)
}

// InsertAfter inserts item right after index. An index of -1 inserts at the
// front; an index past the end appends.
func (l *AdjustmentList) InsertAfter(index int, item AdjustmentItem) {
	pos := index + 1
	if pos < 0 {
		pos = 0
	}
	if pos >= len(*l) {
		l.Append(item)
		return
	}

	list := append(*l, AdjustmentItem{})
	copy(list[pos+1:], list[pos:])
	list[pos] = item
	*l = list
}

// RemoveAt removes the item at index. Out of range indexes are ignored and
// reported with false.
func (l *AdjustmentList) RemoveAt(index int) bool {
	if index < 0 || index >= len(*l) {
		return false
	}
	*l = append((*l)[:index], (*l)[index+1:]...)
	return true
}

// Set replaces the item at index.
func (l AdjustmentList) Set(index int, item AdjustmentItem) bool {
	if index < 0 || index >= len(l) {
		return false
	}
	l[index] = item
	return true
}

// Clone returns an independent copy of the list. A nil list clones to an
// empty one.
func (l AdjustmentList) Clone() AdjustmentList {
	out := make(AdjustmentList, len(l))
	copy(out, l)
	return out
}

// Zeroed returns a copy of the list keeping narrations and resetting every
// amount to zero.
func (l AdjustmentList) Zeroed() AdjustmentList {
	out := make(AdjustmentList, len(l))
	for i, item := range l {
		out[i] = AdjustmentItem{Narration: item.Narration, Amount: decimal.Zero}
	}
	return out
}

// Serialize renders the list as "narration: amount; narration: amount" with
// amounts fixed to two decimals. An empty list yields an empty string.
func (l AdjustmentList) Serialize() string {
	parts := make([]string, 0, len(l))
	for _, item := range l {
		parts = append(parts, item.Narration+": "+item.Amount.StringFixed(2))
	}
	return strings.Join(parts, "; ")
}

// amountPattern accepts plain decimals of at most 18 integer and 12 fraction
// digits. Exponent forms are rejected so a short input cannot expand into a
// huge rescale while summing.
var amountPattern = regexp.MustCompile(`^[-+]?(\d{1,18}(\.\d{0,12})?|\.\d{1,12})$`)

// CoerceAmount converts user text into an amount the calculator can sum.
// Blank input is zero. Non-numeric or out-of-range input is zero and reported
// as not ok so the caller can raise a validation error. Negative amounts are
// returned as is, also reported as not ok.
func CoerceAmount(text string) (decimal.Decimal, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return decimal.Zero, true
	}

	text = strings.ReplaceAll(text, ",", "")
	if !amountPattern.MatchString(text) {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(text)
	if err != nil {
		return decimal.Zero, false
	}

	return d, !d.IsNegative()
}

// StarterItems holds the narrations a new statement is seeded with.
type StarterItems struct {
	Additions      AdjustmentList
	Deductions     AdjustmentList
	BookAdditions  AdjustmentList
	BookDeductions AdjustmentList
}

// DefaultStarterItems returns the customary starter narrations with zero
// amounts. Each call returns fresh slices.
func DefaultStarterItems() StarterItems {
	zero := func(narrations ...string) AdjustmentList {
		list := make(AdjustmentList, 0, len(narrations))
		for _, n := range narrations {
			list.Append(AdjustmentItem{Narration: n, Amount: decimal.Zero})
		}
		return list
	}

	return StarterItems{
		Additions:      zero("Deposit-in-Transit", "Short Deposit"),
		Deductions:     zero("Outstanding Cheque", "Excess Deposit"),
		BookAdditions:  zero("Bank Interest", "Remitted from other Accounts"),
		BookDeductions: zero("Revenue stamps", "Bank Charged", "Fund Transfer"),
	}
}
