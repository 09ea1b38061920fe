package export

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/iho/bankrec/internal/domain"
)

// Document is the print layout of one reconciliation statement.
type Document struct {
	Heading     string
	Title       string
	Meta        []Field
	BankSection Section
	BookSection Section
	Difference  decimal.Decimal
	Reconciled  bool
}

// Field is a labelled value in the document header.
type Field struct {
	Label string
	Value string
}

// Section is one side of the statement: a starting balance, its additions and
// deductions, and the corrected balance.
type Section struct {
	Title        string
	OpeningLabel string
	Opening      decimal.Decimal
	Additions    Group
	Deductions   Group
	ClosingLabel string
	Closing      decimal.Decimal
}

// Group lists the items of one adjustment list with running totals.
type Group struct {
	Title string
	Lines []Line
	Total decimal.Decimal
}

// Line is one adjustment item. Running is the sum of the group up to and
// including this line.
type Line struct {
	Narration string
	Amount    decimal.Decimal
	Running   decimal.Decimal
}

// BuildDocument lays out a statement for printing. Totals, corrected balances
// and the difference are taken from the fields stamped on the statement.
func BuildDocument(s *domain.Statement, heading string) Document {
	title := "Bank Reconciliation Statement"
	if s.ReconciliationMonth != "" {
		title += " for " + s.ReconciliationMonth
	}

	meta := []Field{
		{Label: "Bank", Value: s.BankName},
		{Label: "Bank Code", Value: s.BankCode},
	}
	if !s.ReconciliationDate.IsZero() {
		meta = append(meta, Field{Label: "Reconciliation Date", Value: s.ReconciliationDate.Format(domain.DateLayout)})
	}
	if s.StatementID > 0 {
		meta = append(meta, Field{Label: "Statement No.", Value: strconv.FormatInt(s.StatementID, 10)})
	}

	return Document{
		Heading: heading,
		Title:   title,
		Meta:    meta,
		BankSection: Section{
			Title:        "Bank Side",
			OpeningLabel: "Balance as per Bank Statement",
			Opening:      s.BalanceAsPerBank,
			Additions:    group("Add:", s.Additions, s.TotalAdditions),
			Deductions:   group("Less:", s.Deductions, s.TotalDeductions),
			ClosingLabel: "Corrected Bank Balance",
			Closing:      s.CorrectedBalance,
		},
		BookSection: Section{
			Title:        "Book Side",
			OpeningLabel: "Balance as per Cash Book",
			Opening:      s.BalanceAsPerBook,
			Additions:    group("Add:", s.BookAdditions, s.TotalBookAdditions),
			Deductions:   group("Less:", s.BookDeductions, s.TotalBookDeductions),
			ClosingLabel: "Corrected Book Balance",
			Closing:      s.CorrectedBookBalance,
		},
		Difference: s.Difference,
		Reconciled: s.Difference.IsZero(),
	}
}

func group(title string, items domain.AdjustmentList, total decimal.Decimal) Group {
	g := Group{Title: title, Lines: make([]Line, 0, len(items)), Total: total}
	running := decimal.Zero
	for _, item := range items {
		running = running.Add(item.Amount)
		g.Lines = append(g.Lines, Line{Narration: item.Narration, Amount: item.Amount, Running: running})
	}
	return g
}
