package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Validation limits. Lengths count characters, not bytes.
const (
	MaxBankCodeLength      = 32
	MaxBankNameLength      = 255
	MaxNarrationLength     = 500
	MaxItemsPerList        = 200
	MaxReportHeadingLength = 255
)

// ValidateStatement checks the user-entered fields of a statement before it
// is saved. Narrations are checked only when requireNarration is set.
func ValidateStatement(s *Statement, requireNarration bool) error {
	verr := &ValidationError{}

	if strings.TrimSpace(s.BankCode) == "" {
		verr.Add("bank_code", "bank code is required")
	}
	if s.ReconciliationDate.IsZero() {
		verr.Add("reconciliation_date", "date is required")
	}

	lists := []struct {
		field string
		items AdjustmentList
	}{
		{"additions", s.Additions},
		{"deductions", s.Deductions},
		{"book_additions", s.BookAdditions},
		{"book_deductions", s.BookDeductions},
	}
	for _, l := range lists {
		validateItems(verr, l.field, l.items, requireNarration)
	}

	return verr.OrNil()
}

func validateItems(verr *ValidationError, field string, items AdjustmentList, requireNarration bool) {
	if len(items) > MaxItemsPerList {
		verr.Add(field, fmt.Sprintf("at most %d items allowed", MaxItemsPerList))
	}

	for i, item := range items {
		path := fmt.Sprintf("%s[%d]", field, i)
		narration := strings.TrimSpace(item.Narration)

		if requireNarration && narration == "" {
			verr.Add(path+".narration", "narration is required")
		}
		if utf8.RuneCountInString(narration) > MaxNarrationLength {
			verr.Add(path+".narration", fmt.Sprintf("narration exceeds %d characters", MaxNarrationLength))
		}
		if item.Amount.IsNegative() {
			verr.Add(path+".amount", "amount must not be negative")
		}
	}
}

// ValidateBank validates a bank directory entry.
func ValidateBank(b *Bank) error {
	verr := &ValidationError{}

	code := strings.TrimSpace(b.Code)
	if code == "" {
		verr.Add("code", "bank code is required")
	} else if utf8.RuneCountInString(code) > MaxBankCodeLength {
		verr.Add("code", fmt.Sprintf("bank code exceeds %d characters", MaxBankCodeLength))
	}

	name := strings.TrimSpace(b.Name)
	if name == "" {
		verr.Add("name", "bank name is required")
	} else if utf8.RuneCountInString(name) > MaxBankNameLength {
		verr.Add("name", fmt.Sprintf("bank name exceeds %d characters", MaxBankNameLength))
	}

	return verr.OrNil()
}

// ValidateSettings validates the global report settings.
func ValidateSettings(s *Settings) error {
	verr := &ValidationError{}

	heading := strings.TrimSpace(s.ReportHeading)
	if heading == "" {
		verr.Add("report_heading", "report heading is required")
	} else if utf8.RuneCountInString(heading) > MaxReportHeadingLength {
		verr.Add("report_heading", fmt.Sprintf("report heading exceeds %d characters", MaxReportHeadingLength))
	}

	return verr.OrNil()
}

// ValidatePagination validates and limits pagination parameters
func ValidatePagination(limit, offset int) (int, int) {
	const MaxPageSize = 1000
	const DefaultPageSize = 50

	if limit <= 0 {
		limit = DefaultPageSize
	}

	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
