package dto

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/bankrec/internal/domain"
	"github.com/iho/bankrec/internal/usecase"
)

// AdjustmentItemResponse is one adjustment line in API responses.
type AdjustmentItemResponse struct {
	Narration string          `json:"narration"`
	Amount    decimal.Decimal `json:"amount"`
}

func listFromDomain(l domain.AdjustmentList) []AdjustmentItemResponse {
	out := make([]AdjustmentItemResponse, len(l))
	for i, item := range l {
		out[i] = AdjustmentItemResponse{Narration: item.Narration, Amount: item.Amount}
	}
	return out
}

// TotalsResponse represents derived totals in API responses.
type TotalsResponse struct {
	TotalAdditions       decimal.Decimal `json:"total_additions"`
	TotalDeductions      decimal.Decimal `json:"total_deductions"`
	CorrectedBalance     decimal.Decimal `json:"corrected_balance"`
	TotalBookAdditions   decimal.Decimal `json:"total_book_additions"`
	TotalBookDeductions  decimal.Decimal `json:"total_book_deductions"`
	CorrectedBookBalance decimal.Decimal `json:"corrected_book_balance"`
	Difference           decimal.Decimal `json:"difference"`
	Reconciled           bool            `json:"reconciled"`
}

// TotalsFromDomain converts derived totals to a response.
func TotalsFromDomain(t domain.Totals) TotalsResponse {
	return TotalsResponse{
		TotalAdditions:       t.TotalAdditions,
		TotalDeductions:      t.TotalDeductions,
		CorrectedBalance:     t.CorrectedBalance,
		TotalBookAdditions:   t.TotalBookAdditions,
		TotalBookDeductions:  t.TotalBookDeductions,
		CorrectedBookBalance: t.CorrectedBookBalance,
		Difference:           t.Difference,
		Reconciled:           t.IsReconciled(),
	}
}

// InputsResponse represents balances and adjustment lists in API responses.
type InputsResponse struct {
	BalanceAsPerBank decimal.Decimal          `json:"balance_as_per_bank"`
	BalanceAsPerBook decimal.Decimal          `json:"balance_as_per_book"`
	Additions        []AdjustmentItemResponse `json:"additions"`
	Deductions       []AdjustmentItemResponse `json:"deductions"`
	BookAdditions    []AdjustmentItemResponse `json:"book_additions"`
	BookDeductions   []AdjustmentItemResponse `json:"book_deductions"`
}

// InputsFromDomain converts calculator inputs to a response.
func InputsFromDomain(in domain.Inputs) InputsResponse {
	return InputsResponse{
		BalanceAsPerBank: in.BalanceAsPerBank,
		BalanceAsPerBook: in.BalanceAsPerBook,
		Additions:        listFromDomain(in.Additions),
		Deductions:       listFromDomain(in.Deductions),
		BookAdditions:    listFromDomain(in.BookAdditions),
		BookDeductions:   listFromDomain(in.BookDeductions),
	}
}

// StatementResponse represents a statement in API responses. Totals are the
// values stamped at save time.
type StatementResponse struct {
	ID                  string `json:"id"`
	StatementID         int64  `json:"statement_id"`
	UserID              string `json:"user_id"`
	UserName            string `json:"user_name,omitempty"`
	UserEmail           string `json:"user_email,omitempty"`
	BankCode            string `json:"bank_code"`
	BankName            string `json:"bank_name"`
	ReconciliationDate  string `json:"reconciliation_date"`
	ReconciliationMonth string `json:"reconciliation_month"`
	InputsResponse
	TotalsResponse
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StatementFromDomain converts a domain statement to a response.
func StatementFromDomain(s *domain.Statement) *StatementResponse {
	return &StatementResponse{
		ID:                  s.ID,
		StatementID:         s.StatementID,
		UserID:              s.UserID,
		UserName:            s.UserName,
		UserEmail:           s.UserEmail,
		BankCode:            s.BankCode,
		BankName:            s.BankName,
		ReconciliationDate:  formatDate(s.ReconciliationDate),
		ReconciliationMonth: s.ReconciliationMonth,
		InputsResponse:      InputsFromDomain(s.Inputs()),
		TotalsResponse:      TotalsFromDomain(s.Totals()),
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
	}
}

// StatementsFromDomain converts domain statements to responses.
func StatementsFromDomain(statements []*domain.Statement) []*StatementResponse {
	result := make([]*StatementResponse, len(statements))
	for i, s := range statements {
		result[i] = StatementFromDomain(s)
	}
	return result
}

// StatementListResponse is one page of a statement listing.
type StatementListResponse struct {
	Statements []*StatementResponse `json:"statements"`
	Total      int                  `json:"total"`
	Limit      int                  `json:"limit"`
	Offset     int                  `json:"offset"`
}

// StatementSummary identifies a statement found by a continuity check.
type StatementSummary struct {
	ID                  string          `json:"id"`
	StatementID         int64           `json:"statement_id"`
	BankCode            string          `json:"bank_code"`
	ReconciliationDate  string          `json:"reconciliation_date"`
	ReconciliationMonth string          `json:"reconciliation_month"`
	Difference          decimal.Decimal `json:"difference"`
}

// SummaryFromDomain converts a statement to a summary, or nil.
func SummaryFromDomain(s *domain.Statement) *StatementSummary {
	if s == nil {
		return nil
	}
	return &StatementSummary{
		ID:                  s.ID,
		StatementID:         s.StatementID,
		BankCode:            s.BankCode,
		ReconciliationDate:  formatDate(s.ReconciliationDate),
		ReconciliationMonth: s.ReconciliationMonth,
		Difference:          s.Difference,
	}
}

// TemplateResponse is a starting point for a new statement: the starter
// narrations, or a copy-forward of the previous month.
type TemplateResponse struct {
	BankCode           string `json:"bank_code,omitempty"`
	ReconciliationDate string `json:"reconciliation_date"`
	InputsResponse
	Totals TotalsResponse `json:"totals"`
}

// TemplateFromDraft converts a fresh draft to a template.
func TemplateFromDraft(d *usecase.Draft) *TemplateResponse {
	return &TemplateResponse{
		BankCode:           d.BankCode(),
		ReconciliationDate: formatDate(d.Date()),
		InputsResponse:     InputsFromDomain(d.Inputs()),
		Totals:             TotalsFromDomain(d.Totals()),
	}
}

// TemplateFromCopyForward converts a copy-forward template.
func TemplateFromCopyForward(bankCode string, date time.Time, t *usecase.CopyForwardTemplate) *TemplateResponse {
	return &TemplateResponse{
		BankCode:           bankCode,
		ReconciliationDate: formatDate(date),
		InputsResponse:     InputsFromDomain(t.Inputs),
		Totals:             TotalsFromDomain(t.Totals),
	}
}

// ContinuityResponse reports the duplicate and predecessor of a bank and date.
type ContinuityResponse struct {
	BankCode       string            `json:"bank_code"`
	Date           string            `json:"date"`
	Duplicate      *StatementSummary `json:"duplicate,omitempty"`
	Predecessor    *StatementSummary `json:"predecessor,omitempty"`
	CanCopyForward bool              `json:"can_copy_forward"`
	Template       *TemplateResponse `json:"template,omitempty"`
}

// ContinuityFromDomain converts a continuity result. The copy-forward
// template is included whenever a copy-forward may be offered.
func ContinuityFromDomain(c domain.Continuity) *ContinuityResponse {
	resp := &ContinuityResponse{
		BankCode:       c.BankCode,
		Date:           formatDate(c.Date),
		Duplicate:      SummaryFromDomain(c.Duplicate),
		CanCopyForward: c.CanCopyForward(),
	}
	if c.Duplicate == nil {
		resp.Predecessor = SummaryFromDomain(c.Predecessor)
	}
	if c.CanCopyForward() {
		resp.Template = TemplateFromCopyForward(c.BankCode, c.Date, usecase.NewCopyForwardTemplate(c.Predecessor))
	}
	return resp
}

// BankResponse represents a bank in API responses.
type BankResponse struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BankFromDomain converts a domain bank to a response.
func BankFromDomain(b *domain.Bank) *BankResponse {
	return &BankResponse{
		ID:        b.ID,
		Code:      b.Code,
		Name:      b.Name,
		Label:     b.Label(),
		CreatedAt: b.CreatedAt,
		UpdatedAt: b.UpdatedAt,
	}
}

// BanksFromDomain converts domain banks to responses.
func BanksFromDomain(banks []*domain.Bank) []*BankResponse {
	result := make([]*BankResponse, len(banks))
	for i, b := range banks {
		result[i] = BankFromDomain(b)
	}
	return result
}

// BankImportResponse summarizes a bulk bank import.
type BankImportResponse struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
	Errors   int `json:"errors"`
}

// BankImportFromDomain converts an import result.
func BankImportFromDomain(r *domain.BankImportResult) *BankImportResponse {
	return &BankImportResponse{Imported: r.Imported, Skipped: r.Skipped, Errors: r.Errors}
}

// SettingsResponse represents the global settings.
type SettingsResponse struct {
	ReportHeading string     `json:"report_heading"`
	UpdatedAt     *time.Time `json:"updated_at,omitempty"`
}

// SettingsFromDomain converts settings to a response.
func SettingsFromDomain(s *domain.Settings) *SettingsResponse {
	resp := &SettingsResponse{ReportHeading: s.ReportHeading}
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		resp.UpdatedAt = &t
	}
	return resp
}

// FieldErrorResponse is one invalid field.
type FieldErrorResponse struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error       string               `json:"error"`
	Message     string               `json:"message,omitempty"`
	Fields      []FieldErrorResponse `json:"fields,omitempty"`
	StatementID int64                `json:"statement_id,omitempty"`
	ConflictID  string               `json:"conflict_id,omitempty"`
}

// NewErrorResponse builds an error response, adding field errors and the
// conflicting statement when err carries them.
func NewErrorResponse(message string, err error) ErrorResponse {
	resp := ErrorResponse{Error: message}
	if err == nil {
		return resp
	}
	resp.Message = err.Error()

	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		for _, f := range verr.Fields {
			resp.Fields = append(resp.Fields, FieldErrorResponse{Field: f.Field, Message: f.Message})
		}
	}

	var dup *domain.DuplicateConflictError
	if errors.As(err, &dup) {
		resp.StatementID = dup.StatementID
		resp.ConflictID = dup.ID
	}
	return resp
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(domain.DateLayout)
}
