package dto

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iho/bankrec/internal/domain"
	"github.com/iho/bankrec/internal/usecase"
)

// AdjustmentItemRequest is one adjustment line of a request.
type AdjustmentItemRequest struct {
	Narration string `json:"narration" validate:"narration"`
	Amount    Amount `json:"amount"`
}

// InputsRequest carries the balances and adjustment lists of a statement.
type InputsRequest struct {
	BalanceAsPerBank Amount                  `json:"balance_as_per_bank"`
	BalanceAsPerBook Amount                  `json:"balance_as_per_book"`
	Additions        []AdjustmentItemRequest `json:"additions"       validate:"adjustments,dive"`
	Deductions       []AdjustmentItemRequest `json:"deductions"      validate:"adjustments,dive"`
	BookAdditions    []AdjustmentItemRequest `json:"book_additions"  validate:"adjustments,dive"`
	BookDeductions   []AdjustmentItemRequest `json:"book_deductions" validate:"adjustments,dive"`
}

// ToInputs converts to calculator inputs. Invalid amounts count as zero.
func (r *InputsRequest) ToInputs() domain.Inputs {
	return domain.Inputs{
		BalanceAsPerBank: r.BalanceAsPerBank.Value,
		BalanceAsPerBook: r.BalanceAsPerBook.Value,
		Additions:        toList(r.Additions),
		Deductions:       toList(r.Deductions),
		BookAdditions:    toList(r.BookAdditions),
		BookDeductions:   toList(r.BookDeductions),
	}
}

// amountErrors records every amount that failed to coerce or is negative.
func (r *InputsRequest) amountErrors(verr *domain.ValidationError) {
	check := func(field string, a Amount) {
		if a.Invalid {
			verr.Add(field, fmt.Sprintf("%q is not a non-negative amount", a.Text))
		}
	}

	check("balance_as_per_bank", r.BalanceAsPerBank)
	check("balance_as_per_book", r.BalanceAsPerBook)

	lists := []struct {
		field string
		items []AdjustmentItemRequest
	}{
		{"additions", r.Additions},
		{"deductions", r.Deductions},
		{"book_additions", r.BookAdditions},
		{"book_deductions", r.BookDeductions},
	}
	for _, l := range lists {
		for i, item := range l.items {
			check(fmt.Sprintf("%s[%d].amount", l.field, i), item.Amount)
		}
	}
}

func toList(items []AdjustmentItemRequest) domain.AdjustmentList {
	list := make(domain.AdjustmentList, 0, len(items))
	for _, item := range items {
		list.Append(domain.AdjustmentItem{Narration: item.Narration, Amount: item.Amount.Value})
	}
	return list
}

// PreviewRequest asks for live totals. It never fails on amounts.
type PreviewRequest struct {
	InputsRequest
}

// StatementRequest creates or replaces a statement.
type StatementRequest struct {
	BankCode           string `json:"bank_code"           validate:"required,bankcode"`
	ReconciliationDate string `json:"reconciliation_date" validate:"required"`
	InputsRequest
}

// ToUseCaseInput validates the request and converts it for the owner user.
// Narration rules are left to the lifecycle policy.
func (r *StatementRequest) ToUseCaseInput(user *domain.User) (usecase.StatementInput, error) {
	verr := &domain.ValidationError{}
	if err := Validate(r); err != nil {
		if !errors.As(err, &verr) {
			return usecase.StatementInput{}, err
		}
	}

	var date time.Time
	if strings.TrimSpace(r.ReconciliationDate) != "" {
		d, err := domain.ParseDate(r.ReconciliationDate)
		if err != nil {
			verr.Add("reconciliation_date", err.Error())
		}
		date = d
	}
	r.amountErrors(verr)
	if err := verr.OrNil(); err != nil {
		return usecase.StatementInput{}, err
	}

	in := r.ToInputs()
	out := usecase.StatementInput{
		BankCode:           strings.TrimSpace(r.BankCode),
		ReconciliationDate: date,
		BalanceAsPerBank:   in.BalanceAsPerBank,
		BalanceAsPerBook:   in.BalanceAsPerBook,
		Additions:          in.Additions,
		Deductions:         in.Deductions,
		BookAdditions:      in.BookAdditions,
		BookDeductions:     in.BookDeductions,
	}
	if user != nil {
		out.UserID = user.ID
		out.UserEmail = user.Email
		out.UserName = user.Name
	}
	return out, nil
}

// ApplyTo loads the request into a draft the way an editor would.
func (r *StatementRequest) ApplyTo(d *usecase.Draft) error {
	in, err := r.ToUseCaseInput(nil)
	if err != nil {
		return err
	}
	d.SetBankCode(in.BankCode)
	d.SetDate(in.ReconciliationDate)
	d.SetInputs(in.Inputs())
	return nil
}

// ContinuityQuery is the bank and date a continuity check runs for.
type ContinuityQuery struct {
	BankCode string
	Date     time.Time
}

// ParseContinuityQuery reads bank_code and date query values.
func ParseContinuityQuery(bankCode, date string) (ContinuityQuery, error) {
	q := ContinuityQuery{BankCode: strings.TrimSpace(bankCode)}
	verr := &domain.ValidationError{}
	if q.BankCode == "" {
		verr.Add("bank_code", "is required")
	}
	d, err := domain.ParseDate(date)
	if err != nil {
		verr.Add("date", err.Error())
	}
	q.Date = d
	return q, verr.OrNil()
}

// BankRequest creates or updates a bank.
type BankRequest struct {
	Code string `json:"code" validate:"required,bankcode"`
	Name string `json:"name" validate:"required,bankname"`
}

// ToUseCaseInput converts to use case input.
func (r *BankRequest) ToUseCaseInput() (usecase.BankInput, error) {
	if err := Validate(r); err != nil {
		return usecase.BankInput{}, err
	}
	return usecase.BankInput{Code: r.Code, Name: r.Name}, nil
}

// SettingsRequest updates the global settings.
type SettingsRequest struct {
	ReportHeading string `json:"report_heading" validate:"required,heading"`
}

// ToUseCaseInput converts to use case input.
func (r *SettingsRequest) ToUseCaseInput() (usecase.UpdateSettingsInput, error) {
	if err := Validate(r); err != nil {
		return usecase.UpdateSettingsInput{}, err
	}
	return usecase.UpdateSettingsInput{ReportHeading: r.ReportHeading}, nil
}
