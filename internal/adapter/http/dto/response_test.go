package dto

import (
	"encoding/json"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/bankrec/internal/domain"
)

func sampleStatement(t *testing.T, id string, statementID int64, date string) *domain.Statement {
	t.Helper()
	d, err := domain.ParseDate(date)
	require.NoError(t, err)

	s := &domain.Statement{
		ID:                 id,
		StatementID:        statementID,
		UserID:             "u1",
		BankCode:           "BK1",
		BankName:           "First Bank",
		ReconciliationDate: d,
		BalanceAsPerBank:   decimal.NewFromInt(1000),
		BalanceAsPerBook:   decimal.NewFromInt(1020),
		Additions:          domain.AdjustmentList{{Narration: "Deposit-in-Transit", Amount: decimal.NewFromInt(50)}},
		Deductions:         domain.AdjustmentList{{Narration: "Outstanding Cheque", Amount: decimal.NewFromInt(25)}},
		BookAdditions:      domain.AdjustmentList{},
		BookDeductions:     domain.AdjustmentList{},
	}
	s.Recompute()
	return s
}

func TestStatementFromDomain(t *testing.T) {
	s := sampleStatement(t, "s1", 7, "2024-04-05")

	resp := StatementFromDomain(s)
	raw, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))

	assert.Equal(t, "2024-04-05", decoded["reconciliation_date"])
	assert.Equal(t, "March 2024", decoded["reconciliation_month"])
	assert.Equal(t, "5", decoded["difference"])
	assert.Equal(t, false, decoded["reconciled"])
	assert.Equal(t, "1025", decoded["corrected_balance"])
	assert.NotContains(t, decoded, "user_email")
	assert.Len(t, decoded["additions"], 1)
}

func TestContinuityFromDomain(t *testing.T) {
	prev := sampleStatement(t, "p1", 3, "2024-03-10")
	date, _ := domain.ParseDate("2024-04-02")

	c := domain.CheckContinuity([]*domain.Statement{prev}, "BK1", date)
	resp := ContinuityFromDomain(c)

	assert.Nil(t, resp.Duplicate)
	require.NotNil(t, resp.Predecessor)
	assert.Equal(t, int64(3), resp.Predecessor.StatementID)
	assert.True(t, resp.CanCopyForward)
	require.NotNil(t, resp.Template)
	assert.True(t, resp.Template.BalanceAsPerBank.Equal(prev.CorrectedBalance))
	assert.True(t, resp.Template.Additions[0].Amount.IsZero())

	dup := ContinuityFromDomain(domain.CheckContinuity([]*domain.Statement{prev}, "BK1", prev.ReconciliationDate))
	require.NotNil(t, dup.Duplicate)
	assert.False(t, dup.CanCopyForward)
	assert.Nil(t, dup.Template)
}

func TestNewErrorResponse(t *testing.T) {
	verr := &domain.ValidationError{}
	verr.Add("bank_code", "is required")

	resp := NewErrorResponse("invalid statement", fmt.Errorf("create: %w", verr))
	assert.Equal(t, "invalid statement", resp.Error)
	assert.Equal(t, []FieldErrorResponse{{Field: "bank_code", Message: "is required"}}, resp.Fields)

	dup := &domain.DuplicateConflictError{ID: "s9", StatementID: 9, BankCode: "BK1", Period: domain.Period{Year: 2024, Month: time.March}}
	resp = NewErrorResponse("duplicate", dup)
	assert.Equal(t, int64(9), resp.StatementID)
	assert.Equal(t, "s9", resp.ConflictID)
	assert.Contains(t, resp.Message, "#9")

	assert.Empty(t, NewErrorResponse("x", nil).Message)
}

func TestSettingsFromDomain(t *testing.T) {
	assert.Nil(t, SettingsFromDomain(&domain.Settings{ReportHeading: "H"}).UpdatedAt)

	now := time.Now()
	resp := SettingsFromDomain(&domain.Settings{ReportHeading: "H", UpdatedAt: now})
	require.NotNil(t, resp.UpdatedAt)
	assert.True(t, resp.UpdatedAt.Equal(now))
}
