package usecase_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/bankrec/internal/domain"
	"github.com/iho/bankrec/internal/usecase"
)

func predecessorStatement(t *testing.T) *domain.Statement {
	t.Helper()
	s := &domain.Statement{
		ID:                 "prev",
		StatementID:        4,
		UserID:             "u1",
		BankCode:           "BK1",
		ReconciliationDate: mustDate(t, "2024-03-15"),
		BalanceAsPerBank:   amount("1000"),
		BalanceAsPerBook:   amount("990"),
		Additions:          domain.AdjustmentList{{Narration: "Deposit-in-Transit", Amount: amount("50")}},
		Deductions:         domain.AdjustmentList{{Narration: "Outstanding Cheque", Amount: amount("25")}},
		BookAdditions:      domain.AdjustmentList{{Narration: "Bank Interest", Amount: amount("40")}},
		BookDeductions:     domain.AdjustmentList{{Narration: "Bank Charged", Amount: amount("5")}},
	}
	s.Recompute()
	return s
}

func TestNewDraft(t *testing.T) {
	d := usecase.NewDraft(usecase.DefaultPolicy(), "u1")

	assert.Equal(t, usecase.DraftCreate, d.Mode())
	assert.Zero(t, d.StatementID())
	assert.Empty(t, d.ID())
	assert.False(t, d.Date().IsZero())

	in := d.Inputs()
	assert.Len(t, in.Additions, 2)
	assert.Len(t, in.BookDeductions, 3)
	assert.True(t, d.Totals().IsReconciled())
}

func TestNewDraftFromStatement_LoadsVerbatim(t *testing.T) {
	s := predecessorStatement(t)
	s.Difference = amount("999") // stale stamped value

	d := usecase.NewDraftFromStatement(usecase.DefaultPolicy(), s)

	assert.Equal(t, usecase.DraftEdit, d.Mode())
	assert.Equal(t, "prev", d.ID())
	assert.Equal(t, int64(4), d.StatementID())
	assert.Equal(t, "BK1", d.BankCode())
	assert.True(t, d.Inputs().BalanceAsPerBook.Equal(amount("990")))
	assert.True(t, d.Totals().Difference.IsZero(), "live totals come from the inputs")
}

func TestDraft_OnDifferenceChanged(t *testing.T) {
	d := usecase.NewDraft(usecase.DefaultPolicy(), "u1")

	var seen []string
	unsubscribe := d.OnDifferenceChanged(func(diff decimal.Decimal) {
		seen = append(seen, diff.StringFixed(2))
	})

	d.SetBalanceAsPerBank(amount("100"))
	d.SetBalanceAsPerBank(amount("100"))
	d.SetBankCode("BK1")
	d.SetAmountText(domain.CategoryBookAddition, 0, "100")
	d.AppendItem(domain.CategoryBankDeduction, domain.AdjustmentItem{Narration: "fee", Amount: amount("1.5")})

	assert.Equal(t, []string{"100.00", "0.00", "-1.50"}, seen, "fires only when the difference changes")

	unsubscribe()
	d.RemoveItem(domain.CategoryBankDeduction, 2)
	assert.Len(t, seen, 3)
}

func TestDraft_OnDifferenceChanged_EditModePolicy(t *testing.T) {
	quiet := usecase.DefaultPolicy()
	quiet.BroadcastWhileEditing = false

	tests := []struct {
		name   string
		policy usecase.Policy
		want   int
	}{
		{"broadcast while editing", usecase.DefaultPolicy(), 1},
		{"silent while editing", quiet, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := usecase.NewDraftFromStatement(tt.policy, predecessorStatement(t))

			calls := 0
			d.OnDifferenceChanged(func(decimal.Decimal) { calls++ })
			d.SetBalanceAsPerBook(amount("0"))

			assert.Equal(t, tt.want, calls)
		})
	}
}

func TestDraft_SetAmountText(t *testing.T) {
	d := usecase.NewDraft(usecase.DefaultPolicy(), "u1")

	assert.True(t, d.SetAmountText(domain.CategoryBankAddition, 1, "12.50"))
	assert.True(t, d.Inputs().Additions[1].Amount.Equal(amount("12.50")))

	assert.False(t, d.SetAmountText(domain.CategoryBankAddition, 1, "twelve"))
	assert.True(t, d.Inputs().Additions[1].Amount.IsZero(), "unparseable text counts as zero")
	assert.Equal(t, "Short Deposit", d.Inputs().Additions[1].Narration)

	assert.NotPanics(t, func() { d.SetAmountText(domain.CategoryBankAddition, 99, "1") })
}

func TestDraft_ListEditing(t *testing.T) {
	d := usecase.NewDraft(usecase.DefaultPolicy(), "u1")

	require.True(t, d.InsertItem(domain.CategoryBankDeduction, 0, domain.AdjustmentItem{Narration: "Cheque 12"}))
	require.True(t, d.SetItem(domain.CategoryBankDeduction, 2, domain.AdjustmentItem{Narration: "Excess", Amount: amount("3")}))
	require.True(t, d.RemoveItem(domain.CategoryBankDeduction, 0))

	got := d.Inputs().Deductions
	require.Len(t, got, 2)
	assert.Equal(t, "Cheque 12", got[0].Narration)
	assert.Equal(t, "Excess", got[1].Narration)

	assert.False(t, d.AppendItem(domain.Category("other"), domain.AdjustmentItem{}))
	assert.False(t, d.RemoveItem(domain.CategoryBankDeduction, 10))
}

func TestDraft_CopyForward(t *testing.T) {
	prev := predecessorStatement(t)
	continuity := func(d *usecase.Draft) domain.Continuity {
		return domain.CheckContinuity([]*domain.Statement{prev}, d.BankCode(), d.Date())
	}

	d := usecase.NewDraft(usecase.DefaultPolicy(), "u1")
	d.SetBankCode("BK1")
	d.SetDate(mustDate(t, "2024-04-05"))

	assert.ErrorIs(t, d.CopyForward(), domain.ErrNoPredecessor, "nothing offered before a check")

	require.True(t, d.ApplyContinuity(continuity(d)))
	require.True(t, d.CanCopyForward())
	require.NoError(t, d.CopyForward())

	in := d.Inputs()
	assert.True(t, in.BalanceAsPerBank.Equal(prev.CorrectedBalance))
	assert.True(t, in.BalanceAsPerBook.Equal(prev.CorrectedBookBalance))
	for _, list := range []domain.AdjustmentList{in.Additions, in.Deductions, in.BookAdditions, in.BookDeductions} {
		require.Len(t, list, 1)
		assert.True(t, list[0].Amount.IsZero())
	}
	assert.Equal(t, "Bank Interest", in.BookAdditions[0].Narration)

	assert.ErrorIs(t, d.CopyForward(), domain.ErrCopyForwardUsed)
	assert.False(t, d.CanCopyForward())

	d.SetDate(mustDate(t, "2024-04-20"))
	assert.False(t, d.CanCopyForward(), "a new date needs a new check")
	require.True(t, d.ApplyContinuity(continuity(d)))
	assert.NoError(t, d.CopyForward(), "the flag resets for a new bank and date pair")
}

func TestDraft_CopyForward_Refused(t *testing.T) {
	prev := predecessorStatement(t)

	t.Run("edit mode", func(t *testing.T) {
		d := usecase.NewDraftFromStatement(usecase.DefaultPolicy(), prev)
		assert.ErrorIs(t, d.CopyForward(), domain.ErrEditMode)
		assert.False(t, d.ApplyContinuity(domain.Continuity{BankCode: "BK1", Date: prev.ReconciliationDate}))
	})

	t.Run("duplicate month", func(t *testing.T) {
		d := usecase.NewDraft(usecase.DefaultPolicy(), "u1")
		d.SetBankCode("BK1")
		d.SetDate(mustDate(t, "2024-03-02"))
		require.True(t, d.ApplyContinuity(domain.CheckContinuity([]*domain.Statement{prev}, "BK1", d.Date())))

		assert.ErrorIs(t, d.CanSave(), domain.ErrDuplicateStatement)
		assert.Equal(t, prev, d.Conflict())
		assert.False(t, d.CanCopyForward())
	})

	t.Run("stale result for another bank", func(t *testing.T) {
		d := usecase.NewDraft(usecase.DefaultPolicy(), "u1")
		d.SetBankCode("BK2")
		d.SetDate(mustDate(t, "2024-04-02"))

		applied := d.ApplyContinuity(domain.CheckContinuity([]*domain.Statement{prev}, "BK1", d.Date()))
		assert.False(t, applied)
		_, ok := d.Continuity()
		assert.False(t, ok)
	})
}

func TestDraft_Input(t *testing.T) {
	d := usecase.NewDraft(usecase.DefaultPolicy(), "u1")
	d.SetBankCode("BK1")
	d.SetDate(mustDate(t, "2024-03-15"))
	d.SetBalanceAsPerBank(amount("10"))

	in := d.Input()
	assert.Equal(t, "u1", in.UserID)
	assert.Equal(t, "BK1", in.BankCode)
	assert.Equal(t, "2024-03-15", in.ReconciliationDate.Format(domain.DateLayout))

	in.Additions[0].Narration = "changed"
	assert.Equal(t, "Deposit-in-Transit", d.Inputs().Additions[0].Narration, "snapshots are copies")
}
