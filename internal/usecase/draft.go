package usecase

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/bankrec/internal/domain"
)

// DraftMode tells whether a draft creates a new statement or edits a stored one.
type DraftMode int

const (
	DraftCreate DraftMode = iota
	DraftEdit
)

func (m DraftMode) String() string {
	if m == DraftEdit {
		return "edit"
	}
	return "create"
}

// Draft is the in-memory edit buffer of one statement. The live totals are
// recomputed from the buffer on demand; nothing is persisted until the
// buffer is handed to ReconciliationUseCase.Save.
type Draft struct {
	mu     sync.Mutex
	policy Policy
	mode   DraftMode

	id          string
	statementID int64
	userID      string

	bankCode string
	date     time.Time
	inputs   domain.Inputs

	continuity *domain.Continuity
	copied     bool

	lastDifference decimal.Decimal
	observers      map[int]func(decimal.Decimal)
	nextObserver   int
}

// NewDraft starts a create-mode draft seeded with the starter narrations.
func NewDraft(policy Policy, userID string) *Draft {
	starter := domain.DefaultStarterItems()
	d := &Draft{
		policy: policy,
		mode:   DraftCreate,
		userID: userID,
		date:   domain.NormalizeDate(time.Now().UTC()),
		inputs: domain.Inputs{
			Additions:      starter.Additions,
			Deductions:     starter.Deductions,
			BookAdditions:  starter.BookAdditions,
			BookDeductions: starter.BookDeductions,
		},
		observers: make(map[int]func(decimal.Decimal)),
	}
	d.lastDifference = domain.Compute(d.inputs).Difference
	return d
}

// NewDraftFromStatement starts an edit-mode draft holding the stored values
// verbatim.
func NewDraftFromStatement(policy Policy, s *domain.Statement) *Draft {
	d := &Draft{
		policy:         policy,
		observers:      make(map[int]func(decimal.Decimal)),
		lastDifference: s.Difference,
	}
	d.adopt(s)
	return d
}

// Mode returns the draft mode.
func (d *Draft) Mode() DraftMode {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.mode
}

// ID returns the opaque id of the edited statement, empty in create mode.
func (d *Draft) ID() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.id
}

// StatementID returns the statement number, zero until first saved.
func (d *Draft) StatementID() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.statementID
}

// BankCode returns the selected bank code.
func (d *Draft) BankCode() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.bankCode
}

// Date returns the reconciliation date.
func (d *Draft) Date() time.Time {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.date
}

// SetBankCode selects a bank. Changing it clears the continuity state.
func (d *Draft) SetBankCode(code string) {
	d.mutate(func() {
		if code != d.bankCode {
			d.bankCode = code
			d.resetContinuity()
		}
	})
}

// SetDate sets the reconciliation date. Changing it clears the continuity
// state.
func (d *Draft) SetDate(date time.Time) {
	date = domain.NormalizeDate(date)
	d.mutate(func() {
		if !date.Equal(d.date) {
			d.date = date
			d.resetContinuity()
		}
	})
}

// SetBalanceAsPerBank sets the bank statement balance.
func (d *Draft) SetBalanceAsPerBank(v decimal.Decimal) {
	d.mutate(func() { d.inputs.BalanceAsPerBank = v })
}

// SetBalanceAsPerBook sets the ledger balance.
func (d *Draft) SetBalanceAsPerBook(v decimal.Decimal) {
	d.mutate(func() { d.inputs.BalanceAsPerBook = v })
}

// SetInputs replaces balances and all four lists at once.
func (d *Draft) SetInputs(in domain.Inputs) {
	d.mutate(func() { d.inputs = in.Clone() })
}

// AppendItem adds an item at the end of a list.
func (d *Draft) AppendItem(c domain.Category, item domain.AdjustmentItem) bool {
	return d.mutateList(c, func(l *domain.AdjustmentList) bool {
		l.Append(item)
		return true
	})
}

// InsertItem inserts an item after index in a list.
func (d *Draft) InsertItem(c domain.Category, index int, item domain.AdjustmentItem) bool {
	return d.mutateList(c, func(l *domain.AdjustmentList) bool {
		l.InsertAfter(index, item)
		return true
	})
}

// SetItem replaces the item at index in a list.
func (d *Draft) SetItem(c domain.Category, index int, item domain.AdjustmentItem) bool {
	return d.mutateList(c, func(l *domain.AdjustmentList) bool {
		return l.Set(index, item)
	})
}

// SetAmountText coerces text into the amount of the item at index. Text that
// does not parse counts as zero; ok reports whether it parsed cleanly.
func (d *Draft) SetAmountText(c domain.Category, index int, text string) (ok bool) {
	amount, ok := domain.CoerceAmount(text)
	d.mutateList(c, func(l *domain.AdjustmentList) bool {
		if index < 0 || index >= len(*l) {
			return false
		}
		item := (*l)[index]
		item.Amount = amount
		return l.Set(index, item)
	})
	return ok
}

// RemoveItem removes the item at index from a list.
func (d *Draft) RemoveItem(c domain.Category, index int) bool {
	return d.mutateList(c, func(l *domain.AdjustmentList) bool {
		return l.RemoveAt(index)
	})
}

// Inputs returns a copy of the balances and lists.
func (d *Draft) Inputs() domain.Inputs {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.inputs.Clone()
}

// Totals computes the live totals of the buffer.
func (d *Draft) Totals() domain.Totals {
	d.mu.Lock()
	defer d.mu.Unlock()
	return domain.Compute(d.inputs)
}

// OnDifferenceChanged registers fn to be called with the new difference
// whenever a mutation changes it. The returned func unsubscribes.
func (d *Draft) OnDifferenceChanged(fn func(decimal.Decimal)) (unsubscribe func()) {
	d.mu.Lock()
	id := d.nextObserver
	d.nextObserver++
	d.observers[id] = fn
	d.mu.Unlock()

	return func() {
		d.mu.Lock()
		delete(d.observers, id)
		d.mu.Unlock()
	}
}

// ApplyContinuity records the result of a continuity check. Results for a
// bank or date other than the current ones are ignored, as are all results
// in edit mode.
func (d *Draft) ApplyContinuity(c domain.Continuity) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.mode != DraftCreate || c.BankCode != d.bankCode || !domain.NormalizeDate(c.Date).Equal(d.date) {
		return false
	}
	d.continuity = &c
	return true
}

// Continuity returns the last applied continuity result.
func (d *Draft) Continuity() (domain.Continuity, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.continuity == nil {
		return domain.Continuity{}, false
	}
	return *d.continuity, true
}

// Conflict returns the statement that blocks saving, or nil.
func (d *Draft) Conflict() *domain.Statement {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.mode != DraftCreate || d.continuity == nil {
		return nil
	}
	return d.continuity.Duplicate
}

// CanSave reports the duplicate conflict known to the draft, if any. The
// lifecycle re-checks at save time regardless.
func (d *Draft) CanSave() error {
	if dup := d.Conflict(); dup != nil {
		return duplicateConflict(dup)
	}
	return nil
}

// CanCopyForward reports whether copy-forward is currently offered.
func (d *Draft) CanCopyForward() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.canCopyForward() == nil
}

func (d *Draft) canCopyForward() error {
	switch {
	case d.mode != DraftCreate:
		return domain.ErrEditMode
	case d.copied:
		return domain.ErrCopyForwardUsed
	case d.continuity == nil || d.continuity.Predecessor == nil:
		return domain.ErrNoPredecessor
	case d.continuity.Duplicate != nil:
		return duplicateConflict(d.continuity.Duplicate)
	}
	return nil
}

// CopyForward replaces the balances with the predecessor's corrected
// balances and the lists with its narrations at zero amounts. It works once
// per bank and date pair.
func (d *Draft) CopyForward() error {
	var err error
	d.mutate(func() {
		if err = d.canCopyForward(); err != nil {
			return
		}
		d.inputs = domain.CopyForwardInputs(d.continuity.Predecessor)
		d.copied = true
	})
	return err
}

// Input snapshots the draft as lifecycle input.
func (d *Draft) Input() StatementInput {
	d.mu.Lock()
	defer d.mu.Unlock()

	in := d.inputs.Clone()
	return StatementInput{
		UserID:             d.userID,
		BankCode:           d.bankCode,
		ReconciliationDate: d.date,
		BalanceAsPerBank:   in.BalanceAsPerBank,
		BalanceAsPerBook:   in.BalanceAsPerBook,
		Additions:          in.Additions,
		Deductions:         in.Deductions,
		BookAdditions:      in.BookAdditions,
		BookDeductions:     in.BookDeductions,
	}
}

// adopt switches the draft to edit mode over a saved statement.
func (d *Draft) adopt(s *domain.Statement) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.mode = DraftEdit
	d.id = s.ID
	d.statementID = s.StatementID
	d.userID = s.UserID
	d.bankCode = s.BankCode
	d.date = domain.NormalizeDate(s.ReconciliationDate)
	d.inputs = s.Inputs()
	d.continuity = nil
}

func (d *Draft) resetContinuity() {
	d.continuity = nil
	d.copied = false
}

func (d *Draft) mutateList(c domain.Category, fn func(l *domain.AdjustmentList) bool) bool {
	var changed bool
	d.mutate(func() {
		l := d.inputs.List(c)
		if l == nil {
			return
		}
		changed = fn(l)
	})
	return changed
}

// mutate applies fn under the lock and notifies observers outside it.
func (d *Draft) mutate(fn func()) {
	d.mu.Lock()
	fn()

	diff := domain.Compute(d.inputs).Difference
	var notify []func(decimal.Decimal)
	if !diff.Equal(d.lastDifference) {
		d.lastDifference = diff
		if d.mode == DraftCreate || d.policy.BroadcastWhileEditing {
			for _, obs := range d.observers {
				notify = append(notify, obs)
			}
		}
	}
	d.mu.Unlock()

	for _, obs := range notify {
		obs(diff)
	}
}

func duplicateConflict(dup *domain.Statement) *domain.DuplicateConflictError {
	return &domain.DuplicateConflictError{
		ID:          dup.ID,
		StatementID: dup.StatementID,
		BankCode:    dup.BankCode,
		Period:      dup.Period(),
	}
}
