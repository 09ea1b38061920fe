package usecase

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/bankrec/internal/domain"
)

// ErrExportNotConfigured is returned when no exporter was wired in.
var ErrExportNotConfigured = errors.New("export is not configured")

// ReconciliationUseCase handles the statement lifecycle: numbering, duplicate
// blocking, derived-field stamping, persistence and export.
type ReconciliationUseCase struct {
	txManager     TransactionManager
	statementRepo StatementRepository
	banks         BankDirectory
	settings      ReportSettings
	idGen         IDGenerator
	renderer      DocumentRenderer
	tables        TableWriter
	metrics       MetricsRecorder
	policy        Policy
	logger        zerolog.Logger
}

// ReconciliationOption customizes a ReconciliationUseCase.
type ReconciliationOption func(*ReconciliationUseCase)

// WithMetrics records lifecycle events.
func WithMetrics(m MetricsRecorder) ReconciliationOption {
	return func(uc *ReconciliationUseCase) {
		if m != nil {
			uc.metrics = m
		}
	}
}

// WithLogger sets the logger used for store failures.
func WithLogger(l zerolog.Logger) ReconciliationOption {
	return func(uc *ReconciliationUseCase) { uc.logger = l }
}

// WithExporters sets the document and spreadsheet writers.
func WithExporters(renderer DocumentRenderer, tables TableWriter) ReconciliationOption {
	return func(uc *ReconciliationUseCase) {
		uc.renderer = renderer
		uc.tables = tables
	}
}

// NewReconciliationUseCase creates a new reconciliation use case.
func NewReconciliationUseCase(
	txManager TransactionManager,
	statementRepo StatementRepository,
	banks BankDirectory,
	settings ReportSettings,
	idGen IDGenerator,
	policy Policy,
	opts ...ReconciliationOption,
) *ReconciliationUseCase {
	uc := &ReconciliationUseCase{
		txManager:     txManager,
		statementRepo: statementRepo,
		banks:         banks,
		settings:      settings,
		idGen:         idGen,
		policy:        policy,
		metrics:       nopMetrics{},
		logger:        zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Policy returns the lifecycle policy in force.
func (uc *ReconciliationUseCase) Policy() Policy {
	return uc.policy
}

// StatementInput is the user-entered content of a statement.
type StatementInput struct {
	UserID             string
	UserEmail          string
	UserName           string
	BankCode           string
	ReconciliationDate time.Time
	BalanceAsPerBank   decimal.Decimal
	BalanceAsPerBook   decimal.Decimal
	Additions          domain.AdjustmentList
	Deductions         domain.AdjustmentList
	BookAdditions      domain.AdjustmentList
	BookDeductions     domain.AdjustmentList
}

// Inputs returns the calculator inputs of the statement.
func (in StatementInput) Inputs() domain.Inputs {
	return domain.Inputs{
		BalanceAsPerBank: in.BalanceAsPerBank,
		BalanceAsPerBook: in.BalanceAsPerBook,
		Additions:        in.Additions,
		Deductions:       in.Deductions,
		BookAdditions:    in.BookAdditions,
		BookDeductions:   in.BookDeductions,
	}
}

// ListStatementsInput filters a statement listing.
type ListStatementsInput struct {
	UserID string
	Search string
}

// CopyForwardTemplate is what a new statement starts from when the user
// accepts a copy-forward.
type CopyForwardTemplate struct {
	Predecessor *domain.Statement
	Inputs      domain.Inputs
	Totals      domain.Totals
}

// Preview computes live totals. It never fails.
func (uc *ReconciliationUseCase) Preview(in domain.Inputs) domain.Totals {
	return domain.Compute(in)
}

// CheckContinuity loads the user's history and reports the duplicate and
// predecessor for a bank and date.
func (uc *ReconciliationUseCase) CheckContinuity(ctx context.Context, userID, bankCode string, date time.Time) (domain.Continuity, error) {
	history, err := uc.statementRepo.ListByUser(ctx, userID)
	if err != nil {
		return domain.Continuity{}, uc.storeFailure("list statements", err)
	}
	return domain.CheckContinuity(history, strings.TrimSpace(bankCode), date), nil
}

// CopyForwardTemplate returns the copy-forward starting point for a bank and
// date. It fails when a duplicate exists or there is no predecessor.
func (uc *ReconciliationUseCase) CopyForwardTemplate(ctx context.Context, userID, bankCode string, date time.Time) (*CopyForwardTemplate, error) {
	c, err := uc.CheckContinuity(ctx, userID, bankCode, date)
	if err != nil {
		return nil, err
	}
	if c.Duplicate != nil {
		return nil, duplicateConflict(c.Duplicate)
	}
	if c.Predecessor == nil {
		return nil, domain.ErrNoPredecessor
	}

	return NewCopyForwardTemplate(c.Predecessor), nil
}

// NewCopyForwardTemplate builds the copy-forward starting point from a
// predecessor statement.
func NewCopyForwardTemplate(predecessor *domain.Statement) *CopyForwardTemplate {
	in := domain.CopyForwardInputs(predecessor)
	return &CopyForwardTemplate{
		Predecessor: predecessor,
		Inputs:      in,
		Totals:      domain.Compute(in),
	}
}

// Create persists a new statement. The duplicate check and the numbering run
// under a per-user lock inside one transaction.
func (uc *ReconciliationUseCase) Create(ctx context.Context, in StatementInput) (*domain.Statement, error) {
	s := &domain.Statement{
		UserID:             in.UserID,
		UserEmail:          in.UserEmail,
		UserName:           in.UserName,
		BankCode:           strings.TrimSpace(in.BankCode),
		ReconciliationDate: domain.NormalizeDate(in.ReconciliationDate),
	}
	s.SetInputs(in.Inputs())

	if err := uc.validate(ctx, s, ""); err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, DefaultTransactionTimeout)
	defer cancel()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, uc.saveFailure("create", "begin transaction", err)
	}
	defer tx.Rollback(ctx)

	if err := uc.statementRepo.LockUser(ctx, tx, s.UserID); err != nil {
		return nil, uc.saveFailure("create", "lock user statements", err)
	}

	history, err := uc.statementRepo.ListByUserTx(ctx, tx, s.UserID)
	if err != nil {
		return nil, uc.saveFailure("create", "list statements", err)
	}

	if dup := domain.FindDuplicate(history, s.BankCode, s.ReconciliationDate); dup != nil {
		uc.metrics.DuplicateRejected()
		return nil, duplicateConflict(dup)
	}

	now := time.Now().UTC()
	s.ID = uc.idGen.Generate()
	s.StatementID = domain.NextStatementID(history)
	s.CreatedAt = now
	s.UpdatedAt = now
	s.Recompute()

	if err := uc.statementRepo.Create(ctx, tx, s); err != nil {
		return nil, uc.saveFailure("create", "insert statement", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, uc.saveFailure("create", "commit", err)
	}

	uc.metrics.StatementCreated()
	return s, nil
}

// Update replaces the content of a stored statement. The statement number,
// owner and creation time are kept; the duplicate check is not re-run.
func (uc *ReconciliationUseCase) Update(ctx context.Context, id string, in StatementInput) (*domain.Statement, error) {
	existing, err := uc.statementRepo.GetByID(ctx, in.UserID, id)
	if err != nil {
		return nil, uc.storeFailure("get statement", err)
	}

	s := existing.Clone()
	s.BankCode = strings.TrimSpace(in.BankCode)
	s.ReconciliationDate = domain.NormalizeDate(in.ReconciliationDate)
	s.SetInputs(in.Inputs())

	if err := uc.validate(ctx, s, existing.BankCode); err != nil {
		return nil, err
	}
	if s.BankCode == existing.BankCode && s.BankName == "" {
		s.BankName = existing.BankName
	}

	s.UpdatedAt = time.Now().UTC()
	s.Recompute()

	if err := uc.statementRepo.Update(ctx, s); err != nil {
		return nil, uc.saveFailure("update", "update statement", err)
	}

	uc.metrics.StatementUpdated()
	return s, nil
}

// Save persists a draft: a create-mode draft is created, an edit-mode draft
// updates its statement. On failure the draft is left untouched; on success
// it becomes an edit-mode draft of the saved statement.
func (uc *ReconciliationUseCase) Save(ctx context.Context, d *Draft, user *domain.User) (*domain.Statement, error) {
	in := d.Input()
	if user != nil {
		in.UserID = user.ID
		in.UserEmail = user.Email
		in.UserName = user.Name
	}

	var (
		saved *domain.Statement
		err   error
	)
	if d.Mode() == DraftCreate {
		if err := d.CanSave(); err != nil {
			return nil, err
		}
		saved, err = uc.Create(ctx, in)
	} else {
		saved, err = uc.Update(ctx, d.ID(), in)
	}
	if err != nil {
		return nil, err
	}

	d.adopt(saved)
	return saved, nil
}

// Get returns one of the user's statements.
func (uc *ReconciliationUseCase) Get(ctx context.Context, userID, id string) (*domain.Statement, error) {
	s, err := uc.statementRepo.GetByID(ctx, userID, id)
	if err != nil {
		return nil, uc.storeFailure("get statement", err)
	}
	return s, nil
}

// List returns the user's statements matching the search, newest number first.
func (uc *ReconciliationUseCase) List(ctx context.Context, input ListStatementsInput) ([]*domain.Statement, error) {
	statements, err := uc.statementRepo.ListByUser(ctx, input.UserID)
	if err != nil {
		return nil, uc.storeFailure("list statements", err)
	}

	out := domain.FilterStatements(statements, input.Search, false)
	domain.SortByStatementIDDesc(out)
	return out, nil
}

// ListAll returns every user's statements matching the search. The search
// also covers user name and email.
func (uc *ReconciliationUseCase) ListAll(ctx context.Context, search string) ([]*domain.Statement, error) {
	statements, err := uc.statementRepo.ListAll(ctx)
	if err != nil {
		return nil, uc.storeFailure("list all statements", err)
	}

	out := domain.FilterStatements(statements, search, true)
	domain.SortByStatementIDDesc(out)
	return out, nil
}

// Delete removes one of the user's statements. Its number is never reused.
func (uc *ReconciliationUseCase) Delete(ctx context.Context, userID, id string) error {
	if err := uc.statementRepo.Delete(ctx, userID, id); err != nil {
		return uc.saveFailure("delete", "delete statement", err)
	}
	uc.metrics.StatementDeleted()
	return nil
}

// ExportDocument renders a stored statement as a document.
func (uc *ReconciliationUseCase) ExportDocument(ctx context.Context, w io.Writer, userID, id string) (*domain.Statement, error) {
	s, err := uc.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if err := uc.renderDocument(ctx, w, s); err != nil {
		return nil, err
	}
	return s, nil
}

// SaveAndExport exports a draft as a document. With SaveBeforeExport the draft
// is saved first and only a successful save is exported; otherwise the draft
// is rendered as is without touching the store.
func (uc *ReconciliationUseCase) SaveAndExport(ctx context.Context, w io.Writer, d *Draft, user *domain.User) (*domain.Statement, error) {
	if !uc.policy.SaveBeforeExport {
		s := uc.unsavedStatement(ctx, d)
		if err := uc.renderDocument(ctx, w, s); err != nil {
			return nil, err
		}
		return s, nil
	}

	if uc.policy.ExportRequiresReconciled && !d.Totals().IsReconciled() {
		return nil, domain.ErrNotReconciled
	}

	saved, err := uc.Save(ctx, d, user)
	if err != nil {
		return nil, err
	}
	if err := uc.renderDocument(ctx, w, saved); err != nil {
		return nil, err
	}
	return saved, nil
}

// ExportTable writes the listed statements as a spreadsheet. An empty userID
// exports every user's statements.
func (uc *ReconciliationUseCase) ExportTable(ctx context.Context, w io.Writer, userID, search string) (int, error) {
	if uc.tables == nil {
		return 0, ErrExportNotConfigured
	}

	var (
		statements []*domain.Statement
		err        error
	)
	all := userID == ""
	sheet := StatementsSheetName
	if all {
		sheet = AllStatementsSheetName
		statements, err = uc.ListAll(ctx, search)
	} else {
		statements, err = uc.List(ctx, ListStatementsInput{UserID: userID, Search: search})
	}
	if err != nil {
		return 0, err
	}

	if err := uc.tables.WriteStatements(w, sheet, statements, all); err != nil {
		return 0, err
	}
	uc.metrics.Exported("xlsx")
	return len(statements), nil
}

func (uc *ReconciliationUseCase) renderDocument(ctx context.Context, w io.Writer, s *domain.Statement) error {
	if uc.renderer == nil {
		return ErrExportNotConfigured
	}
	if uc.policy.ExportRequiresReconciled && !s.IsReconciled() {
		return domain.ErrNotReconciled
	}

	heading := DefaultReportHeading
	if uc.settings != nil {
		h, err := uc.settings.ReportHeading(ctx)
		if err != nil {
			return uc.storeFailure("get settings", err)
		}
		if strings.TrimSpace(h) != "" {
			heading = h
		}
	}

	if err := uc.renderer.RenderStatement(w, s, heading); err != nil {
		return err
	}
	uc.metrics.Exported("pdf")
	return nil
}

// unsavedStatement builds a statement from a draft for rendering only.
func (uc *ReconciliationUseCase) unsavedStatement(ctx context.Context, d *Draft) *domain.Statement {
	in := d.Input()
	s := &domain.Statement{
		ID:                 d.ID(),
		StatementID:        d.StatementID(),
		UserID:             in.UserID,
		BankCode:           in.BankCode,
		ReconciliationDate: in.ReconciliationDate,
	}
	s.SetInputs(in.Inputs())
	if bank, err := uc.banks.Lookup(ctx, s.BankCode); err == nil {
		s.BankName = bank.Name
	}
	s.Recompute()
	return s
}

// validate checks the statement and resolves its bank name. A bank code that
// no longer resolves is accepted only when it equals keepCode, the code
// already stored on the record.
func (uc *ReconciliationUseCase) validate(ctx context.Context, s *domain.Statement, keepCode string) error {
	err := domain.ValidateStatement(s, uc.policy.RequireNarration)

	var verr *domain.ValidationError
	if err != nil && !errors.As(err, &verr) {
		return err
	}
	if verr == nil {
		verr = &domain.ValidationError{}
	}

	if s.BankCode != "" {
		bank, lookupErr := uc.banks.Lookup(ctx, s.BankCode)
		switch {
		case lookupErr == nil:
			s.BankName = bank.Name
		case errors.Is(lookupErr, domain.ErrBankNotFound):
			if s.BankCode != keepCode {
				verr.Add("bank_code", domain.ErrUnknownBankCode.Error())
			}
			s.BankName = ""
		default:
			return uc.storeFailure("lookup bank", lookupErr)
		}
	}

	return verr.OrNil()
}

func (uc *ReconciliationUseCase) saveFailure(op, step string, err error) error {
	wrapped := uc.storeFailure(step, err)
	if errors.Is(wrapped, domain.ErrPersistence) {
		uc.metrics.SaveFailed(op)
	}
	return wrapped
}

func (uc *ReconciliationUseCase) storeFailure(op string, err error) error {
	wrapped := domain.Persistence(op, err)
	if errors.Is(wrapped, domain.ErrPersistence) {
		uc.logger.Error().Err(err).Str("op", op).Msg("statement store failure")
	}
	return wrapped
}
