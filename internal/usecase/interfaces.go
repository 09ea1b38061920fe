package usecase

import (
	"context"
	"io"
	"time"

	"github.com/iho/bankrec/internal/domain"
)

// StatementRepository defines data access for reconciliation statements.
// Every read and write is scoped to the owning user except ListAll.
type StatementRepository interface {
	// LockUser serializes statement creation for one user until tx ends.
	LockUser(ctx context.Context, tx Transaction, userID string) error
	ListByUserTx(ctx context.Context, tx Transaction, userID string) ([]*domain.Statement, error)
	Create(ctx context.Context, tx Transaction, statement *domain.Statement) error
	Update(ctx context.Context, statement *domain.Statement) error
	GetByID(ctx context.Context, userID, id string) (*domain.Statement, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Statement, error)
	ListAll(ctx context.Context) ([]*domain.Statement, error)
	Delete(ctx context.Context, userID, id string) error
}

// BankRepository defines data access for the bank directory.
type BankRepository interface {
	Create(ctx context.Context, bank *domain.Bank) error
	Update(ctx context.Context, bank *domain.Bank) error
	Delete(ctx context.Context, id string) error
	GetByID(ctx context.Context, id string) (*domain.Bank, error)
	GetByCode(ctx context.Context, code string) (*domain.Bank, error)
	List(ctx context.Context) ([]*domain.Bank, error)
}

// BankDirectory resolves a bank code to its directory entry.
type BankDirectory interface {
	Lookup(ctx context.Context, code string) (*domain.Bank, error)
}

// SettingsRepository defines data access for the global settings row.
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.Settings, error)
	Upsert(ctx context.Context, settings *domain.Settings) error
}

// ReportSettings supplies the heading printed on exported documents.
type ReportSettings interface {
	ReportHeading(ctx context.Context) (string, error)
}

// DocumentRenderer writes a formatted reconciliation document.
type DocumentRenderer interface {
	RenderStatement(w io.Writer, statement *domain.Statement, heading string) error
}

// TableWriter writes statements as a spreadsheet. withUser adds the owner
// columns used by admin exports.
type TableWriter interface {
	WriteStatements(w io.Writer, sheet string, statements []*domain.Statement, withUser bool) error
}

// MetricsRecorder counts lifecycle events.
type MetricsRecorder interface {
	StatementCreated()
	StatementUpdated()
	StatementDeleted()
	DuplicateRejected()
	SaveFailed(op string)
	Exported(format string)
}

// Transaction represents a database transaction.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique IDs.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
	// Release drops a key whose request failed so it can be retried.
	Release(ctx context.Context, key string) error
}

type nopMetrics struct{}

func (nopMetrics) StatementCreated() {}
func (nopMetrics) StatementUpdated() {}
func (nopMetrics) StatementDeleted() {}
func (nopMetrics) DuplicateRejected() {}
func (nopMetrics) SaveFailed(string) {}
func (nopMetrics) Exported(string) {}
