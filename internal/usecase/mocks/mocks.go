package mocks

import (
	"context"
	"io"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/iho/bankrec/internal/domain"
	"github.com/iho/bankrec/internal/usecase"
)

// FakeStatementRepository is an in-memory StatementRepository. Func fields
// override the default behavior.
type FakeStatementRepository struct {
	mu         sync.RWMutex
	statements map[string]*domain.Statement

	CreateFunc func(ctx context.Context, tx usecase.Transaction, statement *domain.Statement) error
	UpdateFunc func(ctx context.Context, statement *domain.Statement) error
	ListFunc   func(ctx context.Context, userID string) ([]*domain.Statement, error)
}

func NewFakeStatementRepository() *FakeStatementRepository {
	return &FakeStatementRepository{
		statements: make(map[string]*domain.Statement),
	}
}

// Put stores a statement directly.
func (m *FakeStatementRepository) Put(s *domain.Statement) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.statements[s.ID] = s.Clone()
}

// Count returns how many statements are stored.
func (m *FakeStatementRepository) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.statements)
}

func (m *FakeStatementRepository) LockUser(context.Context, usecase.Transaction, string) error {
	return nil
}

func (m *FakeStatementRepository) ListByUserTx(ctx context.Context, _ usecase.Transaction, userID string) ([]*domain.Statement, error) {
	return m.ListByUser(ctx, userID)
}

func (m *FakeStatementRepository) Create(ctx context.Context, tx usecase.Transaction, statement *domain.Statement) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, statement)
	}
	m.Put(statement)
	return nil
}

func (m *FakeStatementRepository) Update(ctx context.Context, statement *domain.Statement) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, statement)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.statements[statement.ID]; !ok {
		return domain.ErrStatementNotFound
	}
	m.statements[statement.ID] = statement.Clone()
	return nil
}

func (m *FakeStatementRepository) GetByID(_ context.Context, userID, id string) (*domain.Statement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.statements[id]
	if !ok || s.UserID != userID {
		return nil, domain.ErrStatementNotFound
	}
	return s.Clone(), nil
}

func (m *FakeStatementRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Statement, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Statement
	for _, s := range m.statements {
		if s.UserID == userID {
			out = append(out, s.Clone())
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StatementID < out[j].StatementID })
	return out, nil
}

func (m *FakeStatementRepository) ListAll(context.Context) ([]*domain.Statement, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Statement, 0, len(m.statements))
	for _, s := range m.statements {
		out = append(out, s.Clone())
	}
	return out, nil
}

func (m *FakeStatementRepository) Delete(_ context.Context, userID, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.statements[id]
	if !ok || s.UserID != userID {
		return domain.ErrStatementNotFound
	}
	delete(m.statements, id)
	return nil
}

// FakeBankRepository is an in-memory BankRepository keyed by id.
type FakeBankRepository struct {
	mu    sync.RWMutex
	banks map[string]*domain.Bank

	CreateFunc    func(ctx context.Context, bank *domain.Bank) error
	GetByCodeFunc func(ctx context.Context, code string) (*domain.Bank, error)
}

func NewFakeBankRepository(banks ...*domain.Bank) *FakeBankRepository {
	m := &FakeBankRepository{banks: make(map[string]*domain.Bank)}
	for _, b := range banks {
		c := *b
		m.banks[b.ID] = &c
	}
	return m
}

func (m *FakeBankRepository) Create(ctx context.Context, bank *domain.Bank) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, bank)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, b := range m.banks {
		if b.Code == bank.Code {
			return domain.ErrBankCodeExists
		}
	}
	c := *bank
	m.banks[bank.ID] = &c
	return nil
}

func (m *FakeBankRepository) Update(_ context.Context, bank *domain.Bank) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.banks[bank.ID]; !ok {
		return domain.ErrBankNotFound
	}
	c := *bank
	m.banks[bank.ID] = &c
	return nil
}

func (m *FakeBankRepository) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.banks[id]; !ok {
		return domain.ErrBankNotFound
	}
	delete(m.banks, id)
	return nil
}

func (m *FakeBankRepository) GetByID(_ context.Context, id string) (*domain.Bank, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.banks[id]
	if !ok {
		return nil, domain.ErrBankNotFound
	}
	c := *b
	return &c, nil
}

func (m *FakeBankRepository) GetByCode(ctx context.Context, code string) (*domain.Bank, error) {
	if m.GetByCodeFunc != nil {
		return m.GetByCodeFunc(ctx, code)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, b := range m.banks {
		if b.Code == code {
			c := *b
			return &c, nil
		}
	}
	return nil, domain.ErrBankNotFound
}

func (m *FakeBankRepository) List(context.Context) ([]*domain.Bank, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*domain.Bank, 0, len(m.banks))
	for _, b := range m.banks {
		c := *b
		out = append(out, &c)
	}
	return out, nil
}

// FakeSettingsRepository holds a single settings row in memory.
type FakeSettingsRepository struct {
	mu       sync.Mutex
	settings *domain.Settings
}

func NewFakeSettingsRepository() *FakeSettingsRepository {
	return &FakeSettingsRepository{}
}

func (m *FakeSettingsRepository) Get(context.Context) (*domain.Settings, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.settings == nil {
		return nil, domain.ErrSettingsNotFound
	}
	c := *m.settings
	return &c, nil
}

func (m *FakeSettingsRepository) Upsert(_ context.Context, settings *domain.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	c := *settings
	m.settings = &c
	return nil
}

// FakeTransactionManager hands out FakeTransactions and remembers the last one.
type FakeTransactionManager struct {
	BeginFunc func(ctx context.Context) (usecase.Transaction, error)
	Last      *FakeTransaction
}

func NewFakeTransactionManager() *FakeTransactionManager {
	return &FakeTransactionManager{}
}

func (m *FakeTransactionManager) Begin(ctx context.Context) (usecase.Transaction, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.Last = &FakeTransaction{}
	return m.Last, nil
}

// FakeTransaction records whether it was committed or rolled back.
type FakeTransaction struct {
	Committed  bool
	RolledBack bool
	CommitFunc func(ctx context.Context) error
}

func (m *FakeTransaction) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	m.Committed = true
	return nil
}

func (m *FakeTransaction) Rollback(context.Context) error {
	if !m.Committed {
		m.RolledBack = true
	}
	return nil
}

// SequenceIDGenerator returns "id-1", "id-2", ...
type SequenceIDGenerator struct {
	mu      sync.Mutex
	counter int
}

func NewSequenceIDGenerator() *SequenceIDGenerator {
	return &SequenceIDGenerator{}
}

func (m *SequenceIDGenerator) Generate() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.counter++
	return "id-" + strconv.Itoa(m.counter)
}

// FakeCache is an in-memory Cache that ignores TTLs.
type FakeCache struct {
	mu   sync.Mutex
	data map[string][]byte
	Hits int
}

func NewFakeCache() *FakeCache {
	return &FakeCache{data: make(map[string][]byte)}
}

func (m *FakeCache) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, nil
	}
	m.Hits++
	return v, nil
}

func (m *FakeCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *FakeCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// FakeIdempotencyStore is an in-memory IdempotencyStore.
type FakeIdempotencyStore struct {
	mu   sync.RWMutex
	data map[string][]byte

	CheckAndSetFunc func(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
}

func NewFakeIdempotencyStore() *FakeIdempotencyStore {
	return &FakeIdempotencyStore{
		data: make(map[string][]byte),
	}
}

func (m *FakeIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	if m.CheckAndSetFunc != nil {
		return m.CheckAndSetFunc(ctx, key, response, ttl)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.data[key]; ok {
		return true, existing, nil
	}
	if response != nil {
		m.data[key] = response
	} else {
		m.data[key] = []byte(usecase.IdempotencyProcessingMarker)
	}
	return false, nil, nil
}

func (m *FakeIdempotencyStore) Update(_ context.Context, key string, response []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = response
	return nil
}

func (m *FakeIdempotencyStore) Release(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Value returns what is stored under key.
func (m *FakeIdempotencyStore) Value(key string) ([]byte, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}

// CountingMetrics counts lifecycle events by name.
type CountingMetrics struct {
	mu     sync.Mutex
	Counts map[string]int
}

func NewCountingMetrics() *CountingMetrics {
	return &CountingMetrics{Counts: make(map[string]int)}
}

func (m *CountingMetrics) inc(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Counts[name]++
}

// Get returns the count recorded for name.
func (m *CountingMetrics) Get(name string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Counts[name]
}

func (m *CountingMetrics) StatementCreated() { m.inc("created") }
func (m *CountingMetrics) StatementUpdated() { m.inc("updated") }
func (m *CountingMetrics) StatementDeleted() { m.inc("deleted") }
func (m *CountingMetrics) DuplicateRejected() { m.inc("duplicate") }
func (m *CountingMetrics) SaveFailed(op string) { m.inc("save_failed:" + op) }
func (m *CountingMetrics) Exported(format string) { m.inc("exported:" + format) }

// FakeRenderer writes the statement number and heading as plain text.
type FakeRenderer struct {
	Calls int
}

func (m *FakeRenderer) RenderStatement(w io.Writer, statement *domain.Statement, heading string) error {
	m.Calls++
	_, err := io.WriteString(w, heading+" #"+strconv.FormatInt(statement.StatementID, 10))
	return err
}

// FakeTableWriter records the statements it was asked to write.
type FakeTableWriter struct {
	Sheet      string
	Statements []*domain.Statement
	WithUser   bool
}

func (m *FakeTableWriter) WriteStatements(w io.Writer, sheet string, statements []*domain.Statement, withUser bool) error {
	m.Sheet = sheet
	m.Statements = statements
	m.WithUser = withUser
	_, err := io.WriteString(w, strconv.Itoa(len(statements)))
	return err
}
