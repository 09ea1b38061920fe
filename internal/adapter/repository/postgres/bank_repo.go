package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/bankrec/internal/domain"
	"github.com/iho/bankrec/internal/infrastructure/postgres/generated"
)

// BankRepository implements usecase.BankRepository.
type BankRepository struct {
	queries *generated.Queries
}

// NewBankRepository creates a new BankRepository.
func NewBankRepository(pool *pgxpool.Pool) *BankRepository {
	return newBankRepository(pool)
}

func newBankRepository(db generated.DBTX) *BankRepository {
	return &BankRepository{queries: generated.New(db)}
}

// Create inserts a bank. A taken code is reported as ErrBankCodeExists.
func (r *BankRepository) Create(ctx context.Context, bank *domain.Bank) error {
	err := r.queries.CreateBank(ctx, generated.CreateBankParams{
		ID:        bank.ID,
		Code:      bank.Code,
		Name:      bank.Name,
		CreatedAt: timeToPgTimestamptz(bank.CreatedAt),
		UpdatedAt: timeToPgTimestamptz(bank.UpdatedAt),
	})
	if isUniqueViolation(err) {
		return domain.ErrBankCodeExists
	}
	return err
}

// Update rewrites a bank's code and name.
func (r *BankRepository) Update(ctx context.Context, bank *domain.Bank) error {
	n, err := r.queries.UpdateBank(ctx, generated.UpdateBankParams{
		ID:        bank.ID,
		Code:      bank.Code,
		Name:      bank.Name,
		UpdatedAt: timeToPgTimestamptz(bank.UpdatedAt),
	})
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrBankCodeExists
		}
		return err
	}
	if n == 0 {
		return domain.ErrBankNotFound
	}
	return nil
}

// Delete removes a bank. Statements keep the bank name they were saved with.
func (r *BankRepository) Delete(ctx context.Context, id string) error {
	n, err := r.queries.DeleteBank(ctx, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrBankNotFound
	}
	return nil
}

// GetByID retrieves a bank by ID.
func (r *BankRepository) GetByID(ctx context.Context, id string) (*domain.Bank, error) {
	return oneBank(r.queries.GetBankByID(ctx, id))
}

// GetByCode retrieves a bank by code.
func (r *BankRepository) GetByCode(ctx context.Context, code string) (*domain.Bank, error) {
	return oneBank(r.queries.GetBankByCode(ctx, code))
}

// List lists every bank ordered by code.
func (r *BankRepository) List(ctx context.Context) ([]*domain.Bank, error) {
	rows, err := r.queries.ListBanks(ctx)
	if err != nil {
		return nil, err
	}

	banks := make([]*domain.Bank, 0, len(rows))
	for _, row := range rows {
		banks = append(banks, rowToBank(row))
	}

	return banks, nil
}

func oneBank(row generated.Bank, err error) (*domain.Bank, error) {
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBankNotFound
		}

		return nil, err
	}

	return rowToBank(row), nil
}

func rowToBank(row generated.Bank) *domain.Bank {
	return &domain.Bank{
		ID:        row.ID,
		Code:      row.Code,
		Name:      row.Name,
		CreatedAt: row.CreatedAt.Time,
		UpdatedAt: row.UpdatedAt.Time,
	}
}
