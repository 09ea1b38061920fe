package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/bankrec/internal/domain"
	"github.com/iho/bankrec/internal/infrastructure/postgres/generated"
	"github.com/iho/bankrec/internal/usecase"
)

// StatementRepository implements usecase.StatementRepository.
type StatementRepository struct {
	queries *generated.Queries
}

// NewStatementRepository creates a new StatementRepository.
func NewStatementRepository(pool *pgxpool.Pool) *StatementRepository {
	return newStatementRepository(pool)
}

func newStatementRepository(db generated.DBTX) *StatementRepository {
	return &StatementRepository{queries: generated.New(db)}
}

// LockUser takes a transaction-scoped advisory lock on the user's statements
// so concurrent creates number and de-duplicate one at a time.
func (r *StatementRepository) LockUser(ctx context.Context, tx usecase.Transaction, userID string) error {
	queries, err := queriesFor(tx)
	if err != nil {
		return err
	}
	return queries.LockUserStatements(ctx, userID)
}

// ListByUserTx lists the user's statements inside tx.
func (r *StatementRepository) ListByUserTx(ctx context.Context, tx usecase.Transaction, userID string) ([]*domain.Statement, error) {
	queries, err := queriesFor(tx)
	if err != nil {
		return nil, err
	}
	return listStatements(queries.ListStatementsByUser(ctx, userID))
}

// Create inserts a new statement inside tx.
func (r *StatementRepository) Create(ctx context.Context, tx usecase.Transaction, s *domain.Statement) error {
	queries, err := queriesFor(tx)
	if err != nil {
		return err
	}

	lists, err := encodeLists(s)
	if err != nil {
		return err
	}

	err = queries.CreateStatement(ctx, generated.CreateStatementParams{
		ID:                   s.ID,
		StatementID:          s.StatementID,
		UserID:               s.UserID,
		UserEmail:            s.UserEmail,
		UserName:             s.UserName,
		BankCode:             s.BankCode,
		BankName:             s.BankName,
		ReconciliationDate:   dateToPgDate(s.ReconciliationDate),
		ReconciliationMonth:  s.ReconciliationMonth,
		BalanceAsPerBank:     decimalToNumeric(s.BalanceAsPerBank),
		BalanceAsPerBook:     decimalToNumeric(s.BalanceAsPerBook),
		Additions:            lists[0],
		Deductions:           lists[1],
		BookAdditions:        lists[2],
		BookDeductions:       lists[3],
		TotalAdditions:       decimalToNumeric(s.TotalAdditions),
		TotalDeductions:      decimalToNumeric(s.TotalDeductions),
		CorrectedBalance:     decimalToNumeric(s.CorrectedBalance),
		TotalBookAdditions:   decimalToNumeric(s.TotalBookAdditions),
		TotalBookDeductions:  decimalToNumeric(s.TotalBookDeductions),
		CorrectedBookBalance: decimalToNumeric(s.CorrectedBookBalance),
		Difference:           decimalToNumeric(s.Difference),
		CreatedAt:            timeToPgTimestamptz(s.CreatedAt),
		UpdatedAt:            timeToPgTimestamptz(s.UpdatedAt),
	})
	if isUniqueViolation(err) {
		return fmt.Errorf("statement number %d already taken: %w", s.StatementID, err)
	}
	return err
}

// Update replaces the content of a statement. Identity, owner and creation
// time are never written.
func (r *StatementRepository) Update(ctx context.Context, s *domain.Statement) error {
	lists, err := encodeLists(s)
	if err != nil {
		return err
	}

	n, err := r.queries.UpdateStatement(ctx, generated.UpdateStatementParams{
		ID:                   s.ID,
		UserID:               s.UserID,
		BankCode:             s.BankCode,
		BankName:             s.BankName,
		ReconciliationDate:   dateToPgDate(s.ReconciliationDate),
		ReconciliationMonth:  s.ReconciliationMonth,
		BalanceAsPerBank:     decimalToNumeric(s.BalanceAsPerBank),
		BalanceAsPerBook:     decimalToNumeric(s.BalanceAsPerBook),
		Additions:            lists[0],
		Deductions:           lists[1],
		BookAdditions:        lists[2],
		BookDeductions:       lists[3],
		TotalAdditions:       decimalToNumeric(s.TotalAdditions),
		TotalDeductions:      decimalToNumeric(s.TotalDeductions),
		CorrectedBalance:     decimalToNumeric(s.CorrectedBalance),
		TotalBookAdditions:   decimalToNumeric(s.TotalBookAdditions),
		TotalBookDeductions:  decimalToNumeric(s.TotalBookDeductions),
		CorrectedBookBalance: decimalToNumeric(s.CorrectedBookBalance),
		Difference:           decimalToNumeric(s.Difference),
		UpdatedAt:            timeToPgTimestamptz(s.UpdatedAt),
	})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrStatementNotFound
	}
	return nil
}

// GetByID retrieves one of the user's statements.
func (r *StatementRepository) GetByID(ctx context.Context, userID, id string) (*domain.Statement, error) {
	row, err := r.queries.GetStatement(ctx, generated.GetStatementParams{ID: id, UserID: userID})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrStatementNotFound
		}

		return nil, err
	}

	return rowToStatement(row)
}

// ListByUser lists the user's statements, highest number first.
func (r *StatementRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Statement, error) {
	return listStatements(r.queries.ListStatementsByUser(ctx, userID))
}

// ListAll lists every user's statements.
func (r *StatementRepository) ListAll(ctx context.Context) ([]*domain.Statement, error) {
	return listStatements(r.queries.ListAllStatements(ctx))
}

// Delete removes one of the user's statements.
func (r *StatementRepository) Delete(ctx context.Context, userID, id string) error {
	n, err := r.queries.DeleteStatement(ctx, generated.DeleteStatementParams{ID: id, UserID: userID})
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrStatementNotFound
	}
	return nil
}

func listStatements(rows []generated.Statement, err error) ([]*domain.Statement, error) {
	if err != nil {
		return nil, err
	}

	statements := make([]*domain.Statement, 0, len(rows))
	for _, row := range rows {
		s, err := rowToStatement(row)
		if err != nil {
			return nil, err
		}
		statements = append(statements, s)
	}

	return statements, nil
}

func encodeLists(s *domain.Statement) ([4][]byte, error) {
	var out [4][]byte
	for i, list := range []domain.AdjustmentList{s.Additions, s.Deductions, s.BookAdditions, s.BookDeductions} {
		raw, err := listToJSON(list)
		if err != nil {
			return out, fmt.Errorf("encode %s: %w", domain.Categories[i], err)
		}
		out[i] = raw
	}
	return out, nil
}

func rowToStatement(row generated.Statement) (*domain.Statement, error) {
	s := &domain.Statement{
		ID:                   row.ID,
		StatementID:          row.StatementID,
		UserID:               row.UserID,
		UserEmail:            row.UserEmail,
		UserName:             row.UserName,
		BankCode:             row.BankCode,
		BankName:             row.BankName,
		ReconciliationDate:   pgDateToTime(row.ReconciliationDate),
		ReconciliationMonth:  row.ReconciliationMonth,
		BalanceAsPerBank:     numericToDecimal(row.BalanceAsPerBank),
		BalanceAsPerBook:     numericToDecimal(row.BalanceAsPerBook),
		TotalAdditions:       numericToDecimal(row.TotalAdditions),
		TotalDeductions:      numericToDecimal(row.TotalDeductions),
		CorrectedBalance:     numericToDecimal(row.CorrectedBalance),
		TotalBookAdditions:   numericToDecimal(row.TotalBookAdditions),
		TotalBookDeductions:  numericToDecimal(row.TotalBookDeductions),
		CorrectedBookBalance: numericToDecimal(row.CorrectedBookBalance),
		Difference:           numericToDecimal(row.Difference),
		CreatedAt:            row.CreatedAt.Time,
		UpdatedAt:            row.UpdatedAt.Time,
	}

	var err error
	if s.Additions, err = jsonToList(row.Additions); err != nil {
		return nil, err
	}
	if s.Deductions, err = jsonToList(row.Deductions); err != nil {
		return nil, err
	}
	if s.BookAdditions, err = jsonToList(row.BookAdditions); err != nil {
		return nil, err
	}
	if s.BookDeductions, err = jsonToList(row.BookDeductions); err != nil {
		return nil, err
	}

	return s, nil
}
