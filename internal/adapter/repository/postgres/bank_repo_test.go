package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"

	"github.com/iho/bankrec/internal/domain"
)

func TestBankRepositoryCreate(t *testing.T) {
	now := time.Now().UTC()
	bank := &domain.Bank{ID: "b1", Code: "BK1", Name: "First Bank", CreatedAt: now, UpdatedAt: now}

	tests := []struct {
		name    string
		execErr error
		wantErr error
	}{
		{name: "inserted"},
		{name: "code taken", execErr: &pgconn.PgError{Code: pgErrUniqueViolation}, wantErr: domain.ErrBankCodeExists},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockPool := newMockPool(t)
			exec := mockPool.ExpectExec("INSERT INTO banks").WithArgs(anyArgs(5)...)
			if tt.execErr != nil {
				exec.WillReturnError(tt.execErr)
			} else {
				exec.WillReturnResult(pgxmock.NewResult("INSERT", 1))
			}

			err := newBankRepository(mockPool).Create(context.Background(), bank)
			if err != tt.wantErr {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
			assertExpectations(t, mockPool)
		})
	}
}

func TestBankRepositoryGetByCode(t *testing.T) {
	now := time.Now().UTC()
	mockPool := newMockPool(t)
	mockPool.ExpectQuery("FROM banks WHERE code").WithArgs("BK1").
		WillReturnRows(pgxmock.NewRows(bankColumns).AddRow("b1", "BK1", "First Bank", now, now))
	mockPool.ExpectQuery("FROM banks WHERE code").WithArgs("NOPE").WillReturnError(pgx.ErrNoRows)

	repo := newBankRepository(mockPool)

	bank, err := repo.GetByCode(context.Background(), "BK1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if bank.Name != "First Bank" {
		t.Fatalf("expected First Bank, got %q", bank.Name)
	}

	if _, err := repo.GetByCode(context.Background(), "NOPE"); err != domain.ErrBankNotFound {
		t.Fatalf("expected ErrBankNotFound, got %v", err)
	}
}

func TestBankRepositoryUpdateDeleteList(t *testing.T) {
	now := time.Now().UTC()
	ctx := context.Background()
	mockPool := newMockPool(t)
	mockPool.ExpectExec("UPDATE banks SET").WithArgs(anyArgs(4)...).WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mockPool.ExpectExec("DELETE FROM banks").WithArgs("b1").WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mockPool.ExpectQuery("FROM banks ORDER BY code").
		WillReturnRows(pgxmock.NewRows(bankColumns).
			AddRow("b2", "BK2", "Second Bank", now, now).
			AddRow("b3", "BK3", "Third Bank", now, now))

	repo := newBankRepository(mockPool)

	if err := repo.Update(ctx, &domain.Bank{ID: "gone", Code: "BK9", Name: "Gone"}); err != domain.ErrBankNotFound {
		t.Fatalf("expected ErrBankNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, "b1"); err != nil {
		t.Fatalf("unexpected delete error: %v", err)
	}

	banks, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("unexpected list error: %v", err)
	}
	if len(banks) != 2 || banks[0].Code != "BK2" {
		t.Fatalf("unexpected banks: %+v", banks)
	}

	assertExpectations(t, mockPool)
}
