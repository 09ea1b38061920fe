package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/bankrec/internal/adapter/repository/postgres"
	"github.com/iho/bankrec/internal/domain"
	pginfra "github.com/iho/bankrec/internal/infrastructure/postgres"
	"github.com/iho/bankrec/internal/usecase"
)

const migrationsPath = "../../../infrastructure/postgres/migrations"

// newTestPool migrates and connects to DATABASE_URL, skipping the test when
// no database is configured.
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test")
	}
	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		t.Skip("DATABASE_URL not set")
	}

	require.NoError(t, pginfra.NewMigrator(dbURL, migrationsPath, zerolog.Nop()).Up())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pginfra.NewPool(ctx, dbURL, 10, 1)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	_, err = pool.Exec(ctx, `TRUNCATE TABLE statements, banks, settings`)
	require.NoError(t, err)
	return pool
}

func newIntegrationUseCase(t *testing.T, pool *pgxpool.Pool) *usecase.ReconciliationUseCase {
	t.Helper()

	idGen := postgres.NewULIDGenerator()
	banks := usecase.NewBankUseCase(postgres.NewBankRepository(pool), idGen, nil, 0)
	_, err := banks.CreateBank(context.Background(), usecase.BankInput{Code: "BK1", Name: "First Bank"})
	require.NoError(t, err)

	return usecase.NewReconciliationUseCase(
		postgres.NewTxManager(pool),
		postgres.NewStatementRepository(pool),
		banks,
		usecase.NewSettingsUseCase(postgres.NewSettingsRepository(pool), "Heading"),
		idGen,
		usecase.DefaultPolicy(),
	)
}

func reconciledInput(userID string, date time.Time) usecase.StatementInput {
	return usecase.StatementInput{
		UserID:             userID,
		UserEmail:          userID + "@example.com",
		BankCode:           "BK1",
		ReconciliationDate: date,
		BalanceAsPerBank:   decimal.NewFromInt(1000),
		BalanceAsPerBook:   decimal.NewFromInt(1025),
		Additions:          domain.AdjustmentList{{Narration: "Deposit-in-Transit", Amount: decimal.NewFromInt(50)}},
		Deductions:         domain.AdjustmentList{{Narration: "Outstanding Cheque", Amount: decimal.NewFromInt(25)}},
	}
}

func TestConcurrentCreates(t *testing.T) {
	pool := newTestPool(t)
	uc := newIntegrationUseCase(t, pool)
	ctx := context.Background()

	t.Run("distinct months get distinct numbers", func(t *testing.T) {
		const n = 24

		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			numbers = make(map[int64]bool)
		)
		wg.Add(n)
		for i := range n {
			go func() {
				defer wg.Done()
				date := time.Date(2020+i/12, time.Month(i%12+1), 10, 0, 0, 0, 0, time.UTC)
				s, err := uc.Create(ctx, reconciledInput("numbering", date))
				if !assert.NoError(t, err) {
					return
				}
				mu.Lock()
				numbers[s.StatementID] = true
				mu.Unlock()
			}()
		}
		wg.Wait()

		require.Len(t, numbers, n)
		for i := int64(1); i <= n; i++ {
			assert.True(t, numbers[i], "missing statement number %d", i)
		}
	})

	t.Run("same month saves once", func(t *testing.T) {
		const n = 10
		date := time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)

		var (
			wg         sync.WaitGroup
			saved      atomic.Int32
			duplicates atomic.Int32
		)
		wg.Add(n)
		for i := range n {
			go func() {
				defer wg.Done()
				in := reconciledInput("racer", date.AddDate(0, 0, i%10))
				_, err := uc.Create(ctx, in)
				switch {
				case err == nil:
					saved.Add(1)
				case errors.Is(err, domain.ErrDuplicateStatement):
					duplicates.Add(1)
				default:
					t.Errorf("unexpected error: %v", err)
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), saved.Load())
		assert.Equal(t, int32(n-1), duplicates.Load())
	})
}

func TestStatementLifecycle(t *testing.T) {
	pool := newTestPool(t)
	uc := newIntegrationUseCase(t, pool)
	ctx := context.Background()

	first, err := uc.Create(ctx, reconciledInput("u1", time.Date(2024, time.March, 15, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	assert.Equal(t, "First Bank", first.BankName)
	assert.Equal(t, "February 2024", first.ReconciliationMonth)

	got, err := uc.Get(ctx, "u1", first.ID)
	require.NoError(t, err)
	assert.True(t, got.CorrectedBalance.Equal(decimal.NewFromInt(1025)))
	require.Len(t, got.Additions, 1)
	assert.Equal(t, "Deposit-in-Transit", got.Additions[0].Narration)

	_, err = uc.Get(ctx, "someone-else", first.ID)
	assert.ErrorIs(t, err, domain.ErrStatementNotFound)

	in := reconciledInput("u1", time.Date(2024, time.March, 20, 0, 0, 0, 0, time.UTC))
	in.BalanceAsPerBook = decimal.NewFromInt(1000)
	updated, err := uc.Update(ctx, first.ID, in)
	require.NoError(t, err)
	assert.Equal(t, first.StatementID, updated.StatementID)
	assert.True(t, updated.Difference.Equal(decimal.NewFromInt(25)))

	second, err := uc.Create(ctx, reconciledInput("u1", time.Date(2024, time.April, 15, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	third, err := uc.Create(ctx, reconciledInput("u1", time.Date(2024, time.May, 15, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	require.NoError(t, uc.Delete(ctx, "u1", second.ID))

	fourth, err := uc.Create(ctx, reconciledInput("u1", time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC)))
	require.NoError(t, err)
	assert.Equal(t, int64(4), fourth.StatementID, fmt.Sprintf("deleted number %d is not reused", second.StatementID))

	list, err := uc.List(ctx, usecase.ListStatementsInput{UserID: "u1"})
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, []string{fourth.ID, third.ID, first.ID}, []string{list[0].ID, list[1].ID, list[2].ID})
}
