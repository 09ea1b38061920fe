package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/iho/bankrec/internal/domain"
)

const bankCacheKeyPrefix = "bank:"

// BankUseCase manages the bank directory and resolves bank codes for the
// statement lifecycle.
type BankUseCase struct {
	bankRepo BankRepository
	idGen    IDGenerator
	cache    Cache
	cacheTTL time.Duration
}

// NewBankUseCase creates a new BankUseCase. cache may be nil.
func NewBankUseCase(bankRepo BankRepository, idGen IDGenerator, cache Cache, cacheTTL time.Duration) *BankUseCase {
	if cacheTTL <= 0 {
		cacheTTL = DefaultBankCacheTTL
	}
	return &BankUseCase{
		bankRepo: bankRepo,
		idGen:    idGen,
		cache:    cache,
		cacheTTL: cacheTTL,
	}
}

// BankInput represents input for creating or updating a bank.
type BankInput struct {
	Code string
	Name string
}

// CreateBank adds a bank to the directory.
func (uc *BankUseCase) CreateBank(ctx context.Context, input BankInput) (*domain.Bank, error) {
	now := time.Now().UTC()
	bank := &domain.Bank{
		ID:        uc.idGen.Generate(),
		Code:      input.Code,
		Name:      input.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	bank.Normalize()

	if err := domain.ValidateBank(bank); err != nil {
		return nil, err
	}

	if err := uc.bankRepo.Create(ctx, bank); err != nil {
		return nil, domain.Persistence("create bank", err)
	}

	uc.invalidate(ctx, bank.Code)
	return bank, nil
}

// UpdateBank changes the code or name of a bank. Statements keep the name
// they were saved with until they are saved again.
func (uc *BankUseCase) UpdateBank(ctx context.Context, id string, input BankInput) (*domain.Bank, error) {
	bank, err := uc.bankRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Persistence("get bank", err)
	}
	oldCode := bank.Code

	bank.Code = input.Code
	bank.Name = input.Name
	bank.Normalize()
	if err := domain.ValidateBank(bank); err != nil {
		return nil, err
	}
	bank.UpdatedAt = time.Now().UTC()

	if err := uc.bankRepo.Update(ctx, bank); err != nil {
		return nil, domain.Persistence("update bank", err)
	}

	uc.invalidate(ctx, oldCode)
	uc.invalidate(ctx, bank.Code)
	return bank, nil
}

// DeleteBank removes a bank from the directory.
func (uc *BankUseCase) DeleteBank(ctx context.Context, id string) error {
	bank, err := uc.bankRepo.GetByID(ctx, id)
	if err != nil {
		return domain.Persistence("get bank", err)
	}

	if err := uc.bankRepo.Delete(ctx, id); err != nil {
		return domain.Persistence("delete bank", err)
	}

	uc.invalidate(ctx, bank.Code)
	return nil
}

// GetBank returns a bank by id.
func (uc *BankUseCase) GetBank(ctx context.Context, id string) (*domain.Bank, error) {
	bank, err := uc.bankRepo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.Persistence("get bank", err)
	}
	return bank, nil
}

// ListBanks returns the directory ordered by code.
func (uc *BankUseCase) ListBanks(ctx context.Context) ([]*domain.Bank, error) {
	banks, err := uc.bankRepo.List(ctx)
	if err != nil {
		return nil, domain.Persistence("list banks", err)
	}
	sort.SliceStable(banks, func(i, j int) bool { return banks[i].Code < banks[j].Code })
	return banks, nil
}

// Lookup resolves a bank code, reading through the cache when one is set.
func (uc *BankUseCase) Lookup(ctx context.Context, code string) (*domain.Bank, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, domain.ErrBankNotFound
	}

	if uc.cache != nil {
		if data, err := uc.cache.Get(ctx, bankCacheKeyPrefix+code); err == nil && data != nil {
			var bank domain.Bank
			if json.Unmarshal(data, &bank) == nil {
				return &bank, nil
			}
		}
	}

	bank, err := uc.bankRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, domain.Persistence("get bank by code", err)
	}

	if uc.cache != nil {
		if data, err := json.Marshal(bank); err == nil {
			_ = uc.cache.Set(ctx, bankCacheKeyPrefix+code, data, uc.cacheTTL)
		}
	}
	return bank, nil
}

// ImportBanks adds every row whose code is not yet in the directory. Rows
// with a known code are skipped; invalid rows and failed inserts count as
// errors and do not stop the import.
func (uc *BankUseCase) ImportBanks(ctx context.Context, rows []domain.BankImportRow) (*domain.BankImportResult, error) {
	existing, err := uc.bankRepo.List(ctx)
	if err != nil {
		return nil, domain.Persistence("list banks", err)
	}

	known := make(map[string]struct{}, len(existing))
	for _, b := range existing {
		known[b.Code] = struct{}{}
	}

	result := &domain.BankImportResult{}
	for _, row := range rows {
		code := strings.TrimSpace(row.Code)
		if code == "" && strings.TrimSpace(row.Name) == "" {
			continue
		}
		if _, ok := known[code]; ok {
			result.Skipped++
			continue
		}

		_, err := uc.CreateBank(ctx, BankInput{Code: row.Code, Name: row.Name})
		switch {
		case err == nil:
			result.Imported++
			known[code] = struct{}{}
		case errors.Is(err, domain.ErrBankCodeExists):
			result.Skipped++
			known[code] = struct{}{}
		default:
			result.Errors++
		}
	}

	return result, nil
}

func (uc *BankUseCase) invalidate(ctx context.Context, code string) {
	if uc.cache == nil || code == "" {
		return
	}
	_ = uc.cache.Delete(ctx, bankCacheKeyPrefix+code)
}
