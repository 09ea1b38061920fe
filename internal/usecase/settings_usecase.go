package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/iho/bankrec/internal/domain"
)

// SettingsUseCase reads and updates the global report settings.
type SettingsUseCase struct {
	repo           SettingsRepository
	defaultHeading string
}

// NewSettingsUseCase creates a new SettingsUseCase. defaultHeading is used
// until an admin saves settings.
func NewSettingsUseCase(repo SettingsRepository, defaultHeading string) *SettingsUseCase {
	if strings.TrimSpace(defaultHeading) == "" {
		defaultHeading = DefaultReportHeading
	}
	return &SettingsUseCase{repo: repo, defaultHeading: defaultHeading}
}

// GetSettings returns the stored settings, or the defaults when none exist.
func (uc *SettingsUseCase) GetSettings(ctx context.Context) (*domain.Settings, error) {
	s, err := uc.repo.Get(ctx)
	if errors.Is(err, domain.ErrSettingsNotFound) {
		return &domain.Settings{ReportHeading: uc.defaultHeading}, nil
	}
	if err != nil {
		return nil, domain.Persistence("get settings", err)
	}
	return s, nil
}

// UpdateSettingsInput represents input for updating settings.
type UpdateSettingsInput struct {
	ReportHeading string
}

// UpdateSettings replaces the settings.
func (uc *SettingsUseCase) UpdateSettings(ctx context.Context, input UpdateSettingsInput) (*domain.Settings, error) {
	s := &domain.Settings{
		ReportHeading: strings.TrimSpace(input.ReportHeading),
		UpdatedAt:     time.Now().UTC(),
	}
	if err := domain.ValidateSettings(s); err != nil {
		return nil, err
	}

	if err := uc.repo.Upsert(ctx, s); err != nil {
		return nil, domain.Persistence("update settings", err)
	}
	return s, nil
}

// ReportHeading returns the heading printed on documents.
func (uc *SettingsUseCase) ReportHeading(ctx context.Context) (string, error) {
	s, err := uc.GetSettings(ctx)
	if err != nil {
		return "", err
	}
	return s.ReportHeading, nil
}
