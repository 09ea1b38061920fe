package usecase_test

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/iho/bankrec/internal/domain"
	"github.com/iho/bankrec/internal/usecase"
	"github.com/iho/bankrec/internal/usecase/mocks"
)

func TestSettingsUseCase(t *testing.T) {
	ctx := context.Background()
	uc := usecase.NewSettingsUseCase(mocks.NewFakeSettingsRepository(), "")

	heading, err := uc.ReportHeading(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if heading != usecase.DefaultReportHeading {
		t.Fatalf("expected default heading, got %q", heading)
	}

	if _, err := uc.UpdateSettings(ctx, usecase.UpdateSettingsInput{ReportHeading: "   "}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	saved, err := uc.UpdateSettings(ctx, usecase.UpdateSettingsInput{ReportHeading: "  ACME Holdings Ltd  "})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved.ReportHeading != "ACME Holdings Ltd" {
		t.Errorf("expected trimmed heading, got %q", saved.ReportHeading)
	}

	heading, _ = uc.ReportHeading(ctx)
	if heading != "ACME Holdings Ltd" {
		t.Errorf("expected stored heading, got %q", heading)
	}
}

func TestSettingsUseCase_StoreFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSettingsRepository(ctrl)
	repo.EXPECT().Get(gomock.Any()).Return(nil, errors.New("too many connections"))

	uc := usecase.NewSettingsUseCase(repo, "Heading")

	_, err := uc.GetSettings(context.Background())
	if !errors.Is(err, domain.ErrPersistence) {
		t.Fatalf("expected persistence error, got %v", err)
	}
}
