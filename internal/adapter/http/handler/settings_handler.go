package handler

import (
	"context"
	"net/http"

	"github.com/iho/bankrec/internal/adapter/http/dto"
	"github.com/iho/bankrec/internal/domain"
	"github.com/iho/bankrec/internal/usecase"
)

// SettingsService reads and writes the report settings.
type SettingsService interface {
	GetSettings(ctx context.Context) (*domain.Settings, error)
	UpdateSettings(ctx context.Context, input usecase.UpdateSettingsInput) (*domain.Settings, error)
}

// SettingsHandler handles report settings requests.
type SettingsHandler struct {
	svc SettingsService
}

// NewSettingsHandler creates a new SettingsHandler.
func NewSettingsHandler(svc SettingsService) *SettingsHandler {
	return &SettingsHandler{svc: svc}
}

// Get returns the current settings.
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.GetSettings(r.Context())
	if err != nil {
		writeDomainError(w, r, "failed to get settings", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SettingsFromDomain(s))
}

// Update replaces the report heading.
func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.SettingsRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeDomainError(w, r, "invalid settings", err)
		return
	}

	s, err := h.svc.UpdateSettings(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, "failed to update settings", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.SettingsFromDomain(s))
}
