package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/iho/bankrec/internal/adapter/export"
	"github.com/iho/bankrec/internal/adapter/http/dto"
	"github.com/iho/bankrec/internal/domain"
	"github.com/iho/bankrec/internal/usecase"
)

// maxImportBytes caps uploaded bank workbooks.
const maxImportBytes = 10 << 20

// BankService manages the bank directory.
type BankService interface {
	CreateBank(ctx context.Context, input usecase.BankInput) (*domain.Bank, error)
	UpdateBank(ctx context.Context, id string, input usecase.BankInput) (*domain.Bank, error)
	DeleteBank(ctx context.Context, id string) error
	GetBank(ctx context.Context, id string) (*domain.Bank, error)
	ListBanks(ctx context.Context) ([]*domain.Bank, error)
	ImportBanks(ctx context.Context, rows []domain.BankImportRow) (*domain.BankImportResult, error)
}

// BankHandler handles bank directory requests.
type BankHandler struct {
	svc BankService
}

// NewBankHandler creates a new BankHandler.
func NewBankHandler(svc BankService) *BankHandler {
	return &BankHandler{svc: svc}
}

// List returns every bank ordered by code.
func (h *BankHandler) List(w http.ResponseWriter, r *http.Request) {
	banks, err := h.svc.ListBanks(r.Context())
	if err != nil {
		writeDomainError(w, r, "failed to list banks", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BanksFromDomain(banks))
}

// Get returns one bank.
func (h *BankHandler) Get(w http.ResponseWriter, r *http.Request) {
	bank, err := h.svc.GetBank(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, "failed to get bank", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BankFromDomain(bank))
}

// Create adds a bank.
func (h *BankHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.BankRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeDomainError(w, r, "invalid bank", err)
		return
	}

	bank, err := h.svc.CreateBank(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, "failed to create bank", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.BankFromDomain(bank))
}

// Update changes a bank's code or name.
func (h *BankHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req dto.BankRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	input, err := req.ToUseCaseInput()
	if err != nil {
		writeDomainError(w, r, "invalid bank", err)
		return
	}

	bank, err := h.svc.UpdateBank(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeDomainError(w, r, "failed to update bank", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BankFromDomain(bank))
}

// Delete removes a bank.
func (h *BankHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.svc.DeleteBank(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, r, "failed to delete bank", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Import loads banks from an uploaded workbook. The workbook is sent either
// as the "file" field of a multipart form or as the raw request body.
func (h *BankHandler) Import(w http.ResponseWriter, r *http.Request) {
	body, closeBody, err := importBody(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing workbook", err)
		return
	}
	defer closeBody()

	rows, err := export.ReadBankWorkbook(body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "unreadable workbook", err)
		return
	}

	result, err := h.svc.ImportBanks(r.Context(), rows)
	if err != nil {
		writeDomainError(w, r, "failed to import banks", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.BankImportFromDomain(result))
}

func importBody(w http.ResponseWriter, r *http.Request) (io.Reader, func(), error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxImportBytes)

	if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
		if r.ContentLength == 0 {
			return nil, nil, errors.New("empty request body")
		}
		return r.Body, func() {}, nil
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		return nil, nil, err
	}
	return file, func() { file.Close() }, nil
}
