package handler

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/bankrec/internal/adapter/export"
	"github.com/iho/bankrec/internal/adapter/http/dto"
	"github.com/iho/bankrec/internal/domain"
	"github.com/iho/bankrec/internal/usecase"
)

// StatementService is the reconciliation lifecycle used by StatementHandler.
type StatementService interface {
	Policy() usecase.Policy
	Preview(in domain.Inputs) domain.Totals
	CheckContinuity(ctx context.Context, userID, bankCode string, date time.Time) (domain.Continuity, error)
	CopyForwardTemplate(ctx context.Context, userID, bankCode string, date time.Time) (*usecase.CopyForwardTemplate, error)
	Create(ctx context.Context, in usecase.StatementInput) (*domain.Statement, error)
	Update(ctx context.Context, id string, in usecase.StatementInput) (*domain.Statement, error)
	Get(ctx context.Context, userID, id string) (*domain.Statement, error)
	List(ctx context.Context, input usecase.ListStatementsInput) ([]*domain.Statement, error)
	ListAll(ctx context.Context, search string) ([]*domain.Statement, error)
	Delete(ctx context.Context, userID, id string) error
	ExportDocument(ctx context.Context, w io.Writer, userID, id string) (*domain.Statement, error)
	SaveAndExport(ctx context.Context, w io.Writer, d *usecase.Draft, user *domain.User) (*domain.Statement, error)
	ExportTable(ctx context.Context, w io.Writer, userID, search string) (int, error)
}

// StatementHandler handles reconciliation statement requests.
type StatementHandler struct {
	svc StatementService
}

// NewStatementHandler creates a new StatementHandler.
func NewStatementHandler(svc StatementService) *StatementHandler {
	return &StatementHandler{svc: svc}
}

// Preview returns live totals for unsaved inputs.
func (h *StatementHandler) Preview(w http.ResponseWriter, r *http.Request) {
	var req dto.PreviewRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TotalsFromDomain(h.svc.Preview(req.ToInputs())))
}

// Template returns the starter draft for a new statement.
func (h *StatementHandler) Template(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, dto.TemplateFromDraft(usecase.NewDraft(h.svc.Policy(), user.ID)))
}

// Continuity reports the duplicate and predecessor for a bank and date.
func (h *StatementHandler) Continuity(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	q, err := dto.ParseContinuityQuery(r.URL.Query().Get("bank_code"), r.URL.Query().Get("date"))
	if err != nil {
		writeDomainError(w, r, "invalid continuity query", err)
		return
	}

	c, err := h.svc.CheckContinuity(r.Context(), user.ID, q.BankCode, q.Date)
	if err != nil {
		writeDomainError(w, r, "failed to check continuity", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ContinuityFromDomain(c))
}

// CopyForward returns a draft started from the previous month's statement.
func (h *StatementHandler) CopyForward(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	q, err := dto.ParseContinuityQuery(r.URL.Query().Get("bank_code"), r.URL.Query().Get("date"))
	if err != nil {
		writeDomainError(w, r, "invalid copy-forward query", err)
		return
	}

	t, err := h.svc.CopyForwardTemplate(r.Context(), user.ID, q.BankCode, q.Date)
	if err != nil {
		writeDomainError(w, r, "failed to copy forward", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.TemplateFromCopyForward(q.BankCode, q.Date, t))
}

// Create creates a new statement.
func (h *StatementHandler) Create(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req dto.StatementRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	input, err := req.ToUseCaseInput(user)
	if err != nil {
		writeDomainError(w, r, "invalid statement", err)
		return
	}

	s, err := h.svc.Create(r.Context(), input)
	if err != nil {
		writeDomainError(w, r, "failed to create statement", err)
		return
	}

	writeJSON(w, http.StatusCreated, dto.StatementFromDomain(s))
}

// Update replaces the content of a statement.
func (h *StatementHandler) Update(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var req dto.StatementRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	input, err := req.ToUseCaseInput(user)
	if err != nil {
		writeDomainError(w, r, "invalid statement", err)
		return
	}

	s, err := h.svc.Update(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeDomainError(w, r, "failed to update statement", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.StatementFromDomain(s))
}

// Get retrieves one of the caller's statements.
func (h *StatementHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	s, err := h.svc.Get(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, "failed to get statement", err)
		return
	}

	writeJSON(w, http.StatusOK, dto.StatementFromDomain(s))
}

// List lists the caller's statements, newest number first.
func (h *StatementHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	statements, err := h.svc.List(r.Context(), usecase.ListStatementsInput{
		UserID: user.ID,
		Search: r.URL.Query().Get("search"),
	})
	if err != nil {
		writeDomainError(w, r, "failed to list statements", err)
		return
	}

	writeStatementPage(w, r, statements)
}

// ListAll lists every user's statements. Admin only.
func (h *StatementHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	statements, err := h.svc.ListAll(r.Context(), r.URL.Query().Get("search"))
	if err != nil {
		writeDomainError(w, r, "failed to list statements", err)
		return
	}

	writeStatementPage(w, r, statements)
}

// Delete removes one of the caller's statements.
func (h *StatementHandler) Delete(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), user.ID, chi.URLParam(r, "id")); err != nil {
		writeDomainError(w, r, "failed to delete statement", err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ExportTable downloads the caller's statements as a workbook.
func (h *StatementHandler) ExportTable(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}
	h.exportTable(w, r, user.ID, "reconciliations.xlsx")
}

// ExportAllTable downloads every user's statements as a workbook. Admin only.
func (h *StatementHandler) ExportAllTable(w http.ResponseWriter, r *http.Request) {
	h.exportTable(w, r, "", "all-reconciliations.xlsx")
}

func (h *StatementHandler) exportTable(w http.ResponseWriter, r *http.Request, userID, filename string) {
	var buf bytes.Buffer
	if _, err := h.svc.ExportTable(r.Context(), &buf, userID, r.URL.Query().Get("search")); err != nil {
		writeDomainError(w, r, "failed to export statements", err)
		return
	}

	writeAttachment(w, export.ContentTypeXLSX, filename, buf.Bytes())
}

// ExportDocument downloads a stored statement as a PDF.
func (h *StatementHandler) ExportDocument(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	s, err := h.svc.ExportDocument(r.Context(), &buf, user.ID, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, "failed to export statement", err)
		return
	}

	writeDocument(w, s, buf.Bytes())
}

// CreateAndExport saves a new statement and downloads it as a PDF.
func (h *StatementHandler) CreateAndExport(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	h.saveAndExport(w, r, user, usecase.NewDraft(h.svc.Policy(), user.ID))
}

// UpdateAndExport saves changes to a statement and downloads it as a PDF.
func (h *StatementHandler) UpdateAndExport(w http.ResponseWriter, r *http.Request) {
	user, ok := currentUser(w, r)
	if !ok {
		return
	}

	existing, err := h.svc.Get(r.Context(), user.ID, chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, "failed to get statement", err)
		return
	}

	h.saveAndExport(w, r, user, usecase.NewDraftFromStatement(h.svc.Policy(), existing))
}

func (h *StatementHandler) saveAndExport(w http.ResponseWriter, r *http.Request, user *domain.User, d *usecase.Draft) {
	var req dto.StatementRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if err := req.ApplyTo(d); err != nil {
		writeDomainError(w, r, "invalid statement", err)
		return
	}

	var buf bytes.Buffer
	s, err := h.svc.SaveAndExport(r.Context(), &buf, d, user)
	if err != nil {
		writeDomainError(w, r, "failed to export statement", err)
		return
	}

	writeDocument(w, s, buf.Bytes())
}

func writeDocument(w http.ResponseWriter, s *domain.Statement, body []byte) {
	name := "reconciliation-draft.pdf"
	if s.StatementID > 0 {
		name = fmt.Sprintf("reconciliation-%d.pdf", s.StatementID)
		w.Header().Set("X-Statement-ID", fmt.Sprint(s.StatementID))
	}
	if s.ID != "" {
		w.Header().Set("Location", "/api/v1/statements/"+s.ID)
	}
	writeAttachment(w, export.ContentTypePDF, name, body)
}

func writeStatementPage(w http.ResponseWriter, r *http.Request, statements []*domain.Statement) {
	items, limit, offset := page(r, statements)
	writeJSON(w, http.StatusOK, dto.StatementListResponse{
		Statements: dto.StatementsFromDomain(items),
		Total:      len(statements),
		Limit:      limit,
		Offset:     offset,
	})
}
