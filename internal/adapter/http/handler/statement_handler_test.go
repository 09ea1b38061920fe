package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/bankrec/internal/adapter/export"
	"github.com/iho/bankrec/internal/adapter/http/dto"
	"github.com/iho/bankrec/internal/adapter/http/middleware"
	"github.com/iho/bankrec/internal/domain"
	"github.com/iho/bankrec/internal/usecase"
	"github.com/iho/bankrec/internal/usecase/mocks"
)

type statementEnv struct {
	router   chi.Router
	repo     *mocks.FakeStatementRepository
	renderer *mocks.FakeRenderer
	tables   *mocks.FakeTableWriter
}

func newStatementEnv(t *testing.T, user *domain.User) *statementEnv {
	t.Helper()

	env := &statementEnv{
		repo:     mocks.NewFakeStatementRepository(),
		renderer: &mocks.FakeRenderer{},
		tables:   &mocks.FakeTableWriter{},
	}
	banks := usecase.NewBankUseCase(mocks.NewFakeBankRepository(
		&domain.Bank{ID: "b1", Code: "BK1", Name: "First Bank"},
		&domain.Bank{ID: "b2", Code: "BK2", Name: "Second Bank"},
	), mocks.NewSequenceIDGenerator(), nil, 0)
	settings := usecase.NewSettingsUseCase(mocks.NewFakeSettingsRepository(), "ACME Holdings")

	uc := usecase.NewReconciliationUseCase(
		mocks.NewFakeTransactionManager(),
		env.repo,
		banks,
		settings,
		mocks.NewSequenceIDGenerator(),
		usecase.DefaultPolicy(),
		usecase.WithExporters(env.renderer, env.tables),
	)
	h := NewStatementHandler(uc)

	r := chi.NewRouter()
	r.Use(middleware.StaticUser(user))
	r.Post("/statements/preview", h.Preview)
	r.Get("/statements/template", h.Template)
	r.Get("/statements/continuity", h.Continuity)
	r.Get("/statements/copy-forward", h.CopyForward)
	r.Get("/statements/export.xlsx", h.ExportTable)
	r.Post("/statements/pdf", h.CreateAndExport)
	r.Post("/statements", h.Create)
	r.Get("/statements", h.List)
	r.Get("/statements/{id}", h.Get)
	r.Put("/statements/{id}", h.Update)
	r.Delete("/statements/{id}", h.Delete)
	r.Get("/statements/{id}/pdf", h.ExportDocument)
	r.Put("/statements/{id}/pdf", h.UpdateAndExport)
	r.Get("/admin/statements", h.ListAll)
	r.Get("/admin/statements/export.xlsx", h.ExportAllTable)
	env.router = r
	return env
}

func (e *statementEnv) do(t *testing.T, method, target string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

var member = &domain.User{ID: "u1", Email: "u1@example.com", Name: "User One", Role: domain.RoleMember}

func statementBody(bankCode, date, book string) map[string]any {
	return map[string]any{
		"bank_code":           bankCode,
		"reconciliation_date": date,
		"balance_as_per_bank": "1000",
		"balance_as_per_book": book,
		"additions":           []map[string]any{{"narration": "Deposit-in-Transit", "amount": "50"}},
		"deductions":          []map[string]any{{"narration": "Outstanding Cheque", "amount": 25}},
		"book_additions":      []map[string]any{},
		"book_deductions":     []map[string]any{},
	}
}

func decodeStatement(t *testing.T, rr *httptest.ResponseRecorder) dto.StatementResponse {
	t.Helper()
	var resp dto.StatementResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	return resp
}

func TestStatementHandler_Preview(t *testing.T) {
	env := newStatementEnv(t, member)

	rr := env.do(t, http.MethodPost, "/statements/preview", map[string]any{
		"balance_as_per_bank": "1,000",
		"balance_as_per_book": "abc",
		"additions":           []map[string]any{{"narration": "", "amount": "50"}},
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var totals dto.TotalsResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&totals))
	assert.Equal(t, "1050", totals.CorrectedBalance.String())
	assert.Equal(t, "1050", totals.Difference.String(), "unparseable book balance counts as zero")
	assert.False(t, totals.Reconciled)
}

func TestStatementHandler_Template(t *testing.T) {
	env := newStatementEnv(t, member)

	rr := env.do(t, http.MethodGet, "/statements/template", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var tpl dto.TemplateResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&tpl))
	assert.Len(t, tpl.Additions, 2)
	assert.NotEmpty(t, tpl.ReconciliationDate)
	assert.True(t, tpl.Totals.Reconciled)
}

func TestStatementHandler_CreateAndGet(t *testing.T) {
	env := newStatementEnv(t, member)

	rr := env.do(t, http.MethodPost, "/statements", statementBody("BK1", "2024-03-15", "1025"))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	created := decodeStatement(t, rr)
	assert.Equal(t, int64(1), created.StatementID)
	assert.Equal(t, "u1", created.UserID)
	assert.Equal(t, "First Bank", created.BankName)
	assert.Equal(t, "2024-03-15", created.ReconciliationDate)
	assert.True(t, created.Reconciled)

	rr = env.do(t, http.MethodGet, "/statements/"+created.ID, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, created.ID, decodeStatement(t, rr).ID)

	rr = env.do(t, http.MethodGet, "/statements/missing", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestStatementHandler_Create_Rejections(t *testing.T) {
	env := newStatementEnv(t, member)
	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/statements", statementBody("BK1", "2024-03-15", "1025")).Code)

	t.Run("duplicate month", func(t *testing.T) {
		rr := env.do(t, http.MethodPost, "/statements", statementBody("BK1", "2024-03-02", "1025"))
		require.Equal(t, http.StatusConflict, rr.Code)

		var resp dto.ErrorResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		assert.Equal(t, int64(1), resp.StatementID)
		assert.NotEmpty(t, resp.ConflictID)
	})

	t.Run("invalid fields", func(t *testing.T) {
		body := statementBody("", "15/03/2024", "1025")
		body["deductions"] = []map[string]any{{"narration": "Fee", "amount": "ten"}}

		rr := env.do(t, http.MethodPost, "/statements", body)
		require.Equal(t, http.StatusUnprocessableEntity, rr.Code)

		var resp dto.ErrorResponse
		require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
		fields := make([]string, 0, len(resp.Fields))
		for _, f := range resp.Fields {
			fields = append(fields, f.Field)
		}
		assert.Contains(t, fields, "bank_code")
		assert.Contains(t, fields, "deductions[0].amount")
	})

	t.Run("unknown bank", func(t *testing.T) {
		rr := env.do(t, http.MethodPost, "/statements", statementBody("NOPE", "2024-05-15", "1025"))
		assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/statements", strings.NewReader("{"))
		rr := httptest.NewRecorder()
		env.router.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	assert.Equal(t, 1, env.repo.Count())
}

func TestStatementHandler_UpdateAndDelete(t *testing.T) {
	env := newStatementEnv(t, member)
	created := decodeStatement(t, env.do(t, http.MethodPost, "/statements", statementBody("BK1", "2024-03-15", "1025")))

	rr := env.do(t, http.MethodPut, "/statements/"+created.ID, statementBody("BK1", "2024-03-20", "1000"))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	updated := decodeStatement(t, rr)
	assert.Equal(t, created.StatementID, updated.StatementID, "number is kept on update")
	assert.Equal(t, "25", updated.Difference.String())

	rr = env.do(t, http.MethodDelete, "/statements/"+created.ID, nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = env.do(t, http.MethodDelete, "/statements/"+created.ID, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestStatementHandler_List(t *testing.T) {
	env := newStatementEnv(t, member)
	for _, date := range []string{"2024-01-15", "2024-02-15", "2024-03-15"} {
		require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/statements", statementBody("BK1", date, "1025")).Code)
	}
	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/statements", statementBody("BK2", "2024-03-15", "1025")).Code)

	rr := env.do(t, http.MethodGet, "/statements?limit=2", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var list dto.StatementListResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&list))
	assert.Equal(t, 4, list.Total)
	assert.Equal(t, 2, list.Limit)
	require.Len(t, list.Statements, 2)
	assert.Equal(t, int64(4), list.Statements[0].StatementID, "newest number first")

	rr = env.do(t, http.MethodGet, "/statements?search=second", nil)
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&list))
	assert.Equal(t, 1, list.Total)
}

func TestStatementHandler_ContinuityAndCopyForward(t *testing.T) {
	env := newStatementEnv(t, member)
	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/statements", statementBody("BK1", "2024-03-15", "1025")).Code)

	rr := env.do(t, http.MethodGet, "/statements/continuity?bank_code=BK1&date=2024-04-05", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var c dto.ContinuityResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&c))
	assert.Nil(t, c.Duplicate)
	require.NotNil(t, c.Predecessor)
	assert.True(t, c.CanCopyForward)
	require.NotNil(t, c.Template)

	rr = env.do(t, http.MethodGet, "/statements/copy-forward?bank_code=BK1&date=2024-04-05", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var tpl dto.TemplateResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&tpl))
	assert.Equal(t, "1025", tpl.BalanceAsPerBank.String())
	assert.Equal(t, "1025", tpl.BalanceAsPerBook.String())
	require.Len(t, tpl.Additions, 1)
	assert.True(t, tpl.Additions[0].Amount.IsZero())

	rr = env.do(t, http.MethodGet, "/statements/copy-forward?bank_code=BK1&date=2024-03-20", nil)
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = env.do(t, http.MethodGet, "/statements/copy-forward?bank_code=BK2&date=2024-04-05", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = env.do(t, http.MethodGet, "/statements/continuity?bank_code=BK1&date=nope", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
}

func TestStatementHandler_ExportDocument(t *testing.T) {
	env := newStatementEnv(t, member)
	reconciled := decodeStatement(t, env.do(t, http.MethodPost, "/statements", statementBody("BK1", "2024-03-15", "1025")))
	open := decodeStatement(t, env.do(t, http.MethodPost, "/statements", statementBody("BK2", "2024-03-15", "900")))

	rr := env.do(t, http.MethodGet, "/statements/"+reconciled.ID+"/pdf", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, export.ContentTypePDF, rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "reconciliation-1.pdf")
	assert.Equal(t, "ACME Holdings #1", rr.Body.String())

	rr = env.do(t, http.MethodGet, "/statements/"+open.ID+"/pdf", nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)
	assert.Equal(t, 1, env.renderer.Calls)
}

func TestStatementHandler_SaveAndExport(t *testing.T) {
	env := newStatementEnv(t, member)

	rr := env.do(t, http.MethodPost, "/statements/pdf", statementBody("BK1", "2024-03-15", "1025"))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "1", rr.Header().Get("X-Statement-ID"))
	stored, err := env.repo.ListAll(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)

	id := stored[0].ID
	rr = env.do(t, http.MethodPut, "/statements/"+id+"/pdf", statementBody("BK1", "2024-03-15", "1000"))
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code, "unreconciled edits are refused")

	rr = env.do(t, http.MethodPost, "/statements/pdf", statementBody("BK1", "2024-03-09", "1025"))
	assert.Equal(t, http.StatusConflict, rr.Code)
	assert.Equal(t, 1, env.repo.Count())
}

func TestStatementHandler_ExportTable(t *testing.T) {
	env := newStatementEnv(t, member)
	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/statements", statementBody("BK1", "2024-03-15", "1025")).Code)

	rr := env.do(t, http.MethodGet, "/statements/export.xlsx", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, export.ContentTypeXLSX, rr.Header().Get("Content-Type"))
	assert.False(t, env.tables.WithUser)
	assert.Len(t, env.tables.Statements, 1)

	rr = env.do(t, http.MethodGet, "/admin/statements/export.xlsx", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, env.tables.WithUser)
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "all-reconciliations.xlsx")
}

func TestStatementHandler_ListAll(t *testing.T) {
	env := newStatementEnv(t, member)
	require.Equal(t, http.StatusCreated, env.do(t, http.MethodPost, "/statements", statementBody("BK1", "2024-03-15", "1025")).Code)

	rr := env.do(t, http.MethodGet, "/admin/statements", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	var list dto.StatementListResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&list))
	require.Len(t, list.Statements, 1)
	assert.Equal(t, "u1@example.com", list.Statements[0].UserEmail)
}

func TestStatementHandler_RequiresUser(t *testing.T) {
	h := NewStatementHandler(nil)

	rr := httptest.NewRecorder()
	h.List(rr, httptest.NewRequest(http.MethodGet, "/statements", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
