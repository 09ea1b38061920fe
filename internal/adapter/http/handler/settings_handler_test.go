package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/bankrec/internal/adapter/http/dto"
	"github.com/iho/bankrec/internal/usecase"
	"github.com/iho/bankrec/internal/usecase/mocks"
)

func TestSettingsHandler(t *testing.T) {
	h := NewSettingsHandler(usecase.NewSettingsUseCase(mocks.NewFakeSettingsRepository(), "ACME Holdings"))

	rr := httptest.NewRecorder()
	h.Get(rr, httptest.NewRequest(http.MethodGet, "/settings", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var got dto.SettingsResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Equal(t, "ACME Holdings", got.ReportHeading)
	assert.Nil(t, got.UpdatedAt)

	rr = httptest.NewRecorder()
	h.Update(rr, httptest.NewRequest(http.MethodPut, "/settings", strings.NewReader(`{"report_heading":" Widgets Ltd "}`)))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&got))
	assert.Equal(t, "Widgets Ltd", got.ReportHeading)
	assert.NotNil(t, got.UpdatedAt)

	rr = httptest.NewRecorder()
	h.Update(rr, httptest.NewRequest(http.MethodPut, "/settings", strings.NewReader(`{"report_heading":""}`)))
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	rr = httptest.NewRecorder()
	h.Update(rr, httptest.NewRequest(http.MethodPut, "/settings", strings.NewReader(`{"heading":"x"}`)))
	assert.Equal(t, http.StatusBadRequest, rr.Code, "unknown fields are rejected")
}
