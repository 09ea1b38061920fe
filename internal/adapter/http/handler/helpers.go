package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/iho/bankrec/internal/adapter/http/dto"
	"github.com/iho/bankrec/internal/adapter/http/middleware"
	"github.com/iho/bankrec/internal/domain"
	"github.com/iho/bankrec/internal/infrastructure/logger"
)

// maxBodyBytes caps JSON request bodies.
const maxBodyBytes = 1 << 20

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response. Field errors and duplicate conflicts
// carried by err are included.
func writeError(w http.ResponseWriter, status int, message string, err error) {
	writeJSON(w, status, dto.NewErrorResponse(message, err))
}

// writeDomainError maps err to a status and writes it. Server-side failures
// are logged with the request logger.
func writeDomainError(w http.ResponseWriter, r *http.Request, message string, err error) {
	status := mapDomainError(err)
	if status >= http.StatusInternalServerError {
		logger.FromContext(r.Context()).Error().Err(err).Int("status", status).Msg(message)
	}
	writeError(w, status, message, err)
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidDate),
		errors.Is(err, domain.ErrUnknownBankCode),
		errors.Is(err, domain.ErrNotReconciled):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrDuplicateStatement),
		errors.Is(err, domain.ErrBankCodeExists),
		errors.Is(err, domain.ErrCopyForwardUsed):
		return http.StatusConflict
	case errors.Is(err, domain.ErrStatementNotFound),
		errors.Is(err, domain.ErrBankNotFound),
		errors.Is(err, domain.ErrSettingsNotFound),
		errors.Is(err, domain.ErrNoPredecessor):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrEditMode):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthorized),
		errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrExpiredToken):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrInsufficientRole):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrPersistence):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// decodeJSON decodes a bounded JSON body into v.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

// currentUser returns the authenticated caller or writes 401.
func currentUser(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	user, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized", domain.ErrUnauthorized)
		return nil, false
	}
	return user, true
}

// writeAttachment sends body as a download.
func writeAttachment(w http.ResponseWriter, contentType, filename string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(http.StatusOK)
	w.Write(body)
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}

// page slices items by the limit and offset query parameters.
func page[T any](r *http.Request, items []T) (out []T, limit, offset int) {
	limit, offset = domain.ValidatePagination(parseIntQuery(r, "limit", 0), parseIntQuery(r, "offset", 0))
	if offset >= len(items) {
		return []T{}, limit, offset
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end], limit, offset
}
