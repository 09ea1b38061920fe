package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type clientOptions struct {
	baseURL string
	token   string
	timeout time.Duration
}

func (o *clientOptions) client() *apiClient {
	return &apiClient{
		baseURL: strings.TrimRight(o.baseURL, "/"),
		token:   o.token,
		http:    &http.Client{Timeout: o.timeout},
	}
}

type apiClient struct {
	baseURL string
	token   string
	http    *http.Client
}

// apiError is a non-2xx response.
type apiError struct {
	Status  int
	Message string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("request failed (status %d): %s", e.Status, e.Message)
}

type statementList struct {
	Statements []statementRow `json:"statements"`
	Total      int            `json:"total"`
}

type statementRow struct {
	ID                 string `json:"id"`
	StatementID        int64  `json:"statement_id"`
	BankName           string `json:"bank_name"`
	ReconciliationDate string `json:"reconciliation_date"`
	Difference         string `json:"difference"`
	UserEmail          string `json:"user_email"`
}

type bank struct {
	Code  string `json:"code"`
	Name  string `json:"name"`
	Label string `json:"label"`
}

type importResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
	Errors   int `json:"errors"`
}

func searchQuery(search string) url.Values {
	if search == "" {
		return nil
	}
	return url.Values{"search": {search}}
}

func (c *apiClient) do(ctx context.Context, method, path string, query url.Values, body io.Reader, contentType string) (*http.Response, error) {
	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return nil, err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error making request: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		defer resp.Body.Close()
		return nil, readAPIError(resp)
	}
	return resp, nil
}

func readAPIError(resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))

	var payload struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	msg := strings.TrimSpace(string(raw))
	if json.Unmarshal(raw, &payload) == nil && payload.Error != "" {
		msg = payload.Error
		if payload.Message != "" {
			msg += ": " + payload.Message
		}
	}
	return &apiError{Status: resp.StatusCode, Message: msg}
}

func (c *apiClient) getJSON(ctx context.Context, path string, query url.Values, out any) error {
	resp, err := c.do(ctx, http.MethodGet, path, query, nil, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	return nil
}

// download streams a response body into the file at dest.
func (c *apiClient) download(ctx context.Context, path string, query url.Values, dest string) (int64, error) {
	resp, err := c.do(ctx, http.MethodGet, path, query, nil, "")
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	f, err := os.Create(dest)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(f, resp.Body)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	return n, err
}

// upload posts a workbook as the raw request body.
func (c *apiClient) upload(ctx context.Context, path string, body io.Reader, out any) error {
	resp, err := c.do(ctx, http.MethodPost, path, nil, body, xlsxContentType)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return json.NewDecoder(resp.Body).Decode(out)
}
