package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/exp/slog"

	"employees/internal/app/client/config"
	"employees/internal/domain/record"
)

// ErrUnavailable оборачивает сетевые ошибки: сервер не ответил вовсе.
var ErrUnavailable = errors.New("server unavailable")

// Коды ошибок API, на которые клиент реагирует отдельно.
const (
	CodeInvalidID        = "InvalidId"
	CodeNotFound         = "NotFound"
	CodeDuplicateEmail   = "DuplicateEmail"
	CodeValidationFailed = "ValidationFailed"
	CodeMissingFields    = "MissingFields"
)

// APIError is a non-2xx answer of the records API.
type APIError struct {
	Status  int               `json:"-"`
	Code    string            `json:"code"`
	Message string            `json:"error"`
	Fields  map[string]string `json:"fields,omitempty"`
	Missing []string          `json:"missing,omitempty"`
}

func (e *APIError) Error() string {
	if e.Code == "" {
		return fmt.Sprintf("server error %d: %s", e.Status, e.Message)
	}
	return fmt.Sprintf("%s (%d): %s", e.Code, e.Status, e.Message)
}

// IsCode сообщает, является ли err ответом API с данным кодом.
func IsCode(err error, code string) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Code == code
}

// Health is the body of GET /health.
type Health struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

// DeleteResult is the confirmation returned by DELETE /record/{id}.
type DeleteResult struct {
	Message       string        `json:"message"`
	DeletedRecord record.Record `json:"deletedRecord"`
}

// API is a typed HTTP client of the records server.
type API struct {
	client    *http.Client
	log       *slog.Logger
	baseURL   string
	userAgent string
}

func NewAPI(cfg *config.Config, log *slog.Logger) *API {
	client := &http.Client{
		Timeout: cfg.RequestTimeout,
		Transport: &http.Transport{
			MaxIdleConns:        10,
			IdleConnTimeout:     90 * time.Second,
			MaxIdleConnsPerHost: 10,
		},
	}

	return &API{
		client:    client,
		log:       log.With("component", "api_client"),
		baseURL:   cfg.BaseURL(),
		userAgent: "Employees-Client/1.0",
	}
}

// Health проверяет доступность сервера
func (a *API) Health(ctx context.Context) (*Health, error) {
	var h Health
	if err := a.do(ctx, http.MethodGet, "/health", nil, &h); err != nil {
		return nil, err
	}
	return &h, nil
}

func (a *API) List(ctx context.Context) ([]record.Record, error) {
	var records []record.Record
	if err := a.do(ctx, http.MethodGet, "/records", nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (a *API) Search(ctx context.Context, query string) ([]record.Record, error) {
	var records []record.Record
	path := "/records/search?" + url.Values{"q": {query}}.Encode()
	if err := a.do(ctx, http.MethodGet, path, nil, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func (a *API) Get(ctx context.Context, id string) (*record.Record, error) {
	var rec record.Record
	if err := a.do(ctx, http.MethodGet, "/record/"+url.PathEscape(id), nil, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (a *API) Create(ctx context.Context, patch record.Patch) (*record.Record, error) {
	var rec record.Record
	if err := a.do(ctx, http.MethodPost, "/record", patch, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

// Update отправляет только переданные поля (PATCH).
func (a *API) Update(ctx context.Context, id string, patch record.Patch) (*record.Record, error) {
	var rec record.Record
	if err := a.do(ctx, http.MethodPatch, "/record/"+url.PathEscape(id), patch, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func (a *API) Delete(ctx context.Context, id string) (*DeleteResult, error) {
	var res DeleteResult
	if err := a.do(ctx, http.MethodDelete, "/record/"+url.PathEscape(id), nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (a *API) do(ctx context.Context, method, path string, body, result interface{}) error {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, a.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", a.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	a.log.Debug("Отправка запроса", "method", method, "url", req.URL.String())

	resp, err := a.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("%w: read response: %w", ErrUnavailable, err)
	}

	a.log.Debug("Получен ответ", "status", resp.StatusCode, "bytes", len(data))

	if resp.StatusCode >= http.StatusBadRequest {
		apiErr := &APIError{Status: resp.StatusCode}
		if err := json.Unmarshal(data, apiErr); err != nil || apiErr.Message == "" {
			apiErr.Message = http.StatusText(resp.StatusCode)
		}
		return apiErr
	}

	if result != nil {
		if err := json.Unmarshal(data, result); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
