// Package apierror задает единый формат ошибок HTTP API.
package apierror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"employees/internal/domain/record"
)

// Коды ошибок, которые видит клиент в поле "code".
const (
	KindInvalidID        = "InvalidId"
	KindEmptyBody        = "EmptyBody"
	KindInvalidBody      = "InvalidBody"
	KindMissingFields    = "MissingFields"
	KindValidationFailed = "ValidationFailed"
	KindDuplicateEmail   = "DuplicateEmail"
	KindNotFound         = "NotFound"
	KindMissingQuery     = "MissingQuery"
	KindStoreError       = "StoreError"
	KindRouteNotFound    = "RouteNotFound"
	KindInternalError    = "InternalError"
)

// GenericMessage replaces 500 details in production.
const GenericMessage = "Internal server error"

// Error is the JSON body of every failed response.
type Error struct {
	Status  int               `json:"-"`
	Code    string            `json:"code" doc:"Machine readable error kind"`
	Message string            `json:"error" doc:"Human readable message"`
	Fields  map[string]string `json:"fields,omitempty" doc:"Per-field validation messages"`
	Missing []string          `json:"missing,omitempty" doc:"Required fields absent from the body"`
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) GetStatus() int {
	return e.Status
}

func New(status int, code, msg string) *Error {
	return &Error{Status: status, Code: code, Message: msg}
}

// Install подменяет huma.NewError, чтобы ошибки самого фреймворка
// (разбор запроса, неожиданные ошибки хендлеров) имели тот же формат.
func Install() {
	huma.NewError = func(status int, msg string, errs ...error) huma.StatusError {
		code := KindInvalidBody
		switch {
		case status == http.StatusNotFound:
			code = KindRouteNotFound
		case status >= http.StatusInternalServerError:
			code = KindInternalError
		}

		if len(errs) > 0 && status < http.StatusInternalServerError {
			msg = fmt.Sprintf("%s: %v", msg, errors.Join(errs...))
		}
		return New(status, code, msg)
	}
}

// FromDomain переводит ошибку сервиса в ответ API. В prod детали
// серверных ошибок скрываются.
func FromDomain(err error, prod bool) *Error {
	var (
		apiErr     *Error
		missingErr *record.MissingFieldsError
		validErr   *record.ValidationError
		storeErr   *record.StoreError
	)

	switch {
	case errors.As(err, &apiErr):
		return apiErr
	case errors.Is(err, record.ErrInvalidID):
		return New(http.StatusBadRequest, KindInvalidID, "Invalid record ID format")
	case errors.Is(err, record.ErrEmptyBody):
		return New(http.StatusBadRequest, KindEmptyBody, "Request body is required")
	case errors.As(err, &missingErr):
		e := New(http.StatusBadRequest, KindMissingFields, "Missing required fields")
		e.Missing = missingErr.Fields
		return e
	case errors.As(err, &validErr):
		e := New(http.StatusBadRequest, KindValidationFailed, "Validation failed")
		e.Fields = validErr.Fields
		return e
	case errors.Is(err, record.ErrInvalidData):
		return New(http.StatusBadRequest, KindValidationFailed, err.Error())
	case errors.Is(err, record.ErrDuplicateEmail):
		return New(http.StatusBadRequest, KindDuplicateEmail, "Email already exists")
	case errors.Is(err, record.ErrNotFound):
		return New(http.StatusNotFound, KindNotFound, "Record not found")
	case errors.Is(err, record.ErrMissingQuery):
		return New(http.StatusBadRequest, KindMissingQuery, "Search query is required")
	case errors.As(err, &storeErr):
		return internal(KindStoreError, err, prod)
	}
	return internal(KindInternalError, err, prod)
}

func internal(code string, err error, prod bool) *Error {
	if prod {
		return New(http.StatusInternalServerError, code, GenericMessage)
	}
	return New(http.StatusInternalServerError, code, err.Error())
}
