package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"employees/internal/app/client/config"
	"employees/internal/domain/record"
	"employees/internal/utils/logger"
)

const testID = "3f9c1a52-8d7e-4b8e-9a36-0c2f4d1e7b10"

func testRecord() record.Record {
	now := time.Date(2026, 4, 2, 12, 0, 0, 0, time.UTC)
	return record.Record{
		ID: testID, Firstname: "John", Lastname: "Smith", Email: "john@example.com",
		Contact: "0123456789", Designation: "Engineer", Salary: 60000,
		CreatedAt: now, UpdatedAt: now,
	}
}

func newTestAPI(t *testing.T, handler http.HandlerFunc) *API {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{
		ServerAddress:  strings.TrimPrefix(srv.URL, "http://"),
		RequestTimeout: 5 * time.Second,
	}
	return NewAPI(cfg, logger.Discard())
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestAPI_Requests(t *testing.T) {
	var (
		gotMethod, gotPath, gotQuery string
		gotBody                      map[string]string
	)
	api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath, gotQuery = r.Method, r.URL.Path, r.URL.Query().Get("q")
		gotBody = nil
		if data, _ := io.ReadAll(r.Body); len(data) > 0 {
			_ = json.Unmarshal(data, &gotBody)
		}

		switch {
		case r.URL.Path == "/records" || r.URL.Path == "/records/search":
			writeJSON(w, http.StatusOK, []record.Record{testRecord()})
		case r.Method == http.MethodDelete:
			writeJSON(w, http.StatusOK, DeleteResult{Message: "Record deleted successfully", DeletedRecord: testRecord()})
		case r.Method == http.MethodPost:
			writeJSON(w, http.StatusCreated, testRecord())
		default:
			writeJSON(w, http.StatusOK, testRecord())
		}
	})
	ctx := context.Background()

	t.Run("list", func(t *testing.T) {
		records, err := api.List(ctx)
		require.NoError(t, err)
		assert.Len(t, records, 1)
		assert.Equal(t, "/records", gotPath)
	})

	t.Run("search escapes query", func(t *testing.T) {
		_, err := api.Search(ctx, "smith & co")
		require.NoError(t, err)
		assert.Equal(t, "/records/search", gotPath)
		assert.Equal(t, "smith & co", gotQuery)
	})

	t.Run("create posts patch", func(t *testing.T) {
		rec, err := api.Create(ctx, record.Patch{"firstname": "John", "salary": "60000"})
		require.NoError(t, err)
		assert.Equal(t, testID, rec.ID)
		assert.Equal(t, http.MethodPost, gotMethod)
		assert.Equal(t, map[string]string{"firstname": "John", "salary": "60000"}, gotBody)
	})

	t.Run("update patches", func(t *testing.T) {
		_, err := api.Update(ctx, testID, record.Patch{"salary": "70000"})
		require.NoError(t, err)
		assert.Equal(t, http.MethodPatch, gotMethod)
		assert.Equal(t, "/record/"+testID, gotPath)
		assert.Equal(t, map[string]string{"salary": "70000"}, gotBody)
	})

	t.Run("delete", func(t *testing.T) {
		res, err := api.Delete(ctx, testID)
		require.NoError(t, err)
		assert.Equal(t, http.MethodDelete, gotMethod)
		assert.Equal(t, testID, res.DeletedRecord.ID)
	})
}

func TestAPI_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("api error body is decoded", func(t *testing.T) {
		api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{
				"code":   "ValidationFailed",
				"error":  "Validation failed",
				"fields": map[string]string{"contact": record.MsgContactDigits},
			})
		})

		_, err := api.Create(ctx, record.Patch{"contact": "1"})

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusBadRequest, apiErr.Status)
		assert.Equal(t, record.MsgContactDigits, apiErr.Fields["contact"])
		assert.True(t, IsCode(err, "ValidationFailed"))
	})

	t.Run("non json error falls back to status text", func(t *testing.T) {
		api := newTestAPI(t, func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "upstream down", http.StatusBadGateway)
		})

		_, err := api.List(ctx)

		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusText(http.StatusBadGateway), apiErr.Message)
	})

	t.Run("transport failure is unavailable", func(t *testing.T) {
		srv := httptest.NewServer(http.NotFoundHandler())
		srv.Close()
		api := NewAPI(&config.Config{
			ServerAddress:  strings.TrimPrefix(srv.URL, "http://"),
			RequestTimeout: time.Second,
		}, logger.Discard())

		_, err := api.Health(ctx)

		assert.True(t, errors.Is(err, ErrUnavailable))
	})
}
