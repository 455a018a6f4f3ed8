package record

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"employees/internal/app/server/api/http/apierror"
	"employees/internal/domain/record"
	"employees/internal/utils/logger"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Get(ctx context.Context, id string) (*record.Record, error) {
	args := m.Called(ctx, id)
	// Безопасное приведение nil к указателю
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*record.Record), args.Error(1)
}

func (m *MockService) List(ctx context.Context) ([]record.Record, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]record.Record), args.Error(1)
}

func (m *MockService) Search(ctx context.Context, query string) ([]record.Record, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]record.Record), args.Error(1)
}

func (m *MockService) Create(ctx context.Context, patch record.Patch) (*record.Record, error) {
	args := m.Called(ctx, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*record.Record), args.Error(1)
}

func (m *MockService) Update(ctx context.Context, id string, patch record.Patch) (*record.Record, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*record.Record), args.Error(1)
}

func (m *MockService) Delete(ctx context.Context, id string) (*record.Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*record.Record), args.Error(1)
}

const testID = "3f9c1a52-8d7e-4b8e-9a36-0c2f4d1e7b10"

func testRecord() *record.Record {
	now := time.Date(2026, 4, 2, 12, 0, 0, 0, time.UTC)
	return &record.Record{
		ID:          testID,
		Firstname:   "John",
		Lastname:    "Smith",
		Email:       "john@example.com",
		Contact:     "0123456789",
		Designation: "Engineer",
		Salary:      60000,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func requireAPIError(t *testing.T, err error, status int, code string) *apierror.Error {
	t.Helper()
	var apiErr *apierror.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, status, apiErr.Status)
	assert.Equal(t, code, apiErr.Code)
	return apiErr
}

func TestDecodePatch(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantPatch   record.Patch
		wantHasKeys bool
		wantErr     error
		wantCode    string
	}{
		{
			name:        "strings and numbers",
			body:        `{"firstname":"John","salary":60000,"contact":"0123456789"}`,
			wantPatch:   record.Patch{"firstname": "John", "salary": "60000", "contact": "0123456789"},
			wantHasKeys: true,
		},
		{
			name:        "null is absent and unknown keys ignored",
			body:        `{"email":null,"nickname":"JJ","lastname":"Smith"}`,
			wantPatch:   record.Patch{"lastname": "Smith"},
			wantHasKeys: true,
		},
		{
			name:        "only unknown keys",
			body:        `{"nickname":"JJ"}`,
			wantPatch:   record.Patch{},
			wantHasKeys: true,
		},
		{
			name:      "empty object",
			body:      ` {} `,
			wantPatch: record.Patch{},
		},
		{
			name:    "no body",
			body:    "",
			wantErr: record.ErrEmptyBody,
		},
		{
			name:     "array body",
			body:     `["john"]`,
			wantCode: apierror.KindInvalidBody,
		},
		{
			name:     "malformed json",
			body:     `{"firstname":`,
			wantCode: apierror.KindInvalidBody,
		},
		{
			name:     "object value",
			body:     `{"salary":{"amount":1}}`,
			wantCode: apierror.KindInvalidBody,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			patch, hasKeys, err := decodePatch([]byte(tt.body))

			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantCode != "":
				requireAPIError(t, err, http.StatusBadRequest, tt.wantCode)
			default:
				require.NoError(t, err)
				assert.Equal(t, tt.wantPatch, patch)
				assert.Equal(t, tt.wantHasKeys, hasKeys)
			}
		})
	}
}

func TestHandler_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		svc := new(MockService)
		h := NewHandler(svc, logger.Discard(), nil, false)

		body := `{"firstname":"John","lastname":"Smith","email":"john@example.com","contact":"0123456789","designation":"Engineer","salary":"60000"}`
		svc.On("Create", mock.Anything, mock.MatchedBy(func(p record.Patch) bool {
			return len(p) == 6 && p["salary"] == "60000"
		})).Return(testRecord(), nil)

		resp, err := h.create(ctx, &createInput{RawBody: []byte(body)})

		require.NoError(t, err)
		assert.Equal(t, testID, resp.Body.ID)
		svc.AssertExpectations(t)
	})

	t.Run("Error_EmptyObject", func(t *testing.T) {
		svc := new(MockService)
		h := NewHandler(svc, logger.Discard(), nil, false)

		resp, err := h.create(ctx, &createInput{RawBody: []byte(`{}`)})

		assert.Nil(t, resp)
		requireAPIError(t, err, http.StatusBadRequest, apierror.KindEmptyBody)
		svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("Error_UnknownKeysOnly", func(t *testing.T) {
		svc := new(MockService)
		h := NewHandler(svc, logger.Discard(), nil, false)
		svc.On("Create", mock.Anything, record.Patch{}).
			Return(nil, &record.MissingFieldsError{Fields: record.Fields})

		_, err := h.create(ctx, &createInput{RawBody: []byte(`{"nickname":"JJ"}`)})

		apiErr := requireAPIError(t, err, http.StatusBadRequest, apierror.KindMissingFields)
		assert.Equal(t, record.Fields, apiErr.Missing)
	})

	t.Run("Error_Duplicate", func(t *testing.T) {
		svc := new(MockService)
		h := NewHandler(svc, logger.Discard(), nil, false)
		svc.On("Create", mock.Anything, mock.Anything).Return(nil, record.ErrDuplicateEmail)

		_, err := h.create(ctx, &createInput{RawBody: []byte(`{"email":"john@example.com"}`)})

		requireAPIError(t, err, http.StatusBadRequest, apierror.KindDuplicateEmail)
	})
}

func TestHandler_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("Success_PartialPatch", func(t *testing.T) {
		svc := new(MockService)
		h := NewHandler(svc, logger.Discard(), nil, false)
		updated := testRecord()
		updated.Salary = 70000
		svc.On("Update", mock.Anything, testID, record.Patch{"salary": "70000"}).Return(updated, nil)

		resp, err := h.update(ctx, &updateInput{ID: testID, RawBody: []byte(`{"salary":70000}`)})

		require.NoError(t, err)
		assert.Equal(t, int64(70000), resp.Body.Salary)
		svc.AssertExpectations(t)
	})

	t.Run("Error_InvalidIDBeforeBody", func(t *testing.T) {
		svc := new(MockService)
		h := NewHandler(svc, logger.Discard(), nil, false)

		_, err := h.update(ctx, &updateInput{ID: "not-an-id"})

		requireAPIError(t, err, http.StatusBadRequest, apierror.KindInvalidID)
		svc.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Error_NoBody", func(t *testing.T) {
		h := NewHandler(new(MockService), logger.Discard(), nil, false)

		_, err := h.update(ctx, &updateInput{ID: testID})

		requireAPIError(t, err, http.StatusBadRequest, apierror.KindEmptyBody)
	})

	t.Run("Error_NotFound", func(t *testing.T) {
		svc := new(MockService)
		h := NewHandler(svc, logger.Discard(), nil, false)
		svc.On("Update", mock.Anything, testID, mock.Anything).Return(nil, record.ErrNotFound)

		_, err := h.update(ctx, &updateInput{ID: testID, RawBody: []byte(`{"firstname":"Jane"}`)})

		requireAPIError(t, err, http.StatusNotFound, apierror.KindNotFound)
	})
}

func TestHandler_Delete(t *testing.T) {
	ctx := context.Background()

	svc := new(MockService)
	h := NewHandler(svc, logger.Discard(), nil, false)
	svc.On("Delete", mock.Anything, testID).Return(testRecord(), nil).Once()
	svc.On("Delete", mock.Anything, testID).Return(nil, record.ErrNotFound).Once()

	resp, err := h.delete(ctx, &idInput{ID: testID})
	require.NoError(t, err)
	assert.Equal(t, deletedMessage, resp.Body.Message)
	assert.Equal(t, testID, resp.Body.DeletedRecord.ID)

	_, err = h.delete(ctx, &idInput{ID: testID})
	requireAPIError(t, err, http.StatusNotFound, apierror.KindNotFound)
	svc.AssertExpectations(t)
}

func TestHandler_StoreErrors(t *testing.T) {
	ctx := context.Background()
	cause := &record.StoreError{Op: "find", Err: errors.New("pool closed")}

	t.Run("dev shows details", func(t *testing.T) {
		svc := new(MockService)
		svc.On("List", mock.Anything).Return(nil, cause)
		h := NewHandler(svc, logger.Discard(), nil, false)

		_, err := h.list(ctx, nil)

		apiErr := requireAPIError(t, err, http.StatusInternalServerError, apierror.KindStoreError)
		assert.Contains(t, apiErr.Message, "pool closed")
	})

	t.Run("prod hides details", func(t *testing.T) {
		svc := new(MockService)
		svc.On("Search", mock.Anything, "smith").Return(nil, cause)
		h := NewHandler(svc, logger.Discard(), nil, true)

		_, err := h.search(ctx, &searchInput{Q: "smith"})

		apiErr := requireAPIError(t, err, http.StatusInternalServerError, apierror.KindStoreError)
		assert.Equal(t, apierror.GenericMessage, apiErr.Message)
	})
}
