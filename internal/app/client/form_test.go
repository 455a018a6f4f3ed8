package client

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"employees/internal/domain/record"
	"employees/internal/utils/logger"
)

// MockFormAPI — мок для интерфейса FormAPI
type MockFormAPI struct {
	mock.Mock
}

func (m *MockFormAPI) Get(ctx context.Context, id string) (*record.Record, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*record.Record), args.Error(1)
}

func (m *MockFormAPI) Create(ctx context.Context, patch record.Patch) (*record.Record, error) {
	args := m.Called(ctx, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*record.Record), args.Error(1)
}

func (m *MockFormAPI) Update(ctx context.Context, id string, patch record.Patch) (*record.Record, error) {
	args := m.Called(ctx, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*record.Record), args.Error(1)
}

type navRecorder struct {
	routes []string
}

func (n *navRecorder) Navigate(route string) {
	n.routes = append(n.routes, route)
}

func fillValid(t *testing.T, f *Form) {
	t.Helper()
	tr := testRecord()
	d := tr.Draft()
	for _, field := range record.Fields {
		v, _ := d.Get(field)
		require.NoError(t, f.Set(field, v))
	}
}

func TestForm_CreateSuccess(t *testing.T) {
	api := new(MockFormAPI)
	nav := &navRecorder{}
	f := NewForm(api, nav.Navigate, logger.Discard())
	fillValid(t, f)

	rec := testRecord()
	api.On("Create", mock.Anything, rec.Draft().Patch()).Return(&rec, nil)

	got, err := f.Submit(context.Background())

	require.NoError(t, err)
	assert.Equal(t, testID, got.ID)
	assert.Equal(t, record.Draft{}, f.Draft(), "draft resets on confirmed save")
	assert.Equal(t, StateIdle, f.State())
	assert.Equal(t, []string{RouteList}, nav.routes)
	api.AssertExpectations(t)
}

func TestForm_InvalidDraftIsNotSent(t *testing.T) {
	api := new(MockFormAPI)
	nav := &navRecorder{}
	f := NewForm(api, nav.Navigate, logger.Discard())
	fillValid(t, f)
	require.NoError(t, f.Set(record.FieldContact, "12345"))
	require.NoError(t, f.Set(record.FieldSalary, "12345678"))

	_, err := f.Submit(context.Background())

	var vErr *record.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, record.MsgContactDigits, f.Errors()[record.FieldContact])
	assert.Equal(t, record.MsgSalaryDigits, f.Errors()[record.FieldSalary])
	assert.Equal(t, "12345", f.Draft().Contact, "draft is kept")
	assert.Empty(t, nav.routes)
	api.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)

	require.NoError(t, f.Set(record.FieldContact, "0123456789"))
	assert.NotContains(t, f.Errors(), record.FieldContact, "editing a field clears its error")
}

func TestForm_ServerErrorsKeepDraft(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantErrors record.ValidationErrors
	}{
		{
			name:       "duplicate email",
			err:        &APIError{Status: http.StatusBadRequest, Code: "DuplicateEmail", Message: "Email already exists"},
			wantErrors: record.ValidationErrors{record.FieldEmail: MsgEmailTaken},
		},
		{
			name:       "server validation",
			err:        &APIError{Status: http.StatusBadRequest, Code: "ValidationFailed", Fields: map[string]string{"email": record.MsgInvalidFormat}},
			wantErrors: record.ValidationErrors{record.FieldEmail: record.MsgInvalidFormat},
		},
		{
			name:       "missing fields",
			err:        &APIError{Status: http.StatusBadRequest, Code: CodeMissingFields, Missing: []string{"contact"}},
			wantErrors: record.ValidationErrors{record.FieldContact: record.MsgRequired},
		},
		{
			name:       "network failure",
			err:        errors.Join(ErrUnavailable, errors.New("connection refused")),
			wantErrors: record.ValidationErrors{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := new(MockFormAPI)
			nav := &navRecorder{}
			f := NewForm(api, nav.Navigate, logger.Discard())
			fillValid(t, f)
			api.On("Create", mock.Anything, mock.Anything).Return(nil, tt.err)

			_, err := f.Submit(context.Background())

			assert.ErrorIs(t, err, tt.err)
			assert.Equal(t, tt.wantErrors, f.Errors())
			tr := testRecord()
			assert.Equal(t, tr.Draft(), f.Draft())
			assert.Equal(t, StateIdle, f.State())
			assert.Empty(t, nav.routes)
		})
	}
}

func TestForm_SingleSubmitInFlight(t *testing.T) {
	api := new(MockFormAPI)
	f := NewForm(api, nil, logger.Discard())
	fillValid(t, f)

	started := make(chan struct{})
	release := make(chan struct{})
	rec := testRecord()
	api.On("Create", mock.Anything, mock.Anything).
		Run(func(mock.Arguments) {
			close(started)
			<-release
		}).
		Return(&rec, nil).Once()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := f.Submit(context.Background())
		assert.NoError(t, err)
	}()

	<-started
	assert.Equal(t, StateSubmitting, f.State())
	_, err := f.Submit(context.Background())
	assert.ErrorIs(t, err, ErrSubmitInProgress)

	close(release)
	wg.Wait()
	api.AssertNumberOfCalls(t, "Create", 1)
}

func TestForm_Edit(t *testing.T) {
	t.Run("load then update", func(t *testing.T) {
		api := new(MockFormAPI)
		nav := &navRecorder{}
		f := NewEditForm(api, testID, nav.Navigate, logger.Discard())
		rec := testRecord()
		api.On("Get", mock.Anything, testID).Return(&rec, nil)

		_, err := f.Submit(context.Background())
		assert.ErrorIs(t, err, ErrNotLoaded)

		require.NoError(t, f.Load(context.Background()))
		assert.Equal(t, "60000", f.Draft().Salary)
		require.NoError(t, f.Set(record.FieldSalary, "70000"))

		updated := testRecord()
		updated.Salary = 70000
		api.On("Update", mock.Anything, testID, mock.MatchedBy(func(p record.Patch) bool {
			return p[record.FieldSalary] == "70000" && p[record.FieldEmail] == "john@example.com"
		})).Return(&updated, nil)

		got, err := f.Submit(context.Background())

		require.NoError(t, err)
		assert.Equal(t, int64(70000), got.Salary)
		assert.Equal(t, []string{RouteList}, nav.routes)
		api.AssertExpectations(t)
	})

	t.Run("missing record navigates away", func(t *testing.T) {
		api := new(MockFormAPI)
		nav := &navRecorder{}
		f := NewEditForm(api, testID, nav.Navigate, logger.Discard())
		api.On("Get", mock.Anything, testID).
			Return(nil, &APIError{Status: http.StatusNotFound, Code: "NotFound", Message: "Record not found"})

		err := f.Load(context.Background())

		assert.Error(t, err)
		assert.Equal(t, StateNotFound, f.State())
		assert.Equal(t, []string{RouteList}, nav.routes)
	})

	t.Run("network failure stays on form", func(t *testing.T) {
		api := new(MockFormAPI)
		nav := &navRecorder{}
		f := NewEditForm(api, testID, nav.Navigate, logger.Discard())
		api.On("Get", mock.Anything, testID).Return(nil, ErrUnavailable)

		err := f.Load(context.Background())

		assert.ErrorIs(t, err, ErrUnavailable)
		assert.Equal(t, StateIdle, f.State())
		assert.Empty(t, nav.routes)
	})
}

func TestForm_SetUnknownField(t *testing.T) {
	f := NewForm(new(MockFormAPI), nil, logger.Discard())

	assert.ErrorIs(t, f.Set("nickname", "JJ"), ErrUnknownField)
}
