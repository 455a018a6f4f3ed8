package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"golang.org/x/exp/slog"

	"employees/internal/domain/record"
)

// RouteList is where a form navigates after a confirmed save or a missing record.
const RouteList = "/"

// MsgEmailTaken is the field error shown when the server reports a duplicate email.
const MsgEmailTaken = "already exists"

var (
	ErrSubmitInProgress = errors.New("submit already in progress")
	ErrUnknownField     = errors.New("unknown field")
	ErrNotLoaded        = errors.New("record is not loaded")
)

type State string

const (
	StateIdle       State = "idle"
	StateLoading    State = "loading"
	StateValidating State = "validating"
	StateSubmitting State = "submitting"
	StateNotFound   State = "notFound"
)

type Mode int

const (
	ModeCreate Mode = iota
	ModeEdit
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

// FormAPI is the part of the records API a form talks to.
type FormAPI interface {
	Get(ctx context.Context, id string) (*record.Record, error)
	Create(ctx context.Context, patch record.Patch) (*record.Record, error)
	Update(ctx context.Context, id string, patch record.Patch) (*record.Record, error)
}

// Navigator switches the view to route.
type Navigator func(route string)

// Form holds the draft of one record and drives its create or edit flow.
// Only one submit runs at a time; the draft is cleared only after the
// server confirmed the save.
type Form struct {
	api      FormAPI
	navigate Navigator
	log      *slog.Logger

	mu     sync.Mutex
	mode   Mode
	id     string
	state  State
	draft  record.Draft
	errors record.ValidationErrors
	loaded bool
}

// NewForm создает форму новой записи.
func NewForm(api FormAPI, navigate Navigator, log *slog.Logger) *Form {
	return newForm(api, ModeCreate, "", navigate, log)
}

// NewEditForm создает форму редактирования; поля заполняет Load.
func NewEditForm(api FormAPI, id string, navigate Navigator, log *slog.Logger) *Form {
	return newForm(api, ModeEdit, id, navigate, log)
}

func newForm(api FormAPI, mode Mode, id string, navigate Navigator, log *slog.Logger) *Form {
	if navigate == nil {
		navigate = func(string) {}
	}
	return &Form{
		api:      api,
		navigate: navigate,
		log:      log.With("component", "record_form", "mode", mode.String()),
		mode:     mode,
		id:       id,
		state:    StateIdle,
		loaded:   mode == ModeCreate,
	}
}

// Load fetches the record of an edit form. A missing record moves the form
// to notFound and navigates to the list.
func (f *Form) Load(ctx context.Context) error {
	f.mu.Lock()
	if f.mode != ModeEdit {
		f.mu.Unlock()
		return nil
	}
	f.state = StateLoading
	id := f.id
	f.mu.Unlock()

	rec, err := f.api.Get(ctx, id)

	f.mu.Lock()
	if err != nil {
		if IsCode(err, CodeNotFound) || IsCode(err, CodeInvalidID) {
			f.state = StateNotFound
			f.mu.Unlock()
			f.log.Warn("record not found, leaving form", "record_id", id)
			f.navigate(RouteList)
			return err
		}
		f.state = StateIdle
		f.mu.Unlock()
		return fmt.Errorf("load record: %w", err)
	}

	f.draft = rec.Draft()
	f.errors = nil
	f.loaded = true
	f.state = StateIdle
	f.mu.Unlock()
	return nil
}

// Set меняет одно поле черновика и снимает с него прежнюю ошибку.
func (f *Form) Set(field, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.draft.Set(field, value) {
		return fmt.Errorf("%w: %s", ErrUnknownField, field)
	}
	delete(f.errors, field)
	return nil
}

// Submit validates the draft and, if it is valid, saves it. On success the
// draft resets and the form navigates to the list; on any failure the draft
// stays as it was and field errors are kept for display.
func (f *Form) Submit(ctx context.Context) (*record.Record, error) {
	f.mu.Lock()
	if f.state == StateValidating || f.state == StateSubmitting {
		f.mu.Unlock()
		return nil, ErrSubmitInProgress
	}
	if !f.loaded {
		f.mu.Unlock()
		return nil, ErrNotLoaded
	}

	f.state = StateValidating
	if errs := record.Validate(f.draft); len(errs) > 0 {
		f.errors = errs
		f.state = StateIdle
		f.mu.Unlock()
		return nil, &record.ValidationError{Fields: errs}
	}

	f.errors = nil
	f.state = StateSubmitting
	patch := f.draft.Patch()
	mode, id := f.mode, f.id
	f.mu.Unlock()

	var (
		rec *record.Record
		err error
	)
	if mode == ModeEdit {
		rec, err = f.api.Update(ctx, id, patch)
	} else {
		rec, err = f.api.Create(ctx, patch)
	}

	f.mu.Lock()
	f.state = StateIdle
	if err != nil {
		f.errors = fieldErrors(err)
		f.mu.Unlock()
		f.log.Debug("submit failed", "error", err)
		return nil, err
	}
	f.draft = record.Draft{}
	f.mu.Unlock()

	f.log.Info("record saved", "record_id", rec.ID)
	f.navigate(RouteList)
	return rec, nil
}

func (f *Form) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *Form) Mode() Mode {
	return f.mode
}

func (f *Form) Draft() record.Draft {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft
}

// Errors returns a copy of the current field errors.
func (f *Form) Errors() record.ValidationErrors {
	f.mu.Lock()
	defer f.mu.Unlock()

	out := make(record.ValidationErrors, len(f.errors))
	for k, v := range f.errors {
		out[k] = v
	}
	return out
}

// fieldErrors переносит ответ сервера на поля формы.
func fieldErrors(err error) record.ValidationErrors {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return nil
	}

	switch apiErr.Code {
	case CodeDuplicateEmail:
		return record.ValidationErrors{record.FieldEmail: MsgEmailTaken}
	case CodeValidationFailed:
		return record.ValidationErrors(apiErr.Fields)
	case CodeMissingFields:
		errs := record.ValidationErrors{}
		for _, field := range apiErr.Missing {
			errs[field] = record.MsgRequired
		}
		return errs
	}
	return nil
}
