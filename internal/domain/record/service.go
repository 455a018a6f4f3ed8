package record

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"
)

// Servicer is the record API contract used by the HTTP layer.
type Servicer interface {
	Get(ctx context.Context, id string) (*Record, error)
	List(ctx context.Context) ([]Record, error)
	Search(ctx context.Context, query string) ([]Record, error)
	Create(ctx context.Context, patch Patch) (*Record, error)
	Update(ctx context.Context, id string, patch Patch) (*Record, error)
	Delete(ctx context.Context, id string) (*Record, error)
}

// Service implements the record business rules on top of a Repository.
type Service struct {
	repo Repository
	now  func() time.Time
	log  *slog.Logger
}

type Option func(*Service)

// WithClock подменяет источник времени (для тестов).
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// NewService creates a new record service
func NewService(repo Repository, log *slog.Logger, opts ...Option) *Service {
	s := &Service{
		repo: repo,
		now:  Now,
		log:  log.With("component", "record_service"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now is the default clock: UTC truncated to the precision the stores keep.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// ParseID validates an identifier and returns its canonical form.
func ParseID(id string) (string, error) {
	parsed, err := uuid.Parse(id)
	if err != nil {
		return "", ErrInvalidID
	}
	return parsed.String(), nil
}

// Get returns a record by ID
func (s *Service) Get(ctx context.Context, id string) (*Record, error) {
	id, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		s.log.Error("failed to get record", "record_id", id, "error", err)
		return nil, fmt.Errorf("get record: %w", err)
	}
	return rec, nil
}

// List returns all records, newest first
func (s *Service) List(ctx context.Context) ([]Record, error) {
	records, err := s.repo.Find(ctx, Filter{})
	if err != nil {
		s.log.Error("failed to list records", "error", err)
		return nil, fmt.Errorf("list records: %w", err)
	}
	return records, nil
}

// Search returns records whose name, email or designation contains query.
func (s *Service) Search(ctx context.Context, query string) ([]Record, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrMissingQuery
	}

	records, err := s.repo.Find(ctx, Filter{Query: query})
	if err != nil {
		s.log.Error("failed to search records", "query", query, "error", err)
		return nil, fmt.Errorf("search records: %w", err)
	}
	return records, nil
}

// Create validates and stores a new record
func (s *Service) Create(ctx context.Context, patch Patch) (*Record, error) {
	if missing := patch.Missing(); len(missing) > 0 {
		return nil, &MissingFieldsError{Fields: missing}
	}

	if errs := Validate(patch.Draft()); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	if err := s.checkEmail(ctx, patch[FieldEmail], ""); err != nil {
		return nil, err
	}

	now := s.now()
	rec := &Record{CreatedAt: now, UpdatedAt: now}
	if err := patch.Apply(rec); err != nil {
		return nil, err
	}

	stored, err := s.repo.Insert(ctx, rec)
	if err != nil {
		if errors.Is(err, ErrDuplicateEmail) {
			return nil, ErrDuplicateEmail
		}
		s.log.Error("failed to create record", "email", rec.Email, "error", err)
		return nil, fmt.Errorf("create record: %w", err)
	}

	s.log.Info("record created successfully", "record_id", stored.ID)
	return stored, nil
}

// Update merges the supplied fields into an existing record
func (s *Service) Update(ctx context.Context, id string, patch Patch) (*Record, error) {
	id, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	if len(patch) == 0 {
		return nil, ErrEmptyBody
	}

	if errs := patch.Validate(); len(errs) > 0 {
		return nil, &ValidationError{Fields: errs}
	}

	if email, ok := patch[FieldEmail]; ok {
		if err := s.checkEmail(ctx, email, id); err != nil {
			return nil, err
		}
	}

	rec, err := s.repo.Patch(ctx, id, patch, s.now())
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			return nil, ErrNotFound
		case errors.Is(err, ErrDuplicateEmail):
			return nil, ErrDuplicateEmail
		}
		s.log.Error("failed to update record", "record_id", id, "error", err)
		return nil, fmt.Errorf("update record: %w", err)
	}

	s.log.Info("record updated successfully", "record_id", id, "fields", patch.Keys())
	return rec, nil
}

// Delete permanently removes a record and returns it
func (s *Service) Delete(ctx context.Context, id string) (*Record, error) {
	id, err := ParseID(id)
	if err != nil {
		return nil, err
	}

	rec, err := s.repo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		s.log.Error("failed to delete record", "record_id", id, "error", err)
		return nil, fmt.Errorf("delete record: %w", err)
	}

	s.log.Info("record deleted successfully", "record_id", id)
	return rec, nil
}

// checkEmail is the fast path of the uniqueness rule. The store's own
// constraint still decides when two writers race past this read.
func (s *Service) checkEmail(ctx context.Context, email, excludeID string) error {
	existing, err := s.repo.FindOne(ctx, Filter{Email: email, ExcludeID: excludeID})
	switch {
	case err == nil && existing != nil:
		return ErrDuplicateEmail
	case err == nil, errors.Is(err, ErrNotFound):
		return nil
	}
	s.log.Error("failed to check email", "error", err)
	return fmt.Errorf("check email: %w", err)
}
