// Package memory keeps records in process memory. It backs
// STORAGE_DRIVER=memory and the router tests.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"employees/internal/domain/record"
)

type entry struct {
	rec record.Record
	seq int64
}

type RecordRepository struct {
	mu      sync.RWMutex
	records map[string]entry
	emails  map[string]string
	seq     int64
	log     *slog.Logger
}

func NewRecordRepository(log *slog.Logger) *RecordRepository {
	return &RecordRepository{
		records: make(map[string]entry),
		emails:  make(map[string]string),
		log:     log.With("component", "memory_record_repository"),
	}
}

func (r *RecordRepository) Get(_ context.Context, id string) (*record.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.records[id]
	if !ok {
		return nil, record.ErrNotFound
	}
	rec := e.rec
	return &rec, nil
}

func (r *RecordRepository) FindOne(_ context.Context, filter record.Filter) (*record.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, e := range r.sorted() {
		if matches(e.rec, filter) {
			rec := e.rec
			return &rec, nil
		}
	}
	return nil, record.ErrNotFound
}

func (r *RecordRepository) Find(_ context.Context, filter record.Filter) ([]record.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]record.Record, 0, len(r.records))
	for _, e := range r.sorted() {
		if matches(e.rec, filter) {
			records = append(records, e.rec)
		}
	}
	return records, nil
}

func (r *RecordRepository) Insert(_ context.Context, rec *record.Record) (*record.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.emails[rec.Email]; taken {
		return nil, record.ErrDuplicateEmail
	}

	stored := *rec
	stored.ID = uuid.NewString()
	r.seq++
	r.records[stored.ID] = entry{rec: stored, seq: r.seq}
	r.emails[stored.Email] = stored.ID

	return &stored, nil
}

func (r *RecordRepository) Patch(_ context.Context, id string, patch record.Patch, updatedAt time.Time) (*record.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.records[id]
	if !ok {
		return nil, record.ErrNotFound
	}

	if email, ok := patch[record.FieldEmail]; ok {
		if owner, taken := r.emails[email]; taken && owner != id {
			return nil, record.ErrDuplicateEmail
		}
	}

	oldEmail := e.rec.Email
	if err := patch.Apply(&e.rec); err != nil {
		return nil, err
	}
	e.rec.UpdatedAt = updatedAt

	delete(r.emails, oldEmail)
	r.emails[e.rec.Email] = id
	r.records[id] = e

	rec := e.rec
	return &rec, nil
}

func (r *RecordRepository) Delete(_ context.Context, id string) (*record.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.records[id]
	if !ok {
		return nil, record.ErrNotFound
	}
	delete(r.records, id)
	delete(r.emails, e.rec.Email)

	rec := e.rec
	return &rec, nil
}

func (r *RecordRepository) Close() error {
	r.log.Debug("memory repository closed", "records", len(r.records))
	return nil
}

// sorted must be called with the lock held.
func (r *RecordRepository) sorted() []entry {
	entries := make([]entry, 0, len(r.records))
	for _, e := range r.records {
		entries = append(entries, e)
	}
	sort.Slice(entries, func(i, j int) bool {
		if !entries[i].rec.CreatedAt.Equal(entries[j].rec.CreatedAt) {
			return entries[i].rec.CreatedAt.After(entries[j].rec.CreatedAt)
		}
		return entries[i].seq > entries[j].seq
	})
	return entries
}

func matches(rec record.Record, filter record.Filter) bool {
	if filter.ExcludeID != "" && rec.ID == filter.ExcludeID {
		return false
	}
	if filter.Email != "" && rec.Email != filter.Email {
		return false
	}
	if filter.Query != "" {
		q := strings.ToLower(filter.Query)
		for _, field := range []string{rec.Firstname, rec.Lastname, rec.Email, rec.Designation} {
			if strings.Contains(strings.ToLower(field), q) {
				return true
			}
		}
		return false
	}
	return true
}
