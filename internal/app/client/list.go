package client

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"sync"
	"text/tabwriter"

	"golang.org/x/exp/slog"

	"employees/internal/domain/record"
)

// EmptyPlaceholder is the single row rendered for an empty list.
const EmptyPlaceholder = "No records found"

// ListAPI is the part of the records API a list view talks to.
type ListAPI interface {
	List(ctx context.Context) ([]record.Record, error)
	Search(ctx context.Context, query string) ([]record.Record, error)
	Delete(ctx context.Context, id string) (*DeleteResult, error)
}

// List is the local state of the records table.
type List struct {
	api ListAPI
	log *slog.Logger

	mu      sync.Mutex
	records []record.Record
}

func NewList(api ListAPI, log *slog.Logger) *List {
	return &List{
		api: api,
		log: log.With("component", "record_list"),
	}
}

// Load fetches the whole collection once and replaces the local copy.
func (l *List) Load(ctx context.Context) error {
	records, err := l.api.List(ctx)
	if err != nil {
		return fmt.Errorf("load records: %w", err)
	}

	l.mu.Lock()
	l.records = records
	l.mu.Unlock()
	return nil
}

// Search replaces the local copy with the records matching query.
func (l *List) Search(ctx context.Context, query string) error {
	records, err := l.api.Search(ctx, query)
	if err != nil {
		return fmt.Errorf("search records: %w", err)
	}

	l.mu.Lock()
	l.records = records
	l.mu.Unlock()
	return nil
}

// Delete removes the record on the server and, only once that succeeded,
// from the local copy. The list is not fetched again.
func (l *List) Delete(ctx context.Context, id string) error {
	if _, err := l.api.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	for i := range l.records {
		if l.records[i].ID == id {
			l.records = append(l.records[:i], l.records[i+1:]...)
			break
		}
	}
	l.log.Debug("record removed from list", "record_id", id, "left", len(l.records))
	return nil
}

// Records returns a copy of the local state.
func (l *List) Records() []record.Record {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]record.Record(nil), l.records...)
}

// Render печатает таблицу записей.
func (l *List) Render(w io.Writer) error {
	records := l.Records()

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "NAME\tEMAIL\tCONTACT\tDESIGNATION\tSALARY\tID\t\n")

	if len(records) == 0 {
		fmt.Fprintf(tw, "%s\t\t\t\t\t\t\n", EmptyPlaceholder)
	}
	for _, rec := range records {
		fmt.Fprintf(tw, "%s %s\t%s\t%s\t%s\t%s\t%s\t\n",
			rec.Firstname,
			rec.Lastname,
			rec.Email,
			rec.Contact,
			rec.Designation,
			strconv.FormatInt(rec.Salary, 10),
			rec.ID,
		)
	}

	return tw.Flush()
}
