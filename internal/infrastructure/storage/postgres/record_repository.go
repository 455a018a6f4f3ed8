package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/exp/slog"

	"employees/internal/domain/record"
)

const (
	recordColumns = `id::text, firstname, lastname, email, contact, designation, salary, created_at, updated_at`

	uniqueViolation = "23505"
	emailConstraint = "records_email_key"
)

type RecordRepository struct {
	storage *Storage
	log     *slog.Logger
}

func NewRecordRepository(storage *Storage, log *slog.Logger) *RecordRepository {
	return &RecordRepository{
		storage: storage,
		log:     log.With("component", "record_repository"),
	}
}

func (r *RecordRepository) Get(ctx context.Context, id string) (*record.Record, error) {
	const query = `SELECT ` + recordColumns + ` FROM records WHERE id = $1`

	rec, err := scanRecord(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, record.ErrNotFound
		}
		r.log.Error("failed to get record", "record_id", id, "error", err)
		return nil, &record.StoreError{Op: "get", Err: err}
	}
	return rec, nil
}

func (r *RecordRepository) FindOne(ctx context.Context, filter record.Filter) (*record.Record, error) {
	where, args := buildWhere(filter)
	query := `SELECT ` + recordColumns + ` FROM records` + where + ` ORDER BY created_at DESC, seq DESC LIMIT 1`

	rec, err := scanRecord(r.storage.pool.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, record.ErrNotFound
		}
		r.log.Error("failed to find record", "error", err)
		return nil, &record.StoreError{Op: "find one", Err: err}
	}
	return rec, nil
}

func (r *RecordRepository) Find(ctx context.Context, filter record.Filter) ([]record.Record, error) {
	where, args := buildWhere(filter)
	query := `SELECT ` + recordColumns + ` FROM records` + where + ` ORDER BY created_at DESC, seq DESC`

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		r.log.Error("failed to find records", "query", filter.Query, "error", err)
		return nil, &record.StoreError{Op: "find", Err: err}
	}
	defer rows.Close()

	records, err := scanRecords(rows)
	if err != nil {
		return nil, &record.StoreError{Op: "find", Err: err}
	}
	return records, nil
}

func (r *RecordRepository) Insert(ctx context.Context, rec *record.Record) (*record.Record, error) {
	const query = `
		INSERT INTO records (firstname, lastname, email, contact, designation, salary, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + recordColumns

	stored, err := scanRecord(r.storage.pool.QueryRow(ctx, query,
		rec.Firstname, rec.Lastname, rec.Email, rec.Contact, rec.Designation,
		rec.Salary, rec.CreatedAt, rec.UpdatedAt,
	))
	if err != nil {
		if isEmailConflict(err) {
			return nil, record.ErrDuplicateEmail
		}
		r.log.Error("failed to create record", "email", rec.Email, "error", err)
		return nil, &record.StoreError{Op: "insert", Err: err}
	}
	return stored, nil
}

func (r *RecordRepository) Patch(ctx context.Context, id string, patch record.Patch, updatedAt time.Time) (*record.Record, error) {
	sets := make([]string, 0, len(patch)+1)
	args := make([]interface{}, 0, len(patch)+2)
	argIndex := 1

	for _, f := range patch.Keys() {
		sets = append(sets, fmt.Sprintf("%s = $%d", f, argIndex))
		argIndex++
		if f == record.FieldSalary {
			salary, err := record.ParseSalary(patch[f])
			if err != nil {
				return nil, err
			}
			args = append(args, salary)
			continue
		}
		args = append(args, patch[f])
	}
	sets = append(sets, fmt.Sprintf("updated_at = $%d", argIndex))
	args = append(args, updatedAt, id)

	query := fmt.Sprintf(`UPDATE records SET %s WHERE id = $%d RETURNING %s`,
		strings.Join(sets, ", "), argIndex+1, recordColumns)

	rec, err := scanRecord(r.storage.pool.QueryRow(ctx, query, args...))
	if err != nil {
		switch {
		case errors.Is(err, pgx.ErrNoRows):
			return nil, record.ErrNotFound
		case isEmailConflict(err):
			return nil, record.ErrDuplicateEmail
		}
		r.log.Error("failed to update record", "record_id", id, "error", err)
		return nil, &record.StoreError{Op: "patch", Err: err}
	}
	return rec, nil
}

func (r *RecordRepository) Delete(ctx context.Context, id string) (*record.Record, error) {
	const query = `DELETE FROM records WHERE id = $1 RETURNING ` + recordColumns

	rec, err := scanRecord(r.storage.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, record.ErrNotFound
		}
		r.log.Error("failed to delete record", "record_id", id, "error", err)
		return nil, &record.StoreError{Op: "delete", Err: err}
	}
	return rec, nil
}

func (r *RecordRepository) Close() error {
	return r.storage.Close()
}

// buildWhere собирает условия фильтра с позиционными параметрами.
func buildWhere(filter record.Filter) (string, []interface{}) {
	var (
		conds []string
		args  []interface{}
	)
	argIndex := 1

	if filter.Email != "" {
		conds = append(conds, fmt.Sprintf("email = $%d", argIndex))
		args = append(args, filter.Email)
		argIndex++
	}
	if filter.ExcludeID != "" {
		conds = append(conds, fmt.Sprintf("id <> $%d", argIndex))
		args = append(args, filter.ExcludeID)
		argIndex++
	}
	if filter.Query != "" {
		conds = append(conds, fmt.Sprintf(`(strpos(lower(firstname), lower($%[1]d)) > 0
			OR strpos(lower(lastname), lower($%[1]d)) > 0
			OR strpos(lower(email), lower($%[1]d)) > 0
			OR strpos(lower(designation), lower($%[1]d)) > 0)`, argIndex))
		args = append(args, filter.Query)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanRecords(rows pgx.Rows) ([]record.Record, error) {
	records := make([]record.Record, 0)

	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}

	return records, rows.Err()
}

func scanRecord(row interface {
	Scan(dest ...interface{}) error
}) (*record.Record, error) {
	var rec record.Record

	err := row.Scan(
		&rec.ID, &rec.Firstname, &rec.Lastname, &rec.Email, &rec.Contact,
		&rec.Designation, &rec.Salary, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	rec.CreatedAt = rec.CreatedAt.UTC()
	rec.UpdatedAt = rec.UpdatedAt.UTC()
	return &rec, nil
}

func isEmailConflict(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation && pgErr.ConstraintName == emailConstraint
}
