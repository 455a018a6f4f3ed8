// Package sqlite is the embedded record store used with STORAGE_DRIVER=sqlite.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mattn/go-sqlite3"
	"golang.org/x/exp/slog"

	"employees/internal/domain/record"
)

const columns = `id, firstname, lastname, email, contact, designation, salary, created_at, updated_at`

// driverName — sqlite3 с функцией fold: встроенный lower() в sqlite без ICU
// переводит в нижний регистр только ASCII.
const driverName = "sqlite3_employees"

func init() {
	sql.Register(driverName, &sqlite3.SQLiteDriver{
		ConnectHook: func(conn *sqlite3.SQLiteConn) error {
			return conn.RegisterFunc("fold", strings.ToLower, true)
		},
	})
}

type RecordRepository struct {
	db  *sql.DB
	log *slog.Logger
}

// New открывает базу по пути path (":memory:" для временной) и создает таблицы.
func New(path string, log *slog.Logger) (*RecordRepository, error) {
	db, err := sql.Open(driverName, path+"?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// одно соединение: :memory: живет ровно в нем, а запись в sqlite все равно последовательна
	db.SetMaxOpenConns(1)

	r := &RecordRepository{
		db:  db,
		log: log.With("component", "sqlite_record_repository"),
	}

	if err := r.initTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("init tables: %w", err)
	}

	return r, nil
}

func (r *RecordRepository) initTables() error {
	_, err := r.db.Exec(`
		CREATE TABLE IF NOT EXISTS records (
			seq         INTEGER PRIMARY KEY AUTOINCREMENT,
			id          TEXT    NOT NULL UNIQUE,
			firstname   TEXT    NOT NULL,
			lastname    TEXT    NOT NULL,
			email       TEXT    NOT NULL UNIQUE,
			contact     TEXT    NOT NULL,
			designation TEXT    NOT NULL,
			salary      INTEGER NOT NULL,
			created_at  INTEGER NOT NULL,
			updated_at  INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_records_created ON records(created_at DESC, seq DESC);
	`)
	return err
}

func (r *RecordRepository) Get(ctx context.Context, id string) (*record.Record, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+columns+` FROM records WHERE id = ?`, id)

	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, record.ErrNotFound
		}
		r.log.Error("failed to get record", "record_id", id, "error", err)
		return nil, &record.StoreError{Op: "get", Err: err}
	}
	return rec, nil
}

func (r *RecordRepository) FindOne(ctx context.Context, filter record.Filter) (*record.Record, error) {
	where, args := buildWhere(filter)
	row := r.db.QueryRowContext(ctx,
		`SELECT `+columns+` FROM records`+where+` ORDER BY created_at DESC, seq DESC LIMIT 1`, args...)

	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, record.ErrNotFound
		}
		r.log.Error("failed to find record", "error", err)
		return nil, &record.StoreError{Op: "find one", Err: err}
	}
	return rec, nil
}

func (r *RecordRepository) Find(ctx context.Context, filter record.Filter) ([]record.Record, error) {
	where, args := buildWhere(filter)
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+columns+` FROM records`+where+` ORDER BY created_at DESC, seq DESC`, args...)
	if err != nil {
		r.log.Error("failed to find records", "error", err)
		return nil, &record.StoreError{Op: "find", Err: err}
	}
	defer rows.Close()

	records := make([]record.Record, 0)
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, &record.StoreError{Op: "find", Err: err}
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, &record.StoreError{Op: "find", Err: err}
	}
	return records, nil
}

func (r *RecordRepository) Insert(ctx context.Context, rec *record.Record) (*record.Record, error) {
	const query = `
		INSERT INTO records (id, firstname, lastname, email, contact, designation, salary, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING ` + columns

	row := r.db.QueryRowContext(ctx, query,
		uuid.NewString(), rec.Firstname, rec.Lastname, rec.Email, rec.Contact, rec.Designation,
		rec.Salary, rec.CreatedAt.UnixMicro(), rec.UpdatedAt.UnixMicro(),
	)

	stored, err := scanRecord(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, record.ErrDuplicateEmail
		}
		r.log.Error("failed to insert record", "email", rec.Email, "error", err)
		return nil, &record.StoreError{Op: "insert", Err: err}
	}
	return stored, nil
}

func (r *RecordRepository) Patch(ctx context.Context, id string, patch record.Patch, updatedAt time.Time) (*record.Record, error) {
	sets := make([]string, 0, len(patch)+1)
	args := make([]any, 0, len(patch)+2)
	for _, f := range patch.Keys() {
		sets = append(sets, f+" = ?")
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
	sets = append(sets, "updated_at = ?")
	args = append(args, updatedAt.UnixMicro(), id)

	row := r.db.QueryRowContext(ctx,
		`UPDATE records SET `+strings.Join(sets, ", ")+` WHERE id = ? RETURNING `+columns, args...)

	rec, err := scanRecord(row)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, record.ErrNotFound
		case isUniqueViolation(err):
			return nil, record.ErrDuplicateEmail
		}
		r.log.Error("failed to patch record", "record_id", id, "error", err)
		return nil, &record.StoreError{Op: "patch", Err: err}
	}
	return rec, nil
}

func (r *RecordRepository) Delete(ctx context.Context, id string) (*record.Record, error) {
	row := r.db.QueryRowContext(ctx, `DELETE FROM records WHERE id = ? RETURNING `+columns, id)

	rec, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, record.ErrNotFound
		}
		r.log.Error("failed to delete record", "record_id", id, "error", err)
		return nil, &record.StoreError{Op: "delete", Err: err}
	}
	return rec, nil
}

func (r *RecordRepository) Close() error {
	return r.db.Close()
}

func buildWhere(filter record.Filter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	if filter.Email != "" {
		conds = append(conds, "email = ?")
		args = append(args, filter.Email)
	}
	if filter.ExcludeID != "" {
		conds = append(conds, "id <> ?")
		args = append(args, filter.ExcludeID)
	}
	if filter.Query != "" {
		q := strings.ToLower(filter.Query)
		conds = append(conds, `(instr(fold(firstname), ?) > 0
			OR instr(fold(lastname), ?) > 0
			OR instr(fold(email), ?) > 0
			OR instr(fold(designation), ?) > 0)`)
		args = append(args, q, q, q, q)
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func scanRecord(row interface {
	Scan(dest ...interface{}) error
}) (*record.Record, error) {
	var (
		rec                  record.Record
		createdAt, updatedAt int64
	)

	err := row.Scan(
		&rec.ID, &rec.Firstname, &rec.Lastname, &rec.Email, &rec.Contact,
		&rec.Designation, &rec.Salary, &createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}

	rec.CreatedAt = time.UnixMicro(createdAt).UTC()
	rec.UpdatedAt = time.UnixMicro(updatedAt).UTC()
	return &rec, nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}
