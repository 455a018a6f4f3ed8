package migration

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	// Blank import required for PostgreSQL driver registration for migrations
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"golang.org/x/exp/slog"

	"employees/internal/app/server/config"
)

var (
	ErrNoDatabaseURI = errors.New("DATABASE_URI is not set")
	ErrDirty         = errors.New("records schema is dirty")
)

// Migrator — часть migrate.Migrate, нужная для схемы записей
type Migrator interface {
	Up() error
	Version() (version uint, dirty bool, err error)
	Close() (error, error)
}

// MigrationEngine — фабрика мигратора (в тестах подменяется моком)
type MigrationEngine func(sourceURL, databaseURL string) (Migrator, error)

type Migration struct {
	sourceURL   string
	databaseURL string
	engine      MigrationEngine
	log         *slog.Logger
}

// NewMigration берет путь к migrations/ и DSN из конфигурации сервера.
func NewMigration(conf *config.Config, engine MigrationEngine, log *slog.Logger) *Migration {
	source := conf.DB.Migrations
	if !strings.Contains(source, "://") {
		source = "file://" + source
	}
	return &Migration{
		sourceURL:   source,
		databaseURL: conf.DB.DatabaseURI,
		engine:      engine,
		log:         log.With("component", "migration"),
	}
}

func DefaultEngine(sourceURL, databaseURL string) (Migrator, error) {
	return migrate.New(sourceURL, databaseURL)
}

// Up доводит таблицу records до последней версии и возвращает ее номер.
// Грязная версия после прерванной миграции — ошибка: ее чинят вручную.
func (mg *Migration) Up() (version uint, err error) {
	if mg.databaseURL == "" {
		return 0, ErrNoDatabaseURI
	}

	m, err := mg.engine(mg.sourceURL, mg.databaseURL)
	if err != nil {
		return 0, fmt.Errorf("open migrations %s: %w", mg.sourceURL, err)
	}
	defer func() {
		serr, dberr := m.Close()
		if serr != nil {
			err = errors.Join(err, fmt.Errorf("migration source: %w", serr))
		}
		if dberr != nil {
			err = errors.Join(err, fmt.Errorf("migration database: %w", dberr))
		}
	}()

	upErr := m.Up()
	if upErr != nil && !errors.Is(upErr, migrate.ErrNoChange) {
		return 0, fmt.Errorf("migration up: %w", upErr)
	}

	version, dirty, err := m.Version()
	switch {
	case errors.Is(err, migrate.ErrNilVersion):
		version, err = 0, nil
	case err != nil:
		return 0, fmt.Errorf("migration version: %w", err)
	}
	if dirty {
		return version, fmt.Errorf("%w at version %d", ErrDirty, version)
	}

	if errors.Is(upErr, migrate.ErrNoChange) {
		mg.log.Debug("records schema up to date", "version", version)
	} else {
		mg.log.Info("records schema migrated", "version", version)
	}
	return version, nil
}
