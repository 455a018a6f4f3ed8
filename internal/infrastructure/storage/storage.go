package storage

import (
	"context"
	"fmt"

	"golang.org/x/exp/slog"

	"employees/internal/app/server/config"
	"employees/internal/domain/record"
	"employees/internal/infrastructure/storage/memory"
	"employees/internal/infrastructure/storage/postgres"
	"employees/internal/infrastructure/storage/sqlite"
)

// Open выбирает хранилище записей по cfg.Storage.Driver.
func Open(ctx context.Context, cfg *config.Config, log *slog.Logger) (record.Repository, error) {
	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		st, err := postgres.New(ctx, cfg, log)
		if err != nil {
			return nil, err
		}
		log.Info("storage ready", "driver", cfg.Storage.Driver)
		return postgres.NewRecordRepository(st, log), nil

	case config.DriverSQLite:
		repo, err := sqlite.New(cfg.Storage.SQLitePath, log)
		if err != nil {
			return nil, err
		}
		log.Info("storage ready", "driver", cfg.Storage.Driver, "path", cfg.Storage.SQLitePath)
		return repo, nil

	case config.DriverMemory:
		log.Warn("using in-memory storage, records are lost on restart")
		return memory.NewRecordRepository(log), nil
	}

	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}
