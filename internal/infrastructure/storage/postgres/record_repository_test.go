package postgres

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"employees/internal/app/server/config"
	"employees/internal/domain/record"
	"employees/internal/infrastructure/storage/storagetest"
	"employees/internal/utils/logger"
)

// Интеграционный тест: нужен живой Postgres в TEST_DATABASE_URI.
func TestRecordRepository_Contract(t *testing.T) {
	uri := os.Getenv("TEST_DATABASE_URI")
	if uri == "" {
		t.Skip("TEST_DATABASE_URI is not set")
	}

	cfg := &config.Config{}
	cfg.DB.DatabaseURI = uri
	cfg.DB.Migrations = "../../../../migrations"

	ctx := context.Background()
	st, err := New(ctx, cfg, logger.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	storagetest.Run(t, func(t *testing.T) record.Repository {
		_, err := st.Pool().Exec(ctx, `TRUNCATE records`)
		require.NoError(t, err)
		return NewRecordRepository(st, logger.Discard())
	})
}
