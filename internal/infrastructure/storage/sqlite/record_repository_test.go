package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"employees/internal/domain/record"
	"employees/internal/infrastructure/storage/storagetest"
	"employees/internal/utils/logger"
)

func TestRecordRepository_Contract(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) record.Repository {
		repo, err := New(":memory:", logger.Discard())
		require.NoError(t, err)
		t.Cleanup(func() { _ = repo.Close() })
		return repo
	})
}

func TestRecordRepository_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "employees.db")
	ctx := context.Background()
	now := time.Date(2026, 5, 1, 10, 30, 0, 123456000, time.UTC)

	repo, err := New(path, logger.Discard())
	require.NoError(t, err)
	stored, err := repo.Insert(ctx, &record.Record{
		Firstname: "Ada", Lastname: "Lovelace", Email: "ada@example.com",
		Contact: "0012345678", Designation: "Analyst", Salary: 1234567,
		CreatedAt: now, UpdatedAt: now,
	})
	require.NoError(t, err)
	require.NoError(t, repo.Close())

	repo, err = New(path, logger.Discard())
	require.NoError(t, err)
	defer repo.Close()

	got, err := repo.Get(ctx, stored.ID)
	require.NoError(t, err)
	assert.Equal(t, "0012345678", got.Contact)
	assert.Equal(t, int64(1234567), got.Salary)
	assert.True(t, got.CreatedAt.Equal(now))
}
