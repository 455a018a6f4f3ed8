// Package storagetest holds the behaviour every record.Repository must show.
package storagetest

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"employees/internal/domain/record"
)

var base = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newRecord(first, last, email string, createdAt time.Time) *record.Record {
	return &record.Record{
		Firstname:   first,
		Lastname:    last,
		Email:       email,
		Contact:     "0123456789",
		Designation: "Engineer",
		Salary:      50000,
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt,
	}
}

// Run exercises repo against the store adapter contract. newRepo must return
// an empty repository.
func Run(t *testing.T, newRepo func(t *testing.T) record.Repository) {
	ctx := context.Background()

	t.Run("insert assigns id and keeps fields", func(t *testing.T) {
		repo := newRepo(t)
		in := newRecord("John", "Smith", "john@example.com", base)

		got, err := repo.Insert(ctx, in)

		require.NoError(t, err)
		_, err = uuid.Parse(got.ID)
		require.NoError(t, err)
		assert.Equal(t, "0123456789", got.Contact)
		assert.True(t, got.CreatedAt.Equal(base))
		assert.True(t, got.UpdatedAt.Equal(got.CreatedAt))

		fetched, err := repo.Get(ctx, got.ID)
		require.NoError(t, err)
		assert.Equal(t, got.Email, fetched.Email)
		assert.Equal(t, int64(50000), fetched.Salary)
	})

	t.Run("get unknown id", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Get(ctx, uuid.NewString())
		assert.ErrorIs(t, err, record.ErrNotFound)
	})

	t.Run("email is unique", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Insert(ctx, newRecord("A", "A", "dup@example.com", base))
		require.NoError(t, err)

		_, err = repo.Insert(ctx, newRecord("B", "B", "dup@example.com", base.Add(time.Second)))

		assert.ErrorIs(t, err, record.ErrDuplicateEmail)
		all, err := repo.Find(ctx, record.Filter{})
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("concurrent inserts with one email", func(t *testing.T) {
		repo := newRepo(t)
		const writers = 8
		var (
			wg      sync.WaitGroup
			mu      sync.Mutex
			success int
		)
		for i := 0; i < writers; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := repo.Insert(ctx, newRecord("R", "R", "race@example.com", base))
				if err == nil {
					mu.Lock()
					success++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, success)
	})

	t.Run("find one by email excluding id", func(t *testing.T) {
		repo := newRepo(t)
		a, err := repo.Insert(ctx, newRecord("A", "A", "a@example.com", base))
		require.NoError(t, err)

		got, err := repo.FindOne(ctx, record.Filter{Email: "a@example.com"})
		require.NoError(t, err)
		assert.Equal(t, a.ID, got.ID)

		_, err = repo.FindOne(ctx, record.Filter{Email: "a@example.com", ExcludeID: a.ID})
		assert.ErrorIs(t, err, record.ErrNotFound)

		_, err = repo.FindOne(ctx, record.Filter{Email: "A@example.com"})
		assert.ErrorIs(t, err, record.ErrNotFound)
	})

	t.Run("find orders newest first", func(t *testing.T) {
		repo := newRepo(t)
		oldest, _ := repo.Insert(ctx, newRecord("O", "O", "o@example.com", base))
		newest, _ := repo.Insert(ctx, newRecord("N", "N", "n@example.com", base.Add(2*time.Hour)))
		middle, _ := repo.Insert(ctx, newRecord("M", "M", "m@example.com", base.Add(time.Hour)))

		all, err := repo.Find(ctx, record.Filter{})

		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, []string{newest.ID, middle.ID, oldest.ID}, []string{all[0].ID, all[1].ID, all[2].ID})
	})

	t.Run("find on empty store", func(t *testing.T) {
		repo := newRepo(t)
		all, err := repo.Find(ctx, record.Filter{})
		require.NoError(t, err)
		assert.Empty(t, all)
	})

	t.Run("search is case insensitive substring", func(t *testing.T) {
		repo := newRepo(t)
		smith, _ := repo.Insert(ctx, newRecord("John", "Smith", "john@example.com", base))
		mail, _ := repo.Insert(ctx, newRecord("Ann", "Lee", "ann.smithers@example.com", base.Add(time.Minute)))
		_, _ = repo.Insert(ctx, newRecord("Bob", "Jones", "bob@example.com", base.Add(2*time.Minute)))
		title := newRecord("Eve", "Black", "eve@example.com", base.Add(3*time.Minute))
		title.Designation = "Blacksmith"
		titled, _ := repo.Insert(ctx, title)

		found, err := repo.Find(ctx, record.Filter{Query: "Smith"})

		require.NoError(t, err)
		ids := make([]string, 0, len(found))
		for _, r := range found {
			ids = append(ids, r.ID)
		}
		assert.Equal(t, []string{titled.ID, mail.ID, smith.ID}, ids)

		found, err = repo.Find(ctx, record.Filter{Query: "%"})
		require.NoError(t, err)
		assert.Empty(t, found)
	})

	t.Run("search folds non-ascii case", func(t *testing.T) {
		repo := newRepo(t)
		elodie, _ := repo.Insert(ctx, newRecord("Élodie", "Durand", "elodie@example.com", base))
		muller, _ := repo.Insert(ctx, newRecord("Hans", "Müller", "hans@example.com", base.Add(time.Minute)))

		found, err := repo.Find(ctx, record.Filter{Query: "élodie"})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, elodie.ID, found[0].ID)

		found, err = repo.Find(ctx, record.Filter{Query: "MÜLLER"})
		require.NoError(t, err)
		require.Len(t, found, 1)
		assert.Equal(t, muller.ID, found[0].ID)
	})

	t.Run("patch touches only supplied fields", func(t *testing.T) {
		repo := newRepo(t)
		in, err := repo.Insert(ctx, newRecord("John", "Smith", "john@example.com", base))
		require.NoError(t, err)
		later := base.Add(time.Hour)

		got, err := repo.Patch(ctx, in.ID, record.Patch{record.FieldSalary: "60000"}, later)

		require.NoError(t, err)
		assert.Equal(t, int64(60000), got.Salary)
		assert.Equal(t, in.Firstname, got.Firstname)
		assert.Equal(t, in.Lastname, got.Lastname)
		assert.Equal(t, in.Email, got.Email)
		assert.Equal(t, in.Contact, got.Contact)
		assert.Equal(t, in.Designation, got.Designation)
		assert.Equal(t, in.ID, got.ID)
		assert.True(t, got.CreatedAt.Equal(in.CreatedAt))
		assert.True(t, got.UpdatedAt.Equal(later))

		fetched, err := repo.Get(ctx, in.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(60000), fetched.Salary)
	})

	t.Run("patch email conflicts", func(t *testing.T) {
		repo := newRepo(t)
		a, _ := repo.Insert(ctx, newRecord("A", "A", "a@example.com", base))
		_, _ = repo.Insert(ctx, newRecord("B", "B", "b@example.com", base))

		_, err := repo.Patch(ctx, a.ID, record.Patch{record.FieldEmail: "b@example.com"}, base)
		assert.ErrorIs(t, err, record.ErrDuplicateEmail)

		got, err := repo.Patch(ctx, a.ID, record.Patch{record.FieldEmail: "a@example.com"}, base)
		require.NoError(t, err)
		assert.Equal(t, "a@example.com", got.Email)

		got, err = repo.Patch(ctx, a.ID, record.Patch{record.FieldEmail: "c@example.com"}, base)
		require.NoError(t, err)
		assert.Equal(t, "c@example.com", got.Email)

		_, err = repo.Insert(ctx, newRecord("D", "D", "a@example.com", base))
		assert.NoError(t, err)
	})

	t.Run("patch unknown id", func(t *testing.T) {
		repo := newRepo(t)
		_, err := repo.Patch(ctx, uuid.NewString(), record.Patch{record.FieldSalary: "1"}, base)
		assert.ErrorIs(t, err, record.ErrNotFound)
	})

	t.Run("delete returns document once", func(t *testing.T) {
		repo := newRepo(t)
		a, _ := repo.Insert(ctx, newRecord("A", "A", "a@example.com", base))
		_, _ = repo.Insert(ctx, newRecord("B", "B", "b@example.com", base))

		deleted, err := repo.Delete(ctx, a.ID)
		require.NoError(t, err)
		assert.Equal(t, a.ID, deleted.ID)
		assert.Equal(t, "a@example.com", deleted.Email)

		_, err = repo.Delete(ctx, a.ID)
		assert.ErrorIs(t, err, record.ErrNotFound)

		all, err := repo.Find(ctx, record.Filter{})
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})
}
