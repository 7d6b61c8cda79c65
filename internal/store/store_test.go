package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/wordle/apps/go-daily/internal/db"
)

func backends(t *testing.T) map[string]Store {
	t.Helper()
	conn, err := db.OpenMigrated(context.Background(), filepath.Join(t.TempDir(), "kv.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return map[string]Store{
		"memory": NewMemoryStore(),
		"sqlite": NewSQLiteStore(conn),
	}
}

func TestStoreContract(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(ctx, "absent")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Set(ctx, "k", []byte("old")))
			require.NoError(t, s.Set(ctx, "k", []byte("new")))

			v, err := s.Get(ctx, "k")
			require.NoError(t, err)
			assert.Equal(t, []byte("new"), v)

			require.NoError(t, s.Delete(ctx, "k"))
			_, err = s.Get(ctx, "k")
			assert.ErrorIs(t, err, ErrNotFound)

			require.NoError(t, s.Delete(ctx, "never-set"))
		})
	}
}

func TestMemoryStoreCopiesValues(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	buf := []byte("abc")
	require.NoError(t, s.Set(ctx, "k", buf))
	buf[0] = 'x'

	v, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, []byte("abc"), v)

	v[1] = 'y'
	again, _ := s.Get(ctx, "k")
	assert.Equal(t, []byte("abc"), again)
}
