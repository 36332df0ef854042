package storage

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.db")
	require.NoError(t, Init(path))
	t.Cleanup(func() { Close() })
}

func TestAddAndRecent(t *testing.T) {
	setup(t)

	_, err := Add("show production", "SELECT * FROM production LIMIT 100", 42, 12, "")
	require.NoError(t, err)
	_, err = Add("total emissions", "SELECT SUM(april) FROM emission", 10, 1, "")
	require.NoError(t, err)

	entries, err := Recent(10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "total emissions", entries[0].Question)
	assert.Equal(t, "show production", entries[1].Question)
	assert.Equal(t, int64(12), entries[1].RowCount)
	assert.Empty(t, entries[0].Error)
	assert.False(t, entries[0].CreatedAt.IsZero())
}

func TestRecentLimit(t *testing.T) {
	setup(t)

	for i := 0; i < 5; i++ {
		_, err := Add("q", "SELECT 1", 0, 0, "")
		require.NoError(t, err)
	}

	entries, err := Recent(3)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestErrorIsStored(t *testing.T) {
	setup(t)

	_, err := Add("bad question", "SELECT nope", 5, 0, "no such column: nope")
	require.NoError(t, err)

	entries, err := Recent(1)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "no such column: nope", entries[0].Error)
}

func TestClear(t *testing.T) {
	setup(t)

	_, err := Add("q", "SELECT 1", 0, 0, "")
	require.NoError(t, err)
	require.NoError(t, Clear())

	entries, err := Recent(10)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
