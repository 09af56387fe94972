package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanpaul/studentdb/internal/student"
)

const malformed = "1\nAda\nLovelace\nMath\nA\nbroken\nAlan\nTuring\nLogic\nB\n"

func TestFileBackendMissingFile(t *testing.T) {
	b := NewFileBackend(filepath.Join(t.TempDir(), "none.data"))
	records, err := b.Load()
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestFileBackendRoundTripByteStable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.data")
	in := []student.Record{
		student.New(2, "Ada", "Lovelace", "Math", "A"),
		student.New(5, "Alan", "Turing", "Logic", "B-"),
	}
	b := NewFileBackend(path)
	require.NoError(t, b.Save(in))
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	out, err := b.Load()
	require.NoError(t, err)
	assert.Equal(t, in, out)

	require.NoError(t, b.Save(out))
	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFileBackendLenientDropsTail(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.data")
	require.NoError(t, os.WriteFile(path, []byte(malformed), 0644))

	records, err := NewFileBackend(path).Load()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Ada", records[0].FirstName)
}

func TestFileBackendStrictRejects(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.data")
	require.NoError(t, os.WriteFile(path, []byte(malformed), 0644))

	_, err := NewFileBackend(path, WithStrict(true)).Load()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMalformed))
	assert.True(t, errors.Is(err, student.ErrBadID))

	var me *MalformedError
	require.True(t, errors.As(err, &me))
	assert.Equal(t, path, me.Path)
	assert.Equal(t, 6, me.Line)

	_, err = Open(NewFileBackend(path, WithStrict(true)))
	assert.True(t, errors.Is(err, ErrMalformed))
}

func TestFileBackendCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "db.data")
	require.NoError(t, NewFileBackend(path).Save([]student.Record{student.New(1, "A", "B", "C", "D")}))
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestFileBackendTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.data")
	b := NewFileBackend(path)
	require.NoError(t, b.Save([]student.Record{
		student.New(1, "Ada", "Lovelace", "Math", "A"),
		student.New(2, "Alan", "Turing", "Logic", "B"),
	}))
	require.NoError(t, b.Save([]student.Record{student.New(2, "Alan", "Turing", "Logic", "B")}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "2\nAlan\nTuring\nLogic\nB\n", string(data))
}

func TestDefaultPath(t *testing.T) {
	assert.Equal(t, DefaultFileName, NewFileBackend("").Path())
}
