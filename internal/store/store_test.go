package store

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jeanpaul/studentdb/internal/student"
)

// memBackend records every save so tests can see what reached storage.
type memBackend struct {
	records []student.Record
	saves   int
	failErr error
}

func (m *memBackend) Load() ([]student.Record, error) {
	return append([]student.Record(nil), m.records...), nil
}

func (m *memBackend) Save(records []student.Record) error {
	if m.failErr != nil {
		return m.failErr
	}
	m.saves++
	m.records = append([]student.Record(nil), records...)
	return nil
}

func openFileStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), DefaultFileName)
	s, err := Open(NewFileBackend(path))
	require.NoError(t, err)
	return s, path
}

func TestAddAssignsIncreasingIDs(t *testing.T) {
	s, _ := openFileStore(t)

	var last int64
	for i := 0; i < 5; i++ {
		rec, err := s.Add("First", "Last", "Course", "B")
		require.NoError(t, err)
		assert.Greater(t, rec.ID, last)
		last = rec.ID
	}
	assert.Equal(t, int64(5), s.LastID())
	assert.Equal(t, 5, s.Len())
}

func TestAddNormalizesGrade(t *testing.T) {
	s, _ := openFileStore(t)

	lower, err := s.Add("Ada", "Lovelace", "Math", "a-")
	require.NoError(t, err)
	upper, err := s.Add("Alan", "Turing", "Logic", "A-")
	require.NoError(t, err)

	assert.Equal(t, "A-", lower.Grade)
	assert.Equal(t, "A-", upper.Grade)
}

func TestAddRejectsInvalidGrade(t *testing.T) {
	mem := &memBackend{}
	s, err := Open(mem)
	require.NoError(t, err)

	_, err = s.Add("Ada", "Lovelace", "Math", "Z")
	assert.True(t, errors.Is(err, ErrInvalidGrade))
	assert.Equal(t, 0, s.Len())
	assert.Equal(t, int64(0), s.LastID())
	assert.Equal(t, 0, mem.saves)
}

func TestGetReturnsCopy(t *testing.T) {
	s, _ := openFileStore(t)
	rec, err := s.Add("Ada", "Lovelace", "Math", "A")
	require.NoError(t, err)

	got, err := s.Get(rec.ID)
	require.NoError(t, err)
	got.Grade = "F"

	again, err := s.Get(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", again.Grade)
}

func TestGetMissing(t *testing.T) {
	s, _ := openFileStore(t)
	_, err := s.Get(42)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "id 42")
}

func TestUpdateGrade(t *testing.T) {
	s, path := openFileStore(t)
	rec, err := s.Add("Ada", "Lovelace", "Math", "B")
	require.NoError(t, err)

	require.NoError(t, s.UpdateGrade(rec.ID, "a+"))
	got, err := s.Get(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, "A+", got.Grade)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "1\nAda\nLovelace\nMath\nA+\n", string(data))
}

func TestUpdateGradeValidatesBeforeLookup(t *testing.T) {
	s, _ := openFileStore(t)
	err := s.UpdateGrade(99, "nope")
	assert.True(t, errors.Is(err, ErrInvalidGrade))

	err = s.UpdateGrade(99, "C")
	assert.True(t, errors.Is(err, ErrNotFound))
}

func TestDeleteLeavesOthersUntouched(t *testing.T) {
	s, _ := openFileStore(t)
	a, _ := s.Add("Ada", "Lovelace", "Math", "A")
	b, _ := s.Add("Alan", "Turing", "Logic", "B")
	c, _ := s.Add("Grace", "Hopper", "CS", "C")

	require.NoError(t, s.Delete(b.ID))

	_, err := s.Get(b.ID)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Equal(t, []student.Record{a, c}, s.List())

	assert.True(t, errors.Is(s.Delete(b.ID), ErrNotFound))

	// ids are never reused
	d, err := s.Add("Kurt", "Godel", "Logic", "D")
	require.NoError(t, err)
	assert.Equal(t, int64(4), d.ID)
}

func TestListOrderedAndIdempotent(t *testing.T) {
	s, _ := openFileStore(t)
	assert.NotNil(t, s.List())
	assert.Empty(t, s.List())

	for _, g := range []string{"A", "B", "C"} {
		_, err := s.Add("F", "L", "Course", g)
		require.NoError(t, err)
	}
	first := s.List()
	second := s.List()
	assert.Equal(t, first, second)
	for i := 1; i < len(first); i++ {
		assert.Less(t, first[i-1].ID, first[i].ID)
	}
}

func TestCounterRecovery(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	seed := []student.Record{
		student.New(1, "Ada", "Lovelace", "Math", "A"),
		student.New(3, "Alan", "Turing", "Logic", "B"),
		student.New(7, "Grace", "Hopper", "CS", "C"),
	}
	require.NoError(t, NewFileBackend(path).Save(seed))

	s, err := Open(NewFileBackend(path))
	require.NoError(t, err)
	assert.Equal(t, seed, s.List())

	rec, err := s.Add("Kurt", "Godel", "Logic", "D")
	require.NoError(t, err)
	assert.Equal(t, int64(8), rec.ID)
}

func TestAddStopsAtMaxID(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFileName)
	require.NoError(t, os.WriteFile(path, []byte("9223372036854775807\nA\nB\nC\nA\n"), 0644))

	s, err := Open(NewFileBackend(path))
	require.NoError(t, err)
	require.Equal(t, int64(math.MaxInt64), s.LastID())

	_, err = s.Add("Kurt", "Godel", "Logic", "D")
	assert.True(t, errors.Is(err, ErrIDExhausted))
	assert.Equal(t, 1, s.Len())
	assert.Equal(t, int64(math.MaxInt64), s.LastID())
	assert.False(t, s.Dirty())
}

func TestOpenWarnsOnNonPositiveID(t *testing.T) {
	mem := &memBackend{records: []student.Record{
		student.New(0, "Zero", "Id", "Math", "A"),
		student.New(2, "Ada", "Lovelace", "Math", "B"),
	}}
	var buf bytes.Buffer
	s, err := Open(mem, WithLogger(zerolog.New(&buf)))
	require.NoError(t, err)

	assert.Equal(t, 2, s.Len())
	assert.Contains(t, buf.String(), "non-positive id in persisted data")
	assert.Contains(t, buf.String(), `"id":0`)
}

func TestPersistenceErrorKeepsMemory(t *testing.T) {
	mem := &memBackend{failErr: errors.New("disk full")}
	s, err := Open(mem)
	require.NoError(t, err)

	rec, err := s.Add("Ada", "Lovelace", "Math", "A")
	var pe *PersistenceError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "save", pe.Op)
	assert.True(t, s.Dirty())

	got, err := s.Get(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec, got)

	mem.failErr = nil
	require.NoError(t, s.Flush())
	assert.False(t, s.Dirty())
	assert.Equal(t, []student.Record{rec}, mem.records)
}

func TestFileSaveErrorIsPersistenceError(t *testing.T) {
	dir := t.TempDir()
	// a directory where the data file should be makes the open fail
	path := filepath.Join(dir, "data")
	require.NoError(t, os.Mkdir(path, 0755))

	s, err := Open(NewFileBackend(filepath.Join(dir, "missing.data")))
	require.NoError(t, err)
	s.backend = NewFileBackend(path)

	_, err = s.Add("Ada", "Lovelace", "Math", "A")
	var pe *PersistenceError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, "open", pe.Op)
	assert.Equal(t, path, pe.Path)
	assert.Equal(t, 1, s.Len())
}

func TestSyncOnFlush(t *testing.T) {
	mem := &memBackend{}
	s, err := Open(mem, WithSyncMode(SyncOnFlush))
	require.NoError(t, err)

	_, err = s.Add("Ada", "Lovelace", "Math", "A")
	require.NoError(t, err)
	_, err = s.Add("Alan", "Turing", "Logic", "B")
	require.NoError(t, err)
	assert.Equal(t, 0, mem.saves)
	assert.True(t, s.Dirty())

	require.NoError(t, s.Flush())
	assert.Equal(t, 1, mem.saves)
	assert.Len(t, mem.records, 2)
}

func TestParseSyncMode(t *testing.T) {
	m, err := ParseSyncMode("flush")
	require.NoError(t, err)
	assert.Equal(t, SyncOnFlush, m)

	m, err = ParseSyncMode("")
	require.NoError(t, err)
	assert.Equal(t, SyncAlways, m)

	_, err = ParseSyncMode("sometimes")
	assert.Error(t, err)
}
