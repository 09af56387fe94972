// Package store owns the student records, assigns their ids, validates grades and
// keeps a Backend in step with every change.
package store

import (
	"math"
	"slices"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/jeanpaul/studentdb/internal/student"
)

// SyncMode controls when the store writes to its backend.
type SyncMode int

const (
	// SyncAlways rewrites the backend after every successful mutation.
	SyncAlways SyncMode = iota
	// SyncOnFlush defers writing until Flush is called.
	SyncOnFlush
)

// ParseSyncMode maps a configuration value to a SyncMode.
func ParseSyncMode(s string) (SyncMode, error) {
	switch s {
	case "", "always":
		return SyncAlways, nil
	case "flush":
		return SyncOnFlush, nil
	default:
		return SyncAlways, errors.Errorf("unknown sync mode %q (must be always or flush)", s)
	}
}

// Store is the in-memory owner of all records.
type Store struct {
	mu      sync.RWMutex
	records map[int64]student.Record
	lastID  int64
	dirty   bool

	backend Backend
	sync    SyncMode
	log     zerolog.Logger
}

var _ Repository = (*Store)(nil)

// Option configures a Store.
type Option func(*Store)

func WithSyncMode(m SyncMode) Option {
	return func(s *Store) { s.sync = m }
}

func WithLogger(log zerolog.Logger) Option {
	return func(s *Store) { s.log = log }
}

// Open loads every record from backend and continues the id sequence after the
// highest id found.
func Open(backend Backend, opts ...Option) (*Store, error) {
	s := &Store{
		records: make(map[int64]student.Record),
		backend: backend,
		log:     zerolog.Nop(),
	}
	for _, o := range opts {
		o(s)
	}

	loaded, err := backend.Load()
	if err != nil {
		return nil, errors.Wrap(err, "load records")
	}
	for _, r := range loaded {
		if _, dup := s.records[r.ID]; dup {
			s.log.Warn().Int64("id", r.ID).Msg("duplicate id in persisted data, keeping the later record")
		}
		if r.ID <= 0 {
			s.log.Warn().Int64("id", r.ID).Msg("non-positive id in persisted data")
		}
		s.records[r.ID] = r
		if r.ID > s.lastID {
			s.lastID = r.ID
		}
	}
	s.log.Info().Int("records", len(s.records)).Int64("last_id", s.lastID).Msg("store opened")
	return s, nil
}

// Add validates grade, assigns the next id and stores a new record.
func (s *Store) Add(firstName, lastName, course, grade string) (student.Record, error) {
	if !student.ValidGrade(grade) {
		return student.Record{}, errors.Wrapf(ErrInvalidGrade, "%q", grade)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lastID == math.MaxInt64 {
		return student.Record{}, ErrIDExhausted
	}
	s.lastID++
	rec := student.New(s.lastID, firstName, lastName, course, grade)
	s.records[rec.ID] = rec
	s.log.Debug().Int64("id", rec.ID).Msg("record added")
	return rec, s.persist()
}

// Get returns a copy of the record with the given id.
func (s *Store) Get(id int64) (student.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[id]
	if !ok {
		return student.Record{}, errors.Wrapf(ErrNotFound, "id %d", id)
	}
	return rec, nil
}

// UpdateGrade replaces the grade of an existing record.
func (s *Store) UpdateGrade(id int64, grade string) error {
	if !student.ValidGrade(grade) {
		return errors.Wrapf(ErrInvalidGrade, "%q", grade)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.records[id]
	if !ok {
		return errors.Wrapf(ErrNotFound, "id %d", id)
	}
	rec.Grade = student.NormalizeGrade(grade)
	s.records[id] = rec
	s.log.Debug().Int64("id", id).Str("grade", rec.Grade).Msg("grade updated")
	return s.persist()
}

// Delete removes a record. Its id is never handed out again.
func (s *Store) Delete(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.records[id]; !ok {
		return errors.Wrapf(ErrNotFound, "id %d", id)
	}
	delete(s.records, id)
	s.log.Debug().Int64("id", id).Msg("record deleted")
	return s.persist()
}

// List returns all records ordered by ascending id.
func (s *Store) List() []student.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sorted()
}

// Len returns the number of records held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// LastID returns the most recently assigned id, or the highest loaded id.
func (s *Store) LastID() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastID
}

// Dirty reports whether memory holds changes the backend has not seen.
func (s *Store) Dirty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dirty
}

// Flush writes the full record set to the backend regardless of sync mode.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save()
}

func (s *Store) sorted() []student.Record {
	ids := make([]int64, 0, len(s.records))
	for id := range s.records {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	out := make([]student.Record, 0, len(ids))
	for _, id := range ids {
		out = append(out, s.records[id])
	}
	return out
}

// persist must be called with mu held.
func (s *Store) persist() error {
	if s.sync == SyncOnFlush {
		s.dirty = true
		return nil
	}
	return s.save()
}

// save must be called with mu held.
func (s *Store) save() error {
	if err := s.backend.Save(s.sorted()); err != nil {
		s.dirty = true
		var pe *PersistenceError
		if !errors.As(err, &pe) {
			err = &PersistenceError{Op: "save", Err: err}
		}
		s.log.Error().Err(err).Msg("saving records failed")
		return err
	}
	s.dirty = false
	return nil
}
