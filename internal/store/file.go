package store

import (
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"

	"github.com/jeanpaul/studentdb/internal/student"
)

// DefaultFileName is the data file used when no path is configured.
const DefaultFileName = "StudentDb.data"

// FileBackend persists records in the five-line text format, rewriting the whole
// file on every save.
type FileBackend struct {
	path   string
	strict bool
	log    zerolog.Logger
}

var _ Backend = (*FileBackend)(nil)

// FileOption configures a FileBackend.
type FileOption func(*FileBackend)

// WithStrict makes Load fail on a record that does not decode instead of
// dropping it and everything after it.
func WithStrict(strict bool) FileOption {
	return func(b *FileBackend) { b.strict = strict }
}

// WithFileLogger sets the logger used for load diagnostics.
func WithFileLogger(log zerolog.Logger) FileOption {
	return func(b *FileBackend) { b.log = log }
}

func NewFileBackend(path string, opts ...FileOption) *FileBackend {
	if path == "" {
		path = DefaultFileName
	}
	b := &FileBackend{path: path, log: zerolog.Nop()}
	for _, o := range opts {
		o(b)
	}
	return b
}

// Path returns the data file location.
func (b *FileBackend) Path() string { return b.path }

// Load reads every record from the data file. A missing file is an empty store.
func (b *FileBackend) Load() ([]student.Record, error) {
	f, err := os.Open(b.path)
	if err != nil {
		if os.IsNotExist(err) {
			b.log.Debug().Str("path", b.path).Msg("data file absent, starting empty")
			return []student.Record{}, nil
		}
		return nil, errors.Wrapf(err, "open %s", b.path)
	}
	defer f.Close()

	records := []student.Record{}
	dec := student.NewDecoder(f)
	for {
		rec, err := dec.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			if b.strict {
				return nil, &MalformedError{Path: b.path, Line: dec.Line(), Err: err}
			}
			b.log.Warn().Err(err).Str("path", b.path).Int("line", dec.Line()).Int("kept", len(records)).
				Msg("dropping malformed tail of data file")
			break
		}
		records = append(records, rec)
	}
	b.log.Debug().Str("path", b.path).Int("records", len(records)).Msg("loaded data file")
	return records, nil
}

// Save truncates the data file and writes records in the order given.
func (b *FileBackend) Save(records []student.Record) error {
	if dir := filepath.Dir(b.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return &PersistenceError{Op: "mkdir", Path: dir, Err: err}
		}
	}

	f, err := os.OpenFile(b.path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return &PersistenceError{Op: "open", Path: b.path, Err: err}
	}
	if err := student.EncodeAll(f, records); err != nil {
		f.Close()
		return &PersistenceError{Op: "write", Path: b.path, Err: err}
	}
	if err := f.Close(); err != nil {
		return &PersistenceError{Op: "close", Path: b.path, Err: err}
	}
	b.log.Debug().Str("path", b.path).Int("records", len(records)).Msg("saved data file")
	return nil
}
