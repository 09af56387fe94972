// Package health inspects the configured storage for the doctor command.
package health

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"

	"github.com/jeanpaul/studentdb/internal/store"
	"github.com/jeanpaul/studentdb/internal/student"
)

type Status struct {
	Path     string
	Exists   bool
	Writable bool
	Records  int
	// DecodeErr is set when part of the file does not decode; those records
	// would be dropped (or refused, in strict mode) on load.
	DecodeErr error
	// Stable is true when rewriting the decoded records reproduces the file
	// byte for byte.
	Stable   bool
	Diff     string
	Warnings []string
	Error    string
	Latency  time.Duration
}

// Healthy reports whether the store can be opened and written without losing data.
func (s Status) Healthy() bool {
	return s.Error == "" && s.DecodeErr == nil && s.Writable
}

// CheckDataFile examines a five-line data file.
func CheckDataFile(path string) (s Status) {
	start := time.Now()
	s = Status{Path: path, Stable: true}
	defer func() { s.Latency = time.Since(start) }()

	s.Writable = writable(filepath.Dir(path))

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s
		}
		s.Error = fmt.Sprintf("cannot read %s: %s", path, err)
		return s
	}
	s.Exists = true

	records, decErr := student.DecodeAll(bytes.NewReader(data))
	s.Records = len(records)
	s.DecodeErr = decErr
	s.Warnings = inspect(records)

	var buf bytes.Buffer
	if err := student.EncodeAll(&buf, records); err != nil {
		s.Error = err.Error()
		return s
	}
	if !bytes.Equal(buf.Bytes(), data) {
		s.Stable = false
		s.Diff = unifiedDiff(path, string(data), buf.String())
	}
	return s
}

// CheckBolt opens a bbolt database and loads its records.
func CheckBolt(path string) (s Status) {
	start := time.Now()
	s = Status{Path: path, Stable: true}
	defer func() { s.Latency = time.Since(start) }()

	s.Writable = writable(filepath.Dir(path))
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			s.Error = err.Error()
		}
		return s
	}
	s.Exists = true

	b, err := store.OpenBoltBackend(path)
	if err != nil {
		s.Error = err.Error()
		return s
	}
	defer b.Close()

	records, err := b.Load()
	if err != nil {
		s.DecodeErr = err
		return s
	}
	s.Records = len(records)
	s.Warnings = inspect(records)
	return s
}

// inspect flags data the store accepts but that a careful user would want to know about.
func inspect(records []student.Record) []string {
	var warnings []string
	seen := make(map[int64]bool)
	var prev int64
	for i, r := range records {
		if seen[r.ID] {
			warnings = append(warnings, fmt.Sprintf("duplicate id %d (the later record wins)", r.ID))
		}
		seen[r.ID] = true
		if i > 0 && r.ID < prev {
			warnings = append(warnings, fmt.Sprintf("id %d out of order after %d", r.ID, prev))
		}
		if r.ID <= 0 {
			warnings = append(warnings, fmt.Sprintf("non-positive id %d", r.ID))
		}
		if !student.ValidGrade(r.Grade) {
			warnings = append(warnings, fmt.Sprintf("id %d has unrecognized grade %q", r.ID, r.Grade))
		}
		prev = r.ID
	}
	return warnings
}

func writable(dir string) bool {
	f, err := os.CreateTemp(dir, ".studentdb-doctor-*")
	if err != nil {
		return false
	}
	name := f.Name()
	f.Close()
	os.Remove(name)
	return true
}

func unifiedDiff(path, before, after string) string {
	edits := myers.ComputeEdits(span.URIFromPath(path), before, after)
	return fmt.Sprint(gotextdiff.ToUnified(path, path+" (rewritten)", before, edits))
}
