// Package transfer moves student records between the store and spreadsheet,
// JSON and data-file exports.
package transfer

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/pkg/errors"

	"github.com/jeanpaul/studentdb/internal/store"
	"github.com/jeanpaul/studentdb/internal/student"
)

// ErrUnsupportedFormat is returned for a file extension transfer cannot handle.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ErrLineBreak is reported for an imported field containing a line break, which
// the five-line data file cannot represent.
var ErrLineBreak = errors.New("field contains a line break")

// Row is one imported student before it has been given an id.
type Row struct {
	Source    string // file and position, for error messages
	FirstName string
	LastName  string
	Course    string
	Grade     string
}

func (r Row) check() error {
	for _, f := range []struct{ name, value string }{
		{"first name", r.FirstName},
		{"last name", r.LastName},
		{"course", r.Course},
		{"grade", r.Grade},
	} {
		if strings.ContainsAny(f.value, "\r\n") {
			return errors.Wrapf(ErrLineBreak, "%s %q", f.name, f.value)
		}
	}
	return nil
}

// Skip records an input that was not imported and why.
type Skip struct {
	Source string
	Err    error
}

// Result summarizes an import.
type Result struct {
	Files    []string
	Imported []student.Record
	Skipped  []Skip
}

func format(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// Export writes records to path in the format chosen by its extension:
// .xlsx, .json, or .data/.txt for the five-line data format.
func Export(path string, records []student.Record) error {
	switch format(path) {
	case ".xlsx":
		return WriteXLSX(path, records)
	case ".json":
		return WriteJSON(path, records)
	case ".data", ".txt":
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		if err := student.EncodeAll(f, records); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	default:
		return errors.Wrapf(ErrUnsupportedFormat, "%s", path)
	}
}

// ReadRows reads importable rows from an .xlsx, .json, .data or .txt file.
func ReadRows(path string) ([]Row, error) {
	switch format(path) {
	case ".xlsx":
		return ReadXLSX(path)
	case ".json":
		return ReadJSON(path)
	case ".data", ".txt":
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		records, err := student.DecodeAll(f)
		if err != nil {
			return nil, errors.Wrapf(err, "%s", path)
		}
		rows := make([]Row, 0, len(records))
		for _, r := range records {
			rows = append(rows, Row{
				Source:    path + ":id " + strconv.FormatInt(r.ID, 10),
				FirstName: r.FirstName,
				LastName:  r.LastName,
				Course:    r.Course,
				Grade:     r.Grade,
			})
		}
		return rows, nil
	default:
		return nil, errors.Wrapf(ErrUnsupportedFormat, "%s", path)
	}
}

// Expand resolves doublestar patterns (e.g. exports/**/*.xlsx) to file names.
// A pattern without matches is kept as a literal path so that opening it
// reports the problem.
func Expand(patterns []string) ([]string, error) {
	var files []string
	seen := make(map[string]bool)
	for _, p := range patterns {
		matches, err := doublestar.FilepathGlob(p)
		if err != nil {
			return nil, errors.Wrapf(err, "pattern %q", p)
		}
		if len(matches) == 0 {
			matches = []string{p}
		}
		for _, m := range matches {
			if !seen[m] {
				seen[m] = true
				files = append(files, m)
			}
		}
	}
	return files, nil
}

// Import adds every row found in the files matching patterns. Each row goes
// through Add, so it gets a fresh id and its grade is validated; rejected rows
// and unreadable files are reported in Result.Skipped. A storage failure stops
// the import.
func Import(repo store.Repository, patterns []string) (Result, error) {
	var res Result
	files, err := Expand(patterns)
	if err != nil {
		return res, err
	}
	res.Files = files

	for _, file := range files {
		rows, err := ReadRows(file)
		if err != nil {
			res.Skipped = append(res.Skipped, Skip{Source: file, Err: err})
			continue
		}
		for _, row := range rows {
			if err := row.check(); err != nil {
				res.Skipped = append(res.Skipped, Skip{Source: row.Source, Err: err})
				continue
			}
			rec, err := repo.Add(row.FirstName, row.LastName, row.Course, row.Grade)
			if err != nil {
				var pe *store.PersistenceError
				if errors.As(err, &pe) {
					return res, err
				}
				res.Skipped = append(res.Skipped, Skip{Source: row.Source, Err: err})
				continue
			}
			res.Imported = append(res.Imported, rec)
		}
	}
	return res, nil
}
