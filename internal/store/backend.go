package store

import "github.com/jeanpaul/studentdb/internal/student"

// Backend loads and saves the complete record set. Save always receives every
// record, ordered by ascending id, and replaces whatever was stored before.
type Backend interface {
	// Load returns all persisted records. A backend with nothing stored yet
	// returns an empty slice and no error.
	Load() ([]student.Record, error)

	// Save replaces the persisted records with records.
	Save(records []student.Record) error
}

// Repository is the set of record operations the console, browser and
// subcommands work against.
type Repository interface {
	Add(firstName, lastName, course, grade string) (student.Record, error)
	Get(id int64) (student.Record, error)
	UpdateGrade(id int64, grade string) error
	Delete(id int64) error
	List() []student.Record
	Flush() error
}
