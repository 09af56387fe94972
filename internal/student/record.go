// Package student defines the stored student record and its text encodings.
package student

import (
	"fmt"
	"strings"
)

// Record is one student's identity and grade data.
type Record struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Course    string `json:"course"`
	Grade     string `json:"grade"`
}

// New builds a record with the given identity. The grade is normalized to upper case
// but not validated; validation belongs to the store.
func New(id int64, firstName, lastName, course, grade string) Record {
	return Record{
		ID:        id,
		FirstName: firstName,
		LastName:  lastName,
		Course:    course,
		Grade:     NormalizeGrade(grade),
	}
}

// FullName joins first and last name.
func (r Record) FullName() string {
	return strings.TrimSpace(r.FirstName + " " + r.LastName)
}

// Display returns the human-readable form shown in the console.
func (r Record) Display() string {
	var b strings.Builder
	fmt.Fprintf(&b, "Student ID: %d\n", r.ID)
	fmt.Fprintf(&b, "First Name: %s\n", r.FirstName)
	fmt.Fprintf(&b, "Last Name: %s\n", r.LastName)
	fmt.Fprintf(&b, "Course: %s\n", r.Course)
	fmt.Fprintf(&b, "Grade: %s\n", r.Grade)
	return b.String()
}
