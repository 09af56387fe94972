package transfer

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/jeanpaul/studentdb/internal/student"
)

// Document is the JSON interchange format.
type Document struct {
	Records []student.Record `json:"records"`
}

func WriteJSON(path string, records []student.Record) error {
	if records == nil {
		records = []student.Record{}
	}
	data, err := json.MarshalIndent(Document{Records: records}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// ReadJSON validates and decodes a JSON interchange document.
func ReadJSON(path string) ([]Row, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := ValidateDocument(data); err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrapf(err, "%s", path)
	}
	out := make([]Row, 0, len(doc.Records))
	for i, r := range doc.Records {
		out = append(out, Row{
			Source:    fmt.Sprintf("%s:records[%d]", path, i),
			FirstName: r.FirstName,
			LastName:  r.LastName,
			Course:    r.Course,
			Grade:     r.Grade,
		})
	}
	return out, nil
}
