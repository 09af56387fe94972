package transfer

import (
	"fmt"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/xeipuuv/gojsonschema"
)

// documentSchema describes the JSON interchange document. Grade values are
// checked by the store, not here, so the error names the offending record.
const documentSchema = `{
  "type": "object",
  "required": ["records"],
  "properties": {
    "records": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["first_name", "last_name", "course", "grade"],
        "properties": {
          "id":         {"type": "integer"},
          "first_name": {"type": "string"},
          "last_name":  {"type": "string"},
          "course":     {"type": "string"},
          "grade":      {"type": "string"}
        }
      }
    }
  }
}`

var (
	schemaOnce sync.Once
	schema     *gojsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = gojsonschema.NewSchema(gojsonschema.NewStringLoader(documentSchema))
	})
	return schema, schemaErr
}

// ValidateDocument checks raw JSON against the interchange schema.
func ValidateDocument(data []byte) error {
	s, err := compiledSchema()
	if err != nil {
		return errors.Wrap(err, "invalid schema definition")
	}

	result, err := s.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return errors.Wrap(err, "validation execution failed")
	}
	if result.Valid() {
		return nil
	}

	var errs []string
	for _, desc := range result.Errors() {
		errs = append(errs, desc.String())
	}
	return errors.Errorf("schema validation failed:\n- %s", dumpErrors(errs))
}

func dumpErrors(errs []string) string {
	// return first 3 errors to avoid massive output
	truncated := ""
	if len(errs) > 3 {
		truncated = fmt.Sprintf("\n... and %d more", len(errs)-3)
		errs = errs[:3]
	}
	return strings.Join(errs, "\n- ") + truncated
}
