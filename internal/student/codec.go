package student

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrBadID is returned by Decode when the id line of a record is not an integer.
var ErrBadID = errors.New("id line is not an integer")

// Encode writes r in the five-line persistence format: id, first name, last name,
// course and grade, each followed by a newline. Fields are written verbatim, so a
// field containing a line break produces a file that will not decode back to r.
func Encode(w io.Writer, r Record) error {
	_, err := io.WriteString(w, strconv.FormatInt(r.ID, 10)+"\n"+
		r.FirstName+"\n"+
		r.LastName+"\n"+
		r.Course+"\n"+
		r.Grade+"\n")
	return err
}

// EncodeAll writes every record in order.
func EncodeAll(w io.Writer, records []Record) error {
	bw := bufio.NewWriter(w)
	for _, r := range records {
		if err := Encode(bw, r); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// Decoder reads records in the persistence format from a stream.
type Decoder struct {
	r    *bufio.Reader
	line int
}

func NewDecoder(r io.Reader) *Decoder {
	return &Decoder{r: bufio.NewReader(r)}
}

// Line returns the number of lines consumed so far.
func (d *Decoder) Line() int { return d.line }

// Decode reads the next record. It returns io.EOF when no id line remains and an
// error wrapping ErrBadID when the id line does not parse. Once the id has been
// read, missing trailing lines decode as empty strings.
func (d *Decoder) Decode() (Record, error) {
	var idLine string
	for {
		s, ok := d.readLine()
		if !ok {
			return Record{}, io.EOF
		}
		// blank lines between records are skipped, like whitespace before a number
		if strings.TrimSpace(s) != "" {
			idLine = s
			break
		}
	}

	id, err := strconv.ParseInt(strings.TrimSpace(idLine), 10, 64)
	if err != nil {
		return Record{}, errors.Wrapf(ErrBadID, "line %d: %q", d.line, idLine)
	}

	rec := Record{ID: id}
	for _, field := range []*string{&rec.FirstName, &rec.LastName, &rec.Course, &rec.Grade} {
		*field, _ = d.readLine()
	}
	return rec, nil
}

// readLine returns the next line without its terminator. ok is false only when
// the stream is exhausted and nothing was read.
func (d *Decoder) readLine() (string, bool) {
	s, err := d.r.ReadString('\n')
	if err != nil && s == "" {
		return "", false
	}
	d.line++
	return strings.TrimSuffix(s, "\n"), true
}

// DecodeAll reads records until the end of the stream. On a decode failure it
// returns the records read so far together with the error.
func DecodeAll(r io.Reader) ([]Record, error) {
	dec := NewDecoder(r)
	var out []Record
	for {
		rec, err := dec.Decode()
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return out, err
		}
		out = append(out, rec)
	}
}
