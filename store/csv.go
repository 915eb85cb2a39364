// The store package persists program filters on disk as a flat CSV
// file, one attribute per line.
package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/teleguide/teleguide/matcher"
)

// ErrParsingFile qualifies every problem with the filter file, from
// unreadable CSV to unknown tags.
var ErrParsingFile = errors.New("could not parse the file: has it been modified?")

// StoreCSV loads and saves a program filter. The file is only touched
// by GetFilter and SetFilter, nothing is cached in between.
type StoreCSV struct {
	filename string
}

// NewStoreCSV returns a store reading and writing filename.
func NewStoreCSV(filename string) *StoreCSV {
	return &StoreCSV{
		filename: filename,
	}
}

// GetFilter reads the stored filter. A missing file is an empty
// filter, not an error.
func (s *StoreCSV) GetFilter() (*matcher.ProgramFilter, error) {
	f, err := os.Open(s.filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return matcher.NewProgramFilter(), nil
		}
		return nil, fmt.Errorf("%w: %v", ErrParsingFile, err)
	}
	defer f.Close()

	return s.readFilter(f)
}

// SetFilter writes the filter, replacing the previous file content.
// The records are fully assembled before the file is truncated, a
// filter that cannot be serialized leaves the file alone.
func (s *StoreCSV) SetFilter(pf *matcher.ProgramFilter) error {
	records, err := FilterRecords(pf)
	if err != nil {
		return err
	}
	f, err := os.Create(s.filename)
	if err != nil {
		return err
	}
	if err := writeRecords(f, records); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (s *StoreCSV) readFilter(r io.Reader) (*matcher.ProgramFilter, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2
	lines, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParsingFile, err)
	}
	records := make([]Record, 0, len(lines))
	for _, l := range lines {
		records = append(records, Record{l[0], l[1]})
	}
	return FilterFromRecords(records)
}

func writeRecords(w io.Writer, records []Record) error {
	writer := csv.NewWriter(w)
	for _, r := range records {
		if err := writer.Write(r[:]); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
