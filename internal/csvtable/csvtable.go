// Package csvtable serializes a user's mass records to CSV and parses
// uploaded CSV tables back into validated records.
//
// The wire format is two columns per row: date as YYYY/MM/DD, then mass as a
// decimal number. No header row.
package csvtable

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/clavicordio/bodymass-telegram-bot/internal/model"
)

// ParseError reports the first invalid row of an uploaded table. When Parse
// fails no records are returned, so nothing from the file gets committed.
type ParseError struct {
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("csv row %d: %v", e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Marshal writes the records, assumed already in ascending date order, as
// CSV. Zero records yield zero bytes; callers report "no data" instead of
// sending an empty file.
func Marshal(records []model.MassRecord) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for _, r := range records {
		row := []string{
			r.Date.Format(model.DateFormat),
			strconv.FormatFloat(r.Mass, 'f', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Parse reads an uploaded table and validates every row before returning.
// A row is rejected when it doesn't have exactly two fields, the date is
// unparsable, the mass is unparsable, or the mass is outside (0, maxMass).
func Parse(r io.Reader, maxMass float64) ([]model.MassRecord, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = 2

	var records []model.MassRecord
	for line := 1; ; line++ {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			// Only CSV syntax problems are the row's fault; an error from
			// the underlying reader passes through untouched so callers can
			// still identify it.
			var syntaxErr *csv.ParseError
			if !errors.As(err, &syntaxErr) {
				return nil, fmt.Errorf("reading table: %w", err)
			}
			return nil, &ParseError{Line: line, Err: err}
		}

		date, err := time.Parse(model.DateFormat, row[0])
		if err != nil {
			return nil, &ParseError{Line: line, Err: fmt.Errorf("bad date %q: %w", row[0], err)}
		}

		mass, err := strconv.ParseFloat(row[1], 64)
		if err != nil {
			return nil, &ParseError{Line: line, Err: fmt.Errorf("bad mass %q: %w", row[1], err)}
		}
		if math.IsNaN(mass) || mass <= 0 || mass >= maxMass {
			return nil, &ParseError{Line: line, Err: fmt.Errorf("mass %v outside (0, %v)", mass, maxMass)}
		}

		records = append(records, model.MassRecord{Date: date, Mass: mass})
	}
	return records, nil
}
