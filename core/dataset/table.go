package dataset

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrEmpty is returned when the upload has no header row.
var ErrEmpty = errors.New("no columns to parse from file")

// Table is a CSV dataset kept exactly as it was read.
type Table struct {
	// Header holds the column names as uploaded (whitespace included).
	Header []string
	// Rows holds every record, padded to the header width.
	Rows [][]string
}

// ReadCSV parses a CSV stream into a Table.
// Blank lines are skipped and short records are padded with empty cells,
// which later count as missing values. A record wider than the header is an error.
// A stray quote inside an unquoted cell is kept as text.
func ReadCSV(r io.Reader) (*Table, error) {
	reader := csv.NewReader(bufio.NewReader(r))
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, ErrEmpty
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read csv header: %w", err)
	}
	header[0] = strings.TrimPrefix(header[0], "\ufeff")

	rows := make([][]string, 0)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read csv: %w", err)
		}

		if len(record) > len(header) {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("expected %d fields in line %d, saw %d", len(header), line, len(record))
		}
		for len(record) < len(header) {
			record = append(record, "")
		}
		rows = append(rows, record)
	}

	return &Table{Header: header, Rows: rows}, nil
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// Columns returns the header with surrounding whitespace stripped from every name.
func (t *Table) Columns() []string {
	cols := make([]string, len(t.Header))
	for i, name := range t.Header {
		cols[i] = strings.TrimSpace(name)
	}
	return cols
}

// Subset returns a new Table holding the rows at the given positions, in order.
func (t *Table) Subset(index []int) (*Table, error) {
	rows := make([][]string, 0, len(index))
	for _, i := range index {
		if i < 0 || i >= len(t.Rows) {
			return nil, fmt.Errorf("row %d out of range [0,%d)", i, len(t.Rows))
		}
		rows = append(rows, t.Rows[i])
	}
	return &Table{Header: t.Header, Rows: rows}, nil
}

// WithColumn returns a new Table with one more column appended.
// values must hold exactly one entry per row.
func (t *Table) WithColumn(name string, values []string) (*Table, error) {
	if len(values) != len(t.Rows) {
		return nil, fmt.Errorf("column %q has %d values for %d rows", name, len(values), len(t.Rows))
	}

	header := make([]string, 0, len(t.Header)+1)
	header = append(header, t.Header...)
	header = append(header, name)

	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		out := make([]string, 0, len(row)+1)
		out = append(out, row...)
		rows[i] = append(out, values[i])
	}

	return &Table{Header: header, Rows: rows}, nil
}

// WriteCSV serializes the Table, header first.
func (t *Table) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(t.Header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	if err := writer.WriteAll(t.Rows); err != nil {
		return fmt.Errorf("failed to write csv rows: %w", err)
	}
	return nil
}
