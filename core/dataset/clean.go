package dataset

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/mat"
)

// MissingTokens are the cell values treated as missing, on top of infinities.
var MissingTokens = []string{
	"", "#N/A", "#N/A N/A", "#NA", "-1.#IND", "-1.#QNAN", "-NaN", "-nan",
	"1.#IND", "1.#QNAN", "<NA>", "N/A", "NA", "NULL", "NaN", "None", "n/a",
	"nan", "null",
}

// MissingColumnError reports a feature the model needs that the cleaned data lacks.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing column '%s'", e.Column)
}

// Cleaned is the numeric working copy of a Table.
type Cleaned struct {
	// Frame holds the surviving rows and numeric columns, named by their
	// position in the Table. It is empty when no row survived.
	Frame dataframe.DataFrame
	// Index holds the Table positions of the surviving rows, in order.
	Index []int
	// Columns holds the trimmed names of the numeric columns, in Frame order.
	Columns []string
	// DroppedColumns holds the trimmed names of the non-numeric columns.
	DroppedColumns []string
	// DroppedRows counts rows removed for holding a missing or infinite value.
	DroppedRows int
}

// Clean builds the working copy of t.
// Names are trimmed, every row holding a missing or infinite value is dropped,
// then every non-numeric column is dropped. t itself is left untouched.
func Clean(t *Table) (*Cleaned, error) {
	columns := t.Columns()

	// Without rows there is nothing to infer types from.
	if t.Len() == 0 {
		return &Cleaned{Index: []int{}, Columns: columns}, nil
	}

	names := make([]string, len(columns))
	types := make(map[string]series.Type, len(columns))
	records := make([][]string, t.Len()+1)
	for j := range records {
		records[j] = make([]string, len(columns))
	}

	for i := range columns {
		names[i] = strconv.Itoa(i)
		records[0][i] = names[i]

		raw := make([]string, t.Len())
		for j, row := range t.Rows {
			raw[j] = row[i]
		}
		typ, values := inferColumn(raw)
		types[names[i]] = typ
		for j, v := range values {
			records[j+1][i] = v
		}
	}

	df := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.WithTypes(types),
		dataframe.NaNValues([]string{nanValue}),
	)
	if df.Err != nil {
		return nil, fmt.Errorf("failed to load working copy: %w", df.Err)
	}

	invalid := invalidRows(df)

	index := make([]int, 0, df.Nrow())
	for i, bad := range invalid {
		if !bad {
			index = append(index, i)
		}
	}

	cleaned := &Cleaned{
		Index:       index,
		DroppedRows: df.Nrow() - len(index),
	}

	var numeric []int
	for i, typ := range df.Types() {
		if isNumeric(typ) {
			numeric = append(numeric, i)
			cleaned.Columns = append(cleaned.Columns, columns[i])
		} else {
			cleaned.DroppedColumns = append(cleaned.DroppedColumns, columns[i])
		}
	}

	if len(index) == 0 || len(numeric) == 0 {
		return cleaned, nil
	}

	frame := df.Subset(index).Select(numeric)
	if frame.Err != nil {
		return nil, fmt.Errorf("failed to select working copy: %w", frame.Err)
	}
	cleaned.Frame = frame

	return cleaned, nil
}

// nanValue marks a missing cell in the records handed to gota.
const nanValue = "NaN"

// cellKind is what a single non-missing cell parses as.
type cellKind int

const (
	kindText cellKind = iota
	kindInt
	kindFloat
	kindBool
)

// inferColumn types one column from its raw cells and returns the values to
// load for it. Missing cells become nanValue.
//
// Ints without missing cells stay Int; any other mix of ints and floats is
// Float. Booleans are Bool only when no cell is missing. A column with no
// value at all is Float. Anything else is String.
func inferColumn(raw []string) (series.Type, []string) {
	values := make([]string, len(raw))
	text := make([]string, len(raw))
	kinds := make(map[cellKind]bool)
	missing := false

	for j, cell := range raw {
		if isMissing(cell) {
			values[j] = nanValue
			text[j] = nanValue
			missing = true
			continue
		}
		kind, value := parseCell(cell)
		kinds[kind] = true
		values[j] = value
		text[j] = cell
	}

	switch {
	case len(kinds) == 0:
		return series.Float, values
	case kinds[kindText]:
		return series.String, text
	case kinds[kindBool]:
		if len(kinds) == 1 && !missing {
			return series.Bool, values
		}
		return series.String, text
	case kinds[kindFloat] || missing:
		return series.Float, values
	default:
		return series.Int, values
	}
}

// parseCell classifies a non-missing cell. Surrounding whitespace is ignored
// for numbers only; text keeps its raw form.
func parseCell(cell string) (cellKind, string) {
	v := strings.TrimSpace(cell)
	switch cell {
	case "True", "TRUE", "true":
		return kindBool, "true"
	case "False", "FALSE", "false":
		return kindBool, "false"
	}

	if _, err := strconv.Atoi(v); err == nil {
		return kindInt, v
	}
	f, err := strconv.ParseFloat(v, 64)
	if err == nil {
		return kindFloat, v
	}
	// Out-of-range literals such as 1e400 overflow to an infinity.
	if errors.Is(err, strconv.ErrRange) {
		return kindFloat, strconv.FormatFloat(f, 'g', -1, 64)
	}
	return kindText, cell
}

func isMissing(cell string) bool {
	return slices.Contains(MissingTokens, cell)
}

// invalidRows flags every row holding a missing value in any column
// or an infinite value in a float column.
func invalidRows(df dataframe.DataFrame) []bool {
	invalid := make([]bool, df.Nrow())
	for _, name := range df.Names() {
		col := df.Col(name)
		for i, nan := range col.IsNaN() {
			if nan {
				invalid[i] = true
			}
		}
		if col.Type() != series.Float {
			continue
		}
		for i, v := range col.Float() {
			if math.IsInf(v, 0) {
				invalid[i] = true
			}
		}
	}
	return invalid
}

func isNumeric(t series.Type) bool {
	switch t {
	case series.Int, series.Float, series.Bool:
		return true
	default:
		return false
	}
}

// Require checks that every feature is one of the numeric working columns.
func (c *Cleaned) Require(features []string) error {
	for _, feature := range features {
		if c.position(feature) < 0 {
			return &MissingColumnError{Column: feature}
		}
	}
	return nil
}

// Matrix returns the model input: one row per surviving row and one column
// per feature, in the order given.
func (c *Cleaned) Matrix(features []string) (*mat.Dense, error) {
	if err := c.Require(features); err != nil {
		return nil, err
	}
	if len(c.Index) == 0 {
		return nil, fmt.Errorf("no rows left after cleaning")
	}
	if len(features) == 0 {
		return nil, fmt.Errorf("no features requested")
	}

	names := c.Frame.Names()
	m := mat.NewDense(len(c.Index), len(features), nil)
	for j, feature := range features {
		values := c.Frame.Col(names[c.position(feature)]).Float()
		for i, v := range values {
			m.Set(i, j, v)
		}
	}
	return m, nil
}

// position returns the Frame column of name, or -1.
// The first match wins when trimming produced duplicate names.
func (c *Cleaned) position(name string) int {
	for i, col := range c.Columns {
		if col == name {
			return i
		}
	}
	return -1
}
