package data

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
)

// Table holds the loaded session dataset in column form. Numeric cells
// are kept as exact decimals until the encoding step converts them to
// floats for the solvers.
type Table struct {
	Schema      []Column
	N           int
	Numeric     map[string][]decimal.Decimal
	Categorical map[string][]string
	Outcome     []int
}

type CSVReader struct {
	filename string
	schema   []Column
}

func NewCSVReader(filename string) *CSVReader {
	return &CSVReader{filename: filename, schema: SessionSchema}
}

// LoadCSV reads the session dataset at path against the fixed schema.
// Any malformed cell or out-of-level categorical value aborts the load.
func LoadCSV(path string) (*Table, error) {
	return NewCSVReader(path).Load()
}

func (cr *CSVReader) Load() (*Table, error) {
	file, err := os.Open(cr.filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}

	if len(records) < 2 {
		return nil, fmt.Errorf("insufficient data in file")
	}

	if err := cr.checkHeader(records[0]); err != nil {
		return nil, err
	}

	rows := records[1:]
	table := &Table{
		Schema:      cr.schema,
		N:           len(rows),
		Numeric:     make(map[string][]decimal.Decimal),
		Categorical: make(map[string][]string),
		Outcome:     make([]int, len(rows)),
	}
	for _, col := range cr.schema {
		switch col.Kind {
		case Numeric, Boolean:
			table.Numeric[col.Name] = make([]decimal.Decimal, len(rows))
		case Categorical:
			table.Categorical[col.Name] = make([]string, len(rows))
		}
	}

	for i, record := range rows {
		if len(record) != len(cr.schema) {
			return nil, fmt.Errorf("row %d: expected %d columns, got %d", i+1, len(cr.schema), len(record))
		}
		for j, col := range cr.schema {
			cell := strings.TrimSpace(record[j])
			switch col.Kind {
			case Numeric:
				val, err := decimal.NewFromString(cell)
				if err != nil {
					return nil, fmt.Errorf("row %d, column %s: invalid numeric value %q", i+1, col.Name, cell)
				}
				table.Numeric[col.Name][i] = val
			case Boolean:
				b, err := parseBool(cell)
				if err != nil {
					return nil, fmt.Errorf("row %d, column %s: %w", i+1, col.Name, err)
				}
				table.Numeric[col.Name][i] = decimal.NewFromInt(int64(b))
			case Categorical:
				if !levelAllowed(col.Levels, cell) {
					return nil, fmt.Errorf("row %d, column %s: value %q is not an allowed level", i+1, col.Name, cell)
				}
				table.Categorical[col.Name][i] = cell
			case Outcome:
				b, err := parseBool(cell)
				if err != nil {
					return nil, fmt.Errorf("row %d, column %s: %w", i+1, col.Name, err)
				}
				table.Outcome[i] = b
			}
		}
	}

	return table, nil
}

func (cr *CSVReader) checkHeader(header []string) error {
	if len(header) != len(cr.schema) {
		return fmt.Errorf("header has %d columns, schema expects %d", len(header), len(cr.schema))
	}
	for j, col := range cr.schema {
		if strings.TrimSpace(header[j]) != col.Name {
			return fmt.Errorf("header column %d is %q, expected %q", j, header[j], col.Name)
		}
	}
	return nil
}

func parseBool(cell string) (int, error) {
	switch strings.ToUpper(cell) {
	case "TRUE", "1":
		return 1, nil
	case "FALSE", "0":
		return 0, nil
	default:
		return 0, fmt.Errorf("invalid boolean value %q", cell)
	}
}

func levelAllowed(levels []string, value string) bool {
	for _, l := range levels {
		if l == value {
			return true
		}
	}
	return false
}
