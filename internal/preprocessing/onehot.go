package preprocessing

import (
	"fmt"

	"github.com/jamesspalding/STAT543-grad/internal/data"
)

// OneHotEncoder expands categorical columns into indicator columns.
// The level set comes from the fixed schema, never inferred from the
// rows being transformed, so train and test matrices always align.
type OneHotEncoder struct {
	Schema       []data.Column
	FeatureNames []string
	NumericCount int
	IsFitted     bool
}

func NewOneHotEncoder() *OneHotEncoder {
	return &OneHotEncoder{}
}

// Fit records the feature layout implied by the schema: continuous
// numeric columns first, then boolean flags, then one indicator per
// categorical level.
func (e *OneHotEncoder) Fit(schema []data.Column) error {
	if len(schema) == 0 {
		return fmt.Errorf("schema is empty")
	}

	e.Schema = schema
	e.FeatureNames = nil
	e.NumericCount = data.ContinuousCount(schema)

	for _, name := range data.NumericColumns(schema) {
		e.FeatureNames = append(e.FeatureNames, name)
	}
	for _, col := range data.CategoricalColumns(schema) {
		for _, level := range col.Levels {
			e.FeatureNames = append(e.FeatureNames, col.Name+"_"+level)
		}
	}

	e.IsFitted = true
	return nil
}

// Transform encodes a loaded table into a feature matrix. Row order and
// count are preserved exactly; a categorical value outside the fitted
// level set is an error.
func (e *OneHotEncoder) Transform(t *data.Table) (*data.Matrix, error) {
	if !e.IsFitted {
		return nil, fmt.Errorf("OneHotEncoder must be fitted before transform")
	}

	m := &data.Matrix{
		Names:        e.FeatureNames,
		X:            make([][]float64, t.N),
		NumericCount: e.NumericCount,
		Y:            append([]int(nil), t.Outcome...),
	}

	numericNames := data.NumericColumns(e.Schema)
	catCols := data.CategoricalColumns(e.Schema)

	for i := 0; i < t.N; i++ {
		row := make([]float64, 0, len(e.FeatureNames))
		for _, name := range numericNames {
			col, ok := t.Numeric[name]
			if !ok {
				return nil, fmt.Errorf("table is missing numeric column %s", name)
			}
			row = append(row, col[i].InexactFloat64())
		}
		for _, col := range catCols {
			values, ok := t.Categorical[col.Name]
			if !ok {
				return nil, fmt.Errorf("table is missing categorical column %s", col.Name)
			}
			indicators, err := encodeLevel(col, values[i])
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
			row = append(row, indicators...)
		}
		m.X[i] = row
	}

	return m, nil
}

// FitTransform fits the encoder on the table's schema and encodes it.
func (e *OneHotEncoder) FitTransform(t *data.Table) (*data.Matrix, error) {
	if err := e.Fit(t.Schema); err != nil {
		return nil, err
	}
	return e.Transform(t)
}

func encodeLevel(col data.Column, value string) ([]float64, error) {
	indicators := make([]float64, len(col.Levels))
	for j, level := range col.Levels {
		if level == value {
			indicators[j] = 1
			return indicators, nil
		}
	}
	return nil, fmt.Errorf("column %s: unknown level %q", col.Name, value)
}
