package preprocessing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamesspalding/STAT543-grad/internal/data"
)

func testTable() *data.Table {
	schema := []data.Column{
		{Name: "Duration", Kind: data.Numeric},
		{Name: "Month", Kind: data.Categorical, Levels: []string{"Feb", "Mar", "May"}},
		{Name: "VisitorType", Kind: data.Categorical, Levels: []string{"Returning_Visitor", "New_Visitor"}},
		{Name: "Weekend", Kind: data.Boolean},
		{Name: "Revenue", Kind: data.Outcome},
	}
	return &data.Table{
		Schema: schema,
		N:      3,
		Numeric: map[string][]decimal.Decimal{
			"Duration": {decimal.NewFromFloat(1.5), decimal.NewFromFloat(2.5), decimal.NewFromFloat(3.5)},
			"Weekend":  {decimal.NewFromInt(0), decimal.NewFromInt(1), decimal.NewFromInt(0)},
		},
		Categorical: map[string][]string{
			"Month":       {"Feb", "May", "Mar"},
			"VisitorType": {"New_Visitor", "Returning_Visitor", "Returning_Visitor"},
		},
		Outcome: []int{1, 0, 1},
	}
}

func TestOneHotLayout(t *testing.T) {
	enc := NewOneHotEncoder()
	m, err := enc.FitTransform(testTable())
	require.NoError(t, err)

	assert.Equal(t, []string{
		"Duration", "Weekend",
		"Month_Feb", "Month_Mar", "Month_May",
		"VisitorType_Returning_Visitor", "VisitorType_New_Visitor",
	}, m.Names)
	assert.Equal(t, 1, m.NumericCount)
	assert.Equal(t, 3, m.Rows())
	assert.Equal(t, []int{1, 0, 1}, m.Y)
	assert.Equal(t, []float64{1.5, 0, 1, 0, 0, 0, 1}, m.X[0])
}

func TestOneHotIndicatorsSumToOne(t *testing.T) {
	enc := NewOneHotEncoder()
	m, err := enc.FitTransform(testTable())
	require.NoError(t, err)

	// Month occupies columns 2..4, VisitorType columns 5..6.
	for i, row := range m.X {
		monthSum := row[2] + row[3] + row[4]
		visitorSum := row[5] + row[6]
		assert.Equalf(t, 1.0, monthSum, "row %d month indicators", i)
		assert.Equalf(t, 1.0, visitorSum, "row %d visitor indicators", i)
	}
}

func TestOneHotRejectsUnknownLevel(t *testing.T) {
	table := testTable()
	table.Categorical["Month"][1] = "Jan"

	enc := NewOneHotEncoder()
	_, err := enc.FitTransform(table)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown level")
}

func TestOneHotRequiresFit(t *testing.T) {
	enc := NewOneHotEncoder()
	_, err := enc.Transform(testTable())
	require.Error(t, err)
}
