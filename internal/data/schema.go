package data

import "fmt"

type ColumnKind int

const (
	Numeric ColumnKind = iota
	Categorical
	Boolean
	Outcome
)

// Column describes one attribute of the session dataset. Categorical
// columns carry an explicit, closed set of allowed levels; values
// outside the set are a load error, never bucketed.
type Column struct {
	Name   string
	Kind   ColumnKind
	Levels []string
}

// Months observed in the dataset. January and April never occur, so
// they are deliberately absent from the level set rather than inferred.
var Months = []string{"Feb", "Mar", "May", "June", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

var VisitorTypes = []string{"Returning_Visitor", "New_Visitor", "Other"}

// SessionSchema is the fixed 18-column layout of the online shoppers
// intention CSV: 17 attributes plus the Revenue outcome.
var SessionSchema = []Column{
	{Name: "Administrative", Kind: Numeric},
	{Name: "Administrative_Duration", Kind: Numeric},
	{Name: "Informational", Kind: Numeric},
	{Name: "Informational_Duration", Kind: Numeric},
	{Name: "ProductRelated", Kind: Numeric},
	{Name: "ProductRelated_Duration", Kind: Numeric},
	{Name: "BounceRates", Kind: Numeric},
	{Name: "ExitRates", Kind: Numeric},
	{Name: "PageValues", Kind: Numeric},
	{Name: "SpecialDay", Kind: Numeric},
	{Name: "Month", Kind: Categorical, Levels: Months},
	{Name: "OperatingSystems", Kind: Categorical, Levels: intLevels(8)},
	{Name: "Browser", Kind: Categorical, Levels: intLevels(13)},
	{Name: "Region", Kind: Categorical, Levels: intLevels(9)},
	{Name: "TrafficType", Kind: Categorical, Levels: intLevels(20)},
	{Name: "VisitorType", Kind: Categorical, Levels: VisitorTypes},
	{Name: "Weekend", Kind: Boolean},
	{Name: "Revenue", Kind: Outcome},
}

func intLevels(n int) []string {
	levels := make([]string, n)
	for i := range levels {
		levels[i] = fmt.Sprintf("%d", i+1)
	}
	return levels
}

// NumericColumns returns the names of all numeric columns in schema
// order. Boolean columns count as numeric 0/1 features but are not
// subject to the distribution normalizer, so they are listed last.
func NumericColumns(schema []Column) []string {
	var names []string
	for _, col := range schema {
		if col.Kind == Numeric {
			names = append(names, col.Name)
		}
	}
	for _, col := range schema {
		if col.Kind == Boolean {
			names = append(names, col.Name)
		}
	}
	return names
}

// CategoricalColumns returns the categorical column subset in schema order.
func CategoricalColumns(schema []Column) []Column {
	var cols []Column
	for _, col := range schema {
		if col.Kind == Categorical {
			cols = append(cols, col)
		}
	}
	return cols
}

// ContinuousCount is the number of leading numeric columns that receive
// the Box-Cox transform. Boolean 0/1 columns are excluded.
func ContinuousCount(schema []Column) int {
	n := 0
	for _, col := range schema {
		if col.Kind == Numeric {
			n++
		}
	}
	return n
}

func (k ColumnKind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Categorical:
		return "categorical"
	case Boolean:
		return "boolean"
	case Outcome:
		return "outcome"
	default:
		return "unknown"
	}
}
