package data

import (
	"fmt"
	"math"
)

type DataValidator struct{}

func NewDataValidator() *DataValidator {
	return &DataValidator{}
}

// ValidateMatrix checks the encoded matrix for shape consistency and
// non-finite values before it reaches any solver.
func (dv *DataValidator) ValidateMatrix(m *Matrix) error {
	if m.Rows() == 0 {
		return fmt.Errorf("dataset is empty")
	}

	if len(m.X) != len(m.Y) {
		return fmt.Errorf("feature matrix and outcomes have different lengths: %d vs %d", len(m.X), len(m.Y))
	}

	nFeatures := m.Cols()
	if nFeatures == 0 {
		return fmt.Errorf("features cannot be empty")
	}
	if m.NumericCount < 0 || m.NumericCount > nFeatures {
		return fmt.Errorf("numeric column count %d out of range for %d features", m.NumericCount, nFeatures)
	}

	for i, row := range m.X {
		if len(row) != nFeatures {
			return fmt.Errorf("inconsistent feature count at row %d: expected %d, got %d", i, nFeatures, len(row))
		}
		for j, value := range row {
			if math.IsNaN(value) || math.IsInf(value, 0) {
				return fmt.Errorf("non-finite value at row %d, feature %d", i, j)
			}
		}
	}

	return dv.ValidateOutcomes(m.Y)
}

// ValidateOutcomes requires a binary 0/1 outcome with both classes present.
func (dv *DataValidator) ValidateOutcomes(y []int) error {
	if len(y) == 0 {
		return fmt.Errorf("outcomes are empty")
	}

	classCount := make(map[int]int)
	for i, label := range y {
		if label != 0 && label != 1 {
			return fmt.Errorf("outcome at row %d is %d, expected 0 or 1", i, label)
		}
		classCount[label]++
	}

	if len(classCount) < 2 {
		return fmt.Errorf("dataset must contain both outcome classes, found %d", len(classCount))
	}

	return nil
}

// ValidateSplit ensures both partitions are usable and share a schema.
func (dv *DataValidator) ValidateSplit(train, test *Matrix) error {
	if err := dv.ValidateMatrix(train); err != nil {
		return fmt.Errorf("training set validation failed: %w", err)
	}
	if err := dv.ValidateMatrix(test); err != nil {
		return fmt.Errorf("test set validation failed: %w", err)
	}
	if train.Cols() != test.Cols() {
		return fmt.Errorf("train and test sets have different feature counts: %d vs %d", train.Cols(), test.Cols())
	}
	return nil
}

// Stats summarizes a loaded table before modeling: row count, class
// balance, and per-column kind counts.
func (dv *DataValidator) Stats(t *Table) map[string]any {
	stats := make(map[string]any)
	stats["rows"] = t.N

	positives := 0
	for _, y := range t.Outcome {
		positives += y
	}
	stats["positives"] = positives
	stats["negatives"] = t.N - positives

	kinds := make(map[string]int)
	for _, col := range t.Schema {
		kinds[col.Kind.String()]++
	}
	stats["columns"] = kinds

	return stats
}
