package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMatrix() *Matrix {
	return &Matrix{
		Names:        []string{"a", "b", "c"},
		X:            [][]float64{{1, 2, 3}, {4, 5, 6}, {7, 8, 9}, {10, 11, 12}},
		NumericCount: 2,
		Y:            []int{0, 1, 0, 1},
	}
}

func TestPartition(t *testing.T) {
	m := testMatrix()
	train, test, err := Partition(m, []bool{true, false, true, false})
	require.NoError(t, err)

	assert.Equal(t, 2, train.Rows())
	assert.Equal(t, 2, test.Rows())
	assert.Equal(t, m.Rows(), train.Rows()+test.Rows())
	assert.Equal(t, []int{0, 0}, train.Y)
	assert.Equal(t, []int{1, 1}, test.Y)
	assert.Equal(t, []float64{4, 5, 6}, test.X[0])
}

func TestPartitionLengthMismatch(t *testing.T) {
	_, _, err := Partition(testMatrix(), []bool{true})
	require.Error(t, err)
}

func TestCloneIsDeep(t *testing.T) {
	m := testMatrix()
	clone := m.Clone()
	clone.X[0][0] = 99

	assert.Equal(t, 1.0, m.X[0][0])
	assert.Equal(t, m.Names, clone.Names)
}

func TestValidateMatrix(t *testing.T) {
	validator := NewDataValidator()
	require.NoError(t, validator.ValidateMatrix(testMatrix()))

	ragged := testMatrix()
	ragged.X[1] = []float64{1}
	assert.Error(t, validator.ValidateMatrix(ragged))

	singleClass := testMatrix()
	singleClass.Y = []int{0, 0, 0, 0}
	assert.Error(t, validator.ValidateMatrix(singleClass))

	badLabel := testMatrix()
	badLabel.Y = []int{0, 1, 2, 1}
	assert.Error(t, validator.ValidateMatrix(badLabel))
}
