package data

import "fmt"

// Matrix is the encoded feature matrix consumed by the models. The
// first NumericCount columns are continuous session measurements and
// are the only columns the distribution normalizer touches; everything
// after them is a 0/1 indicator or boolean flag.
type Matrix struct {
	Names        []string
	X            [][]float64
	NumericCount int
	Y            []int
}

func (m *Matrix) Rows() int {
	return len(m.X)
}

func (m *Matrix) Cols() int {
	return len(m.Names)
}

// Column copies column j into a fresh slice.
func (m *Matrix) Column(j int) []float64 {
	col := make([]float64, len(m.X))
	for i := range m.X {
		col[i] = m.X[i][j]
	}
	return col
}

// Clone deep-copies the matrix so transformed derivatives never alias
// the source rows.
func (m *Matrix) Clone() *Matrix {
	out := &Matrix{
		Names:        append([]string(nil), m.Names...),
		X:            make([][]float64, len(m.X)),
		NumericCount: m.NumericCount,
		Y:            append([]int(nil), m.Y...),
	}
	for i, row := range m.X {
		out.X[i] = append([]float64(nil), row...)
	}
	return out
}

// Partition splits a matrix by a boolean assignment vector, true
// meaning "training". Rows keep their relative order inside each part.
func Partition(m *Matrix, assign []bool) (train, test *Matrix, err error) {
	if len(assign) != m.Rows() {
		return nil, nil, fmt.Errorf("assignment length %d does not match %d rows", len(assign), m.Rows())
	}
	train = &Matrix{Names: m.Names, NumericCount: m.NumericCount}
	test = &Matrix{Names: m.Names, NumericCount: m.NumericCount}
	for i, isTrain := range assign {
		if isTrain {
			train.X = append(train.X, m.X[i])
			train.Y = append(train.Y, m.Y[i])
		} else {
			test.X = append(test.X, m.X[i])
			test.Y = append(test.Y, m.Y[i])
		}
	}
	return train, test, nil
}
