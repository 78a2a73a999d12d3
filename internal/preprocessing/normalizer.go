package preprocessing

import (
	"fmt"

	"github.com/jamesspalding/STAT543-grad/internal/data"
)

// Normalizer applies the full distribution treatment to the continuous
// columns of an encoded matrix: epsilon shift, Box-Cox power transform,
// then standardization to mean 0 / sd 1. Indicator and boolean columns
// pass through untouched.
//
// Whether the parameters are fitted on the full dataset (which leaks
// distribution information across the split) or on the training
// partition only is the caller's choice; either way the
// fitted parameters are reused for every matrix passed to Transform.
type Normalizer struct {
	Epsilon      float64
	transforms   []*BoxCox
	scaler       *StandardScaler
	numericCount int
	IsFitted     bool
}

func NewNormalizer(epsilon float64) *Normalizer {
	if epsilon <= 0 {
		epsilon = DefaultEpsilon
	}
	return &Normalizer{Epsilon: epsilon}
}

func (n *Normalizer) Fit(m *data.Matrix) error {
	if m.Rows() == 0 {
		return fmt.Errorf("empty dataset")
	}

	n.numericCount = m.NumericCount
	n.transforms = make([]*BoxCox, m.NumericCount)

	transformed := make([][]float64, m.Rows())
	for i := range transformed {
		transformed[i] = make([]float64, m.NumericCount)
	}

	for j := 0; j < m.NumericCount; j++ {
		bc := NewBoxCox(n.Epsilon)
		col, err := bc.FitTransform(m.Column(j))
		if err != nil {
			return fmt.Errorf("column %s: %w", m.Names[j], err)
		}
		n.transforms[j] = bc
		for i := range col {
			transformed[i][j] = col[i]
		}
	}

	n.scaler = NewStandardScaler()
	if err := n.scaler.Fit(transformed); err != nil {
		return err
	}

	n.IsFitted = true
	return nil
}

// Transform returns a new matrix whose continuous columns are replaced
// by their power-transformed, standardized values.
func (n *Normalizer) Transform(m *data.Matrix) (*data.Matrix, error) {
	if !n.IsFitted {
		return nil, fmt.Errorf("normalizer must be fitted before transform")
	}
	if m.NumericCount != n.numericCount {
		return nil, fmt.Errorf("matrix has %d continuous columns, normalizer was fitted on %d", m.NumericCount, n.numericCount)
	}

	out := m.Clone()

	transformed := make([][]float64, m.Rows())
	for i := range transformed {
		transformed[i] = make([]float64, n.numericCount)
	}
	for j := 0; j < n.numericCount; j++ {
		col, err := n.transforms[j].Transform(m.Column(j))
		if err != nil {
			return nil, fmt.Errorf("column %s: %w", m.Names[j], err)
		}
		for i := range col {
			transformed[i][j] = col[i]
		}
	}

	scaled, err := n.scaler.Transform(transformed)
	if err != nil {
		return nil, err
	}
	for i := range scaled {
		copy(out.X[i][:n.numericCount], scaled[i])
	}

	return out, nil
}

// Lambdas reports the fitted Box-Cox parameter per continuous column.
func (n *Normalizer) Lambdas() []float64 {
	lambdas := make([]float64, len(n.transforms))
	for i, bc := range n.transforms {
		lambdas[i] = bc.Lambda
	}
	return lambdas
}
