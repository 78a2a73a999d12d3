package preprocessing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

// StandardScaler centers columns to mean 0 and scales them to unit
// standard deviation. Parameters are learned once in Fit and reused for
// every subsequent Transform.
type StandardScaler struct {
	FeatureMean []float64
	FeatureStd  []float64
	IsFitted    bool
}

func NewStandardScaler() *StandardScaler {
	return &StandardScaler{}
}

func (s *StandardScaler) Fit(X [][]float64) error {
	if len(X) == 0 {
		return fmt.Errorf("empty dataset")
	}

	nFeatures := len(X[0])
	s.FeatureMean = make([]float64, nFeatures)
	s.FeatureStd = make([]float64, nFeatures)

	col := make([]float64, len(X))
	for j := 0; j < nFeatures; j++ {
		for i := range X {
			col[i] = X[i][j]
		}
		mean, variance := stat.MeanVariance(col, nil)
		s.FeatureMean[j] = mean
		s.FeatureStd[j] = math.Sqrt(variance)
		if s.FeatureStd[j] == 0 {
			s.FeatureStd[j] = 1
		}
	}

	s.IsFitted = true
	return nil
}

func (s *StandardScaler) Transform(X [][]float64) ([][]float64, error) {
	if !s.IsFitted {
		return nil, fmt.Errorf("scaler must be fitted before transform")
	}

	result := make([][]float64, len(X))
	for i := range X {
		if len(X[i]) != len(s.FeatureMean) {
			return nil, fmt.Errorf("row %d has %d features, scaler was fitted on %d", i, len(X[i]), len(s.FeatureMean))
		}
		result[i] = make([]float64, len(X[i]))
		for j := range X[i] {
			result[i][j] = (X[i][j] - s.FeatureMean[j]) / s.FeatureStd[j]
		}
	}

	return result, nil
}

func (s *StandardScaler) FitTransform(X [][]float64) ([][]float64, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}
