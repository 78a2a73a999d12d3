package models

import "fmt"

// ModelConfig selects which classifier variant a run fits.
type ModelConfig struct {
	Algorithm string
	Alpha     float64
	Lambda    float64
}

// CreateModel builds a classifier from its configuration. "ridge" and
// "lasso" are named endpoints of the elastic net mixing weight.
func CreateModel(config ModelConfig) (Classifier, error) {
	switch config.Algorithm {
	case "logistic":
		return NewLogistic(), nil
	case "elasticnet":
		return NewElasticNet(config.Alpha, config.Lambda), nil
	case "ridge":
		return NewElasticNet(0, config.Lambda), nil
	case "lasso":
		return NewElasticNet(1, config.Lambda), nil
	default:
		return nil, fmt.Errorf("unknown algorithm: %s", config.Algorithm)
	}
}
