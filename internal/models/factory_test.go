package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateModel(t *testing.T) {
	cases := []struct {
		algorithm string
		name      string
	}{
		{"logistic", "Logistic"},
		{"elasticnet", "ElasticNet"},
		{"ridge", "Ridge"},
		{"lasso", "LASSO"},
	}

	for _, tc := range cases {
		model, err := CreateModel(ModelConfig{Algorithm: tc.algorithm, Alpha: 0.5, Lambda: 0.01})
		require.NoError(t, err, tc.algorithm)
		assert.Equal(t, tc.name, model.GetName())
	}
}

func TestCreateModelUnknownAlgorithm(t *testing.T) {
	_, err := CreateModel(ModelConfig{Algorithm: "svm"})
	assert.Error(t, err)
}
