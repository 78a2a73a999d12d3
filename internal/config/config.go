// Package config loads the analysis run configuration from YAML.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type NormalizationConfig struct {
	// FitOn chooses where the Box-Cox/standardization parameters come
	// from: "full" fits them on the whole dataset before splitting
	// (which leaks distribution information across the split), "train"
	// fits them on the training partition only. Both apply the
	// same fitted parameters to every row.
	FitOn   string  `yaml:"fit_on"`
	Epsilon float64 `yaml:"epsilon"`
}

type CrossValidationConfig struct {
	Folds int   `yaml:"folds"`
	Seed  int64 `yaml:"seed"`
}

type SweepConfig struct {
	AlphaStep       float64 `yaml:"alpha_step"`
	ThresholdPoints int     `yaml:"threshold_points"`
	Workers         int     `yaml:"workers"`
}

type Config struct {
	Data            string                `yaml:"data"`
	Output          string                `yaml:"output"`
	Seed            int64                 `yaml:"seed"`
	SplitRatio      float64               `yaml:"split_ratio"`
	Normalization   NormalizationConfig   `yaml:"normalization"`
	CrossValidation CrossValidationConfig `yaml:"cross_validation"`
	Sweep           SweepConfig           `yaml:"sweep"`
}

func Default() *Config {
	return &Config{
		Data:       "data/online_shoppers_intention.csv",
		Output:     "results",
		Seed:       543,
		SplitRatio: 0.70,
		Normalization: NormalizationConfig{
			FitOn:   "full",
			Epsilon: 1e-4,
		},
		CrossValidation: CrossValidationConfig{
			Folds: 10,
			Seed:  543,
		},
		Sweep: SweepConfig{
			AlphaStep:       0.05,
			ThresholdPoints: 50,
			Workers:         1,
		},
	}
}

// Load reads a YAML config over the defaults. A missing file is not an
// error; a malformed or invalid one is.
func Load(path string) (*Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.SplitRatio <= 0 || c.SplitRatio >= 1 {
		return fmt.Errorf("split_ratio must be between 0 and 1, got %g", c.SplitRatio)
	}
	if c.Normalization.FitOn != "full" && c.Normalization.FitOn != "train" {
		return fmt.Errorf("normalization.fit_on must be \"full\" or \"train\", got %q", c.Normalization.FitOn)
	}
	if c.Normalization.Epsilon <= 0 {
		return fmt.Errorf("normalization.epsilon must be positive, got %g", c.Normalization.Epsilon)
	}
	if c.CrossValidation.Folds < 2 {
		return fmt.Errorf("cross_validation.folds must be at least 2, got %d", c.CrossValidation.Folds)
	}
	if c.Sweep.AlphaStep <= 0 || c.Sweep.AlphaStep > 1 {
		return fmt.Errorf("sweep.alpha_step must be in (0,1], got %g", c.Sweep.AlphaStep)
	}
	if c.Sweep.ThresholdPoints < 2 {
		return fmt.Errorf("sweep.threshold_points must be at least 2, got %d", c.Sweep.ThresholdPoints)
	}
	return nil
}
