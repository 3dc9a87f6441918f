// Package config defines environment configuration structs and loaders.
package config

import (
	"github.com/caarlos0/env/v11"
)

// AugmentEnvConfig drives one augmentation run from the environment.
type AugmentEnvConfig struct {
	CoordinatesPath string `env:"COORDINATES_PATH,required,notEmpty"`
	FeaturesPath    string `env:"FEATURES_PATH,required,notEmpty"`
	// OutputPath gets gzip-compressed output when it ends in .gz.
	OutputPath    string  `env:"OUTPUT_PATH" envDefault:"augmented.csv"`
	HistogramPath string  `env:"HISTOGRAM_PATH"`
	NumNeighbours int     `env:"NUM_NEIGHBOURS" envDefault:"10"`
	Lambda        float64 `env:"LAMBDA" envDefault:"0.2"`
	MaxRadius     float64 `env:"MAX_RADIUS" envDefault:"0"`
	Decay         string  `env:"DECAY" envDefault:"reciprocal"`
}

func LoadAugmentEnv() (*AugmentEnvConfig, error) {
	cfg := &AugmentEnvConfig{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
