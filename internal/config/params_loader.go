package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CompositeWeights are the fixed design weights for the offensive and
// defensive composites: expected goals dominate, shot volume and raw
// goals temper it.
type CompositeWeights struct {
	XG    float64 `yaml:"xg"`
	Shots float64 `yaml:"shots"`
	Goals float64 `yaml:"goals"`
}

// EngineParams are the tunable knobs of the rating pipeline. The
// compiled-in defaults are the product numbers; a yaml file is an
// operational override, not a place to invent new weights.
type EngineParams struct {
	LookbackGames   int `yaml:"lookback_games"`
	HalfLifeGames   int `yaml:"half_life_games"`
	LogLookbackDays int `yaml:"log_lookback_days"`
	TrendWindowDays int `yaml:"trend_window_days"`
	TrendGames      int `yaml:"trend_games"`
	ShrinkageGames  int `yaml:"shrinkage_games"`

	Composite CompositeWeights `yaml:"composite"`

	SpecialWeight     float64 `yaml:"special_weight"`
	VarianceThreshold float64 `yaml:"variance_threshold"`
	PDOBaseline       float64 `yaml:"pdo_baseline"`
}

func DefaultEngineParams() EngineParams {
	return EngineParams{
		LookbackGames:   25,
		HalfLifeGames:   10,
		LogLookbackDays: 90,
		TrendWindowDays: 60,
		TrendGames:      10,
		ShrinkageGames:  10,

		Composite: CompositeWeights{XG: 0.7, Shots: 0.2, Goals: 0.1},

		SpecialWeight:     0.2,
		VarianceThreshold: 1.0,
		PDOBaseline:       1.0,
	}
}

// LoadEngineParams reads a yaml override file on top of the defaults.
// An empty path returns the defaults unchanged.
func LoadEngineParams(path string) (EngineParams, error) {
	params := DefaultEngineParams()
	if path == "" {
		return params, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return EngineParams{}, fmt.Errorf("read engine params: %w", err)
	}

	if err := yaml.Unmarshal(data, &params); err != nil {
		return EngineParams{}, fmt.Errorf("parse engine params: %w", err)
	}

	if params.LookbackGames <= 0 || params.HalfLifeGames <= 0 {
		return EngineParams{}, fmt.Errorf("engine params: lookback_games and half_life_games must be positive")
	}

	return params, nil
}
