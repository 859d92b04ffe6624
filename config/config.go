// Package config defines the pipeline configuration for housefit.
//
// A Config is an immutable value: construct one with Default or LoadFile,
// then pass it explicitly to the pipeline stages that need it. There is no
// package-level mutable state.
//
// Example:
//
//	cfg, err := config.LoadFile("housefit.yaml")
//	if err != nil {
//		log.Fatal(err)
//	}
//	split, result, err := pipeline.Run(cfg, cfg.InputPath)
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	housefitErrors "github.com/housefit/housefit/pkg/errors"
)

// Config carries every tunable of the pipeline, from input location to plot
// geometry. Zero values are not usable; start from Default and overlay.
type Config struct {
	// File locations.
	InputPath          string `yaml:"input_path"`           // training CSV
	OutputImage        string `yaml:"output_image"`         // per-feature fit chart (PNG)
	OutputSurfaceImage string `yaml:"output_surface_image"` // prediction surface chart (PNG)
	ModelPath          string `yaml:"model_path"`           // gob model archive
	MetadataPath       string `yaml:"metadata_path"`        // JSON metadata record

	// Data preparation.
	TestSize         float64 `yaml:"test_size"`         // held-out fraction, in (0,1)
	RandomState      int64   `yaml:"random_state"`      // split shuffle seed
	OutlierThreshold float64 `yaml:"outlier_threshold"` // sigma multiplier for outlier removal

	// Column roles. Feature and target columns must all appear in
	// RequiredColumns; cleaning operates on RequiredColumns only.
	RequiredColumns []string `yaml:"required_columns"`
	FeatureColumns  []string `yaml:"feature_columns"`
	TargetColumn    string   `yaml:"target_column"`

	// Chart geometry.
	FigWidthInches  float64 `yaml:"fig_width_inches"`
	FigHeightInches float64 `yaml:"fig_height_inches"`
	ScatterAlpha    float64 `yaml:"scatter_alpha"`  // scatter point opacity, in (0,1]
	MeshGridSize    int     `yaml:"mesh_grid_size"` // prediction surface resolution per axis

	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration for the bundled housing dataset.
func Default() Config {
	return Config{
		InputPath:          "resources/house_data_multi_linear_regression.csv",
		OutputImage:        "resources/housing_regression.png",
		OutputSurfaceImage: "resources/housing_regression_surface.png",
		ModelPath:          "resources/housing_model.gob",
		MetadataPath:       "resources/housing_model_metadata.json",
		TestSize:           0.2,
		RandomState:        42,
		OutlierThreshold:   3.0,
		RequiredColumns:    []string{"square_footage", "bedrooms", "price_thousands"},
		FeatureColumns:     []string{"square_footage", "bedrooms"},
		TargetColumn:       "price_thousands",
		FigWidthInches:     10,
		FigHeightInches:    6,
		ScatterAlpha:       0.7,
		MeshGridSize:       50,
		LogLevel:           "info",
	}
}

// LoadFile reads a YAML file and overlays it on the defaults, so a config
// file only needs the fields it wants to change. The result is validated
// before it is returned.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, housefitErrors.Wrapf(err, "housefit: cannot read config file %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, housefitErrors.Wrapf(err, "housefit: cannot parse config file %s", path)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the internal consistency of the configuration and returns
// a ValidationError naming the first offending field.
func (c Config) Validate() error {
	if c.TestSize <= 0 || c.TestSize >= 1 {
		return housefitErrors.NewValidationError(
			"test_size",
			"must be in the open interval (0, 1)",
			c.TestSize,
		)
	}
	if c.OutlierThreshold <= 0 {
		return housefitErrors.NewValidationError(
			"outlier_threshold",
			"must be positive",
			c.OutlierThreshold,
		)
	}
	if len(c.RequiredColumns) == 0 {
		return housefitErrors.NewValidationError(
			"required_columns",
			"must list at least one column",
			c.RequiredColumns,
		)
	}
	if len(c.FeatureColumns) == 0 {
		return housefitErrors.NewValidationError(
			"feature_columns",
			"must list at least one column",
			c.FeatureColumns,
		)
	}
	if c.TargetColumn == "" {
		return housefitErrors.NewValidationError(
			"target_column",
			"must name the target column",
			c.TargetColumn,
		)
	}

	required := make(map[string]bool, len(c.RequiredColumns))
	for _, col := range c.RequiredColumns {
		required[col] = true
	}
	for _, col := range c.FeatureColumns {
		if col == c.TargetColumn {
			return housefitErrors.NewValidationError(
				"feature_columns",
				fmt.Sprintf("target column %q cannot also be a feature", col),
				c.FeatureColumns,
			)
		}
		if !required[col] {
			return housefitErrors.NewValidationError(
				"feature_columns",
				fmt.Sprintf("feature column %q is not listed in required_columns", col),
				c.FeatureColumns,
			)
		}
	}
	if !required[c.TargetColumn] {
		return housefitErrors.NewValidationError(
			"target_column",
			fmt.Sprintf("target column %q is not listed in required_columns", c.TargetColumn),
			c.TargetColumn,
		)
	}
	return nil
}
