package main

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/housefit/housefit/config"
	"github.com/housefit/housefit/dataset"
	"github.com/housefit/housefit/linear"
	"github.com/housefit/housefit/pipeline"
	housefitErrors "github.com/housefit/housefit/pkg/errors"
	"github.com/housefit/housefit/pkg/log"
	"github.com/housefit/housefit/preprocessing"
	"github.com/housefit/housefit/store"
	"github.com/housefit/housefit/visualization"
)

// runRoot resolves the effective config, sets up logging and dispatches to
// train or load mode.
func runRoot(_ *cobra.Command, _ []string) error {
	if predictOnly && !loadModel {
		return housefitErrors.New("flag --predict-only requires --load-model")
	}

	cfg, err := resolveConfig()
	if err != nil {
		return err
	}
	log.SetupLogger(cfg.LogLevel)
	logger := log.GetLoggerWithName("cli").With(log.RunIDKey, uuid.NewString())

	if loadModel {
		return runLoad(cfg, logger)
	}
	return runTrain(cfg, logger)
}

// resolveConfig layers flag values over the YAML file, when one is given,
// over the defaults.
func resolveConfig() (config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.LoadFile(configPath)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}
	if inputPath != "" {
		cfg.InputPath = inputPath
	}
	if modelPath != "" {
		cfg.ModelPath = modelPath
	}
	if metadataPath != "" {
		cfg.MetadataPath = metadataPath
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	return cfg, nil
}

// runTrain is the default mode: prepare, train, evaluate and report, then
// optionally chart and persist.
func runTrain(cfg config.Config, logger log.Logger) error {
	split, result, err := pipeline.Run(cfg, cfg.InputPath)
	if err != nil {
		return err
	}
	if err := visualization.WriteReport(os.Stdout, split, result); err != nil {
		return err
	}

	if saveModel {
		if err := store.NewModelStore().Save(result, cfg.ModelPath, cfg.MetadataPath); err != nil {
			return err
		}
	}

	if noPlot {
		return nil
	}
	// The metrics are already reported, so a failed chart degrades to a
	// warning instead of failing the run.
	if err := visualization.PlotFeatureFits(cfg, split, result, cfg.OutputImage); err != nil {
		logger.Warn("Feature fit chart failed", "error", err)
	}
	if err := visualization.PlotPredictionSurface(cfg, split, result, cfg.OutputSurfaceImage); err != nil {
		logger.Warn("Prediction surface chart failed", "error", err)
	}
	return nil
}

// runLoad restores a stored model, reports its metadata and, with
// --predict-only, prints predictions for the input CSV.
func runLoad(cfg config.Config, logger log.Logger) error {
	st := store.NewModelStore()
	model, scaler, err := st.Load(cfg.ModelPath)
	if err != nil {
		return err
	}
	meta, err := st.LoadMetadata(cfg.MetadataPath)
	if err != nil {
		return err
	}
	logger.Info("Model load success", log.PathKey, cfg.ModelPath)

	formula := &linear.Formula{
		Coefficients: meta.Coefficients,
		Intercept:    meta.Intercept,
		Features:     meta.Features,
		Target:       meta.Target,
	}
	fmt.Printf("model formula: %s\n", formula)
	fmt.Printf("r2 result: %.4f (train) | %.4f (test)\n", meta.TrainR2, meta.TestR2)
	fmt.Printf("rmse result: %.4f (train) | %.4f (test)\n", meta.TrainRMSE, meta.TestRMSE)

	if !predictOnly {
		return nil
	}
	return predictInput(cfg, meta, model, scaler)
}

// predictInput loads the input CSV, cleans it on the stored model's
// feature columns and prints a prediction per surviving row. The stored
// columns, not the config's, decide what the model consumes, so a config
// drift cannot feed the wrong features to an already trained model.
func predictInput(cfg config.Config, meta *store.Metadata, model *linear.LinearRegression, scaler *preprocessing.StandardScaler) error {
	ds, err := dataset.Load(cfg.InputPath, meta.Features...)
	if err != nil {
		return err
	}
	clean, err := dataset.Clean(ds, meta.Features, cfg.OutlierThreshold)
	if err != nil {
		return err
	}
	X, err := clean.FeatureMatrix(meta.Features)
	if err != nil {
		return err
	}

	xScaled, err := scaler.Transform(X)
	if err != nil {
		return err
	}
	raw, err := model.Predict(xScaled)
	if err != nil {
		return err
	}
	rows, _ := raw.Dims()
	preds := mat.NewVecDense(rows, nil)
	for i := 0; i < rows; i++ {
		preds.SetVec(i, raw.At(i, 0))
	}

	fmt.Println()
	return visualization.WritePredictions(os.Stdout, meta.Features, meta.Target, X, preds)
}
