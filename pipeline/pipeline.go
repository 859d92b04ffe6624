// Package pipeline chains the housefit stages into a single run.
//
// The stages execute strictly in order:
//
//   - Prepare: load the CSV, clean it, extract numeric features and split
//     into train and test partitions
//   - Train: fit the scaler on the train partition, then fit ordinary least
//     squares on the scaled features
//   - Evaluate: score both partitions and de-scale the fitted model into an
//     original-units formula
//
// Run executes the full chain. Every stage takes its inputs explicitly and
// returns a typed result; nothing in this package holds state between calls.
//
// Example usage:
//
//	cfg := config.Default()
//	split, result, err := pipeline.Run(cfg, cfg.InputPath)
//	if err != nil {
//		log.Fatal(err)
//	}
//	fmt.Println(result.Formula)
package pipeline

import (
	"time"

	"github.com/housefit/housefit/config"
	"github.com/housefit/housefit/dataset"
	"github.com/housefit/housefit/linear"
	housefitErrors "github.com/housefit/housefit/pkg/errors"
	"github.com/housefit/housefit/pkg/log"
	"github.com/housefit/housefit/preprocessing"
)

// Prepare runs the data half of the pipeline: Load, Clean, numeric
// extraction and TrainTestSplit, all driven by cfg.
//
// Parameters:
//   - cfg: Pipeline configuration (columns, outlier threshold, split)
//   - inputPath: CSV file to load
//
// Returns:
//   - *dataset.SplitResult: Train and test partitions
//   - error: nil if successful
//
// Errors:
//   - DataProcessingError: on any load, clean or split failure, including
//     a dataset left empty by cleaning (wraps ErrEmptyData)
func Prepare(cfg config.Config, inputPath string) (_ *dataset.SplitResult, err error) {
	defer housefitErrors.Recover(&err, "pipeline.Prepare")

	startTime := time.Now()
	logger := log.GetLoggerWithName("pipeline")
	logger.Info("Preparing dataset",
		log.PhaseKey, log.PhasePreprocessing,
		log.PathKey, inputPath,
	)

	ds, err := dataset.Load(inputPath, cfg.RequiredColumns...)
	if err != nil {
		return nil, err
	}

	clean, err := dataset.Clean(ds, cfg.RequiredColumns, cfg.OutlierThreshold)
	if err != nil {
		return nil, err
	}
	if clean.NumRows() == 0 {
		return nil, housefitErrors.NewDataProcessingError("pipeline.Prepare",
			"no rows left after cleaning", housefitErrors.ErrEmptyData)
	}

	X, err := clean.FeatureMatrix(cfg.FeatureColumns)
	if err != nil {
		return nil, err
	}
	y, err := clean.TargetVector(cfg.TargetColumn)
	if err != nil {
		return nil, err
	}

	split, err := dataset.TrainTestSplit(X, y, cfg.TestSize, cfg.RandomState)
	if err != nil {
		return nil, err
	}

	logger.Info("Dataset prepared",
		log.PhaseKey, log.PhasePreprocessing,
		log.SamplesKey, clean.NumRows(),
		log.FeaturesKey, len(cfg.FeatureColumns),
		log.DurationMsKey, time.Since(startTime).Milliseconds(),
	)
	return split, nil
}

// Train fits the feature scaler and the regression model on the train
// partition. The scaler never sees the test partition.
//
// Returns:
//   - *linear.LinearRegression: Model fitted in standardized feature space
//   - *preprocessing.StandardScaler: Scaler fitted on XTrain
//   - error: nil if successful
//
// Errors:
//   - ModelOperationError: singular normal equations (wraps
//     ErrSingularMatrix) or empty train partition (wraps ErrEmptyData)
func Train(split *dataset.SplitResult) (_ *linear.LinearRegression, _ *preprocessing.StandardScaler, err error) {
	defer housefitErrors.Recover(&err, "pipeline.Train")

	startTime := time.Now()
	logger := log.GetLoggerWithName("pipeline")
	logger.Info("Training model",
		log.PhaseKey, log.PhaseTraining,
		log.SamplesKey, split.NumTrain(),
	)

	scaler := preprocessing.NewStandardScalerDefault()
	xScaled, err := scaler.FitTransform(split.XTrain)
	if err != nil {
		return nil, nil, err
	}

	model := linear.NewLinearRegression()
	if err := model.Fit(xScaled, split.YTrain); err != nil {
		return nil, nil, err
	}

	logger.Info("Model trained",
		log.PhaseKey, log.PhaseTraining,
		log.SamplesKey, split.NumTrain(),
		log.DurationMsKey, time.Since(startTime).Milliseconds(),
	)
	return model, scaler, nil
}

// Run executes the full pipeline: Prepare, Train, Evaluate.
func Run(cfg config.Config, inputPath string) (*dataset.SplitResult, *EvaluationResult, error) {
	split, err := Prepare(cfg, inputPath)
	if err != nil {
		return nil, nil, err
	}

	model, scaler, err := Train(split)
	if err != nil {
		return nil, nil, err
	}

	result, err := Evaluate(cfg, split, model, scaler)
	if err != nil {
		return nil, nil, err
	}
	return split, result, nil
}
