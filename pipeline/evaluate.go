package pipeline

import (
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/housefit/housefit/config"
	"github.com/housefit/housefit/dataset"
	"github.com/housefit/housefit/linear"
	"github.com/housefit/housefit/metrics"
	housefitErrors "github.com/housefit/housefit/pkg/errors"
	"github.com/housefit/housefit/pkg/log"
	"github.com/housefit/housefit/preprocessing"
)

// EvaluationResult bundles everything a fitted run produces: the estimators,
// the original-units formula, per-partition predictions and the four
// headline metrics.
type EvaluationResult struct {
	Model   *linear.LinearRegression
	Scaler  *preprocessing.StandardScaler
	Formula *linear.Formula

	// Predictions in original target units, aligned with split.YTrain and
	// split.YTest respectively.
	TrainPredictions *mat.VecDense
	TestPredictions  *mat.VecDense

	TrainR2   float64
	TestR2    float64
	TrainRMSE float64
	TestRMSE  float64
}

// Evaluate scores a fitted model on both partitions of a split and extracts
// the original-units formula.
//
// Both partitions are transformed with the already-fitted scaler, predicted,
// and scored with R² and RMSE. Evaluation mutates nothing; the same inputs
// always produce the same result.
//
// Parameters:
//   - cfg: Supplies the feature and target column names for the formula
//   - split: Train and test partitions in original units
//   - model: Fitted regression model (standardized feature space)
//   - scaler: Scaler fitted on the train partition
//
// Returns:
//   - *EvaluationResult: Metrics, predictions and formula
//   - error: nil if successful
//
// Errors:
//   - ModelOperationError: when a partition cannot be scored, including a
//     constant-target partition whose R² is undefined (wraps ValueError)
//   - NotFittedError: when model or scaler has not been fitted
func Evaluate(cfg config.Config, split *dataset.SplitResult, model *linear.LinearRegression, scaler *preprocessing.StandardScaler) (_ *EvaluationResult, err error) {
	defer housefitErrors.Recover(&err, "pipeline.Evaluate")

	startTime := time.Now()
	logger := log.GetLoggerWithName("pipeline")
	logger.Info("Evaluating model",
		log.PhaseKey, log.PhaseEvaluation,
		log.SamplesKey, split.NumTrain()+split.NumTest(),
	)

	trainPreds, trainR2, trainRMSE, err := scorePartition(model, scaler, split.XTrain, split.YTrain)
	if err != nil {
		return nil, housefitErrors.NewModelOperationError("pipeline.Evaluate",
			"cannot score train partition", err)
	}
	testPreds, testR2, testRMSE, err := scorePartition(model, scaler, split.XTest, split.YTest)
	if err != nil {
		return nil, housefitErrors.NewModelOperationError("pipeline.Evaluate",
			"cannot score test partition", err)
	}

	formula, err := linear.NewFormula(model, scaler, cfg.FeatureColumns, cfg.TargetColumn)
	if err != nil {
		return nil, err
	}

	logger.Info("Train partition scored",
		log.PhaseKey, log.PhaseEvaluation,
		log.SamplesKey, split.NumTrain(),
		log.R2ScoreKey, trainR2,
		log.RMSEKey, trainRMSE,
	)
	logger.Info("Test partition scored",
		log.PhaseKey, log.PhaseEvaluation,
		log.SamplesKey, split.NumTest(),
		log.R2ScoreKey, testR2,
		log.RMSEKey, testRMSE,
		log.DurationMsKey, time.Since(startTime).Milliseconds(),
	)

	return &EvaluationResult{
		Model:            model,
		Scaler:           scaler,
		Formula:          formula,
		TrainPredictions: trainPreds,
		TestPredictions:  testPreds,
		TrainR2:          trainR2,
		TestR2:           testR2,
		TrainRMSE:        trainRMSE,
		TestRMSE:         testRMSE,
	}, nil
}

// scorePartition transforms one partition, predicts it and computes R² and
// RMSE against the true targets.
func scorePartition(model *linear.LinearRegression, scaler *preprocessing.StandardScaler, X *mat.Dense, y *mat.VecDense) (*mat.VecDense, float64, float64, error) {
	scaled, err := scaler.Transform(X)
	if err != nil {
		return nil, 0, 0, err
	}

	predicted, err := model.Predict(scaled)
	if err != nil {
		return nil, 0, 0, err
	}
	preds := columnVector(predicted)

	r2, err := metrics.R2Score(y, preds)
	if err != nil {
		return nil, 0, 0, err
	}
	rmse, err := metrics.RMSE(y, preds)
	if err != nil {
		return nil, 0, 0, err
	}
	return preds, r2, rmse, nil
}

// columnVector copies the first column of a matrix into a vector.
func columnVector(m mat.Matrix) *mat.VecDense {
	r, _ := m.Dims()
	v := mat.NewVecDense(r, nil)
	for i := 0; i < r; i++ {
		v.SetVec(i, m.At(i, 0))
	}
	return v
}
