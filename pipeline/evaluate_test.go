package pipeline_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/housefit/housefit/config"
	"github.com/housefit/housefit/dataset"
	"github.com/housefit/housefit/linear"
	"github.com/housefit/housefit/pipeline"
	housefitErrors "github.com/housefit/housefit/pkg/errors"
	"github.com/housefit/housefit/preprocessing"
)

// syntheticSplit builds a hand-made split from price = 50 + 0.1*sqft +
// 10*bedrooms with no noise.
func syntheticSplit() *dataset.SplitResult {
	xTrain := mat.NewDense(6, 2, []float64{
		1200, 2,
		1500, 3,
		1800, 3,
		2100, 4,
		2400, 4,
		3000, 5,
	})
	yTrain := mat.NewVecDense(6, []float64{190, 230, 260, 300, 330, 400})
	xTest := mat.NewDense(2, 2, []float64{
		1000, 2,
		2000, 3,
	})
	yTest := mat.NewVecDense(2, []float64{170, 280})
	return &dataset.SplitResult{XTrain: xTrain, XTest: xTest, YTrain: yTrain, YTest: yTest}
}

// TestTrainAndEvaluate verifies Train and Evaluate on a noise-free split:
// perfect scores and an exactly recovered formula.
func TestTrainAndEvaluate(t *testing.T) {
	split := syntheticSplit()

	model, scaler, err := pipeline.Train(split)
	require.NoError(t, err)
	assert.True(t, model.IsFitted())
	assert.True(t, scaler.IsFitted())

	cfg := config.Default()
	result, err := pipeline.Evaluate(cfg, split, model, scaler)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, result.TrainR2, 1e-9)
	assert.InDelta(t, 1.0, result.TestR2, 1e-9)
	assert.InDelta(t, 0.0, result.TrainRMSE, 1e-6)
	assert.InDelta(t, 0.0, result.TestRMSE, 1e-6)

	require.NotNil(t, result.Formula)
	assert.InDelta(t, 0.1, result.Formula.Coefficients[0], 1e-6)
	assert.InDelta(t, 10.0, result.Formula.Coefficients[1], 1e-6)
	assert.InDelta(t, 50.0, result.Formula.Intercept, 1e-6)

	require.Equal(t, 2, result.TestPredictions.Len())
	assert.InDelta(t, 170.0, result.TestPredictions.AtVec(0), 1e-6)
	assert.InDelta(t, 280.0, result.TestPredictions.AtVec(1), 1e-6)
}

// TestEvaluateConstantTestTarget verifies a partition with zero target
// variance is rejected instead of producing a NaN score.
func TestEvaluateConstantTestTarget(t *testing.T) {
	split := syntheticSplit()
	split.YTest = mat.NewVecDense(2, []float64{250, 250})

	model, scaler, err := pipeline.Train(split)
	require.NoError(t, err)

	_, err = pipeline.Evaluate(config.Default(), split, model, scaler)
	require.Error(t, err)

	var opErr *housefitErrors.ModelOperationError
	require.True(t, housefitErrors.As(err, &opErr))
	var valErr *housefitErrors.ValueError
	assert.True(t, housefitErrors.As(err, &valErr))
}

// TestEvaluateUnfittedModel verifies evaluating an unfitted model fails with
// a NotFittedError.
func TestEvaluateUnfittedModel(t *testing.T) {
	split := syntheticSplit()

	scaler := preprocessing.NewStandardScalerDefault()
	require.NoError(t, scaler.Fit(split.XTrain))
	model := linear.NewLinearRegression()

	_, err := pipeline.Evaluate(config.Default(), split, model, scaler)
	require.Error(t, err)

	var notFitted *housefitErrors.NotFittedError
	assert.True(t, housefitErrors.As(err, &notFitted))
}

// TestTrainSingularFeatures verifies a train matrix with duplicated columns
// is reported as singular.
func TestTrainSingularFeatures(t *testing.T) {
	split := syntheticSplit()
	split.XTrain = mat.NewDense(4, 2, []float64{
		1, 1,
		2, 2,
		3, 3,
		4, 4,
	})
	split.YTrain = mat.NewVecDense(4, []float64{1, 2, 3, 4})

	_, _, err := pipeline.Train(split)
	require.Error(t, err)
	assert.True(t, housefitErrors.Is(err, housefitErrors.ErrSingularMatrix))
}
