package visualization

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/housefit/housefit/config"
	"github.com/housefit/housefit/dataset"
	"github.com/housefit/housefit/pipeline"
)

// trainedFixture fits and evaluates a model on six noise-free rows of
// price = 50 + 0.1*sqft + 10*bedrooms.
func trainedFixture(t *testing.T) (*dataset.SplitResult, *pipeline.EvaluationResult) {
	t.Helper()

	split := &dataset.SplitResult{
		XTrain: mat.NewDense(6, 2, []float64{
			1200, 2,
			1500, 3,
			1800, 3,
			2100, 4,
			2400, 4,
			3000, 5,
		}),
		YTrain: mat.NewVecDense(6, []float64{190, 230, 260, 300, 330, 400}),
		XTest: mat.NewDense(2, 2, []float64{
			1000, 2,
			2000, 3,
		}),
		YTest: mat.NewVecDense(2, []float64{170, 280}),
	}

	model, scaler, err := pipeline.Train(split)
	require.NoError(t, err)
	result, err := pipeline.Evaluate(config.Default(), split, model, scaler)
	require.NoError(t, err)
	return split, result
}

// TestWriteReport verifies the report carries the formula, the scores and
// both sample tables.
func TestWriteReport(t *testing.T) {
	split, result := trainedFixture(t)

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, split, result))
	out := buf.String()

	assert.Contains(t, out,
		"model formula: price_thousands = 50.0000 + 0.1000·square_footage + 10.0000·bedrooms")
	assert.Contains(t, out, "r2 result: 1.0000 (train) | 1.0000 (test)")
	assert.Contains(t, out, "rmse result: 0.0000 (train) | 0.0000 (test)")

	assert.Contains(t, out, "training sample")
	assert.Contains(t, out, "test sample")
	assert.Contains(t, out, "square_footage")
	assert.Contains(t, out, "predicted")

	// First training row: actual 190, perfect prediction, zero error.
	assert.Contains(t, out, "190.00")
	assert.Contains(t, out, "0.00")
}

// TestWriteReportCapsSampleRows verifies only the first five rows of a
// partition are printed.
func TestWriteReportCapsSampleRows(t *testing.T) {
	split, result := trainedFixture(t)

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, split, result))

	// The sixth training row (square footage 3000) must not appear.
	assert.NotContains(t, buf.String(), "3000")
}

// TestWriteReportShortPartition verifies partitions smaller than the sample
// size print in full without padding.
func TestWriteReportShortPartition(t *testing.T) {
	split, result := trainedFixture(t)

	var buf bytes.Buffer
	require.NoError(t, WriteReport(&buf, split, result))
	out := buf.String()

	// Both test rows are present.
	assert.Contains(t, out, "170.00")
	assert.Contains(t, out, "280.00")

	// The test table holds exactly two data rows: header + 2 lines between
	// the "test sample" heading and the end of output.
	idx := strings.Index(out, "test sample")
	require.GreaterOrEqual(t, idx, 0)
	tail := strings.TrimRight(out[idx:], "\n")
	lines := strings.Split(tail, "\n")
	// heading, header row, two data rows
	assert.Len(t, lines, 4)
}

// TestWritePredictions verifies the stored-model prediction table prints
// every row with the target name in the header.
func TestWritePredictions(t *testing.T) {
	X := mat.NewDense(3, 2, []float64{
		1000, 2,
		2000, 3,
		3000, 5,
	})
	preds := mat.NewVecDense(3, []float64{170, 280, 400})

	var buf bytes.Buffer
	err := WritePredictions(&buf, []string{"square_footage", "bedrooms"}, "price_thousands", X, preds)
	require.NoError(t, err)
	out := buf.String()

	assert.Contains(t, out, "predicted price_thousands")
	assert.Contains(t, out, "170.00")
	assert.Contains(t, out, "280.00")
	assert.Contains(t, out, "400.00")

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	// header row plus one line per sample, no row cap
	assert.Len(t, lines, 4)
}
