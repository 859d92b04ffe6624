// Package visualization renders the run results for humans: a console
// report and the regression charts.
//
// The report prints the fitted formula, the train/test scores and a short
// actual-versus-predicted table per partition. The charts show each
// feature's fit and, for two-feature models, the predicted price surface.
// Chart rendering is best-effort; callers treat failures as warnings, since
// the metrics have already been computed by the time a chart is drawn.
package visualization

import (
	"fmt"
	"io"
	"text/tabwriter"

	"gonum.org/v1/gonum/mat"

	"github.com/housefit/housefit/dataset"
	"github.com/housefit/housefit/pipeline"
)

// sampleRows is how many rows of each partition the report prints.
const sampleRows = 5

// WriteReport prints the formula, the scores and a sample table for each
// partition to w.
//
// Example output:
//
//	model formula: price_thousands = 50.0000 + 0.1000·square_footage + 10.0000·bedrooms
//	r2 result: 1.0000 (train) | 1.0000 (test)
//	rmse result: 0.0000 (train) | 0.0000 (test)
func WriteReport(w io.Writer, split *dataset.SplitResult, result *pipeline.EvaluationResult) error {
	fmt.Fprintf(w, "model formula: %s\n", result.Formula)
	fmt.Fprintf(w, "r2 result: %.4f (train) | %.4f (test)\n", result.TrainR2, result.TestR2)
	fmt.Fprintf(w, "rmse result: %.4f (train) | %.4f (test)\n", result.TrainRMSE, result.TestRMSE)

	fmt.Fprintf(w, "\ntraining sample (first %d rows):\n", sampleRows)
	if err := writeSampleTable(w, result.Formula.Features, split.XTrain, split.YTrain, result.TrainPredictions); err != nil {
		return err
	}

	fmt.Fprintf(w, "\ntest sample (first %d rows):\n", sampleRows)
	return writeSampleTable(w, result.Formula.Features, split.XTest, split.YTest, result.TestPredictions)
}

// WritePredictions prints every sample's feature values and predicted
// target in aligned columns. Unlike the report tables there is no actual
// column; this is the output format for predicting from a stored model.
func WritePredictions(w io.Writer, features []string, target string, X *mat.Dense, preds *mat.VecDense) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	for _, name := range features {
		fmt.Fprintf(tw, "%s\t", name)
	}
	fmt.Fprintf(tw, "predicted %s\n", target)

	rows, _ := X.Dims()
	for i := 0; i < rows; i++ {
		for j := range features {
			fmt.Fprintf(tw, "%g\t", X.At(i, j))
		}
		fmt.Fprintf(tw, "%.2f\n", preds.AtVec(i))
	}
	return tw.Flush()
}

// writeSampleTable prints up to sampleRows rows of features, actual target,
// prediction and residual in aligned columns.
func writeSampleTable(w io.Writer, features []string, X *mat.Dense, y, preds *mat.VecDense) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	for _, name := range features {
		fmt.Fprintf(tw, "%s\t", name)
	}
	fmt.Fprint(tw, "actual\tpredicted\terror\n")

	n := y.Len()
	if n > sampleRows {
		n = sampleRows
	}
	for i := 0; i < n; i++ {
		for j := range features {
			fmt.Fprintf(tw, "%g\t", X.At(i, j))
		}
		actual := y.AtVec(i)
		predicted := preds.AtVec(i)
		fmt.Fprintf(tw, "%.2f\t%.2f\t%.2f\n", actual, predicted, actual-predicted)
	}
	return tw.Flush()
}
