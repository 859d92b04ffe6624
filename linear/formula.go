package linear

import (
	"fmt"
	"strings"

	housefitErrors "github.com/housefit/housefit/pkg/errors"
	"github.com/housefit/housefit/preprocessing"
)

// Formula is a fitted regression re-expressed in the original feature units.
//
// A model trained on standardized features predicts
//
//	y = b + Σ w_i · (x_i − μ_i)/σ_i
//
// which regroups in original units to
//
//	y = (b − Σ w_i·μ_i/σ_i) + Σ (w_i/σ_i)·x_i
//
// Formula holds the regrouped coefficients and intercept together with the
// column names, so predictions and reports can work directly on raw values.
type Formula struct {
	// Coefficients holds one per-feature slope in original units
	Coefficients []float64

	// Intercept is the constant term in original units
	Intercept float64

	// Features holds the feature column names, aligned with Coefficients
	Features []string

	// Target is the predicted column name
	Target string
}

// NewFormula de-scales a model fitted on standardized features into original units.
//
// The model and scaler must both be fitted and agree on the number of
// features, and the features slice must name every model coefficient in
// order. The returned Formula predicts identically to applying the scaler
// followed by the model, up to floating-point rounding.
//
// Parameters:
//   - model: Linear regression fitted on standardized features
//   - scaler: The scaler those features were standardized with
//   - features: Feature column names, aligned with the model coefficients
//   - target: Name of the predicted column
//
// Returns:
//   - *Formula: The de-scaled coefficients, intercept and column names
//   - error: nil if successful, otherwise an error describing the failure
//
// Errors:
//   - ErrNotFitted: if the model or the scaler hasn't been fitted yet
//   - ErrDimensionMismatch: if feature counts disagree
//
// Example:
//
//	formula, err := linear.NewFormula(lr, scaler, []string{"square_footage", "bedrooms"}, "price_thousands")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(formula)
func NewFormula(model *LinearRegression, scaler *preprocessing.StandardScaler, features []string, target string) (_ *Formula, err error) {
	defer housefitErrors.Recover(&err, "NewFormula")

	if model == nil || !model.IsFitted() {
		return nil, housefitErrors.NewNotFittedError("LinearRegression", "NewFormula")
	}
	if scaler == nil || !scaler.IsFitted() {
		return nil, housefitErrors.NewNotFittedError("StandardScaler", "NewFormula")
	}
	if scaler.NFeatures != model.NFeatures {
		return nil, housefitErrors.NewDimensionError("NewFormula", model.NFeatures, scaler.NFeatures, 1)
	}
	if len(features) != model.NFeatures {
		return nil, housefitErrors.NewDimensionError("NewFormula", model.NFeatures, len(features), 1)
	}

	coefficients := make([]float64, model.NFeatures)
	intercept := model.Intercept
	for i := 0; i < model.NFeatures; i++ {
		w := model.Weights.AtVec(i)
		coefficients[i] = w / scaler.Scale[i]
		intercept -= w * scaler.Mean[i] / scaler.Scale[i]
	}

	return &Formula{
		Coefficients: coefficients,
		Intercept:    intercept,
		Features:     append([]string(nil), features...),
		Target:       target,
	}, nil
}

// Apply evaluates the formula on one raw feature vector.
//
// Parameters:
//   - x: Feature values in original units, aligned with Features
//
// Returns:
//   - float64: The predicted target value
//   - error: nil if successful, ErrDimensionMismatch if x has the wrong length
func (f *Formula) Apply(x []float64) (float64, error) {
	if len(x) != len(f.Coefficients) {
		return 0, housefitErrors.NewDimensionError("Formula.Apply", len(f.Coefficients), len(x), 1)
	}

	y := f.Intercept
	for i, v := range x {
		y += f.Coefficients[i] * v
	}
	return y, nil
}

// String renders the formula with four decimal places, folding coefficient
// signs into the terms:
//
//	price_thousands = 12.3456 + 0.1234·square_footage - 5.6789·bedrooms
func (f *Formula) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s = %.4f", f.Target, f.Intercept)
	for i, name := range f.Features {
		coef := f.Coefficients[i]
		if coef < 0 {
			fmt.Fprintf(&b, " - %.4f·%s", -coef, name)
		} else {
			fmt.Fprintf(&b, " + %.4f·%s", coef, name)
		}
	}
	return b.String()
}
