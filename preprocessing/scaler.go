// Package preprocessing provides data preprocessing utilities for machine learning.
//
// This package implements feature standardization:
//
//   - StandardScaler: Standardizes features by removing the mean and scaling to unit variance
//
// The scaler follows the estimator pattern with Fit, Transform and
// FitTransform methods. It composes a StateManager for consistent state
// management and serialization support.
//
// Example usage:
//
//	scaler := preprocessing.NewStandardScaler(true, true)
//	err := scaler.Fit(trainingData)
//	if err != nil {
//		log.Fatal(err)
//	}
//	scaledData, err := scaler.Transform(testData)
//
// The package is designed for production machine learning pipelines with
// emphasis on memory efficiency and numerical stability.
package preprocessing

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/housefit/housefit/core/model"
	housefitErrors "github.com/housefit/housefit/pkg/errors"
)

// StandardScaler standardizes features to zero mean and unit variance.
type StandardScaler struct {
	State *model.StateManager // State manager (composition instead of embedding) - Public for gob encoding

	// Mean holds the per-feature mean
	Mean []float64

	// Scale holds the per-feature standard deviation
	Scale []float64

	// NFeatures is the number of features
	NFeatures int

	// WithMean controls whether the mean is subtracted (default: true)
	WithMean bool

	// WithStd controls whether features are divided by the standard deviation (default: true)
	WithStd bool
}

// NewStandardScaler creates a new StandardScaler for feature standardization.
//
// StandardScaler transforms features by removing the mean and scaling to unit variance.
// This is a common preprocessing step that ensures all features contribute equally
// to machine learning algorithms and improves numerical stability.
//
// Parameters:
//   - withMean: whether to center the data at zero by removing the mean (default: true)
//   - withStd: whether to scale the data to unit variance by dividing by standard deviation (default: true)
//
// Returns:
//   - *StandardScaler: A new StandardScaler instance ready for fitting
//
// Example:
//
//	// Standard z-score normalization (mean=0, std=1)
//	scaler := preprocessing.NewStandardScaler(true, true)
//	err := scaler.Fit(X_train)
//	X_scaled, err := scaler.Transform(X_test)
//
//	// Scale only (keep original mean)
//	scaler := preprocessing.NewStandardScaler(false, true)
func NewStandardScaler(withMean, withStd bool) *StandardScaler {
	return &StandardScaler{
		State:    model.NewStateManager(),
		WithMean: withMean,
		WithStd:  withStd,
	}
}

// NewStandardScalerDefault creates a StandardScaler with default settings.
func NewStandardScalerDefault() *StandardScaler {
	return NewStandardScaler(true, true)
}

// Fit computes the statistics (mean and scale) from the training data.
//
// This method calculates the feature-wise mean and population standard
// deviation from the provided training data, which will be used for future
// transformations. The scaler must be fitted before calling Transform or
// InverseTransform.
//
// Parameters:
//   - X: Training data matrix of shape (n_samples, n_features)
//
// Returns:
//   - error: nil if successful, otherwise an error describing the failure
//
// Errors:
//   - ErrEmptyData: if X is empty
//
// Example:
//
//	scaler := preprocessing.NewStandardScaler(true, true)
//	err := scaler.Fit(trainingData)
//	if err != nil {
//	    log.Fatal(err)
//	}
func (s *StandardScaler) Fit(X mat.Matrix) (err error) {
	defer housefitErrors.Recover(&err, "StandardScaler.Fit")
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return housefitErrors.NewModelOperationError("StandardScaler.Fit", "empty data", housefitErrors.ErrEmptyData)
	}

	s.NFeatures = c
	s.Mean = make([]float64, c)
	s.Scale = make([]float64, c)

	// Compute the per-feature mean
	if s.WithMean {
		for j := 0; j < c; j++ {
			sum := 0.0
			for i := 0; i < r; i++ {
				sum += X.At(i, j)
			}
			s.Mean[j] = sum / float64(r)
		}
	} else {
		for j := 0; j < c; j++ {
			s.Mean[j] = 0.0
		}
	}

	// Compute the per-feature population standard deviation
	if s.WithStd {
		for j := 0; j < c; j++ {
			sumSquares := 0.0
			for i := 0; i < r; i++ {
				diff := X.At(i, j) - s.Mean[j]
				sumSquares += diff * diff
			}
			variance := sumSquares / float64(r)
			s.Scale[j] = math.Sqrt(variance)

			// Near-zero deviation becomes 1 to avoid division by zero
			if math.Abs(s.Scale[j]) < 1e-8 {
				s.Scale[j] = 1.0
			}
		}
	} else {
		for j := 0; j < c; j++ {
			s.Scale[j] = 1.0
		}
	}

	s.State.SetFitted()
	s.State.SetDimensions(c, r)
	return nil
}

// Transform applies standardization to the input data using fitted statistics.
//
// This method standardizes features by removing the mean and scaling to unit
// variance using the statistics computed during the Fit phase. The transformation
// formula is: X_scaled = (X - mean) / scale.
//
// Parameters:
//   - X: Input data matrix of shape (n_samples, n_features)
//
// Returns:
//   - mat.Matrix: Standardized data matrix with same shape as input
//   - error: nil if successful, otherwise an error describing the failure
//
// Errors:
//   - ErrNotFitted: if the scaler hasn't been fitted yet
//   - ErrDimensionMismatch: if X doesn't match the number of features from training
//
// Example:
//
//	scaledData, err := scaler.Transform(testData)
//	if err != nil {
//	    log.Fatal(err)
//	}
func (s *StandardScaler) Transform(X mat.Matrix) (_ mat.Matrix, err error) {
	defer housefitErrors.Recover(&err, "StandardScaler.Transform")
	if !s.State.IsFitted() {
		return nil, housefitErrors.NewNotFittedError("StandardScaler", "Transform")
	}

	r, c := X.Dims()
	if c != s.NFeatures {
		return nil, housefitErrors.NewDimensionError("StandardScaler.Transform", s.NFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)

	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			value := X.At(i, j)
			standardized := (value - s.Mean[j]) / s.Scale[j]
			result.Set(i, j, standardized)
		}
	}

	return result, nil
}

// FitTransform fits the scaler and transforms the training data in one step.
//
// This convenience method combines Fit and Transform operations, computing
// statistics from the input data and immediately applying the transformation.
// Equivalent to calling Fit(X) followed by Transform(X).
//
// Parameters:
//   - X: Training data matrix of shape (n_samples, n_features)
//
// Returns:
//   - mat.Matrix: Standardized training data matrix
//   - error: nil if successful, otherwise an error from either fitting or transformation
//
// Example:
//
//	scaler := preprocessing.NewStandardScaler(true, true)
//	scaledTraining, err := scaler.FitTransform(trainingData)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	// Now scaler is fitted and can transform new data
//	scaledTest, err := scaler.Transform(testData)
func (s *StandardScaler) FitTransform(X mat.Matrix) (_ mat.Matrix, err error) {
	defer housefitErrors.Recover(&err, "StandardScaler.FitTransform")
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// InverseTransform reverses the standardization transformation.
//
// This method transforms standardized data back to the original scale using
// the fitted statistics. The inverse transformation formula is:
// X_orig = X_scaled * scale + mean.
//
// Parameters:
//   - X: Standardized data matrix of shape (n_samples, n_features)
//
// Returns:
//   - mat.Matrix: Data matrix in original scale
//   - error: nil if successful, otherwise an error describing the failure
//
// Errors:
//   - ErrNotFitted: if the scaler hasn't been fitted yet
//   - ErrDimensionMismatch: if X doesn't match the number of features from training
//
// Example:
//
//	originalData, err := scaler.InverseTransform(scaledData)
//	if err != nil {
//	    log.Fatal(err)
//	}
func (s *StandardScaler) InverseTransform(X mat.Matrix) (_ mat.Matrix, err error) {
	defer housefitErrors.Recover(&err, "StandardScaler.InverseTransform")
	if !s.State.IsFitted() {
		return nil, housefitErrors.NewNotFittedError("StandardScaler", "InverseTransform")
	}

	r, c := X.Dims()
	if c != s.NFeatures {
		return nil, housefitErrors.NewDimensionError("StandardScaler.InverseTransform", s.NFeatures, c, 1)
	}

	result := mat.NewDense(r, c, nil)

	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			value := X.At(i, j)
			original := value*s.Scale[j] + s.Mean[j]
			result.Set(i, j, original)
		}
	}

	return result, nil
}

// IsFitted returns whether the scaler has been fitted.
func (s *StandardScaler) IsFitted() bool {
	return s.State.IsFitted()
}

// GetParams returns the scaler's parameters.
func (s *StandardScaler) GetParams() map[string]interface{} {
	return map[string]interface{}{
		"with_mean": s.WithMean,
		"with_std":  s.WithStd,
	}
}

// String returns a string representation of the scaler.
func (s *StandardScaler) String() string {
	if !s.State.IsFitted() {
		return fmt.Sprintf("StandardScaler(with_mean=%t, with_std=%t)", s.WithMean, s.WithStd)
	}
	return fmt.Sprintf("StandardScaler(with_mean=%t, with_std=%t, n_features=%d)",
		s.WithMean, s.WithStd, s.NFeatures)
}
