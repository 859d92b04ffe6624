package dataset

import (
	"fmt"
	"math"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	housefitErrors "github.com/housefit/housefit/pkg/errors"
	"github.com/housefit/housefit/pkg/log"
)

// SplitResult holds the train and test partitions of a feature matrix and
// its target vector.
type SplitResult struct {
	XTrain *mat.Dense
	XTest  *mat.Dense
	YTrain *mat.VecDense
	YTest  *mat.VecDense
}

// NumTrain returns the number of training rows.
func (s *SplitResult) NumTrain() int {
	r, _ := s.XTrain.Dims()
	return r
}

// NumTest returns the number of test rows.
func (s *SplitResult) NumTest() int {
	r, _ := s.XTest.Dims()
	return r
}

// TrainTestSplit partitions rows into train and test sets.
//
// Row indices are shuffled with math/rand seeded by seed, so the same seed
// and the same data always produce the same partition. The first
// int(math.Round(n·testFraction)) shuffled rows become the test set and the
// remainder the training set. Every row lands in exactly one partition.
//
// Parameters:
//   - X: Feature matrix of shape (n_samples, n_features)
//   - y: Target vector of length n_samples
//   - testFraction: Fraction of rows assigned to the test set, in (0,1)
//   - seed: Random seed for the shuffle
//
// Returns:
//   - *SplitResult: The four partition matrices
//   - error: nil if successful, otherwise an error describing the failure
//
// Errors:
//   - ValueError (wrapped): if testFraction is outside (0,1), or rounding
//     would leave either partition empty
//   - ErrDimensionMismatch: if X and y row counts differ
//   - ErrEmptyData: if X has no rows
func TrainTestSplit(X *mat.Dense, y *mat.VecDense, testFraction float64, seed int64) (_ *SplitResult, err error) {
	defer housefitErrors.Recover(&err, "dataset.TrainTestSplit")

	logger := log.GetLoggerWithName("dataset")

	if testFraction <= 0 || testFraction >= 1 {
		return nil, housefitErrors.NewDataProcessingError("dataset.TrainTestSplit", "invalid test fraction",
			&housefitErrors.ValueError{Op: "dataset.TrainTestSplit", Message: fmt.Sprintf("test fraction must be in (0,1), got %v", testFraction)})
	}

	n, c := X.Dims()
	if n == 0 {
		return nil, housefitErrors.NewDataProcessingError("dataset.TrainTestSplit", "empty data", housefitErrors.ErrEmptyData)
	}
	if y.Len() != n {
		return nil, housefitErrors.NewDimensionError("dataset.TrainTestSplit", n, y.Len(), 0)
	}

	nTest := int(math.Round(float64(n) * testFraction))
	if nTest == 0 || nTest == n {
		return nil, housefitErrors.NewDataProcessingError("dataset.TrainTestSplit", "degenerate partition",
			&housefitErrors.ValueError{Op: "dataset.TrainTestSplit",
				Message: fmt.Sprintf("test fraction %v of %d rows leaves an empty partition", testFraction, n)})
	}

	// Same seed, same permutation.
	perm := rand.New(rand.NewSource(seed)).Perm(n)
	testIdx := perm[:nTest]
	trainIdx := perm[nTest:]

	XTrain := mat.NewDense(len(trainIdx), c, nil)
	YTrain := mat.NewVecDense(len(trainIdx), nil)
	for i, ri := range trainIdx {
		for j := 0; j < c; j++ {
			XTrain.Set(i, j, X.At(ri, j))
		}
		YTrain.SetVec(i, y.AtVec(ri))
	}

	XTest := mat.NewDense(len(testIdx), c, nil)
	YTest := mat.NewVecDense(len(testIdx), nil)
	for i, ri := range testIdx {
		for j := 0; j < c; j++ {
			XTest.Set(i, j, X.At(ri, j))
		}
		YTest.SetVec(i, y.AtVec(ri))
	}

	logger.Info("Dataset split",
		log.OperationKey, log.OperationSplit,
		log.PhaseKey, log.PhasePreprocessing,
		log.SamplesKey, n,
		"data.train_rows", len(trainIdx),
		"data.test_rows", len(testIdx),
		log.RandomSeedKey, seed,
	)

	return &SplitResult{
		XTrain: XTrain,
		XTest:  XTest,
		YTrain: YTrain,
		YTest:  YTest,
	}, nil
}
