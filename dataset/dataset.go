// Package dataset handles housing data ingestion and preparation.
//
// This package implements the data half of the pipeline:
//
//   - Load: read a CSV file with a header row into a Dataset
//   - Clean: coerce required columns to numbers, drop incomplete rows and
//     filter outliers column by column
//   - TrainTestSplit: deterministic shuffled partition into train and test
//     sets
//
// A Dataset keeps raw string cells exactly as read. Cleaning never mutates
// its input; it returns a new Dataset whose rows are a subset of the
// original rows. Numeric views are extracted on demand with FeatureMatrix
// and TargetVector once the relevant columns are known to parse.
//
// Example usage:
//
//	ds, err := dataset.Load("house_data.csv", "square_footage", "bedrooms", "price_thousands")
//	if err != nil {
//		log.Fatal(err)
//	}
//	clean, err := dataset.Clean(ds, []string{"square_footage", "bedrooms", "price_thousands"}, 3.0)
//	X, err := clean.FeatureMatrix([]string{"square_footage", "bedrooms"})
//	y, err := clean.TargetVector("price_thousands")
//	split, err := dataset.TrainTestSplit(X, y, 0.2, 42)
package dataset

import (
	"fmt"
	"strconv"
	"strings"

	"gonum.org/v1/gonum/mat"

	housefitErrors "github.com/housefit/housefit/pkg/errors"
)

// Dataset is a loaded CSV table: an ordered header plus raw string rows.
type Dataset struct {
	// Columns holds the header names in file order
	Columns []string

	// Rows holds the data cells, one slice per row, aligned with Columns
	Rows [][]string
}

// NumRows returns the number of data rows.
func (ds *Dataset) NumRows() int {
	return len(ds.Rows)
}

// NumColumns returns the number of header columns.
func (ds *Dataset) NumColumns() int {
	return len(ds.Columns)
}

// ColumnIndex returns the position of the named column and whether it exists.
func (ds *Dataset) ColumnIndex(name string) (int, bool) {
	for i, col := range ds.Columns {
		if col == name {
			return i, true
		}
	}
	return 0, false
}

// missingColumns returns the names in cols that are absent from the header,
// preserving the requested order.
func (ds *Dataset) missingColumns(cols []string) []string {
	var missing []string
	for _, name := range cols {
		if _, ok := ds.ColumnIndex(name); !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// FeatureMatrix extracts the named columns into a dense numeric matrix.
//
// Column order in the result follows the cols argument, not the file. Every
// requested cell must parse as a float64, which holds for any column that
// survived Clean.
//
// Parameters:
//   - cols: Feature column names in the desired matrix order
//
// Returns:
//   - *mat.Dense: Matrix of shape (n_rows, len(cols))
//   - error: nil if successful, otherwise a DataProcessingError
//
// Errors:
//   - ErrMissingColumn: if a requested column is not in the header
//   - ErrEmptyData: if the dataset has no rows
func (ds *Dataset) FeatureMatrix(cols []string) (_ *mat.Dense, err error) {
	defer housefitErrors.Recover(&err, "Dataset.FeatureMatrix")

	if missing := ds.missingColumns(cols); len(missing) > 0 {
		return nil, housefitErrors.NewDataProcessingError("Dataset.FeatureMatrix",
			fmt.Sprintf("missing required columns: %v", missing), housefitErrors.ErrMissingColumn)
	}
	if len(ds.Rows) == 0 {
		return nil, housefitErrors.NewDataProcessingError("Dataset.FeatureMatrix", "no rows to extract", housefitErrors.ErrEmptyData)
	}

	idx := make([]int, len(cols))
	for k, name := range cols {
		idx[k], _ = ds.ColumnIndex(name)
	}

	X := mat.NewDense(len(ds.Rows), len(cols), nil)
	for i, row := range ds.Rows {
		for k, j := range idx {
			v, perr := parseCell(row[j])
			if perr != nil {
				return nil, housefitErrors.NewDataProcessingError("Dataset.FeatureMatrix",
					fmt.Sprintf("non-numeric value in column %q", cols[k]), perr)
			}
			X.Set(i, k, v)
		}
	}
	return X, nil
}

// TargetVector extracts the named column into a dense numeric vector.
//
// Parameters:
//   - col: Target column name
//
// Returns:
//   - *mat.VecDense: Vector of length n_rows
//   - error: nil if successful, otherwise a DataProcessingError
//
// Errors:
//   - ErrMissingColumn: if the column is not in the header
//   - ErrEmptyData: if the dataset has no rows
func (ds *Dataset) TargetVector(col string) (_ *mat.VecDense, err error) {
	defer housefitErrors.Recover(&err, "Dataset.TargetVector")

	j, ok := ds.ColumnIndex(col)
	if !ok {
		return nil, housefitErrors.NewDataProcessingError("Dataset.TargetVector",
			fmt.Sprintf("missing required columns: [%s]", col), housefitErrors.ErrMissingColumn)
	}
	if len(ds.Rows) == 0 {
		return nil, housefitErrors.NewDataProcessingError("Dataset.TargetVector", "no rows to extract", housefitErrors.ErrEmptyData)
	}

	y := mat.NewVecDense(len(ds.Rows), nil)
	for i, row := range ds.Rows {
		v, perr := parseCell(row[j])
		if perr != nil {
			return nil, housefitErrors.NewDataProcessingError("Dataset.TargetVector",
				fmt.Sprintf("non-numeric value in column %q", col), perr)
		}
		y.SetVec(i, v)
	}
	return y, nil
}

// errEmptyCell marks a cell that is blank after trimming.
var errEmptyCell = housefitErrors.New("empty cell")

// parseCell converts one raw CSV cell into a float64. Blank cells and
// unparseable text report an error so callers can treat the value as missing.
func parseCell(cell string) (float64, error) {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return 0, errEmptyCell
	}
	return strconv.ParseFloat(trimmed, 64)
}
