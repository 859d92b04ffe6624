package dataset

import (
	"fmt"
	"math"
	"time"

	"gonum.org/v1/gonum/stat"

	housefitErrors "github.com/housefit/housefit/pkg/errors"
	"github.com/housefit/housefit/pkg/log"
)

// Clean prepares the required columns of a dataset for training.
//
// Three phases run in order:
//
//  1. Numeric coercion: each required cell is parsed as a float64 after
//     whitespace trimming; blank or unparseable cells count as missing.
//  2. Missing removal: any row with a missing value in any required column
//     is dropped.
//  3. Outlier removal: for each required column, in the order given, rows
//     where |x − mean| > sigma·std are dropped. The mean and SAMPLE standard
//     deviation (÷(n−1)) are recomputed over the rows still present, so each
//     column's pass filters the survivors of the previous one. The result
//     depends on column order; that order sensitivity is intentional.
//     A column with zero deviation, or fewer than two surviving rows, drops
//     nothing.
//
// The input dataset is never modified; Clean returns a new Dataset whose
// rows are a subset of the input rows. The result may be empty when every
// row is filtered out; callers that need data decide whether that is fatal.
//
// Parameters:
//   - ds: Dataset to clean
//   - cols: Required column names, also the outlier filter order
//   - sigma: Outlier threshold in standard deviations (typically 3.0)
//
// Returns:
//   - *Dataset: A new dataset holding only the surviving rows
//   - error: nil if successful, otherwise a DataProcessingError
//
// Errors:
//   - ErrMissingColumn: if a required column is absent from the header
func Clean(ds *Dataset, cols []string, sigma float64) (_ *Dataset, err error) {
	defer housefitErrors.Recover(&err, "dataset.Clean")

	startTime := time.Now()
	logger := log.GetLoggerWithName("dataset")

	if missing := ds.missingColumns(cols); len(missing) > 0 {
		return nil, housefitErrors.NewDataProcessingError("dataset.Clean",
			fmt.Sprintf("missing required columns: %v", missing), housefitErrors.ErrMissingColumn)
	}

	idx := make([]int, len(cols))
	for k, name := range cols {
		idx[k], _ = ds.ColumnIndex(name)
	}

	// Phases 1+2: parse the required cells, dropping rows with any missing
	// value. kept holds row indices into ds.Rows; values holds the parsed
	// required-column values for each kept row, in cols order.
	kept := make([]int, 0, len(ds.Rows))
	values := make([][]float64, 0, len(ds.Rows))
	for i, row := range ds.Rows {
		vals := make([]float64, len(idx))
		complete := true
		for k, j := range idx {
			if j >= len(row) {
				// Short row: treat the absent cell as missing.
				complete = false
				break
			}
			v, perr := parseCell(row[j])
			if perr != nil {
				complete = false
				break
			}
			vals[k] = v
		}
		if complete {
			kept = append(kept, i)
			values = append(values, vals)
		}
	}

	logger.Debug("Dropped incomplete rows",
		log.OperationKey, log.OperationClean,
		log.PhaseKey, log.PhasePreprocessing,
		log.RowsDroppedKey, len(ds.Rows)-len(kept),
		log.SamplesKey, len(kept),
	)

	// Phase 3: sigma filter per column, each pass running on the survivors
	// of the previous one.
	for k, name := range cols {
		n := len(values)
		if n < 2 {
			continue
		}

		column := make([]float64, n)
		for i, vals := range values {
			column[i] = vals[k]
		}
		mean := stat.Mean(column, nil)
		std := stat.StdDev(column, nil)
		if std == 0 {
			continue
		}

		nextKept := make([]int, 0, n)
		nextValues := make([][]float64, 0, n)
		for i, vals := range values {
			if math.Abs(vals[k]-mean) <= sigma*std {
				nextKept = append(nextKept, kept[i])
				nextValues = append(nextValues, vals)
			}
		}

		logger.Debug("Filtered outliers",
			log.OperationKey, log.OperationClean,
			log.PhaseKey, log.PhasePreprocessing,
			log.ColumnKey, name,
			log.RowsDroppedKey, n-len(nextKept),
			log.SamplesKey, len(nextKept),
		)

		kept, values = nextKept, nextValues
	}

	rows := make([][]string, len(kept))
	for i, ri := range kept {
		rows[i] = ds.Rows[ri]
	}
	out := &Dataset{
		Columns: append([]string(nil), ds.Columns...),
		Rows:    rows,
	}

	logger.Info("Dataset cleaned",
		log.OperationKey, log.OperationClean,
		log.PhaseKey, log.PhasePreprocessing,
		log.RowsDroppedKey, len(ds.Rows)-len(rows),
		log.SamplesKey, len(rows),
		log.DurationMsKey, time.Since(startTime).Milliseconds(),
	)

	return out, nil
}
