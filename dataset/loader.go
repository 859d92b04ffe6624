package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	housefitErrors "github.com/housefit/housefit/pkg/errors"
	"github.com/housefit/housefit/pkg/log"
)

// Load reads a CSV file with a header row into a Dataset.
//
// Cells are kept as raw strings; nothing is coerced at load time. When
// requiredCols are given, the header must contain every one of them, so a
// file missing a column fails fast instead of deep inside cleaning. Extra
// columns are retained and ignored downstream.
//
// Parameters:
//   - path: CSV file to read
//   - requiredCols: Column names that must appear in the header (optional)
//
// Returns:
//   - *Dataset: The loaded header and rows
//   - error: nil if successful, otherwise a DataProcessingError
//
// Errors:
//   - ErrEmptyData: if the file has no header or no data rows
//   - ErrMissingColumn: if a required column is absent from the header
//
// Example:
//
//	ds, err := dataset.Load("house_data.csv", "square_footage", "bedrooms", "price_thousands")
//	if err != nil {
//	    log.Fatal(err)
//	}
func Load(path string, requiredCols ...string) (_ *Dataset, err error) {
	defer housefitErrors.Recover(&err, "dataset.Load")

	startTime := time.Now()
	logger := log.GetLoggerWithName("dataset")
	logger.Debug("Loading dataset",
		log.OperationKey, log.OperationLoad,
		log.PhaseKey, log.PhasePreprocessing,
		log.PathKey, path,
	)

	f, err := os.Open(path)
	if err != nil {
		return nil, housefitErrors.NewDataProcessingError("dataset.Load", "cannot open input file", err)
	}
	defer func() { _ = f.Close() }()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, housefitErrors.NewDataProcessingError("dataset.Load", "malformed csv", err)
	}
	if len(records) == 0 {
		return nil, housefitErrors.NewDataProcessingError("dataset.Load", "empty input file", housefitErrors.ErrEmptyData)
	}

	ds := &Dataset{Columns: records[0], Rows: records[1:]}
	if len(ds.Rows) == 0 {
		return nil, housefitErrors.NewDataProcessingError("dataset.Load", "no data rows", housefitErrors.ErrEmptyData)
	}

	if missing := ds.missingColumns(requiredCols); len(missing) > 0 {
		return nil, housefitErrors.NewDataProcessingError("dataset.Load",
			fmt.Sprintf("missing required columns: %v", missing), housefitErrors.ErrMissingColumn)
	}

	logger.Info("Dataset loaded",
		log.OperationKey, log.OperationLoad,
		log.PhaseKey, log.PhasePreprocessing,
		log.PathKey, path,
		log.SamplesKey, ds.NumRows(),
		log.FeaturesKey, ds.NumColumns(),
		log.DurationMsKey, time.Since(startTime).Milliseconds(),
	)

	return ds, nil
}
