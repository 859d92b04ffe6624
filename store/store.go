// Package store persists trained housefit models and reloads them.
//
// A saved run produces two artifacts:
//
//   - the model archive: a gob-encoded envelope holding the fitted
//     LinearRegression and StandardScaler, tagged with an archive kind and
//     a format version that are validated on load
//   - the metadata record: human-readable JSON with the original-units
//     coefficients and the train/test scores
//
// No other package touches artifact files. The archive round-trips exactly:
// a loaded model produces bit-identical predictions to the one saved.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/housefit/housefit/core/model"
	"github.com/housefit/housefit/linear"
	"github.com/housefit/housefit/pipeline"
	housefitErrors "github.com/housefit/housefit/pkg/errors"
	"github.com/housefit/housefit/pkg/log"
	"github.com/housefit/housefit/preprocessing"
)

const (
	archiveKind   = "housing-regression"
	formatVersion = "1.0"
)

// modelArchive is the gob envelope written to the model path. Kind and
// FormatVersion are checked before the estimators are handed back.
type modelArchive struct {
	Kind          string
	FormatVersion string
	Model         *linear.LinearRegression
	Scaler        *preprocessing.StandardScaler
}

// Metadata is the JSON record written next to the model archive. Field names
// are part of the artifact contract; do not rename them.
type Metadata struct {
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
	Features     []string  `json:"feature"`
	Target       string    `json:"target"`
	TrainR2      float64   `json:"train_r2"`
	TestR2       float64   `json:"test_r2"`
	TrainRMSE    float64   `json:"train_rmse"`
	TestRMSE     float64   `json:"test_rmse"`
}

// ModelStore reads and writes the model artifacts.
type ModelStore struct {
	logger log.Logger
}

// NewModelStore creates a ModelStore.
func NewModelStore() *ModelStore {
	return &ModelStore{
		logger: log.GetLoggerWithName("store"),
	}
}

// Save writes the model archive and the metadata record for a completed
// evaluation. Parent directories are created as needed.
//
// Parameters:
//   - result: A complete evaluation (fitted model, scaler and formula)
//   - modelPath: Destination for the gob archive
//   - metadataPath: Destination for the JSON metadata
//
// Errors:
//   - ModelOperationError: incomplete result, or any encode or I/O failure
func (s *ModelStore) Save(result *pipeline.EvaluationResult, modelPath, metadataPath string) (err error) {
	defer housefitErrors.Recover(&err, "ModelStore.Save")

	if result == nil || result.Model == nil || result.Scaler == nil || result.Formula == nil {
		return housefitErrors.NewModelOperationError("ModelStore.Save",
			"incomplete evaluation result", nil)
	}

	startTime := time.Now()
	s.logger.Info("Saving model artifacts",
		log.OperationKey, log.OperationSave,
		log.PathKey, modelPath,
	)

	if err := ensureParentDir(modelPath); err != nil {
		return housefitErrors.NewModelOperationError("ModelStore.Save",
			"cannot create artifact directory", err)
	}
	archive := &modelArchive{
		Kind:          archiveKind,
		FormatVersion: formatVersion,
		Model:         result.Model,
		Scaler:        result.Scaler,
	}
	if err := model.SaveModel(archive, modelPath); err != nil {
		return housefitErrors.NewModelOperationError("ModelStore.Save",
			"cannot write model archive", err)
	}

	meta := &Metadata{
		Coefficients: append([]float64(nil), result.Formula.Coefficients...),
		Intercept:    result.Formula.Intercept,
		Features:     append([]string(nil), result.Formula.Features...),
		Target:       result.Formula.Target,
		TrainR2:      result.TrainR2,
		TestR2:       result.TestR2,
		TrainRMSE:    result.TrainRMSE,
		TestRMSE:     result.TestRMSE,
	}
	if err := ensureParentDir(metadataPath); err != nil {
		return housefitErrors.NewModelOperationError("ModelStore.Save",
			"cannot create artifact directory", err)
	}
	data, err := json.MarshalIndent(meta, "", "  ")
	if err != nil {
		return housefitErrors.NewModelOperationError("ModelStore.Save",
			"cannot encode metadata", err)
	}
	if err := os.WriteFile(metadataPath, data, 0o644); err != nil {
		return housefitErrors.NewModelOperationError("ModelStore.Save",
			"cannot write metadata", err)
	}

	s.logger.Info("Model artifacts saved",
		log.OperationKey, log.OperationSave,
		log.PathKey, modelPath,
		log.DurationMsKey, time.Since(startTime).Milliseconds(),
	)
	return nil
}

// Load reads a model archive and returns the fitted estimators.
//
// The envelope is validated before anything is handed back: an unexpected
// archive kind or format version is rejected, so stale artifacts from an
// incompatible build fail loudly instead of mispredicting.
//
// Errors:
//   - ModelOperationError: missing file, corrupt gob, wrong kind, or
//     unsupported format version (wraps ErrUnsupportedVersion)
func (s *ModelStore) Load(modelPath string) (_ *linear.LinearRegression, _ *preprocessing.StandardScaler, err error) {
	defer housefitErrors.Recover(&err, "ModelStore.Load")

	s.logger.Info("Loading model archive",
		log.OperationKey, log.OperationLoadModel,
		log.PathKey, modelPath,
	)

	var archive modelArchive
	if err := model.LoadModel(&archive, modelPath); err != nil {
		return nil, nil, housefitErrors.NewModelOperationError("ModelStore.Load",
			"cannot read model archive", err)
	}

	if archive.Kind != archiveKind {
		return nil, nil, housefitErrors.NewModelOperationError("ModelStore.Load",
			fmt.Sprintf("unexpected archive kind %q", archive.Kind),
			housefitErrors.ErrUnsupportedVersion)
	}
	if archive.FormatVersion != formatVersion {
		return nil, nil, housefitErrors.NewModelOperationError("ModelStore.Load",
			fmt.Sprintf("archive format version %q, supported %q", archive.FormatVersion, formatVersion),
			housefitErrors.ErrUnsupportedVersion)
	}
	if archive.Model == nil || archive.Scaler == nil {
		return nil, nil, housefitErrors.NewModelOperationError("ModelStore.Load",
			"archive is missing estimators", nil)
	}

	return archive.Model, archive.Scaler, nil
}

// LoadMetadata reads the JSON metadata record back.
func (s *ModelStore) LoadMetadata(metadataPath string) (_ *Metadata, err error) {
	defer housefitErrors.Recover(&err, "ModelStore.LoadMetadata")

	data, err := os.ReadFile(metadataPath)
	if err != nil {
		return nil, housefitErrors.NewModelOperationError("ModelStore.LoadMetadata",
			"cannot read metadata", err)
	}
	var meta Metadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, housefitErrors.NewModelOperationError("ModelStore.LoadMetadata",
			"cannot parse metadata", err)
	}
	return &meta, nil
}

// ensureParentDir creates the directory a file is about to be written into.
func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
