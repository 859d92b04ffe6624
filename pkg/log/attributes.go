// Standard attribute keys for pipeline logging.
//
// Using these keys keeps field names consistent across the load, clean,
// split, train, evaluate and persist stages, which makes the JSON logs
// filterable. Keys follow a hierarchical naming convention (e.g.
// "model.name", "data.samples").

package log

// Model and Operation Context
// These attributes identify the model type, instance, and operation being performed.
const (
	// ModelNameKey identifies the type of model or estimator.
	// Examples: "LinearRegression", "StandardScaler"
	ModelNameKey = "model.name"

	// EstimatorIDKey provides a unique identifier for a specific model instance.
	EstimatorIDKey = "estimator.id"

	// RunIDKey identifies a single pipeline run end to end.
	RunIDKey = "run.id"

	// OperationKey specifies the operation being performed.
	// Standard values: "load", "clean", "split", "fit", "predict",
	// "transform", "score", "save", "load_model"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is performing the operation.
	// Examples: "dataset", "linear", "preprocessing", "store"
	ComponentKey = "ml.component"

	// PhaseKey indicates the phase of the model lifecycle.
	// Examples: "preprocessing", "training", "evaluation", "inference"
	PhaseKey = "ml.phase"
)

// Data Shape and Characteristics
// These attributes describe the structure and properties of data being processed.
const (
	// SamplesKey indicates the number of samples (rows) in the dataset.
	SamplesKey = "data.samples"

	// FeaturesKey indicates the number of features (columns) in the dataset.
	FeaturesKey = "data.features"

	// RowsDroppedKey indicates how many rows a cleaning phase removed.
	RowsDroppedKey = "data.rows_dropped"

	// ColumnKey names the column a per-column operation is working on.
	ColumnKey = "data.column"

	// PathKey records the file path data was read from or written to.
	PathKey = "data.path"
)

// Performance Metrics
// These attributes capture timing and accuracy information.
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// R2ScoreKey records the R² coefficient of determination.
	// Range (-∞, 1.0], with 1.0 being perfect prediction.
	R2ScoreKey = "metrics.r2_score"

	// RMSEKey records root mean squared error in target units.
	RMSEKey = "metrics.rmse"
)

// Prediction and Output Context
const (
	// PredsKey indicates the number of predictions made.
	PredsKey = "preds.count"
)

// Error Context
// These attributes provide additional context for error messages.
const (
	// ErrorCodeKey provides a structured error code for programmatic handling.
	// Examples: "DIMENSION_MISMATCH", "NOT_FITTED", "SINGULAR_MATRIX"
	ErrorCodeKey = "error.code"

	// ErrorTypeKey categorizes the type of error encountered.
	// Examples: "DataProcessingError", "ModelOperationError"
	ErrorTypeKey = "error.type"

	// StacktraceKey contains stack trace information for debugging.
	// Automatically populated by LogError.
	StacktraceKey = "error.stacktrace"
)

// Configuration
const (
	// RandomSeedKey records the random seed for reproducibility.
	RandomSeedKey = "config.random_seed"

	// ConfigVersionKey tracks the persisted model format version.
	ConfigVersionKey = "config.version"
)

// Standard attribute value constants for common operations.
// Using these constants ensures consistency across the codebase.
const (
	// Standard operations
	OperationLoad         = "load"
	OperationClean        = "clean"
	OperationSplit        = "split"
	OperationFit          = "fit"
	OperationPredict      = "predict"
	OperationTransform    = "transform"
	OperationFitTransform = "fit_transform"
	OperationScore        = "score"
	OperationSave         = "save"
	OperationLoadModel    = "load_model"

	// Standard phases
	PhasePreprocessing = "preprocessing"
	PhaseTraining      = "training"
	PhaseEvaluation    = "evaluation"
	PhaseInference     = "inference"

	// Standard error codes
	ErrorNotFitted          = "NOT_FITTED"
	ErrorDimensionMismatch  = "DIMENSION_MISMATCH"
	ErrorEmptyData          = "EMPTY_DATA"
	ErrorInvalidInput       = "INVALID_INPUT"
	ErrorSingularMatrix     = "SINGULAR_MATRIX"
	ErrorMissingColumn      = "MISSING_COLUMN"
	ErrorVersionUnsupported = "UNSUPPORTED_VERSION"
)
