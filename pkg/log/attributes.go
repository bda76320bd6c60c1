// Package log defines standard attribute keys for the selection pipeline.
//
// Using these keys consistently keeps the JSON log stream filterable: every
// stage reports the same names for operations, table shapes, and method
// parameters.

package log

// Operation context.
const (
	// OperationKey names the pipeline stage being performed.
	// Standard values: "load", "merge", "normalize", "mask", "select", "write".
	OperationKey = "fs.operation"

	// MethodKey names the feature-selection method in use.
	// Examples: "RandomForest", "Chi2", "L1", "Relief", "FisherExact"
	MethodKey = "fs.method"

	// ComponentKey identifies the package performing the operation.
	// Examples: "dataset", "selection", "cli"
	ComponentKey = "fs.component"

	// ReplicateKey is the cross-validation replicate index of the current pass.
	ReplicateKey = "cv.replicate"
)

// Table shape and characteristics.
const (
	// SamplesKey is the number of examples (rows) in the table.
	SamplesKey = "data.samples"

	// FeaturesKey is the number of feature columns in the table.
	FeaturesKey = "data.features"

	// DroppedKey is the number of rows removed by a cleaning step.
	DroppedKey = "data.dropped"
)

// Method parameters and results.
const (
	// RetainKey is the retain count a result slice was produced for.
	RetainKey = "fs.retain"

	// ParamKey is the method parameter (alpha, C, or p-value threshold).
	ParamKey = "fs.param"

	// SelectedKey is the number of features a method retained.
	SelectedKey = "fs.selected"

	// DurationMsKey is the elapsed time of an operation in milliseconds.
	DurationMsKey = "duration.ms"

	// PathKey is the file path an operation read from or wrote to.
	PathKey = "file.path"
)
