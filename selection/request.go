// Package selection routes a prepared feature table to one of five
// feature-selection strategies and returns the retained feature names.
// The statistical engines are external; this package is the dispatch,
// parameter validation, and ranking glue around them.
package selection

import (
	"strings"

	"github.com/YuminosukeSato/featselect/pkg/errors"
)

// Method is the closed set of selection strategies.
type Method int

const (
	// RandomForest ranks features by aggregated impurity-reduction
	// importance from a fitted tree ensemble.
	RandomForest Method = iota
	// Chi2 ranks features by their chi-squared dependence with the label.
	Chi2
	// L1 fits a sparse linear model and keeps features with nonzero
	// coefficients.
	L1
	// Relief ranks features by nearest-neighbor contrast weights.
	Relief
	// FisherExact keeps binary features enriched in the positive class at a
	// p-value threshold.
	FisherExact
)

// String returns the canonical method name.
func (m Method) String() string {
	switch m {
	case RandomForest:
		return "RandomForest"
	case Chi2:
		return "Chi2"
	case L1:
		return "L1"
	case Relief:
		return "Relief"
	case FisherExact:
		return "FisherExact"
	default:
		return "Unknown"
	}
}

// ParseMethod resolves a method name, accepting the historical aliases.
func ParseMethod(name string) (Method, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "randomforest", "rf":
		return RandomForest, nil
	case "chi2", "c2":
		return Chi2, nil
	case "l1", "lasso":
		return L1, nil
	case "relief", "rebate":
		return Relief, nil
	case "fisher", "fet", "enrich", "fisherexact":
		return FisherExact, nil
	default:
		return 0, errors.Wrapf(errors.ErrUnknownMethod, "%q", name)
	}
}

// Problem is the supervised problem type.
type Problem int

const (
	// Classification uses binary 0/1 labels.
	Classification Problem = iota
	// Regression uses continuous labels.
	Regression
)

// String returns the problem type name.
func (p Problem) String() string {
	if p == Regression {
		return "regression"
	}
	return "classification"
}

// ParseProblem resolves a problem type from its flag value.
func ParseProblem(s string) (Problem, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "c", "classification":
		return Classification, nil
	case "r", "regression":
		return Regression, nil
	default:
		return 0, errors.NewValidationError("type", "must be c (classification) or r (regression)", s)
	}
}

// Request is an immutable selection request: the method plus the parameters
// it needs. It is validated once, before dispatch, so a configuration mistake
// never surfaces as a failure deep inside an engine.
type Request struct {
	Method Method

	// RetainCounts holds the top-N sizes to produce, for ranked methods.
	// One fit is shared across all counts.
	RetainCounts []int

	// Param is the method parameter: alpha (L1 regression), C (L1
	// classification), or the p-value threshold (FisherExact). Zero means
	// unset.
	Param float64

	// Problem selects the classification or regression engine variant.
	Problem Problem

	// Jobs is the parallelism hint passed through to the engines.
	Jobs int

	// Trees is the ensemble size for RandomForest.
	Trees int

	// Seed fixes the random state of stochastic engines.
	Seed int
}

// Validate enforces the per-method parameter requirements.
func (r Request) Validate() error {
	switch r.Method {
	case RandomForest:
		if len(r.RetainCounts) == 0 {
			return errors.NewValidationError("n", "at least one retain count is required for RandomForest", nil)
		}
		if r.Trees <= 0 {
			return errors.NewValidationError("trees", "ensemble size must be positive", r.Trees)
		}
	case Chi2:
		if len(r.RetainCounts) == 0 {
			return errors.NewValidationError("n", "at least one retain count is required for Chi2", nil)
		}
		if r.Problem != Classification {
			return errors.NewValidationError("type", "Chi2 supports classification only", r.Problem.String())
		}
	case L1:
		if r.Param <= 0 {
			return errors.NewValidationError("param", "a positive alpha (regression) or C (classification) is required for L1", r.Param)
		}
	case Relief:
		if len(r.RetainCounts) == 0 {
			return errors.NewValidationError("n", "at least one retain count is required for Relief", nil)
		}
		if r.Problem != Classification {
			return errors.NewValidationError("type", "Relief supports classification only", r.Problem.String())
		}
	case FisherExact:
		if r.Param <= 0 || r.Param > 1 {
			return errors.NewValidationError("param", "a p-value threshold in (0, 1] is required for FisherExact", r.Param)
		}
		if r.Problem != Classification {
			return errors.NewValidationError("type", "FisherExact supports classification only", r.Problem.String())
		}
	default:
		return errors.WithStack(errors.ErrUnknownMethod)
	}

	for _, n := range r.RetainCounts {
		if n <= 0 {
			return errors.NewValidationError("n", "retain counts must be positive", n)
		}
	}
	if r.Jobs < 0 {
		return errors.NewValidationError("jobs", "parallelism hint must not be negative", r.Jobs)
	}
	return nil
}
