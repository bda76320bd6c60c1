package selection

import (
	"math"

	linearModel "github.com/pa-m/sklearn/linear_model"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/featselect/dataset"
	"github.com/YuminosukeSato/featselect/pkg/errors"
	"github.com/YuminosukeSato/featselect/pkg/log"
)

// coefTolerance is the magnitude below which a fitted coefficient counts as
// shrunk to zero.
const coefTolerance = 1e-8

// coefFitter fits a sparse linear model and returns one coefficient per
// feature. It is the seam between the selection glue and the external
// optimizer.
type coefFitter interface {
	fit(X, y *mat.Dense) ([]float64, error)
}

// selectL1 fits an L1-penalized linear model (Lasso for regression, logistic
// for classification) and keeps every feature whose coefficient is nonzero.
// The retained count is controlled indirectly through the parameter.
func selectL1(t *dataset.Table, req Request) (*Result, error) {
	X, y, names, err := t.XY()
	if err != nil {
		return nil, err
	}

	var fitter coefFitter
	if req.Problem == Regression {
		fitter = &lassoFitter{alpha: req.Param}
	} else {
		fitter = &logisticL1Fitter{c: req.Param}
	}

	return selectByCoef(fitter, X, y, names)
}

// selectByCoef runs the fitter and applies the nonzero-coefficient filter.
// Split out so the glue is testable with a stub fitter.
func selectByCoef(fitter coefFitter, X, y *mat.Dense, names []string) (*Result, error) {
	coef, err := fitter.fit(X, y)
	if err != nil {
		return nil, errors.NewModelError("L1", "fit failed", err)
	}
	if len(coef) != len(names) {
		return nil, errors.NewModelError("L1", "coefficient length mismatch", nil)
	}

	var kept []string
	scores := make(map[string]float64, len(names))
	for j, name := range names {
		scores[name] = coef[j]
		if math.Abs(coef[j]) > coefTolerance {
			kept = append(kept, name)
		}
	}

	log.GetLoggerWithName("selection").Info("L1 model fitted",
		log.MethodKey, "L1",
		log.SelectedKey, len(kept),
	)

	return &Result{
		Method:     L1,
		Selections: []Selection{{Retain: 0, Features: kept}},
		Scores:     scores,
	}, nil
}

// lassoFitter delegates to the scikit-learn port's coordinate-descent Lasso.
type lassoFitter struct {
	alpha float64
}

func (f *lassoFitter) fit(X, y *mat.Dense) ([]float64, error) {
	m := linearModel.NewLasso()
	m.Alpha = f.alpha

	// The port signals misuse by panicking; surface that as an error.
	if err := errors.SafeExecute("Lasso.Fit", func() error {
		m.Fit(X, y)
		return nil
	}); err != nil {
		return nil, err
	}

	_, p := X.Dims()
	coef := make([]float64, p)
	for j := 0; j < p; j++ {
		coef[j] = m.Coef.At(j, 0)
	}
	return coef, nil
}

// logisticL1Fitter delegates to the port's logistic regression with an L1
// penalty. C is the inverse regularization strength, so alpha = 1/C.
type logisticL1Fitter struct {
	c float64
}

func (f *logisticL1Fitter) fit(X, y *mat.Dense) ([]float64, error) {
	m := linearModel.NewLogisticRegression()
	m.Alpha = 1.0 / f.c
	m.L1Ratio = 1.0

	if err := errors.SafeExecute("LogisticRegression.Fit", func() error {
		m.Fit(X, y)
		return nil
	}); err != nil {
		return nil, err
	}

	_, p := X.Dims()
	coef := make([]float64, p)
	for j := 0; j < p; j++ {
		coef[j] = m.Coef.At(j, 0)
	}
	return coef, nil
}
