package selection

import (
	"math"

	"github.com/YuminosukeSato/scigo/sklearn/lightgbm"

	"github.com/YuminosukeSato/featselect/dataset"
	"github.com/YuminosukeSato/featselect/pkg/errors"
)

// selectForest fits a bagged tree ensemble on the whole table and ranks
// features by aggregated gain (impurity-reduction) importance. The ensemble
// is fitted once; every requested retain count is a slice of the same
// ranking.
func selectForest(t *dataset.Table, req Request) (*Result, error) {
	X, y, names, err := t.XY()
	if err != nil {
		return nil, err
	}

	// Forest-style settings: per-tree feature subsampling at sqrt(p) and
	// row bagging, as the original selector configured its ensemble.
	_, p := X.Dims()
	colsample := math.Sqrt(float64(p)) / float64(p)
	if colsample > 1 {
		colsample = 1
	}
	params := map[string]interface{}{
		"n_estimators":     req.Trees,
		"num_leaves":       31,
		"learning_rate":    0.1,
		"subsample":        0.632,
		"colsample_bytree": colsample,
	}

	var importance []float64
	switch req.Problem {
	case Regression:
		reg := lightgbm.NewLGBMRegressor().WithRandomState(req.Seed)
		reg.NumThreads = req.Jobs
		if err := reg.SetParams(params); err != nil {
			return nil, errors.NewModelError("RandomForest", "invalid ensemble parameters", err)
		}
		if err := reg.Fit(X, y); err != nil {
			return nil, errors.NewModelError("RandomForest", "fit failed", err)
		}
		importance = reg.GetFeatureImportance("gain")
	default:
		clf := lightgbm.NewLGBMClassifier()
		clf.RandomState = req.Seed
		clf.NumThreads = req.Jobs
		if err := clf.SetParams(params); err != nil {
			return nil, errors.NewModelError("RandomForest", "invalid ensemble parameters", err)
		}
		if err := clf.Fit(X, y); err != nil {
			return nil, errors.NewModelError("RandomForest", "fit failed", err)
		}
		importance = clf.GetFeatureImportance("gain")
	}

	if len(importance) != len(names) {
		return nil, errors.NewModelError("RandomForest", "importance length mismatch", nil)
	}

	order := rankDescending(importance)
	return &Result{
		Method:     RandomForest,
		Selections: sliceTopN(names, order, req.RetainCounts),
		Scores:     scoreMap(names, importance),
	}, nil
}
