package selection

import (
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/YuminosukeSato/featselect/dataset"
	"github.com/YuminosukeSato/featselect/pkg/errors"
)

// selectChi2 scores each feature's dependence with the class label using the
// chi-squared statistic over class-wise feature sums (the scikit-learn chi2
// formulation for frequency-like features), then keeps the top N per
// requested count. The survival function of the chi-squared distribution with
// nClasses-1 degrees of freedom gives each feature's p-value, reported in
// Result.PValues. Features must be non-negative.
func selectChi2(t *dataset.Table, req Request) (*Result, error) {
	X, y, names, err := t.XY()
	if err != nil {
		return nil, err
	}
	n, p := X.Dims()

	for i := 0; i < n; i++ {
		for j := 0; j < p; j++ {
			if X.At(i, j) < 0 {
				return nil, errors.NewValueError("Chi2", "feature "+names[j]+" has negative values; chi2 requires non-negative features")
			}
		}
	}

	// Class index per row.
	classOf := make(map[float64]int)
	rowClass := make([]int, n)
	for i := 0; i < n; i++ {
		v := y.At(i, 0)
		if _, ok := classOf[v]; !ok {
			classOf[v] = len(classOf)
		}
		rowClass[i] = classOf[v]
	}
	nClasses := len(classOf)
	if nClasses < 2 {
		return nil, errors.NewValueError("Chi2", "label column has a single class")
	}

	// Observed: per-class sums of each feature. Expected: feature total
	// scaled by the class prior.
	classCount := make([]float64, nClasses)
	for _, c := range rowClass {
		classCount[c]++
	}
	observed := make([][]float64, nClasses)
	for c := range observed {
		observed[c] = make([]float64, p)
	}
	for i := 0; i < n; i++ {
		c := rowClass[i]
		for j := 0; j < p; j++ {
			observed[c][j] += X.At(i, j)
		}
	}

	stats := make([]float64, p)
	pvals := make([]float64, p)
	chi2Dist := distuv.ChiSquared{K: float64(nClasses - 1)}
	for j := 0; j < p; j++ {
		total := 0.0
		for c := 0; c < nClasses; c++ {
			total += observed[c][j]
		}
		var stat float64
		for c := 0; c < nClasses; c++ {
			expected := total * classCount[c] / float64(n)
			if expected == 0 {
				continue
			}
			d := observed[c][j] - expected
			stat += d * d / expected
		}
		stats[j] = stat
		pvals[j] = chi2Dist.Survival(stat)
	}

	order := rankDescending(stats)
	return &Result{
		Method:     Chi2,
		Selections: sliceTopN(names, order, req.RetainCounts),
		Scores:     scoreMap(names, stats),
		PValues:    scoreMap(names, pvals),
	}, nil
}
