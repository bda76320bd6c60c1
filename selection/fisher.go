package selection

import (
	"math"

	"gonum.org/v1/gonum/stat/combin"

	"github.com/YuminosukeSato/featselect/dataset"
	"github.com/YuminosukeSato/featselect/pkg/errors"
)

// selectFisher tests each binary feature for enrichment in the positive
// class with a one-sided Fisher's exact test against the "greater"
// alternative, retaining features with p ≤ the threshold. Contingency cells
// with no observations count as zero. A non-binary feature is skipped with a
// warning rather than aborting the run.
func selectFisher(t *dataset.Table, req Request) (*Result, error) {
	X, y, names, err := t.XY()
	if err != nil {
		return nil, err
	}
	n, _ := X.Dims()

	var kept []string
	scores := make(map[string]float64, len(names))

	for j, name := range names {
		// 2×2 contingency: label (1/0) × feature value (1/0), with
		// explicit zero defaults for empty cells.
		var tp, fn, fp, tn int
		binary := true
		for i := 0; i < n; i++ {
			x := X.At(i, j)
			if x != 0 && x != 1 {
				binary = false
				break
			}
			positive := y.At(i, 0) == 1
			switch {
			case positive && x == 1:
				tp++
			case positive && x == 0:
				fn++
			case !positive && x == 1:
				fp++
			default:
				tn++
			}
		}
		if !binary {
			errors.Warn(errors.NewFeatureSkippedWarning("FisherExact", name, "feature is not binary"))
			continue
		}

		p := fisherGreater(tp, fn, fp, tn)
		scores[name] = p
		if p <= req.Param {
			kept = append(kept, name)
		}
	}

	return &Result{
		Method:     FisherExact,
		Selections: []Selection{{Retain: 0, Features: kept}},
		Scores:     scores,
		PValues:    scores,
	}, nil
}

// fisherGreater computes the one-sided p-value P(X ≥ tp) of the 2×2 table
// under the hypergeometric null: draws of size (tp+fn) from a population of
// (tp+fn+fp+tn) containing (tp+fp) feature-positive examples.
func fisherGreater(tp, fn, fp, tn int) float64 {
	population := tp + fn + fp + tn
	successes := tp + fp // feature == 1 in either class
	draws := tp + fn     // positive examples

	if population == 0 || draws == 0 {
		return 1
	}

	upper := draws
	if successes < upper {
		upper = successes
	}

	logDenom := combin.LogGeneralizedBinomial(float64(population), float64(draws))
	pval := 0.0
	for k := tp; k <= upper; k++ {
		if population-successes < draws-k {
			continue
		}
		logP := combin.LogGeneralizedBinomial(float64(successes), float64(k)) +
			combin.LogGeneralizedBinomial(float64(population-successes), float64(draws-k)) -
			logDenom
		pval += math.Exp(logP)
	}
	if pval > 1 {
		pval = 1
	}
	return pval
}
