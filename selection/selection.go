package selection

import (
	"sort"
	"time"

	"github.com/YuminosukeSato/featselect/dataset"
	"github.com/YuminosukeSato/featselect/pkg/errors"
	"github.com/YuminosukeSato/featselect/pkg/log"
)

// Selection is one retained feature set. Retain is the requested top-N size
// for ranked methods and 0 for methods whose output size is parameter-driven.
type Selection struct {
	Retain   int
	Features []string
}

// Result holds the output of one selection run: one Selection per requested
// retain count (ranked methods) or a single Selection (L1, FisherExact), plus
// per-feature scores where the method ranks. PValues carries the per-feature
// significance for the methods that test one (Chi2, FisherExact); it is nil
// otherwise.
type Result struct {
	Method     Method
	Selections []Selection
	Scores     map[string]float64
	PValues    map[string]float64
}

// Select validates the request and dispatches to the method's handler. Each
// handler fits its engine once and slices per retain count.
func Select(t *dataset.Table, req Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	logger := log.GetLoggerWithName("selection")
	start := time.Now()
	logger.Info("Running feature selection",
		log.OperationKey, "select",
		log.MethodKey, req.Method.String(),
		log.SamplesKey, t.NRows(),
		log.FeaturesKey, len(t.FeatureNames()),
	)

	var (
		res *Result
		err error
	)
	switch req.Method {
	case RandomForest:
		res, err = selectForest(t, req)
	case Chi2:
		res, err = selectChi2(t, req)
	case L1:
		res, err = selectL1(t, req)
	case Relief:
		res, err = selectRelief(t, req)
	case FisherExact:
		res, err = selectFisher(t, req)
	default:
		return nil, errors.WithStack(errors.ErrUnknownMethod)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("Feature selection finished",
		log.MethodKey, req.Method.String(),
		log.DurationMsKey, int(time.Since(start).Milliseconds()),
	)
	return res, nil
}

// rankDescending returns feature indices ordered by descending score. Ties
// keep the original column order (stable), matching the behavior of a stable
// argsort over the engine's output.
func rankDescending(scores []float64) []int {
	order := make([]int, len(scores))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})
	return order
}

// sliceTopN produces one Selection per requested count from a single
// ranking, so top-(N) always contains top-(N-1). Counts beyond the number of
// available features are clamped with a warning.
func sliceTopN(names []string, order []int, counts []int) []Selection {
	selections := make([]Selection, 0, len(counts))
	for _, n := range counts {
		limit := n
		if limit > len(order) {
			errors.Warn(errors.NewRetainCountClampedWarning(n, len(order)))
			limit = len(order)
		}
		feats := make([]string, 0, limit)
		for _, idx := range order[:limit] {
			feats = append(feats, names[idx])
		}
		selections = append(selections, Selection{Retain: n, Features: feats})
	}
	return selections
}

// scoreMap pairs feature names with their scores.
func scoreMap(names []string, scores []float64) map[string]float64 {
	m := make(map[string]float64, len(names))
	for i, n := range names {
		m[n] = scores[i]
	}
	return m
}
