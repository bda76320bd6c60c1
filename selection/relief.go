package selection

import (
	"math"
	"sort"
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/featselect/core/parallel"
	"github.com/YuminosukeSato/featselect/dataset"
	"github.com/YuminosukeSato/featselect/pkg/errors"
)

// reliefNeighbors is the number of nearest hits/misses contrasted per
// example, clamped to the smallest class size.
const reliefNeighbors = 10

// selectRelief computes ReliefF relevance weights: for every example, the k
// nearest same-class neighbors (hits) pull each feature's weight down by
// their normalized difference, and the k nearest neighbors of every other
// class (misses) push it up, scaled by the class prior. Features are ranked
// by descending weight. The per-example scans run on the worker count given
// by the parallelism hint.
func selectRelief(t *dataset.Table, req Request) (*Result, error) {
	X, y, names, err := t.XY()
	if err != nil {
		return nil, err
	}
	n, p := X.Dims()

	labels := make([]int, n)
	for i := 0; i < n; i++ {
		v := y.At(i, 0)
		if v != math.Trunc(v) {
			return nil, errors.NewValueError("Relief", "labels must be integer-coded")
		}
		labels[i] = int(v)
	}

	// Class membership and priors.
	byClass := make(map[int][]int)
	for i, c := range labels {
		byClass[c] = append(byClass[c], i)
	}
	if len(byClass) < 2 {
		return nil, errors.NewValueError("Relief", "label column has a single class")
	}
	minClass := n
	for _, members := range byClass {
		if len(members) < minClass {
			minClass = len(members)
		}
	}
	k := reliefNeighbors
	if k > minClass-1 {
		k = minClass - 1
	}
	if k < 1 {
		return nil, errors.NewValueError("Relief", "every class needs at least two examples")
	}
	prior := make(map[int]float64, len(byClass))
	for c, members := range byClass {
		prior[c] = float64(len(members)) / float64(n)
	}

	// Feature ranges normalize the per-feature differences.
	ranges := make([]float64, p)
	col := make([]float64, n)
	for j := 0; j < p; j++ {
		mat.Col(col, j, X)
		r := floats.Max(col) - floats.Min(col)
		if r == 0 {
			r = 1 // constant feature contributes zero either way
		}
		ranges[j] = r
	}

	var (
		mu      sync.Mutex
		weights = make([]float64, p)
	)
	norm := 1.0 / (float64(n) * float64(k))

	parallel.ParallelizeWithWorkers(n, req.Jobs, func(start, end int) {
		local := make([]float64, p)
		dist := make([]float64, n)
		for i := start; i < end; i++ {
			for o := 0; o < n; o++ {
				if o == i {
					dist[o] = math.Inf(1)
					continue
				}
				d := 0.0
				for j := 0; j < p; j++ {
					d += math.Abs(X.At(i, j)-X.At(o, j)) / ranges[j]
				}
				dist[o] = d
			}

			for c, members := range byClass {
				nearest := nearestOf(members, dist, k)
				if c == labels[i] {
					for _, h := range nearest {
						for j := 0; j < p; j++ {
							local[j] -= math.Abs(X.At(i, j)-X.At(h, j)) / ranges[j] * norm
						}
					}
					continue
				}
				factor := prior[c] / (1 - prior[labels[i]])
				for _, m := range nearest {
					for j := 0; j < p; j++ {
						local[j] += factor * math.Abs(X.At(i, j)-X.At(m, j)) / ranges[j] * norm
					}
				}
			}
		}
		mu.Lock()
		floats.Add(weights, local)
		mu.Unlock()
	})

	order := rankDescending(weights)
	return &Result{
		Method:     Relief,
		Selections: sliceTopN(names, order, req.RetainCounts),
		Scores:     scoreMap(names, weights),
	}, nil
}

// nearestOf returns the k members with the smallest distances. Self is
// excluded by its infinite distance.
func nearestOf(members []int, dist []float64, k int) []int {
	sorted := make([]int, len(members))
	copy(sorted, members)
	sort.SliceStable(sorted, func(a, b int) bool {
		return dist[sorted[a]] < dist[sorted[b]]
	})
	if k > len(sorted) {
		k = len(sorted)
	}
	// Drop trailing infinite distances (the example itself).
	out := make([]int, 0, k)
	for _, idx := range sorted[:k] {
		if !math.IsInf(dist[idx], 1) {
			out = append(out, idx)
		}
	}
	return out
}
