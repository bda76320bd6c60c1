package selection

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/featselect/dataset"
)

// forestTestTable builds a 100-example table whose first feature carries the
// class signal and whose remaining three are deterministic pseudo-noise.
func forestTestTable(t *testing.T) *dataset.Table {
	t.Helper()
	var b strings.Builder
	b.WriteString("example,Class,informative,n1,n2,n3\n")
	for i := 0; i < 100; i++ {
		label := i % 2
		informative := float64(label)*10 + float64(i%5)*0.1
		n1 := float64((i * 7) % 13)
		n2 := float64((i * 3) % 11)
		n3 := float64((i * 5) % 17)
		fmt.Fprintf(&b, "s%d,%d,%.2f,%.1f,%.1f,%.1f\n", i, label, informative, n1, n2, n3)
	}
	return tableFromCSV(t, b.String())
}

func TestForestSelectsExactCounts(t *testing.T) {
	tbl := forestTestTable(t)

	res, err := Select(tbl, Request{
		Method:       RandomForest,
		RetainCounts: []int{1, 2, 3},
		Trees:        25,
		Jobs:         1,
	})
	require.NoError(t, err)
	require.Len(t, res.Selections, 3)

	for i, sel := range res.Selections {
		assert.Len(t, sel.Features, i+1, "retain count %d", i+1)
	}
	// One fit, one ranking: every top-N extends the previous one.
	for i := 1; i < len(res.Selections); i++ {
		prev := res.Selections[i-1].Features
		assert.Equal(t, prev, res.Selections[i].Features[:len(prev)])
	}
	assert.Len(t, res.Scores, 4)
}

func TestForestFindsInformativeFeature(t *testing.T) {
	tbl := forestTestTable(t)

	res, err := Select(tbl, Request{
		Method:       RandomForest,
		RetainCounts: []int{2},
		Trees:        50,
		Jobs:         1,
	})
	require.NoError(t, err)

	assert.Contains(t, res.Selections[0].Features, "informative")
}

func TestForestSeedReproducible(t *testing.T) {
	tbl := forestTestTable(t)
	req := Request{
		Method:       RandomForest,
		RetainCounts: []int{2},
		Trees:        25,
		Seed:         7,
		Jobs:         1,
	}

	first, err := Select(tbl, req)
	require.NoError(t, err)
	second, err := Select(tbl.Copy(), req)
	require.NoError(t, err)

	assert.Equal(t, first.Selections[0].Features, second.Selections[0].Features)
	assert.Equal(t, first.Scores, second.Scores)
}

func TestForestRegressionVariant(t *testing.T) {
	var b strings.Builder
	b.WriteString("example,Class,informative,noise\n")
	for i := 0; i < 100; i++ {
		x := float64(i % 10)
		fmt.Fprintf(&b, "s%d,%.2f,%.1f,%.1f\n", i, 3*x+1, x, float64((i*7)%13))
	}
	tbl := tableFromCSV(t, b.String())

	res, err := Select(tbl, Request{
		Method:       RandomForest,
		RetainCounts: []int{1},
		Trees:        25,
		Problem:      Regression,
		Seed:         42,
		Jobs:         1,
	})
	require.NoError(t, err)
	assert.Len(t, res.Selections[0].Features, 1)
}
