package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YuminosukeSato/featselect/pkg/errors"
)

// informative is concentrated in class 1, flat sits evenly across both.
const chi2CSV = `example,Class,informative,flat
a,1,10,3
b,1,12,3
c,1,11,3
d,1,9,3
e,0,0,3
f,0,1,3
g,0,0,3
h,0,2,3
`

func TestChi2RanksDependentFeatureFirst(t *testing.T) {
	tbl := tableFromCSV(t, chi2CSV)

	res, err := Select(tbl, Request{Method: Chi2, RetainCounts: []int{1, 2}})
	require.NoError(t, err)
	require.Len(t, res.Selections, 2)

	assert.Equal(t, []string{"informative"}, res.Selections[0].Features)
	assert.Equal(t, []string{"informative", "flat"}, res.Selections[1].Features)
	assert.Greater(t, res.Scores["informative"], res.Scores["flat"])
	assert.InDelta(t, 0, res.Scores["flat"], 1e-12)
}

func TestChi2ReportsPValues(t *testing.T) {
	tbl := tableFromCSV(t, chi2CSV)

	res, err := Select(tbl, Request{Method: Chi2, RetainCounts: []int{2}})
	require.NoError(t, err)
	require.Len(t, res.PValues, 2)

	// A statistic of zero is maximally insignificant; the dependent
	// feature's statistic (~33.8 at 1 degree of freedom) is far into the
	// tail.
	assert.InDelta(t, 1.0, res.PValues["flat"], 1e-12)
	assert.Less(t, res.PValues["informative"], 1e-6)
	assert.Less(t, res.PValues["informative"], res.PValues["flat"])
}

func TestChi2RejectsNegativeFeatures(t *testing.T) {
	tbl := tableFromCSV(t, `example,Class,f1
a,1,-0.5
b,0,0.25
`)

	_, err := Select(tbl, Request{Method: Chi2, RetainCounts: []int{1}})
	var valueErr *errors.ValueError
	require.ErrorAs(t, err, &valueErr)
}

func TestChi2RejectsSingleClass(t *testing.T) {
	tbl := tableFromCSV(t, `example,Class,f1
a,1,0.5
b,1,0.25
`)

	_, err := Select(tbl, Request{Method: Chi2, RetainCounts: []int{1}})
	var valueErr *errors.ValueError
	require.ErrorAs(t, err, &valueErr)
}

func TestChi2ClampsOversizedCount(t *testing.T) {
	warned := captureWarnings(t)
	tbl := tableFromCSV(t, chi2CSV)

	res, err := Select(tbl, Request{Method: Chi2, RetainCounts: []int{10}})
	require.NoError(t, err)
	assert.Len(t, res.Selections[0].Features, 2)
	assert.Equal(t, 10, res.Selections[0].Retain)
	require.Len(t, *warned, 1)
}
