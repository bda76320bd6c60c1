// Package dataset implements the tabular side of the selection pipeline:
// loading delimited feature tables, merging class labels, recoding labels,
// masking cross-validation folds, and writing reduced output.
//
// A Table wraps a gota dataframe whose first column is the example
// identifier. After NormalizeLabels the label column is always named Class
// and the table contains no missing values; selectors consume it through the
// XY matrix bridge.
package dataset

import (
	"strconv"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/featselect/pkg/errors"
)

// ClassCol is the canonical label column name after normalization.
const ClassCol = "Class"

// Sentinel marks examples whose label is unknown; rows carrying it are
// removed before selection.
const Sentinel = "unk"

// Table is an order-preserving feature table keyed by example identifier.
type Table struct {
	df    dataframe.DataFrame
	idCol string
}

// NewTable wraps an existing dataframe. The first column is treated as the
// example identifier.
func NewTable(df dataframe.DataFrame) (*Table, error) {
	if df.Err != nil {
		return nil, errors.Wrap(df.Err, "invalid dataframe")
	}
	names := df.Names()
	if len(names) < 2 {
		return nil, errors.WithStack(errors.ErrEmptyData)
	}
	return &Table{df: df, idCol: names[0]}, nil
}

// Copy returns a deep copy, so per-replicate mutation never touches the base
// table.
func (t *Table) Copy() *Table {
	return &Table{df: t.df.Copy(), idCol: t.idCol}
}

// NRows returns the number of examples.
func (t *Table) NRows() int {
	return t.df.Nrow()
}

// IDColumn returns the name of the identifier column.
func (t *Table) IDColumn() string {
	return t.idCol
}

// IDs returns the example identifiers in row order.
func (t *Table) IDs() []string {
	return t.df.Col(t.idCol).Records()
}

// HasColumn reports whether the table has a column with the given name.
func (t *Table) HasColumn(name string) bool {
	for _, n := range t.df.Names() {
		if n == name {
			return true
		}
	}
	return false
}

// FeatureNames returns every column that is neither the identifier nor the
// label, in table order.
func (t *Table) FeatureNames() []string {
	var feats []string
	for _, n := range t.df.Names() {
		if n == t.idCol || n == ClassCol {
			continue
		}
		feats = append(feats, n)
	}
	return feats
}

// Classes returns the label column as raw string records.
func (t *Table) Classes() ([]string, error) {
	if !t.HasColumn(ClassCol) {
		return nil, errors.NewSchemaError("table", ClassCol)
	}
	return t.df.Col(ClassCol).Records(), nil
}

// Feature returns a single feature column parsed as floats.
func (t *Table) Feature(name string) ([]float64, error) {
	if !t.HasColumn(name) {
		return nil, errors.NewSchemaError("table", name)
	}
	records := t.df.Col(name).Records()
	values := make([]float64, len(records))
	for i, r := range records {
		v, err := strconv.ParseFloat(r, 64)
		if err != nil {
			return nil, errors.NewValueError("Feature", "column "+name+" has non-numeric value "+strconv.Quote(r))
		}
		values[i] = v
	}
	return values, nil
}

// XY converts the table into the engine representation: an n×p feature
// matrix, an n×1 label vector, and the feature names in column order.
func (t *Table) XY() (*mat.Dense, *mat.Dense, []string, error) {
	feats := t.FeatureNames()
	n := t.NRows()
	if n == 0 || len(feats) == 0 {
		return nil, nil, nil, errors.WithStack(errors.ErrEmptyData)
	}

	X := mat.NewDense(n, len(feats), nil)
	for j, name := range feats {
		col, err := t.Feature(name)
		if err != nil {
			return nil, nil, nil, err
		}
		for i, v := range col {
			X.Set(i, j, v)
		}
	}

	classes, err := t.Classes()
	if err != nil {
		return nil, nil, nil, err
	}
	y := mat.NewDense(n, 1, nil)
	for i, r := range classes {
		v, err := strconv.ParseFloat(r, 64)
		if err != nil {
			return nil, nil, nil, errors.NewValueError("XY", "label value "+strconv.Quote(r)+" is not numeric; check the positive/negative tokens")
		}
		y.Set(i, 0, v)
	}

	return X, y, feats, nil
}

// DropNA removes every row containing a missing value and returns the number
// of rows dropped. Missing means an empty cell or a NaN marker.
func (t *Table) DropNA() int {
	records := t.df.Records() // first row is the header
	var keep []int
	for i, row := range records[1:] {
		if rowComplete(row) {
			keep = append(keep, i)
		}
	}
	dropped := t.df.Nrow() - len(keep)
	if dropped > 0 {
		t.df = t.df.Subset(keep)
	}
	return dropped
}

func rowComplete(row []string) bool {
	for _, cell := range row {
		switch cell {
		case "", "NA", "NaN", "nan":
			return false
		}
	}
	return true
}

// subset replaces the backing frame with the given row indexes.
func (t *Table) subset(keep []int) error {
	sub := t.df.Subset(keep)
	if sub.Err != nil {
		return errors.Wrap(sub.Err, "subset rows")
	}
	t.df = sub
	return nil
}

// setClasses replaces the label column, keeping it string typed so sentinel
// values survive until the rows carrying them are removed.
func (t *Table) setClasses(values []string) error {
	mutated := t.df.Mutate(series.New(values, series.String, ClassCol))
	if mutated.Err != nil {
		return errors.Wrap(mutated.Err, "replace class column")
	}
	t.df = mutated
	return nil
}
