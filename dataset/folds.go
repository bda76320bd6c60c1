package dataset

import (
	"fmt"
	"os"
	"strconv"

	"github.com/go-gota/gota/dataframe"

	"github.com/YuminosukeSato/featselect/pkg/errors"
	"github.com/YuminosukeSato/featselect/pkg/log"
)

// HeldOutFold is the fold id reserved as the held-out marker in
// fold-assignment files.
const HeldOutFold = 5

// FoldAssignment maps example identifiers to integer fold ids for one or
// more replicate columns (cv_<r>).
type FoldAssignment struct {
	df     dataframe.DataFrame
	idCol  string
	source string
}

// LoadFolds reads a comma-delimited fold-assignment table whose first column
// is the example identifier.
func LoadFolds(path string) (*FoldAssignment, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open fold assignment %s", path)
	}
	defer f.Close()

	df := dataframe.ReadCSV(f, dataframe.HasHeader(true))
	if df.Err != nil {
		return nil, errors.Wrapf(df.Err, "parse fold assignment %s", path)
	}
	names := df.Names()
	if len(names) < 2 {
		return nil, errors.WithStack(errors.ErrEmptyData)
	}
	return &FoldAssignment{df: df, idCol: names[0], source: path}, nil
}

// Folds returns the id→fold mapping for one replicate column.
func (fa *FoldAssignment) Folds(replicate int) (map[string]int, error) {
	col := fmt.Sprintf("cv_%d", replicate)
	found := false
	for _, n := range fa.df.Names() {
		if n == col {
			found = true
			break
		}
	}
	if !found {
		return nil, errors.NewSchemaError(fa.source, col)
	}

	ids := fa.df.Col(fa.idCol).Records()
	folds := fa.df.Col(col).Records()
	m := make(map[string]int, len(ids))
	for i, id := range ids {
		fold, err := strconv.Atoi(folds[i])
		if err != nil {
			return nil, errors.NewValueError("Folds", "non-integer fold id "+strconv.Quote(folds[i])+" in column "+col)
		}
		m[id] = fold
	}
	return m, nil
}

// MaskFold relabels every example assigned to the held-out fold for the given
// replicate with the unknown sentinel, then removes all sentinel rows. The
// result is the replicate-specific training view. Identifiers absent from the
// fold table are left unmasked.
func (t *Table) MaskFold(fa *FoldAssignment, replicate, heldOut int) error {
	folds, err := fa.Folds(replicate)
	if err != nil {
		return err
	}

	classes, err := t.Classes()
	if err != nil {
		return err
	}
	ids := t.IDs()

	masked := make([]string, len(classes))
	copy(masked, classes)
	for i, id := range ids {
		if fold, ok := folds[id]; ok && fold == heldOut {
			masked[i] = Sentinel
		}
	}
	if err := t.setClasses(masked); err != nil {
		return err
	}

	var keep []int
	for i, c := range masked {
		if c != Sentinel {
			keep = append(keep, i)
		}
	}
	removed := len(masked) - len(keep)
	if removed > 0 {
		if err := t.subset(keep); err != nil {
			return err
		}
	}

	log.GetLoggerWithName("dataset").Info("Masked held-out fold",
		log.OperationKey, "mask",
		log.ReplicateKey, replicate,
		"held_out_fold", heldOut,
		log.DroppedKey, removed,
		log.SamplesKey, t.NRows(),
	)
	return nil
}
