package dataset

import (
	"github.com/YuminosukeSato/featselect/pkg/errors"
	"github.com/YuminosukeSato/featselect/pkg/log"
)

// NormalizeLabels renames the configured label column to Class and, for
// classification, recodes the positive token to 1 and the negative token to
// 0. Tokens matching neither are left unchanged and reported as a warning;
// the original pipelines feed already-coded numeric labels through here with
// pos/neg left at their defaults.
//
// Rows containing any missing value are then dropped. The whole operation is
// idempotent: applying it twice with the same tokens changes nothing.
func (t *Table) NormalizeLabels(classCol, pos, neg string, classification bool) error {
	logger := log.GetLoggerWithName("dataset")

	if !t.HasColumn(classCol) {
		return errors.NewSchemaError("table", classCol)
	}
	if classCol != ClassCol {
		renamed := t.df.Rename(ClassCol, classCol)
		if renamed.Err != nil {
			return errors.Wrap(renamed.Err, "rename class column")
		}
		t.df = renamed
	}

	if classification {
		classes, err := t.Classes()
		if err != nil {
			return err
		}
		recoded := make([]string, len(classes))
		unmatched := 0
		for i, v := range classes {
			switch v {
			case pos:
				recoded[i] = "1"
			case neg:
				recoded[i] = "0"
			case "1", "0", Sentinel:
				recoded[i] = v
			default:
				recoded[i] = v
				unmatched++
			}
		}
		if err := t.setClasses(recoded); err != nil {
			return err
		}
		if unmatched > 0 {
			errors.Warn(errors.NewUnmatchedLabelWarning(ClassCol, unmatched))
		}
	}

	dropped := t.DropNA()
	if dropped > 0 {
		logger.Info("Dropped rows with missing values",
			log.OperationKey, "normalize",
			log.DroppedKey, dropped,
			log.SamplesKey, t.NRows(),
		)
	}
	return nil
}
