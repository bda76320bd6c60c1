package dataset

import (
	"bufio"
	"os"
	"strings"

	"github.com/go-gota/gota/dataframe"

	"github.com/YuminosukeSato/featselect/pkg/errors"
	"github.com/YuminosukeSato/featselect/pkg/log"
)

// Load reads a delimited table with a header row into a Table. The first
// column is the example identifier.
func Load(path string, sep rune) (*Table, error) {
	logger := log.GetLoggerWithName("dataset")

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open feature table %s", path)
	}
	defer f.Close()

	df := dataframe.ReadCSV(f,
		dataframe.WithDelimiter(sep),
		dataframe.HasHeader(true),
	)
	if df.Err != nil {
		return nil, errors.Wrapf(df.Err, "parse feature table %s", path)
	}

	t, err := NewTable(df)
	if err != nil {
		return nil, err
	}

	logger.Info("Loaded feature table",
		log.OperationKey, "load",
		log.PathKey, path,
		log.SamplesKey, t.NRows(),
		log.FeaturesKey, len(t.FeatureNames()),
	)
	return t, nil
}

// MergeClass inner-joins a separate class-label table onto the feature table
// by example identifier. Examples missing from either side are dropped; the
// before/after dimensions are logged.
func (t *Table) MergeClass(path, classCol string, sep rune) error {
	logger := log.GetLoggerWithName("dataset")

	f, err := os.Open(path)
	if err != nil {
		return errors.Wrapf(err, "open class table %s", path)
	}
	defer f.Close()

	classDF := dataframe.ReadCSV(f,
		dataframe.WithDelimiter(sep),
		dataframe.HasHeader(true),
	)
	if classDF.Err != nil {
		return errors.Wrapf(classDF.Err, "parse class table %s", path)
	}

	classNames := classDF.Names()
	if len(classNames) < 2 {
		return errors.WithStack(errors.ErrEmptyData)
	}
	found := false
	for _, n := range classNames {
		if n == classCol {
			found = true
			break
		}
	}
	if !found {
		return errors.NewSchemaError(path, classCol)
	}

	// Join keys must share a name; the class file's first column is its
	// identifier, whatever the header calls it.
	classDF = classDF.Rename(t.idCol, classNames[0])
	classDF = classDF.Select([]string{t.idCol, classCol})
	if classDF.Err != nil {
		return errors.Wrap(classDF.Err, "select class column")
	}

	beforeRows, beforeCols := t.NRows(), len(t.df.Names())
	merged := classDF.InnerJoin(t.df, t.idCol)
	if merged.Err != nil {
		return errors.Wrap(merged.Err, "join class and feature tables")
	}
	t.df = merged

	logger.Info("Merged class and feature tables",
		log.OperationKey, "merge",
		log.PathKey, path,
		"rows_before", beforeRows,
		"cols_before", beforeCols,
		"rows_after", t.NRows(),
		"cols_after", len(t.df.Names()),
	)
	return nil
}

// LoadWhitelist reads a newline-delimited list of feature names.
func LoadWhitelist(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open feature list %s", path)
	}
	defer f.Close()

	var feats []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		name := strings.TrimSpace(scanner.Text())
		if name == "" {
			continue
		}
		feats = append(feats, name)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "read feature list %s", path)
	}
	return feats, nil
}

// ApplyWhitelist restricts the table to the label column plus the named
// features, in the order given. A name with no matching column is a
// SchemaError; silently ignoring it would hide typos in the list file.
func (t *Table) ApplyWhitelist(features []string, source string) error {
	for _, name := range features {
		if name == ClassCol {
			continue
		}
		if !t.HasColumn(name) {
			return errors.NewSchemaError(source, name)
		}
	}

	cols := []string{t.idCol, ClassCol}
	for _, name := range features {
		if name == ClassCol {
			continue
		}
		cols = append(cols, name)
	}

	selected := t.df.Select(cols)
	if selected.Err != nil {
		return errors.Wrap(selected.Err, "apply feature list")
	}
	t.df = selected

	log.GetLoggerWithName("dataset").Info("Applied feature list",
		log.OperationKey, "filter",
		log.FeaturesKey, len(t.FeatureNames()),
	)
	return nil
}
