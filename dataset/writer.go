package dataset

import (
	"bufio"
	"encoding/csv"
	"io"
	"os"
	"path/filepath"

	"github.com/YuminosukeSato/featselect/pkg/errors"
	"github.com/YuminosukeSato/featselect/pkg/log"
)

// WriteTable writes the reduced table: identifier, Class, and the selected
// features, in that order, as delimited text with a header row.
func (t *Table) WriteTable(w io.Writer, features []string, sep rune) error {
	cols := []string{t.idCol, ClassCol}
	for _, f := range features {
		if f == ClassCol {
			continue
		}
		cols = append(cols, f)
	}

	selected := t.df.Select(cols)
	if selected.Err != nil {
		return errors.Wrap(selected.Err, "select output columns")
	}

	cw := csv.NewWriter(w)
	cw.Comma = sep
	if err := cw.WriteAll(selected.Records()); err != nil {
		return errors.Wrap(err, "write table")
	}
	cw.Flush()
	return errors.WithStack(cw.Error())
}

// WriteNames writes one selected feature name per line. The label column
// name is never part of the list.
func WriteNames(w io.Writer, features []string) error {
	bw := bufio.NewWriter(w)
	for _, f := range features {
		if f == ClassCol {
			continue
		}
		if _, err := bw.WriteString(f + "\n"); err != nil {
			return errors.Wrap(err, "write feature list")
		}
	}
	return errors.WithStack(bw.Flush())
}

// SaveTable writes the reduced table to a file.
func (t *Table) SaveTable(path string, features []string, sep rune) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create output %s", path)
	}
	defer f.Close()

	if err := t.WriteTable(f, features, sep); err != nil {
		return err
	}
	log.GetLoggerWithName("dataset").Info("Wrote reduced table",
		log.OperationKey, "write",
		log.PathKey, path,
		log.SelectedKey, len(features),
	)
	return nil
}

// SaveNames writes the selected feature names to a file, one per line.
func SaveNames(path string, features []string) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create output %s", path)
	}
	defer f.Close()

	if err := WriteNames(f, features); err != nil {
		return err
	}
	log.GetLoggerWithName("dataset").Info("Wrote feature list",
		log.OperationKey, "write",
		log.PathKey, path,
		log.SelectedKey, len(features),
	)
	return nil
}

// OutputName composes the default output file name from the input file name,
// the method, and any run metadata (replicate, parameter, retain count).
// Empty parts are skipped.
func OutputName(inputPath, method string, parts ...string) string {
	name := filepath.Base(inputPath) + "_" + method
	for _, p := range parts {
		if p == "" {
			continue
		}
		name += "_" + p
	}
	return name
}
