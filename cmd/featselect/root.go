package main

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/YuminosukeSato/featselect/dataset"
	"github.com/YuminosukeSato/featselect/pkg/errors"
	"github.com/YuminosukeSato/featselect/pkg/log"
)

var flags struct {
	df        string
	sep       string
	classCol  string
	classFile string
	className string
	features  string
	method    string
	retain    string
	param     float64
	problem   string
	pos       string
	neg       string
	jobs      int
	trees     int
	seed      int
	cv        string
	reps      string
	out       string
	list      bool
	logLevel  string
}

var rootCmd = &cobra.Command{
	Use:   "featselect",
	Short: "Select informative features from a delimited feature table",
	Long: `featselect runs one of five feature-selection methods over a feature
table (rows = examples, columns = features, one Class column) and writes the
reduced table or the list of selected feature names.

Methods: RandomForest (rf), Chi2 (c2), L1 (lasso), Relief (rebate),
FisherExact (fisher, fet, enrich).`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		log.SetLevel(log.ParseLevel(flags.logLevel))
		logger := log.GetLoggerWithName("cli")
		errors.SetZerologWarnFunc(func(w error) {
			logger.Warn(w.Error())
		})

		err := run(logger)
		if err != nil {
			logger.Error("Run failed", err)
		}
		return err
	},
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&flags.df, "df", "", "feature table path (required)")
	f.StringVar(&flags.sep, "sep", "\t", "field delimiter of the feature and class tables")
	f.StringVar(&flags.classCol, "class", dataset.ClassCol, "name of the label column in the feature table")
	f.StringVar(&flags.classFile, "class-file", "", "separate class-label table to join by identifier")
	f.StringVar(&flags.className, "class-col", "", "label column name inside --class-file")
	f.StringVar(&flags.features, "feat", "", "newline-delimited list of features to keep before selection")
	f.StringVar(&flags.method, "method", "", "selection method (required)")
	f.StringVar(&flags.retain, "n", "", "comma-separated retain counts for RandomForest/Chi2/Relief")
	f.Float64Var(&flags.param, "param", 0.05, "alpha (L1 regression), C (L1 classification), or p-value threshold (FisherExact)")
	f.StringVar(&flags.problem, "type", "c", "problem type: c (classification) or r (regression)")
	f.StringVar(&flags.pos, "pos", "1", "token coding the positive class in the raw label column")
	f.StringVar(&flags.neg, "neg", "0", "token coding the negative class in the raw label column")
	f.IntVar(&flags.jobs, "jobs", 1, "parallelism hint passed to the engines")
	f.IntVar(&flags.trees, "trees", 500, "ensemble size for RandomForest")
	f.IntVar(&flags.seed, "seed", 42, "random seed for the stochastic engines")
	f.StringVar(&flags.cv, "cv", "", "fold-assignment table for cross-validation masking")
	f.StringVar(&flags.reps, "rep", "1", "comma-separated replicate indices to run when --cv is set")
	f.StringVar(&flags.out, "out", "", "output path override (default composed from input, method, and parameters)")
	f.BoolVar(&flags.list, "list", false, "write selected feature names instead of the reduced table")
	f.StringVar(&flags.logLevel, "log-level", "info", "log level: debug, info, warn, error")

	_ = rootCmd.MarkFlagRequired("df")
	_ = rootCmd.MarkFlagRequired("method")
}

// parseSep maps the --sep flag value to a delimiter rune.
func parseSep(s string) (rune, error) {
	switch s {
	case "\t", "\\t", "tab":
		return '\t', nil
	case ",", "comma":
		return ',', nil
	}
	runes := []rune(s)
	if len(runes) != 1 {
		return 0, errors.NewValidationError("sep", "delimiter must be a single character", s)
	}
	return runes[0], nil
}

// parseIntList parses a comma-separated list of positive integers.
func parseIntList(s, flagName string) ([]int, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var out []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return nil, errors.NewValidationError(flagName, "must be a comma-separated list of integers", s)
		}
		out = append(out, v)
	}
	return out, nil
}
