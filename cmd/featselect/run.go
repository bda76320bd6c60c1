package main

import (
	"fmt"
	"strconv"

	"github.com/YuminosukeSato/featselect/dataset"
	"github.com/YuminosukeSato/featselect/pkg/errors"
	"github.com/YuminosukeSato/featselect/pkg/log"
	"github.com/YuminosukeSato/featselect/selection"
)

// run executes the pipeline: load, merge, normalize, whitelist, then one
// selection pass per replicate (or a single pass without cross-validation),
// writing one output per retained selection.
func run(logger log.Logger) error {
	method, err := selection.ParseMethod(flags.method)
	if err != nil {
		return err
	}
	problem, err := selection.ParseProblem(flags.problem)
	if err != nil {
		return err
	}
	retain, err := parseIntList(flags.retain, "n")
	if err != nil {
		return err
	}
	sep, err := parseSep(flags.sep)
	if err != nil {
		return err
	}

	req := selection.Request{
		Method:       method,
		RetainCounts: retain,
		Param:        flags.param,
		Problem:      problem,
		Jobs:         flags.jobs,
		Trees:        flags.trees,
		Seed:         flags.seed,
	}
	// Configuration mistakes surface here, before any file is touched.
	if err := req.Validate(); err != nil {
		return err
	}

	base, err := dataset.Load(flags.df, sep)
	if err != nil {
		return err
	}

	classCol := flags.classCol
	if flags.classFile != "" {
		if flags.className == "" {
			return errors.NewValidationError("class-col", "required when --class-file is given", nil)
		}
		classCol = flags.className
		if err := base.MergeClass(flags.classFile, classCol, sep); err != nil {
			return err
		}
	}

	if err := base.NormalizeLabels(classCol, flags.pos, flags.neg, problem == selection.Classification); err != nil {
		return err
	}

	if flags.features != "" {
		whitelist, err := dataset.LoadWhitelist(flags.features)
		if err != nil {
			return err
		}
		if err := base.ApplyWhitelist(whitelist, flags.features); err != nil {
			return err
		}
	}

	// Replicate passes. Without --cv there is a single pass over the full
	// table; with it, each replicate masks its held-out fold on a fresh
	// copy so passes never contaminate each other.
	if flags.cv == "" {
		return runPass(base.Copy(), req, -1, sep)
	}

	folds, err := dataset.LoadFolds(flags.cv)
	if err != nil {
		return err
	}
	reps, err := parseIntList(flags.reps, "rep")
	if err != nil {
		return err
	}
	if len(reps) == 0 {
		return errors.NewValidationError("rep", "at least one replicate index is required with --cv", flags.reps)
	}

	for _, rep := range reps {
		logger.Info("Starting replicate", log.ReplicateKey, rep)
		work := base.Copy()
		if err := work.MaskFold(folds, rep, dataset.HeldOutFold); err != nil {
			return err
		}
		if err := runPass(work, req, rep, sep); err != nil {
			return err
		}
	}
	return nil
}

// runPass selects features on one prepared table view and writes the
// outputs. rep < 0 means no cross-validation.
func runPass(t *dataset.Table, req selection.Request, rep int, sep rune) error {
	res, err := selection.Select(t, req)
	if err != nil {
		return err
	}

	base := flags.out
	if base == "" {
		parts := []string{}
		if rep >= 0 {
			parts = append(parts, fmt.Sprintf("cv%d", rep))
		}
		// L1 and FisherExact embed their parameter in the default name.
		if req.Method == selection.L1 || req.Method == selection.FisherExact {
			parts = append(parts, strconv.FormatFloat(req.Param, 'g', -1, 64))
		}
		base = dataset.OutputName(flags.df, req.Method.String(), parts...)
	} else if rep >= 0 && flags.cv != "" {
		base = fmt.Sprintf("%s_cv%d", base, rep)
	}

	for _, sel := range res.Selections {
		path := base
		if sel.Retain > 0 {
			path = fmt.Sprintf("%s_%d", base, sel.Retain)
		}
		if flags.list {
			if err := dataset.SaveNames(path, sel.Features); err != nil {
				return err
			}
			continue
		}
		if err := t.SaveTable(path, sel.Features, sep); err != nil {
			return err
		}
	}
	return nil
}
