package main

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jpl-au/gck"
	"github.com/jpl-au/gck/internal/batch"
	"github.com/jpl-au/gck/internal/config"
)

func (a *app) convertCmd() *cobra.Command {
	var (
		outDir  string
		level   string
		library string
		format  string
		workers int
		ape     bool
		unnamed bool
		primers bool
	)
	cmd := &cobra.Command{
		Use:   "convert [files...]",
		Short: "Convert containers to GenBank or JSON",
		Long: `Converts each input file and prints one line per file:

  pUC19.gcc: Finished!
  broken.gcc: Failed! (region block length: truncated container)

A file that fails never stops the others. The exit status is non-zero if
any file failed.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := a.cfg
			flags := cmd.Flags()
			if flags.Changed("out") {
				cfg.OutputDir = outDir
			}
			if flags.Changed("level") {
				l, err := gck.ParseLevel(level)
				if err != nil {
					return err
				}
				cfg.Level = l
			}
			if flags.Changed("library") {
				cfg.Library = library
			}
			if flags.Changed("format") {
				cfg.Format = format
			}
			if flags.Changed("workers") {
				cfg.Workers = workers
			}
			if flags.Changed("ape") {
				cfg.ApE = ape
			}
			if flags.Changed("unnamed") {
				cfg.IncludeUnnamed = unnamed
			}
			if flags.Changed("primers") {
				cfg.IncludePrimers = primers
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			return a.convert(cmd, args)
		},
	}
	f := cmd.Flags()
	f.StringVarP(&outDir, "out", "o", "", "Output directory (default: next to each input)")
	f.StringVarP(&level, "level", "l", "medium", "Pruning level: none, low, medium, high, highest")
	f.StringVar(&library, "library", gck.DefaultLibrary, "Feature rule library")
	f.StringVar(&format, "format", config.FormatGenBank, "Output format: genbank, json")
	f.IntVarP(&workers, "workers", "j", 0, "Files converted at once (default: CPU count)")
	f.BoolVar(&ape, "ape", false, "Add ApE colour qualifiers")
	f.BoolVar(&unnamed, "unnamed", false, "Export unnamed coloured regions as misc_feature")
	f.BoolVar(&primers, "primers", false, "Keep primer_bind features")
	return cmd
}

func (a *app) convert(cmd *cobra.Command, inputs []string) error {
	cfg := a.cfg
	rules, err := a.loadRules(cfg.Library)
	if err != nil {
		return err
	}
	alg, err := gck.ParseDigest(cfg.Digest)
	if err != nil {
		return err
	}

	results := batch.Run(cmd.Context(), inputs, batch.Options{
		Reconcile: gck.Options{
			Level:          cfg.Level,
			Rules:          rules,
			IncludeUnnamed: cfg.IncludeUnnamed,
			IncludePrimers: cfg.IncludePrimers,
		},
		OutputDir: cfg.OutputDir,
		Format:    cfg.Format,
		ApE:       cfg.ApE,
		Workers:   cfg.Workers,
		Digest:    alg,
		Logger:    a.logger,
	})

	failed := 0
	for _, r := range results {
		name := filepath.Base(r.Input)
		if r.Err != nil {
			failed++
			fmt.Fprintf(a.stdout, "%s: Failed! (%v)\n", name, r.Err)
			continue
		}
		fmt.Fprintf(a.stdout, "%s: Finished!\n", name)
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(results))
	}
	return nil
}

// loadRules loads the rule library. An unreadable library is logged and
// conversion goes ahead with no rules; a library that fails to compile is
// an error.
func (a *app) loadRules(path string) (gck.Rules, error) {
	rules, err := gck.LoadLibrary(path)
	switch {
	case err == nil:
		a.logger.Debug("library loaded", zap.String("path", path), zap.Int("rules", len(rules)))
		return rules, nil
	case errors.Is(err, gck.ErrInvalidPattern), errors.Is(err, gck.ErrUnknownType):
		return nil, err
	default:
		a.logger.Warn("library not loaded, classifying with no rules", zap.String("path", path), zap.Error(err))
		return nil, nil
	}
}
