// Package batch converts many container files concurrently.
//
// Files are independent: each worker opens, decodes, reconciles and
// writes one file, sharing only the read-only compiled rule list. A failed
// file is reported in its Result and never stops the others. Output is
// written to a .tmp file beside the destination and renamed into place
// once synced, so a failure never leaves a partial export under the final
// name.
package batch

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jpl-au/gck"
	"github.com/jpl-au/gck/internal/config"
)

// Options configures a batch run.
type Options struct {
	Reconcile gck.Options // shared by every file; Rules must not be modified

	OutputDir string // empty: next to each input
	Format    string // config.FormatGenBank or config.FormatJSON
	ApE       bool
	Date      time.Time // LOCUS date; zero means now

	Workers int // at most this many files in flight; <1 means one
	Digest  int
	Logger  *zap.Logger
}

// Result is the outcome for one input file.
type Result struct {
	Input    string
	Output   string
	Digest   string
	Features int // number of exported features
	Warnings []string
	Err      error
}

// Run converts inputs and returns one Result per input, in input order.
// Files not yet started when ctx is cancelled fail with ctx.Err().
func Run(ctx context.Context, inputs []string, opts Options) []Result {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	results := make([]Result, len(inputs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(opts.Workers, 1))
	for i, in := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i] = Result{Input: in, Err: err}
				return nil
			}
			results[i] = ConvertFile(in, opts)
			return nil
		})
	}
	g.Wait()

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	log.Info("batch finished", zap.Int("files", len(inputs)), zap.Int("failed", failed))
	return results
}

// OutputPath returns where input's export is written.
func OutputPath(input string, opts Options) string {
	dir := opts.OutputDir
	if dir == "" {
		dir = filepath.Dir(input)
	}
	return filepath.Join(dir, gck.BaseName(input)+config.Extension(opts.Format))
}

// ConvertFile converts a single file.
func ConvertFile(input string, opts Options) Result {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	log = log.With(zap.String("file", input))
	res := Result{Input: input, Output: OutputPath(input, opts)}

	f, err := gck.Open(input, gck.DecodeOptions{Logger: log, Digest: opts.Digest})
	if err != nil {
		res.Err = err
		log.Error("decode failed", zap.Error(err))
		return res
	}
	res.Digest = f.Digest
	res.Warnings = f.Warnings

	ro := opts.Reconcile
	ro.Logger = log
	features := gck.Reconcile(f, ro)
	res.Features = len(features)

	err = writeOutput(res.Output, func(w io.Writer) error {
		if opts.Format == config.FormatJSON {
			return gck.WriteJSON(w, f, features)
		}
		return gck.WriteGenBank(w, f, features, gck.GenBankOptions{ApE: opts.ApE, Date: opts.Date})
	})
	if err != nil {
		res.Err = err
		log.Error("write failed", zap.String("output", res.Output), zap.Error(err))
		return res
	}
	log.Debug("converted",
		zap.String("output", res.Output),
		zap.Int("features", res.Features),
		zap.Bool("circular", f.Circular))
	return res
}

// writeOutput writes path via a .tmp file in the same directory.
func writeOutput(path string, write func(io.Writer) error) error {
	dir, name := filepath.Split(path)
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	root, err := os.OpenRoot(dir)
	if err != nil {
		return err
	}
	defer root.Close()

	tmp, err := root.Create(name + ".tmp")
	if err != nil {
		return err
	}
	if err := write(tmp); err != nil {
		tmp.Close()
		root.Remove(name + ".tmp")
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		root.Remove(name + ".tmp")
		return err
	}
	if err := tmp.Close(); err != nil {
		root.Remove(name + ".tmp")
		return err
	}
	return root.Rename(name+".tmp", name)
}
