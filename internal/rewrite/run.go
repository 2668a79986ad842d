package rewrite

import (
	"context"
	"fmt"
	"io"
	"os"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"fiximports/internal/diff"
	"fiximports/internal/mapping"
	"fiximports/internal/walker"
)

// RunOptions configures a batch pass over a tree.
type RunOptions struct {
	Root       string
	Extensions []string
	Skip       []string
	Table      mapping.Table
	Mode       Mode
	DryRun     bool
	// KeepGoing records per-file failures and continues instead of
	// stopping at the first one.
	KeepGoing bool

	// Out receives the console report. Defaults to os.Stdout.
	Out    io.Writer
	Logger *zap.Logger
}

// Summary totals a batch pass.
type Summary struct {
	Found        int
	Changed      int
	Replacements int
	Failed       []string
}

// Run walks opts.Root and fixes every matching file in walk order, one at a
// time. Without KeepGoing the first read or write error aborts the pass and
// is returned; files already fixed stay fixed.
func Run(ctx context.Context, opts RunOptions) (Summary, error) {
	var sum Summary

	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	files, err := walker.Walk(opts.Root, walker.Options{Extensions: opts.Extensions, Skip: opts.Skip})
	if err != nil {
		return sum, fmt.Errorf("scan %s: %w", opts.Root, err)
	}
	sum.Found = len(files)
	log.Debug("scan complete", zap.String("root", opts.Root), zap.Int("files", len(files)))

	fmt.Fprintf(out, "Found %d TypeScript files to process...\n", len(files))

	fileOpts := FileOptions{Mode: opts.Mode, DryRun: opts.DryRun}
	var errs error

	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return sum, multierr.Append(errs, err)
		}

		res, err := FixFile(ctx, path, opts.Table, fileOpts)
		if err != nil {
			if !opts.KeepGoing {
				return sum, err
			}
			log.Warn("file failed", zap.String("path", path), zap.Error(err))
			sum.Failed = append(sum.Failed, path)
			errs = multierr.Append(errs, err)
			continue
		}
		if !res.Changed {
			continue
		}

		sum.Changed++
		sum.Replacements += res.Replacements()
		log.Info("file fixed",
			zap.String("path", path),
			zap.Int("replacements", res.Replacements()),
			zap.Bool("dry_run", opts.DryRun))

		if opts.DryRun {
			fmt.Fprintf(out, "Would fix imports in: %s\n", path)
			fmt.Fprint(out, diff.Preview(path, res.Original, res.Updated))
			continue
		}
		fmt.Fprintf(out, "Fixed imports in: %s\n", path)
	}

	if len(sum.Failed) > 0 {
		fmt.Fprintf(out, "%d files could not be processed\n", len(sum.Failed))
	}
	fmt.Fprintln(out, "Import fixing complete!")

	return sum, errs
}
