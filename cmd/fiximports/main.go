// Package main implements fiximports, which rewrites versioned package
// import specifiers (lucide-react@0.487.0) into their unversioned form
// (lucide-react) across a TypeScript source tree.
//
// Usage:
//
//	fiximports [root]           fix every .ts/.tsx file under root (default: src)
//	fiximports watch [root]     fix once, then keep fixing files as they change
//	fiximports mappings         print the mapping table
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"fiximports/internal/config"
	"fiximports/internal/logging"
	"fiximports/internal/rewrite"
	"fiximports/internal/watch"
)

// cli holds flag values and the state built in PersistentPreRunE.
type cli struct {
	configPath string
	verbose    bool
	dryRun     bool
	keepGoing  bool
	match      string
	extensions []string
	skipDirs   []string

	cfg    *config.Config
	logger *zap.Logger
}

func newRootCmd() *cobra.Command {
	return (&cli{}).command()
}

func (c *cli) command() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "fiximports [root]",
		Short: "Rewrite versioned import specifiers to their unversioned form",
		Long: `Scans root (default: src) for .ts and .tsx files and replaces pinned
package specifiers such as "@radix-ui/react-dialog@1.1.6" with
"@radix-ui/react-dialog". Files are only written when something changed.

By default the first unreadable or unwritable file stops the run.`,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
		RunE: c.runFix,
	}

	rootCmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", config.DefaultPath, "Config file")
	rootCmd.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&c.match, "match", "", "Match mode: literal or specifier (default from config)")
	rootCmd.PersistentFlags().StringSliceVar(&c.extensions, "ext", nil, "File extensions to rewrite (repeatable)")
	rootCmd.PersistentFlags().StringSliceVar(&c.skipDirs, "skip", nil, "Directory names to skip (repeatable)")

	rootCmd.Flags().BoolVar(&c.dryRun, "dry-run", false, "Show what would change without writing")
	rootCmd.Flags().BoolVar(&c.keepGoing, "keep-going", false, "Continue past files that cannot be read or written")

	watchCmd := &cobra.Command{
		Use:   "watch [root]",
		Short: "Fix the tree, then keep fixing files as they are written",
		Args:  cobra.MaximumNArgs(1),
		RunE:  c.runWatch,
	}

	mappingsCmd := &cobra.Command{
		Use:   "mappings",
		Short: "Print the mapping table in the order it is applied",
		Args:  cobra.NoArgs,
		RunE:  c.runMappings,
	}

	rootCmd.AddCommand(watchCmd, mappingsCmd)
	return rootCmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// setup loads config, applies flag overrides and builds the logger.
func (c *cli) setup(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}

	if len(args) == 1 {
		cfg.Root = args[0]
	}
	flags := cmd.Flags()
	if flags.Changed("match") {
		cfg.Match = c.match
	}
	if flags.Changed("ext") {
		cfg.Extensions = c.extensions
	}
	if flags.Changed("skip") {
		cfg.SkipDirs = c.skipDirs
	}
	if flags.Changed("keep-going") {
		cfg.KeepGoing = c.keepGoing
	}

	logger, err := logging.New(cfg.Logging, c.verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	c.cfg = cfg
	c.logger = logger
	logging.For(logger, logging.CategoryBoot).Debug("config loaded",
		zap.String("path", c.configPath),
		zap.String("root", cfg.Root),
		zap.Strings("extensions", cfg.Extensions),
		zap.String("match", cfg.Match))
	return nil
}

func (c *cli) runOptions(cmd *cobra.Command) (rewrite.RunOptions, error) {
	table, err := c.cfg.Table()
	if err != nil {
		return rewrite.RunOptions{}, err
	}
	mode, err := c.cfg.MatchMode()
	if err != nil {
		return rewrite.RunOptions{}, err
	}

	return rewrite.RunOptions{
		Root:       c.cfg.Root,
		Extensions: c.cfg.Extensions,
		Skip:       c.cfg.SkipDirs,
		Table:      table,
		Mode:       mode,
		DryRun:     c.dryRun,
		KeepGoing:  c.cfg.KeepGoing,
		Out:        cmd.OutOrStdout(),
		Logger:     logging.For(c.logger, logging.CategoryRewrite),
	}, nil
}

func signalContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	parent := cmd.Context()
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func (c *cli) runFix(cmd *cobra.Command, args []string) error {
	opts, err := c.runOptions(cmd)
	if err != nil {
		return err
	}

	ctx, stop := signalContext(cmd)
	defer stop()

	sum, err := rewrite.Run(ctx, opts)
	c.logger.Info("run finished",
		zap.Int("found", sum.Found),
		zap.Int("changed", sum.Changed),
		zap.Int("replacements", sum.Replacements),
		zap.Int("failed", len(sum.Failed)),
		zap.Error(err))
	return err
}

func (c *cli) runWatch(cmd *cobra.Command, args []string) error {
	opts, err := c.runOptions(cmd)
	if err != nil {
		return err
	}
	opts.KeepGoing = true

	ctx, stop := signalContext(cmd)
	defer stop()

	if _, err := rewrite.Run(ctx, opts); err != nil {
		c.logger.Warn("initial pass had errors", zap.Error(err))
	}

	w, err := watch.New(watch.Options{
		Root:       opts.Root,
		Extensions: opts.Extensions,
		Skip:       opts.Skip,
		Table:      opts.Table,
		Mode:       opts.Mode,
		Debounce:   c.cfg.GetDebounce(),
		Out:        opts.Out,
		Logger:     logging.For(c.logger, logging.CategoryWatch),
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(opts.Out, "Watching %s for changes (Ctrl+C to stop)...\n", opts.Root)
	if err := w.Run(ctx); err != nil {
		return err
	}

	stats := w.Stats()
	fmt.Fprintf(opts.Out, "Stopped watching: %d files fixed, %d errors\n", stats.Fixed, stats.Errors)
	return nil
}

func (c *cli) runMappings(cmd *cobra.Command, args []string) error {
	table, err := c.cfg.Table()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, p := range table.Pairs() {
		fmt.Fprintf(out, "%-40s -> %s\n", p.Old, p.New)
	}
	return nil
}
