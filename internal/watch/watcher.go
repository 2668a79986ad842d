// Package watch keeps a source tree free of versioned import specifiers by
// re-fixing files as they are created or modified.
package watch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"fiximports/internal/mapping"
	"fiximports/internal/rewrite"
	"fiximports/internal/walker"
)

// minTick bounds how often pending files are checked, whatever the debounce.
const minTick = 10 * time.Millisecond

// Options configures a Watcher.
type Options struct {
	Root       string
	Extensions []string
	Skip       []string
	Table      mapping.Table
	Mode       rewrite.Mode
	// Debounce is how long a file must be quiet before it is fixed.
	Debounce time.Duration

	Out    io.Writer
	Logger *zap.Logger
}

// Stats tracks watcher activity.
type Stats struct {
	Events int
	Fixed  int
	Errors int
}

// Watcher watches every directory under a root. Files are fixed one at a
// time from a single goroutine; the file's own rewrite shows up as another
// event that finds nothing left to replace.
type Watcher struct {
	opts    Options
	watcher *fsnotify.Watcher
	log     *zap.Logger
	ready   chan struct{}

	mu      sync.Mutex
	pending map[string]time.Time
	stats   Stats
}

// New creates a Watcher. Nothing is watched until Run is called.
func New(opts Options) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if len(opts.Extensions) == 0 {
		opts.Extensions = walker.DefaultExtensions
	}
	if opts.Debounce <= 0 {
		opts.Debounce = 300 * time.Millisecond
	}
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	return &Watcher{
		opts:    opts,
		watcher: fw,
		log:     log,
		ready:   make(chan struct{}),
		pending: make(map[string]time.Time),
	}, nil
}

// Ready is closed once the initial directory set is being watched, or once
// Run has failed to watch the root.
func (w *Watcher) Ready() <-chan struct{} {
	return w.ready
}

// Stats returns a snapshot of the counters.
func (w *Watcher) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

// Run watches until ctx is cancelled and then releases the underlying
// watcher. It returns an error only if the root cannot be watched.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.watcher.Close()

	if err := w.addTree(w.opts.Root, false); err != nil {
		close(w.ready)
		return fmt.Errorf("watch %s: %w", w.opts.Root, err)
	}
	close(w.ready)
	w.log.Info("watching", zap.String("root", w.opts.Root), zap.Duration("debounce", w.opts.Debounce))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return w.receive(gctx) })
	g.Go(func() error { return w.flushLoop(gctx) })
	return g.Wait()
}

// addTree watches dir and every directory below it. With enqueue set,
// matching files already present are queued, which covers files written
// into a new directory before its watch was in place.
func (w *Watcher) addTree(dir string, enqueue bool) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != w.opts.Root && walker.IsSkipped(d.Name(), w.opts.Skip) {
				return filepath.SkipDir
			}
			if err := w.watcher.Add(path); err != nil {
				return err
			}
			w.log.Debug("watching directory", zap.String("dir", path))
			return nil
		}
		if enqueue && d.Type().IsRegular() && walker.HasExtension(d.Name(), w.opts.Extensions) {
			w.enqueue(path)
		}
		return nil
	})
}

func (w *Watcher) enqueue(path string) {
	w.mu.Lock()
	w.pending[path] = time.Now()
	w.mu.Unlock()
}

func (w *Watcher) receive(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.watcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return nil
			}
			w.log.Error("watcher error", zap.Error(err))
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
		return
	}

	w.mu.Lock()
	w.stats.Events++
	w.mu.Unlock()

	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if walker.IsSkipped(filepath.Base(event.Name), w.opts.Skip) {
				return
			}
			if err := w.addTree(event.Name, true); err != nil {
				w.log.Warn("failed to watch new directory", zap.String("dir", event.Name), zap.Error(err))
			}
			return
		}
	}

	if walker.HasExtension(filepath.Base(event.Name), w.opts.Extensions) {
		w.log.Debug("queued", zap.String("path", event.Name), zap.String("op", event.Op.String()))
		w.enqueue(event.Name)
	}
}

func (w *Watcher) flushLoop(ctx context.Context) error {
	ticker := time.NewTicker(max(w.opts.Debounce/2, minTick))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			w.flush(ctx)
		}
	}
}

// flush fixes every queued file that has been quiet for the debounce window.
func (w *Watcher) flush(ctx context.Context) {
	now := time.Now()
	var settled []string

	w.mu.Lock()
	for path, at := range w.pending {
		if now.Sub(at) >= w.opts.Debounce {
			settled = append(settled, path)
			delete(w.pending, path)
		}
	}
	w.mu.Unlock()

	for _, path := range settled {
		res, err := rewrite.FixFile(ctx, path, w.opts.Table, rewrite.FileOptions{Mode: w.opts.Mode})
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			w.log.Warn("fix failed", zap.String("path", path), zap.Error(err))
			w.mu.Lock()
			w.stats.Errors++
			w.mu.Unlock()
			continue
		}
		if !res.Changed {
			continue
		}

		w.mu.Lock()
		w.stats.Fixed++
		w.mu.Unlock()
		w.log.Info("file fixed", zap.String("path", path), zap.Int("replacements", res.Replacements()))
		fmt.Fprintf(w.opts.Out, "Fixed imports in: %s\n", path)
	}
}
