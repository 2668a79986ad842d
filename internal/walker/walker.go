// Package walker enumerates the source files a rewrite pass should visit.
package walker

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultExtensions are the suffixes visited when none are configured.
var DefaultExtensions = []string{".tsx", ".ts"}

// Options controls which files Walk returns.
type Options struct {
	// Extensions are filename suffixes to match, case-sensitive.
	// Empty means DefaultExtensions.
	Extensions []string
	// Skip names directories to prune wherever they appear below the root.
	Skip []string
}

// Walk returns every regular file under root whose name ends with one of
// the configured extensions, depth-first in directory listing order.
// The first filesystem error stops the walk and is returned.
func Walk(root string, opts Options) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root is not a directory: %s", root)
	}

	exts := opts.Extensions
	if len(exts) == 0 {
		exts = DefaultExtensions
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path != root && IsSkipped(d.Name(), opts.Skip) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		if HasExtension(d.Name(), exts) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// HasExtension reports whether name ends with any of exts.
func HasExtension(name string, exts []string) bool {
	for _, ext := range exts {
		if ext != "" && strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}

// IsSkipped reports whether a directory name is in the skip list.
func IsSkipped(name string, skip []string) bool {
	for _, s := range skip {
		if strings.TrimSuffix(strings.TrimSpace(s), "/") == name {
			return true
		}
	}
	return false
}
