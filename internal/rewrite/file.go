package rewrite

import (
	"context"
	"fmt"
	"os"

	"fiximports/internal/mapping"
)

// File access is indirected so tests can fail a single path.
var (
	osReadFile  = os.ReadFile
	osWriteFile = os.WriteFile
)

// FileOptions controls a single FixFile call.
type FileOptions struct {
	Mode   Mode
	DryRun bool
}

// FileResult describes what FixFile did to one file.
type FileResult struct {
	Path    string
	Changed bool
	Hits    []Hit
	// Original and Updated are set only when Changed is true.
	Original string
	Updated  string
}

// Replacements is the total number of occurrences replaced.
func (r FileResult) Replacements() int {
	return totalCount(r.Hits)
}

// FixFile reads path, applies table and, if anything matched, overwrites the
// file once with the new content, keeping its permission bits. Unchanged
// files are never written. In dry-run mode nothing is written.
func FixFile(ctx context.Context, path string, table mapping.Table, opts FileOptions) (FileResult, error) {
	res := FileResult{Path: path}

	data, err := osReadFile(path)
	if err != nil {
		return res, fmt.Errorf("read %s: %w", path, err)
	}

	var updated string
	switch opts.Mode {
	case ModeSpecifier:
		updated, res.Hits, err = applySpecifiers(ctx, path, data, table)
		if err != nil {
			return res, err
		}
	default:
		updated, res.Hits = Apply(string(data), table)
	}

	if len(res.Hits) == 0 {
		return res, nil
	}
	res.Changed = true
	res.Original = string(data)
	res.Updated = updated

	if opts.DryRun {
		return res, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return res, fmt.Errorf("stat %s: %w", path, err)
	}
	if err := osWriteFile(path, []byte(updated), info.Mode().Perm()); err != nil {
		return res, fmt.Errorf("write %s: %w", path, err)
	}
	return res, nil
}
