// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"cmp"
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"go.astrophena.name/normheader/logger"
)

// extList is a flag.Value holding file extensions. The first Set replaces
// the defaults. An empty list matches every file.
type extList struct {
	exts []string
	set  bool
}

func (l *extList) String() string { return strings.Join(l.exts, ",") }

func (l *extList) Set(s string) error {
	if !l.set {
		l.exts, l.set = nil, true
	}
	for ext := range strings.SplitSeq(s, ",") {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		l.exts = append(l.exts, ext)
	}
	return nil
}

func (l *extList) matches(path string) bool {
	return len(l.exts) == 0 || slices.Contains(l.exts, strings.ToLower(filepath.Ext(path)))
}

// collectFiles returns the regular files in root matching exts, sorted by
// path case-insensitively. Symlinks to regular files are included. Unreadable
// subdirectories are logged and skipped.
func collectFiles(ctx context.Context, root string, exts *extList, recursive bool, cfg *config) ([]string, error) {
	var files []string
	keep := func(path string) bool {
		return exts.matches(path) && !cfg.isExcluded(path)
	}

	if !recursive {
		entries, err := os.ReadDir(root)
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			path := filepath.Join(root, e.Name())
			if isRegular(path, e) && keep(path) {
				files = append(files, path)
			}
		}
	} else {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == root {
					return err
				}
				logger.Warn(ctx, "skipping unreadable path", slog.String("path", path), slog.Any("err", err))
				return nil
			}
			if isRegular(path, d) && keep(path) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	slices.SortStableFunc(files, func(a, b string) int {
		return cmp.Compare(strings.ToLower(a), strings.ToLower(b))
	})
	return files, nil
}

// isRegular reports whether d is a regular file or a symlink resolving to
// one. Symlinked directories are not descended into.
func isRegular(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

// sortByModTime orders files by modification time, oldest first. Ties keep
// their current order. Files that cannot be stated sort first.
func sortByModTime(files []string) {
	mtimes := make(map[string]time.Time, len(files))
	for _, f := range files {
		if info, err := os.Stat(f); err == nil {
			mtimes[f] = info.ModTime()
		}
	}
	slices.SortStableFunc(files, func(a, b string) int {
		return mtimes[a].Compare(mtimes[b])
	})
}
