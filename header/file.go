// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package header

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/natefinch/atomic"
)

// Process rewrites the header fields of the file at path in place.
//
// Files without a header are reported with StatusNoHeader and left alone.
// I/O failures are reported through the returned Outcome, never as a panic
// or a separate error, so callers can move on to the next file.
func Process(path string, opts Options) Outcome {
	content, err := os.ReadFile(path)
	if err != nil {
		return Outcome{Status: StatusReadFail, Err: err}
	}
	lines := splitLines(string(content))
	if len(lines) == 0 {
		return Outcome{Status: StatusEmpty}
	}
	if !HasHeader(lines) {
		return Outcome{Status: StatusNoHeader}
	}

	rewritten, changed := RewriteLines(lines, opts)
	if !changed {
		return Outcome{Status: StatusUnchanged}
	}
	if !opts.DryRun {
		if err := writeFile(path, strings.Join(rewritten, "")); err != nil {
			return Outcome{Status: StatusWriteFail, Err: err}
		}
	}
	return Outcome{Changed: true, Status: StatusUpdated}
}

// Insert prepends a header block drawn in the style for path, unless the
// file already has a header. A leading "#!" interpreter line stays first.
func Insert(path string, styles *Styles, opts Options) Outcome {
	content, err := os.ReadFile(path)
	if err != nil {
		return Outcome{Status: StatusReadFail, Err: err}
	}
	lines := splitLines(string(content))
	if HasHeader(lines) {
		return Outcome{Status: StatusAlreadyHasHeader}
	}

	var sb strings.Builder
	rest := lines
	if len(lines) > 0 && strings.HasPrefix(lines[0], "#!") {
		sb.WriteString(lines[0])
		if !strings.HasSuffix(lines[0], "\n") {
			sb.WriteByte('\n')
		}
		rest = lines[1:]
	}
	for _, line := range styles.For(path).Block(path, opts.Author, opts.Window) {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	for _, line := range rest {
		sb.WriteString(line)
	}

	if !opts.DryRun {
		if err := writeFile(path, sb.String()); err != nil {
			return Outcome{Status: StatusWriteFail, Err: err}
		}
	}
	return Outcome{Changed: true, Status: StatusInserted}
}

// writeFile replaces the file at path through a temporary file, so a failed
// write leaves the original intact. The original permissions are kept.
// Symlinks are followed and their target is replaced. A file that is not
// writable itself is refused even if its directory is.
func writeFile(path, content string) error {
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(target)
	if err != nil {
		return err
	}
	f, err := os.OpenFile(target, os.O_WRONLY, 0)
	if err != nil {
		return err
	}
	f.Close()
	if err := atomic.WriteFile(target, strings.NewReader(content)); err != nil {
		return err
	}
	return os.Chmod(target, info.Mode().Perm())
}
