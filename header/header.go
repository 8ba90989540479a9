// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package header detects, rewrites and inserts 42-style comment headers
// (File, By, Created and Updated fields) at the top of source files.
//
// Detection is a cheap heuristic: a file has a header when its first
// [ScanLines] lines contain the substrings "By:", "Created:" and "Updated:".
// Any file that mentions all three near the top matches, header or not.
package header

import (
	"strings"

	"go.astrophena.name/normheader/timeline"
)

// ScanLines is the number of lines at the top of a file that are inspected.
const ScanLines = 20

// Status describes what happened to a file.
type Status int

const (
	StatusUnchanged Status = iota
	StatusUpdated
	StatusInserted
	StatusAlreadyHasHeader
	StatusNoHeader
	StatusEmpty
	StatusReadFail
	StatusWriteFail
)

var statusNames = [...]string{
	StatusUnchanged:        "unchanged",
	StatusUpdated:          "updated",
	StatusInserted:         "inserted",
	StatusAlreadyHasHeader: "already-has-header",
	StatusNoHeader:         "no-42-header",
	StatusEmpty:            "empty",
	StatusReadFail:         "read-fail",
	StatusWriteFail:        "write-fail",
}

func (s Status) String() string {
	if s < 0 || int(s) >= len(statusNames) {
		return "unknown"
	}
	return statusNames[s]
}

// Outcome is the result of processing a single file.
type Outcome struct {
	Changed bool
	Status  Status
	// Err is the underlying I/O error for StatusReadFail and StatusWriteFail.
	Err error
}

// Author identifies who is credited in the By field.
type Author struct {
	Name  string
	Email string // optional
}

// String returns the By field value: the name, followed by the email in
// angle brackets if there is one.
func (a Author) String() string {
	if a.Email == "" {
		return a.Name
	}
	return a.Name + " <" + a.Email + ">"
}

// Options control how a single file is rewritten.
type Options struct {
	Author Author
	Window timeline.Window
	// PreserveWidth keeps rewritten lines at their original length when the
	// line has spaces to give or take before its comment terminator.
	PreserveWidth bool
	// DryRun does everything except writing the file back.
	DryRun bool
}

// HasHeader reports whether the first ScanLines of lines look like a header.
func HasHeader(lines []string) bool {
	chunk := strings.Join(lines[:min(ScanLines, len(lines))], "\n")
	for _, label := range []string{"By:", "Created:", "Updated:"} {
		if !strings.Contains(chunk, label) {
			return false
		}
	}
	return true
}

// splitLines splits s into lines, keeping line terminators.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.SplitAfter(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// cutEOL splits line into its content and line terminator.
func cutEOL(line string) (content, eol string) {
	switch {
	case strings.HasSuffix(line, "\r\n"):
		return line[:len(line)-2], "\r\n"
	case strings.HasSuffix(line, "\n"):
		return line[:len(line)-1], "\n"
	}
	return line, ""
}
