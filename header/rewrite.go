// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package header

import (
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"go.astrophena.name/normheader/timeline"
)

// Each field pattern captures the text up to and including the label, the
// field value and everything after it.
//
// The By value is the name plus an optional <email>. After an email the
// tail is the rest of the line. Without one, the tail is a run of two or
// more whitespace characters and whatever follows, a comment terminator, or
// trailing whitespace.
var (
	byEmailRx = regexp.MustCompile(`^(.*?\bBy:\s*)([^<]*?\s*<[^>]*>)(.*)$`)
	byRx      = regexp.MustCompile(`^(.*?\bBy:\s*)([^<]*?)(\s{2,}.*|\s*\*/.*|\s*)$`)
	createdRx = regexp.MustCompile(`^(.*?\bCreated:\s*)(\d{4}/\d{2}/\d{2}\s+\d{2}:\d{2}:\d{2})(.*)$`)
	updatedRx = regexp.MustCompile(`^(.*?\bUpdated:\s*)(\d{4}/\d{2}/\d{2}\s+\d{2}:\d{2}:\d{2})(.*)$`)
)

// RewriteBy replaces the By field value in line with a.
// Lines without a By field are returned unchanged.
func RewriteBy(line string, a Author, preserveWidth bool) string {
	if content, _ := cutEOL(line); byEmailRx.MatchString(content) {
		return rewriteField(line, byEmailRx, a.String(), preserveWidth)
	}
	return rewriteField(line, byRx, a.String(), preserveWidth)
}

// RewriteCreated replaces the Created timestamp in line with t.
// Lines without a well-formed Created field are returned unchanged.
func RewriteCreated(line string, t time.Time, preserveWidth bool) string {
	return rewriteField(line, createdRx, timeline.Format(t), preserveWidth)
}

// RewriteUpdated replaces the Updated timestamp in line with t.
// Lines without a well-formed Updated field are returned unchanged.
func RewriteUpdated(line string, t time.Time, preserveWidth bool) string {
	return rewriteField(line, updatedRx, timeline.Format(t), preserveWidth)
}

func rewriteField(line string, rx *regexp.Regexp, value string, preserveWidth bool) string {
	content, eol := cutEOL(line)
	m := rx.FindStringSubmatch(content)
	if m == nil {
		return line
	}
	left, tail := m[1], m[3]
	updated := left + value + tail
	if preserveWidth {
		updated = PreserveWidth(content, updated)
	}
	return updated + eol
}

// RewriteLines rewrites the By, Created and Updated fields found in the
// first ScanLines of lines. It reports whether any line changed. The input
// slice is not modified.
//
// Fields are checked independently, so a single line carrying several
// labels has each of them rewritten.
func RewriteLines(lines []string, opts Options) ([]string, bool) {
	out := make([]string, len(lines))
	copy(out, lines)

	var changed bool
	for i := range min(ScanLines, len(out)) {
		line := out[i]
		if strings.Contains(line, "By:") {
			line = RewriteBy(line, opts.Author, opts.PreserveWidth)
		}
		if strings.Contains(line, "Created:") {
			line = RewriteCreated(line, opts.Window.Created, opts.PreserveWidth)
		}
		if strings.Contains(line, "Updated:") {
			line = RewriteUpdated(line, opts.Window.Updated, opts.PreserveWidth)
		}
		if line != out[i] {
			out[i] = line
			changed = true
		}
	}
	return out, changed
}

// PreserveWidth brings newLine back to the length of oldLine by growing or
// shrinking the run of spaces right before the comment terminator "*/", or
// at the end of the line if there is no terminator. Length is counted in
// runes.
//
// If there is no such run, or it is too short to absorb the difference,
// newLine is returned as is.
func PreserveWidth(oldLine, newLine string) string {
	diff := utf8.RuneCountInString(newLine) - utf8.RuneCountInString(oldLine)
	if diff == 0 {
		return newLine
	}

	end := len(newLine)
	if i := strings.LastIndex(newLine, "*/"); i != -1 {
		end = i
	}
	start := end
	for start > 0 && newLine[start-1] == ' ' {
		start--
	}
	run := end - start
	if run == 0 || run < diff {
		return newLine
	}
	return newLine[:start] + strings.Repeat(" ", run-diff) + newLine[end:]
}
