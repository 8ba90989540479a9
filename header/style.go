// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package header

import (
	"path/filepath"
	"strings"
	"unicode/utf8"

	"go.astrophena.name/normheader/syncx"
	"go.astrophena.name/normheader/timeline"
)

// Width is the display width of an inserted header block.
const Width = 80

// Style describes how a header block is drawn in a given comment syntax.
type Style struct {
	Name   string
	Prefix string // starts every line of the block
	Suffix string // ends every line of the block, may be empty
	Fill   string // border character
	// Boxed styles wrap borders in Prefix and Suffix and surround the
	// fields with blank lines.
	Boxed bool
}

var (
	// CStyle draws a /* ... */ block.
	CStyle = Style{Name: "c", Prefix: "/* ", Suffix: " */", Fill: "*", Boxed: true}
	// HashStyle draws a block of # comments.
	HashStyle = Style{Name: "hash", Prefix: "# ", Fill: "#"}
)

// StyleByName returns a built-in style by its name.
func StyleByName(name string) (Style, bool) {
	switch name {
	case CStyle.Name:
		return CStyle, true
	case HashStyle.Name:
		return HashStyle, true
	}
	return Style{}, false
}

// Block returns the lines of a header block for the file named filename,
// without line terminators. The last line is empty and separates the block
// from the file contents.
func (s Style) Block(filename string, a Author, w timeline.Window) []string {
	inner := Width - utf8.RuneCountInString(s.Prefix) - utf8.RuneCountInString(s.Suffix)
	content := func(text string) string {
		return s.Prefix + padRight(text, inner) + s.Suffix
	}
	fields := []string{
		content("File: " + filepath.Base(filename)),
		content("By: " + a.String()),
		content("Created: " + timeline.Format(w.Created) + " by " + a.Name),
		content("Updated: " + timeline.Format(w.Updated) + " by " + a.Name),
	}

	if !s.Boxed {
		border := strings.Repeat(s.Fill, Width)
		block := append([]string{border}, fields...)
		return append(block, border, "")
	}

	border := s.Prefix + strings.Repeat(s.Fill, inner) + s.Suffix
	blank := content("")
	block := append([]string{border, blank}, fields...)
	return append(block, blank, border, "")
}

func padRight(s string, width int) string {
	if n := utf8.RuneCountInString(s); n < width {
		return s + strings.Repeat(" ", width-n)
	}
	return s
}

// Styles maps file extensions to header styles. Extensions are matched
// case-insensitively. Files with unknown extensions get the fallback style.
type Styles struct {
	byExt    syncx.Map[string, Style]
	fallback Style
}

// DefaultStyles returns the built-in extension table with [CStyle] as the
// fallback.
func DefaultStyles() *Styles {
	s := &Styles{fallback: CStyle}
	for _, ext := range []string{".c", ".h", ".cpp", ".hpp", ".cc", ".cxx", ".java", ".js", ".ts", ".tsx", ".cs"} {
		s.Register(ext, CStyle)
	}
	for _, ext := range []string{".py", ".sh", ".rb", ".lua"} {
		s.Register(ext, HashStyle)
	}
	return s
}

// Register sets the style used for files with extension ext.
func (s *Styles) Register(ext string, style Style) {
	s.byExt.Store(normalizeExt(ext), style)
}

// For returns the style for the file at path.
func (s *Styles) For(path string) Style {
	if style, ok := s.byExt.Load(normalizeExt(filepath.Ext(path))); ok {
		return style
	}
	return s.fallback
}

func normalizeExt(ext string) string {
	ext = strings.ToLower(ext)
	if ext != "" && !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}
