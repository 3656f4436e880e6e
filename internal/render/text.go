// Package render provides text layout utilities for the status bar and
// overlay panels.
package render

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
)

// Sanitize removes control characters (except tab), drops invalid
// UTF-8 bytes and turns non-breaking spaces into regular ones.
// Filenames come straight from the filesystem and can contain bytes
// that would break terminal rendering.
func Sanitize(s string) string {
	if !needsSanitize(s) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size <= 1 {
			i++
			continue
		}
		if r != '\t' && unicode.IsControl(r) {
			i += size
			continue
		}
		if r == ' ' {
			b.WriteByte(' ')
			i += size
			continue
		}
		b.WriteString(s[i : i+size])
		i += size
	}
	return b.String()
}

func needsSanitize(s string) bool {
	if !utf8.ValidString(s) {
		return true
	}
	for i := range len(s) {
		b := s[i]
		if (b < 0x20 && b != '\t') || b == 0x7f {
			return true
		}
		// C1 controls encode with a 0x80-0x9f continuation byte.
		if b >= 0x80 && b <= 0x9f {
			return true
		}
		// U+00A0 (NBSP) encodes as 0xc2 0xa0.
		if b == 0xc2 && i+1 < len(s) && s[i+1] == 0xa0 {
			return true
		}
	}
	return false
}

// Truncate shortens a string to maxWidth terminal cells, appending an
// ellipsis when it was cut. Wide runes (CJK, emoji) count per cell.
func Truncate(s string, maxWidth int) string {
	return runewidth.Truncate(Sanitize(s), maxWidth, "…")
}

// TruncateMiddle shortens a string by cutting the middle out, keeping
// the start and the end visible. Long image names usually differ at
// both ends (prefix and frame number), so middle truncation keeps the
// informative parts.
func TruncateMiddle(s string, maxWidth int) string {
	s = Sanitize(s)
	if runewidth.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 1 {
		return runewidth.Truncate(s, maxWidth, "")
	}

	keep := maxWidth - 1
	head := keep / 2
	tail := keep - head

	runes := []rune(s)
	var left strings.Builder
	w := 0
	i := 0
	for ; i < len(runes); i++ {
		rw := runewidth.RuneWidth(runes[i])
		if w+rw > head {
			break
		}
		left.WriteRune(runes[i])
		w += rw
	}

	var right strings.Builder
	w = 0
	j := len(runes)
	for ; j > i; j-- {
		rw := runewidth.RuneWidth(runes[j-1])
		if w+rw > tail {
			break
		}
		w += rw
	}
	for k := j; k < len(runes); k++ {
		right.WriteRune(runes[k])
	}

	return left.String() + "…" + right.String()
}

// Pad fills a string with spaces to the given cell width.
func Pad(s string, width int) string {
	return runewidth.FillRight(s, width)
}

// TruncateAndPad makes the output exactly width cells wide.
func TruncateAndPad(s string, width int) string {
	return Pad(Truncate(s, width), width)
}

// Row lays out left- and right-aligned content on one line of exactly
// width cells, with at least one space between them.
func Row(left, right string, width int) string {
	leftWidth := lipgloss.Width(left)
	rightWidth := lipgloss.Width(right)
	gap := max(width-leftWidth-rightWidth, 1)
	return left + strings.Repeat(" ", gap) + right
}

// Separator creates a horizontal rule of the given width.
func Separator(width int) string {
	return strings.Repeat("─", width)
}

// EmptyLine creates a line of spaces of the given width.
func EmptyLine(width int) string {
	return strings.Repeat(" ", width)
}
