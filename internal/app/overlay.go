package app

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// composeOverlay paints overlayView on top of base, line by line. Only
// the visible (non-blank) span of each overlay line replaces the base;
// the base shows through around it.
func composeOverlay(base, overlayView string, width int) string {
	baseLines := strings.Split(base, "\n")
	overlayLines := strings.Split(overlayView, "\n")

	for i, overlayLine := range overlayLines {
		if i >= len(baseLines) {
			break
		}

		plain := ansi.Strip(overlayLine)
		if strings.TrimSpace(plain) == "" {
			continue
		}

		// Visible span of the overlay line, in display columns.
		startCol := len(plain) - len(strings.TrimLeft(plain, " "))
		endCol := ansi.StringWidth(strings.TrimRight(plain, " "))

		content := ansi.Cut(overlayLine, startCol, endCol)

		baseLine := baseLines[i]
		if w := ansi.StringWidth(ansi.Strip(baseLine)); w < width {
			baseLine += strings.Repeat(" ", width-w)
		}

		result := ansi.Cut(baseLine, 0, startCol) + content
		if endCol < width {
			result += ansi.Cut(baseLine, endCol, width)
		}
		baseLines[i] = result
	}

	return strings.Join(baseLines, "\n")
}
