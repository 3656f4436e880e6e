// Package graphics renders pixel buffers inline in the terminal using
// the Kitty graphics protocol, with a Sixel fallback.
package graphics

import "image"

// Protocol abstracts the terminal image display protocol.
type Protocol interface {
	// Prepare encodes the image and returns any one-time terminal command.
	// Kitty: transmits to terminal memory, returns escape sequences.
	// Sixel: encodes and caches internally, returns empty string.
	Prepare(img image.Image, id uint32) (string, error)

	// Place returns the escape sequence to display the image at (row, col),
	// 1-based terminal coordinates, sized width x height cells.
	Place(id uint32, row, col, width, height int) string

	// Delete returns the escape sequence to remove the image.
	Delete(id uint32) string

	// CellSize returns the terminal cell dimensions in pixels.
	CellSize() (w, h int)
}

// Placeholder returns blank space for the image area so lipgloss can
// measure the layout without seeing raw escape sequences.
func Placeholder(width, height int) string {
	if width <= 0 || height <= 0 {
		return ""
	}
	return blankBlock(width, height)
}
