//go:build !unix

package graphics

// getCellSize falls back to the common 8x16 cell on platforms without
// TIOCGWINSZ.
func getCellSize() (cellW, cellH int) {
	return 8, 16
}
