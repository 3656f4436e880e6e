package graphics

import (
	"bytes"
	"fmt"
	"image"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/mattn/go-sixel"
)

// placeCounter makes every Place output unique. Bubble Tea's diff
// renderer skips lines it believes unchanged, which would leave the
// sixel data partially erased when only surrounding text changed.
var placeCounter uint64

// SixelProtocol implements Protocol using Sixel graphics. Sixel has no
// terminal-side image memory, so encoded data is cached here and
// re-emitted on every placement.
type SixelProtocol struct {
	mu     sync.RWMutex
	images map[uint32]string
	cellW  int
	cellH  int
}

// NewSixelProtocol creates a SixelProtocol, querying the terminal for
// cell pixel dimensions.
func NewSixelProtocol() *SixelProtocol {
	w, h := getCellSize()
	return &SixelProtocol{
		images: make(map[uint32]string),
		cellW:  w,
		cellH:  h,
	}
}

func (s *SixelProtocol) Prepare(img image.Image, id uint32) (string, error) {
	var buf bytes.Buffer
	enc := sixel.NewEncoder(&buf)
	enc.Dither = true

	if err := enc.Encode(img); err != nil {
		return "", fmt.Errorf("encode sixel: %w", err)
	}

	s.mu.Lock()
	s.images[id] = buf.String()
	s.mu.Unlock()

	return "", nil
}

func (s *SixelProtocol) Place(id uint32, row, col, _, _ int) string {
	s.mu.RLock()
	data, ok := s.images[id]
	s.mu.RUnlock()

	if !ok {
		return ""
	}

	// Save cursor, move, emit sixel data, restore. The no-op SGR carrying
	// the counter keeps the output unique per call.
	seq := atomic.AddUint64(&placeCounter, 1)
	var sb strings.Builder
	fmt.Fprintf(&sb, "\x1b[s\x1b[%d;%dH", row, col)
	sb.WriteString(data)
	fmt.Fprintf(&sb, "\x1b[u\x1b[%dm\x1b[0m", seq%255+1)

	return sb.String()
}

func (s *SixelProtocol) Delete(id uint32) string {
	s.mu.Lock()
	delete(s.images, id)
	s.mu.Unlock()

	return ""
}

func (s *SixelProtocol) CellSize() (int, int) {
	return s.cellW, s.cellH
}
