package graphics

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/png"
	"strings"
)

// Kitty graphics protocol escape framing.
const (
	escStart = "\x1b_G"
	escEnd   = "\x1b\\"
)

// Kitty protocol requires chunked transmission; each chunk carries at
// most 4096 bytes of base64 payload.
const kittyChunkSize = 4096

// KittyProtocol implements Protocol using the Kitty graphics protocol.
// Images are transmitted to terminal memory once and then placed by ID.
type KittyProtocol struct {
	cellW int
	cellH int
}

// NewKittyProtocol creates a KittyProtocol, querying the terminal for
// cell pixel dimensions.
func NewKittyProtocol() *KittyProtocol {
	w, h := getCellSize()
	return &KittyProtocol{cellW: w, cellH: h}
}

func (k *KittyProtocol) Prepare(img image.Image, id uint32) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("encode png: %w", err)
	}
	return transmitPNG(buf.Bytes(), id), nil
}

// transmitPNG builds the chunked transmission command for PNG data.
// a=t transmits without displaying; f=100 marks PNG; q=2 suppresses
// terminal responses that would corrupt the TUI input stream.
func transmitPNG(pngData []byte, id uint32) string {
	encoded := base64.StdEncoding.EncodeToString(pngData)

	var sb strings.Builder
	for i := 0; i < len(encoded); i += kittyChunkSize {
		end := min(i+kittyChunkSize, len(encoded))
		more := 0
		if end < len(encoded) {
			more = 1
		}

		sb.WriteString(escStart)
		if i == 0 {
			fmt.Fprintf(&sb, "a=t,f=100,i=%d,q=2,m=%d;", id, more)
		} else {
			fmt.Fprintf(&sb, "m=%d;", more)
		}
		sb.WriteString(encoded[i:end])
		sb.WriteString(escEnd)
	}

	return sb.String()
}

// Place displays a previously transmitted image. A fixed placement ID
// (p=1) makes repositioning replace the previous placement instead of
// leaving ghost images behind.
func (k *KittyProtocol) Place(id uint32, row, col, width, height int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\x1b[s\x1b[%d;%dH", row, col)
	fmt.Fprintf(&sb, "%sa=p,i=%d,p=1,c=%d,r=%d,C=1,q=2;%s", escStart, id, width, height, escEnd)
	sb.WriteString("\x1b[u")
	return sb.String()
}

// Delete removes a transmitted image and clears all its placements.
func (k *KittyProtocol) Delete(id uint32) string {
	return fmt.Sprintf("%sa=d,d=i,i=%d,q=2;%s", escStart, id, escEnd)
}

func (k *KittyProtocol) CellSize() (int, int) {
	return k.cellW, k.cellH
}

func blankBlock(width, height int) string {
	line := strings.Repeat(" ", width)
	lines := make([]string, height)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}
