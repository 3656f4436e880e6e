package graphics

import (
	"image"
	"sync"
	"sync/atomic"

	"github.com/nfnt/resize"

	"github.com/GreyStinger/riv/internal/fit"
)

// Global image ID counter shared by all renderers so IDs never collide
// in terminal memory.
var nextImageID uint32

func getNextImageID() uint32 {
	return atomic.AddUint32(&nextImageID, 1)
}

// frameKey identifies a prepared frame. A frame must be re-transmitted
// whenever the path, the scaled size, or the user rotation changes.
type frameKey struct {
	path     string
	width    int
	height   int
	rotation fit.Rotation
}

// Renderer transmits fitted frames to the terminal and places them by
// cell coordinates. Transmission happens once per frame key; placement
// is cheap and can run on every redraw.
type Renderer struct {
	mu    sync.RWMutex
	proto Protocol

	currentKey frameKey
	currentID  uint32
	prepared   bool

	// Placement size in cells, derived from the scaled pixel size.
	cols int
	rows int
}

// NewRenderer creates a renderer on top of a detected protocol.
func NewRenderer(proto Protocol) *Renderer {
	return &Renderer{proto: proto}
}

// Prepare encodes and transmits the frame if it differs from the one
// currently held. pixels are the canonical decoded image; rotation is
// applied here, then the result is resized to the transform's scaled
// extent. Returns the terminal command to write once, which may include
// a delete for the previous frame.
func (r *Renderer) Prepare(path string, pixels *image.RGBA, tr fit.Transform, rot fit.Rotation) (string, error) {
	if path == "" || pixels == nil {
		return "", nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := frameKey{path: path, width: tr.Width, height: tr.Height, rotation: rot}
	if r.prepared && r.currentKey == key {
		return "", nil
	}

	var deleteCmd string
	if r.currentID > 0 {
		deleteCmd = r.proto.Delete(r.currentID)
	}

	rotated := Rotate(pixels, rot)

	var resized image.Image = rotated
	b := rotated.Bounds()
	if b.Dx() != tr.Width || b.Dy() != tr.Height {
		resized = resize.Resize(uint(tr.Width), uint(tr.Height), rotated, resize.Lanczos3)
	}

	id := getNextImageID()
	cmd, err := r.proto.Prepare(resized, id)
	if err != nil {
		r.currentID = 0
		r.prepared = false
		return deleteCmd, err
	}

	cellW, cellH := r.proto.CellSize()
	r.currentKey = key
	r.currentID = id
	r.prepared = true
	r.cols = ceilDiv(tr.Width, cellW)
	r.rows = ceilDiv(tr.Height, cellH)

	return deleteCmd + cmd, nil
}

// Place returns the command to display the prepared frame. originRow
// and originCol are the 1-based terminal coordinates of the image
// area's top-left cell; the transform's pixel offsets shift the frame
// within that area.
func (r *Renderer) Place(originRow, originCol int, tr fit.Transform) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.currentID == 0 {
		return ""
	}

	cellW, cellH := r.proto.CellSize()
	row := originRow + offsetCells(tr.OffsetY, cellH)
	col := originCol + offsetCells(tr.OffsetX, cellW)

	return r.proto.Place(r.currentID, row, col, r.cols, r.rows)
}

// HasImage reports whether a frame is currently prepared.
func (r *Renderer) HasImage() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.currentID > 0
}

// Size returns the prepared frame's extent in cells.
func (r *Renderer) Size() (cols, rows int) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.cols, r.rows
}

// Clear removes the current frame from terminal memory and forgets it.
func (r *Renderer) Clear() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var cmd string
	if r.currentID > 0 {
		cmd = r.proto.Delete(r.currentID)
	}

	r.currentKey = frameKey{}
	r.currentID = 0
	r.prepared = false
	r.cols = 0
	r.rows = 0

	return cmd
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return 0
	}
	return (a + b - 1) / b
}

// offsetCells converts a pixel offset to whole cells, truncating toward
// zero. Negative offsets (panned overflow) clamp to zero because the
// protocol cannot place above or left of the area origin.
func offsetCells(px, cell int) int {
	if px <= 0 || cell <= 0 {
		return 0
	}
	return px / cell
}
