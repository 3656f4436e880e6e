// Package viewer owns the navigation state of a browsing session: the
// cursor, the viewport and the zoom/rotation/pan state. Methods are
// safe for concurrent use: the event loop navigates while frame
// fetches run on their own goroutines.
package viewer

import (
	"context"
	"errors"
	"sync"

	"github.com/GreyStinger/riv/internal/cache"
	"github.com/GreyStinger/riv/internal/decode"
	"github.com/GreyStinger/riv/internal/fit"
	"github.com/GreyStinger/riv/internal/source"
)

// State is the navigation state.
type State int

const (
	// StateEmpty means the sequence has no images; navigation is a no-op.
	StateEmpty State = iota
	// StateViewing is normal browsing.
	StateViewing
	// StateError means the current image failed to decode.
	StateError
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateViewing:
		return "viewing"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

const zoomStep = 1.25

// Limits bounds the user-adjustable view state.
type Limits struct {
	MinZoom float64
	MaxZoom float64
}

// DefaultLimits mirror the config defaults.
var DefaultLimits = Limits{MinZoom: 0.125, MaxZoom: 8}

// Viewer is the navigation state machine.
type Viewer struct {
	items  []source.Item
	cache  *cache.Cache
	limits Limits

	mu     sync.Mutex
	cursor int
	vp     fit.Viewport
	state  State
	err    error
}

// New creates a Viewer positioned at start. The initial state is Empty
// when the sequence has no images, Viewing otherwise.
func New(items []source.Item, c *cache.Cache, vp fit.Viewport, lim Limits, start int) *Viewer {
	if vp.Zoom <= 0 {
		vp.Zoom = 1
	}
	if lim.MinZoom <= 0 {
		lim.MinZoom = DefaultLimits.MinZoom
	}
	if lim.MaxZoom <= 0 {
		lim.MaxZoom = DefaultLimits.MaxZoom
	}

	v := &Viewer{
		items:  items,
		cache:  c,
		limits: lim,
		vp:     vp,
		state:  StateEmpty,
	}
	if len(items) > 0 {
		if start < 0 || start >= len(items) {
			start = 0
		}
		v.cursor = start
		v.state = StateViewing
		c.Advance(start)
	}
	return v
}

// State returns the current navigation state.
func (v *Viewer) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// Err returns the decode error behind StateError, nil otherwise.
func (v *Viewer) Err() error {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.err
}

// Cursor returns the current index into the sequence.
func (v *Viewer) Cursor() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.cursor
}

// Len returns the sequence length.
func (v *Viewer) Len() int { return len(v.items) }

// Viewport returns the current viewport.
func (v *Viewer) Viewport() fit.Viewport {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.vp
}

// Current returns the item at the cursor, or nil on an empty sequence.
func (v *Viewer) Current() *source.Item {
	if len(v.items) == 0 {
		return nil
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	return &v.items[v.cursor]
}

// Next moves the cursor forward with wraparound. No-op when empty.
func (v *Viewer) Next() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.moveTo(source.Next(v.cursor, len(v.items)))
}

// Prev moves the cursor backward with wraparound. No-op when empty.
func (v *Viewer) Prev() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.moveTo(source.Prev(v.cursor, len(v.items)))
}

// First jumps to the start of the sequence.
func (v *Viewer) First() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.items) > 0 {
		v.moveTo(0)
	}
}

// Last jumps to the end of the sequence.
func (v *Viewer) Last() {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.items) > 0 {
		v.moveTo(len(v.items) - 1)
	}
}

// moveTo assumes v.mu is held.
func (v *Viewer) moveTo(idx int) {
	if idx < 0 || v.state == StateEmpty {
		return
	}
	v.cursor = idx
	// Pan resets on every move; zoom and rotation persist across images.
	if v.vp.PanX != 0 || v.vp.PanY != 0 {
		v.vp.PanX, v.vp.PanY = 0, 0
		v.cache.SetViewport(v.vp)
	}
	v.cache.Advance(idx)
}

// ZoomIn increases zoom by one step, clamped to the configured maximum.
func (v *Viewer) ZoomIn() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.setZoom(v.vp.Zoom * zoomStep)
}

// ZoomOut decreases zoom by one step, clamped to the configured minimum.
func (v *Viewer) ZoomOut() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.setZoom(v.vp.Zoom / zoomStep)
}

// ZoomReset restores 1:1 fit and clears the pan origin.
func (v *Viewer) ZoomReset() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.vp.Zoom = 1
	v.vp.PanX, v.vp.PanY = 0, 0
	v.cache.SetViewport(v.vp)
}

// setZoom assumes v.mu is held.
func (v *Viewer) setZoom(z float64) {
	if z < v.limits.MinZoom {
		z = v.limits.MinZoom
	}
	if z > v.limits.MaxZoom {
		z = v.limits.MaxZoom
	}
	if z == v.vp.Zoom {
		return
	}
	v.vp.Zoom = z
	v.cache.SetViewport(v.vp)
}

// RotateCW cycles the rotation clockwise by 90 degrees.
func (v *Viewer) RotateCW() {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.vp.Rotation = v.vp.Rotation.Next()
	v.vp.PanX, v.vp.PanY = 0, 0
	v.cache.SetViewport(v.vp)
}

// Pan shifts the pan origin. The fit engine clamps it so the image never
// fully leaves the viewport.
func (v *Viewer) Pan(dx, dy int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.vp.PanX += dx
	v.vp.PanY += dy
	v.cache.SetViewport(v.vp)
}

// Resize updates the viewport dimensions; cached fits are invalidated,
// pixel buffers are not.
func (v *Viewer) Resize(width, height int) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if width == v.vp.Width && height == v.vp.Height {
		return
	}
	v.vp.Width = width
	v.vp.Height = height
	v.cache.SetViewport(v.vp)
}

// Frame returns the fitted frame at the cursor and settles the state:
// Viewing on success, Error when this path's decode failed, Empty on an
// empty sequence. It blocks only on a cold cache.
func (v *Viewer) Frame(ctx context.Context) (*cache.Frame, error) {
	if len(v.items) == 0 {
		v.mu.Lock()
		v.state = StateEmpty
		v.mu.Unlock()
		return nil, nil
	}

	// Current may block on a cold cache; the lock is not held across it
	// so navigation stays responsive.
	frame, err := v.cache.Current(ctx)

	v.mu.Lock()
	defer v.mu.Unlock()
	switch {
	case err == nil && frame == nil:
		v.state = StateEmpty
		return nil, nil
	case err != nil:
		var derr *decode.Error
		if errors.As(err, &derr) {
			v.state = StateError
			v.err = err
			return nil, err
		}
		// Cancellation or shutdown; not a navigation state change.
		return nil, err
	default:
		v.state = StateViewing
		v.err = nil
		return frame, nil
	}
}
