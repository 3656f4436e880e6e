// Package fit computes the scale and offset mapping an image onto a
// viewport. Everything here is pure: identical inputs always produce
// identical outputs, which the cache relies on for lazy invalidation.
package fit

import "math"

// Rotation is a quarter-turn rotation applied before fitting.
type Rotation int

const (
	Rotate0 Rotation = iota
	Rotate90
	Rotate180
	Rotate270
)

// Degrees returns the rotation in degrees.
func (r Rotation) Degrees() int {
	return int(r) * 90
}

// Next returns the rotation advanced clockwise by a quarter turn.
func (r Rotation) Next() Rotation {
	return (r + 1) % 4
}

// Viewport describes the target display region and the user's view state.
// Width and Height are in pixels. Zoom multiplies the base fit scale.
// PanX/PanY request a pan origin in viewport pixels; Fit clamps them so
// the image can never fully leave the viewport.
type Viewport struct {
	Width    int
	Height   int
	Zoom     float64
	Rotation Rotation
	PanX     int
	PanY     int
}

// Limits bounds the computed scale.
type Limits struct {
	MinScale float64 // never scale to zero
	MaxScale float64 // avoid runaway upscaling
	Upscale  bool    // allow base fit scale above 1:1
}

// DefaultLimits are sane bounds for terminal-sized viewports.
var DefaultLimits = Limits{
	MinScale: 0.01,
	MaxScale: 16,
	Upscale:  false,
}

// Transform maps image pixels onto viewport pixels.
type Transform struct {
	Scale   float64
	OffsetX int
	OffsetY int
	Width   int // scaled width after rotation
	Height  int // scaled height after rotation
}

// Fit computes the transform for an image of imgW x imgH pixels within
// vp. The image dimensions are the canonical (orientation-applied) ones;
// vp.Rotation swaps them at 90 and 270 degrees before the scale is
// computed.
func Fit(imgW, imgH int, vp Viewport, lim Limits) Transform {
	w, h := imgW, imgH
	if vp.Rotation == Rotate90 || vp.Rotation == Rotate270 {
		w, h = h, w
	}
	if w <= 0 || h <= 0 || vp.Width <= 0 || vp.Height <= 0 {
		return Transform{Scale: clampScale(1, lim), Width: max(w, 1), Height: max(h, 1)}
	}

	base := math.Min(float64(vp.Width)/float64(w), float64(vp.Height)/float64(h))
	if !lim.Upscale && base > 1 {
		base = 1
	}

	zoom := vp.Zoom
	if zoom <= 0 {
		zoom = 1
	}

	scale := clampScale(base*zoom, lim)

	scaledW := max(int(math.Round(float64(w)*scale)), 1)
	scaledH := max(int(math.Round(float64(h)*scale)), 1)

	return Transform{
		Scale:   scale,
		OffsetX: offset(scaledW, vp.Width, vp.PanX),
		OffsetY: offset(scaledH, vp.Height, vp.PanY),
		Width:   scaledW,
		Height:  scaledH,
	}
}

// offset centers the scaled extent within the viewport extent, or, when
// the image overflows, clamps the requested pan origin so some part of
// the image always stays visible.
func offset(scaled, viewport, pan int) int {
	if scaled <= viewport {
		return (viewport - scaled) / 2
	}
	// Pannable origin: ranges from fully panned right/down (0) to fully
	// panned left/up (viewport - scaled, negative).
	return clampInt(pan, viewport-scaled, 0)
}

func clampScale(s float64, lim Limits) float64 {
	minScale := lim.MinScale
	if minScale <= 0 {
		minScale = DefaultLimits.MinScale
	}
	maxScale := lim.MaxScale
	if maxScale <= 0 {
		maxScale = DefaultLimits.MaxScale
	}
	return math.Min(math.Max(s, minScale), maxScale)
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
