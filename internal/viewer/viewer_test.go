package viewer

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/png"
	"testing"
	"time"

	"github.com/GreyStinger/riv/internal/cache"
	"github.com/GreyStinger/riv/internal/decode"
	"github.com/GreyStinger/riv/internal/fit"
	"github.com/GreyStinger/riv/internal/source"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

// newTestViewer builds a viewer over an in-memory file set. Paths whose
// name starts with "bad" serve unparseable bytes.
func newTestViewer(t *testing.T, names ...string) *Viewer {
	t.Helper()

	items := make([]source.Item, len(names))
	files := make(map[string][]byte, len(names))
	for i, n := range names {
		items[i] = source.Item{Path: "/pics/" + n, Name: n}
		if len(n) >= 3 && n[:3] == "bad" {
			files[items[i].Path] = []byte("not an image")
		} else {
			files[items[i].Path] = pngBytes(t, 20, 10)
		}
	}

	c := cache.New(cache.Config{
		Items:   items,
		Decoder: decode.New(0),
		ReadFile: func(path string) ([]byte, error) {
			return files[path], nil
		},
		Ahead:    2,
		Behind:   2,
		Workers:  2,
		Viewport: fit.Viewport{Width: 800, Height: 600, Zoom: 1},
		Limits:   fit.DefaultLimits,
	})
	t.Cleanup(c.Close)

	return New(items, c, fit.Viewport{Width: 800, Height: 600, Zoom: 1}, DefaultLimits, 0)
}

func testCtx(t *testing.T) context.Context {
	t.Helper()
	c, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return c
}

func TestNew_EmptySequence(t *testing.T) {
	v := newTestViewer(t)

	if v.State() != StateEmpty {
		t.Errorf("State() = %v, want StateEmpty", v.State())
	}
	if v.Current() != nil {
		t.Error("Current() should be nil on empty sequence")
	}

	// All navigation is a no-op.
	v.Next()
	v.Prev()
	v.First()
	v.Last()
	if v.Cursor() != 0 {
		t.Errorf("Cursor() = %d, want 0", v.Cursor())
	}

	frame, err := v.Frame(testCtx(t))
	if err != nil {
		t.Fatalf("Frame() error: %v", err)
	}
	if frame != nil {
		t.Error("Frame() should be nil on empty sequence")
	}
	if v.State() != StateEmpty {
		t.Errorf("State() = %v, want StateEmpty", v.State())
	}
}

func TestNew_StartsViewing(t *testing.T) {
	v := newTestViewer(t, "a.png", "b.png")

	if v.State() != StateViewing {
		t.Errorf("State() = %v, want StateViewing", v.State())
	}
	if got := v.Current(); got == nil || got.Name != "a.png" {
		t.Errorf("Current() = %v, want a.png", got)
	}
}

func TestNavigation_Wraparound(t *testing.T) {
	v := newTestViewer(t, "a.png", "b.png", "c.png")

	v.Prev()
	if v.Cursor() != 2 {
		t.Errorf("Cursor() after Prev from 0 = %d, want 2", v.Cursor())
	}

	v.Next()
	if v.Cursor() != 0 {
		t.Errorf("Cursor() after Next from 2 = %d, want 0", v.Cursor())
	}

	// Balanced moves return to start.
	for range 6 {
		v.Next()
	}
	for range 3 {
		v.Prev()
	}
	if v.Cursor() != 0 {
		t.Errorf("Cursor() = %d after balanced moves, want 0", v.Cursor())
	}
}

func TestFirstLast(t *testing.T) {
	v := newTestViewer(t, "a.png", "b.png", "c.png", "d.png")

	v.Last()
	if v.Cursor() != 3 {
		t.Errorf("Cursor() after Last = %d, want 3", v.Cursor())
	}
	v.First()
	if v.Cursor() != 0 {
		t.Errorf("Cursor() after First = %d, want 0", v.Cursor())
	}
}

func TestZoom_Clamped(t *testing.T) {
	v := newTestViewer(t, "a.png")

	for range 50 {
		v.ZoomIn()
	}
	if got := v.Viewport().Zoom; got != DefaultLimits.MaxZoom {
		t.Errorf("Zoom = %v, want clamp at %v", got, DefaultLimits.MaxZoom)
	}

	for range 100 {
		v.ZoomOut()
	}
	if got := v.Viewport().Zoom; got != DefaultLimits.MinZoom {
		t.Errorf("Zoom = %v, want clamp at %v", got, DefaultLimits.MinZoom)
	}

	v.ZoomReset()
	if got := v.Viewport().Zoom; got != 1 {
		t.Errorf("Zoom after reset = %v, want 1", got)
	}
}

func TestRotate_Cycles(t *testing.T) {
	v := newTestViewer(t, "a.png")

	want := []fit.Rotation{fit.Rotate90, fit.Rotate180, fit.Rotate270, fit.Rotate0}
	for _, r := range want {
		v.RotateCW()
		if got := v.Viewport().Rotation; got != r {
			t.Errorf("Rotation = %v, want %v", got, r)
		}
	}
}

func TestPan_ResetsOnMove(t *testing.T) {
	v := newTestViewer(t, "a.png", "b.png")

	v.Pan(-40, -20)
	vp := v.Viewport()
	if vp.PanX != -40 || vp.PanY != -20 {
		t.Errorf("pan = (%d, %d), want (-40, -20)", vp.PanX, vp.PanY)
	}

	v.Next()
	vp = v.Viewport()
	if vp.PanX != 0 || vp.PanY != 0 {
		t.Errorf("pan after move = (%d, %d), want (0, 0)", vp.PanX, vp.PanY)
	}
}

func TestResize_UpdatesViewport(t *testing.T) {
	v := newTestViewer(t, "a.png")

	v.Resize(1600, 1200)
	vp := v.Viewport()
	if vp.Width != 1600 || vp.Height != 1200 {
		t.Errorf("viewport = %dx%d, want 1600x1200", vp.Width, vp.Height)
	}
}

func TestFrame_ErrorStateAndRecovery(t *testing.T) {
	v := newTestViewer(t, "a.png", "bad.png", "c.png")

	frame, err := v.Frame(testCtx(t))
	if err != nil || frame == nil {
		t.Fatalf("Frame() = %v, %v; want frame", frame, err)
	}
	if v.State() != StateViewing {
		t.Errorf("State() = %v, want StateViewing", v.State())
	}

	// Viewing -> Error on a failed path.
	v.Next()
	_, err = v.Frame(testCtx(t))
	if err == nil {
		t.Fatal("Frame() should fail on bad.png")
	}
	var derr *decode.Error
	if !errors.As(err, &derr) {
		t.Fatalf("error type = %T, want *decode.Error", err)
	}
	if v.State() != StateError {
		t.Errorf("State() = %v, want StateError", v.State())
	}
	if v.Err() == nil {
		t.Error("Err() should report the decode failure")
	}

	// Error -> Viewing on a good path.
	v.Next()
	frame, err = v.Frame(testCtx(t))
	if err != nil || frame == nil {
		t.Fatalf("Frame() = %v, %v; want recovery", frame, err)
	}
	if v.State() != StateViewing {
		t.Errorf("State() = %v, want StateViewing", v.State())
	}
	if v.Err() != nil {
		t.Errorf("Err() = %v, want nil after recovery", v.Err())
	}
}

func TestConcurrentFrameAndNavigation(t *testing.T) {
	// Frame runs on its own goroutine in the UI; navigation and state
	// reads must stay safe alongside it (run with -race).
	v := newTestViewer(t, "a.png", "b.png", "c.png")

	done := make(chan struct{})
	go func() {
		defer close(done)
		for range 100 {
			_, _ = v.Frame(testCtx(t))
		}
	}()

	for range 100 {
		v.Next()
		_ = v.State()
		_ = v.Err()
		_ = v.Viewport()
		_ = v.Current()
		v.ZoomIn()
		v.Pan(-1, 0)
		v.Resize(800, 600)
	}

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatal("Frame goroutine did not finish")
	}
	if v.Cursor() < 0 || v.Cursor() >= v.Len() {
		t.Errorf("Cursor() = %d out of range", v.Cursor())
	}
}

func TestFrame_TransformMatchesViewport(t *testing.T) {
	v := newTestViewer(t, "a.png") // 20x10 image

	frame, err := v.Frame(testCtx(t))
	if err != nil {
		t.Fatal(err)
	}

	want := fit.Fit(20, 10, v.Viewport(), fit.DefaultLimits)
	if frame.Transform != want {
		t.Errorf("Transform = %+v, want %+v", frame.Transform, want)
	}
}
