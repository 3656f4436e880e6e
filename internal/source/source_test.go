//nolint:goconst // test cases intentionally repeat strings for readability
package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestIsImageFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{"photo.jpg", true},
		{"photo.JPG", true},
		{"photo.jpeg", true},
		{"photo.png", true},
		{"anim.gif", true},
		{"pic.webp", true},
		{"scan.tiff", true},
		{"scan.tif", true},
		{"old.bmp", true},
		{"notes.txt", false},
		{"song.mp3", false},
		{"noext", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := IsImageFile(tt.path); got != tt.want {
			t.Errorf("IsImageFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestNaturalCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"plain less", "a.png", "b.png", -1},
		{"equal", "a.png", "a.png", 0},
		{"digit run numeric", "img2.png", "img10.png", -1},
		{"digit run numeric reversed", "img10.png", "img2.png", 1},
		{"case insensitive", "B.png", "a.png", 1},
		{"case insensitive equal", "IMG1.png", "img1.png", 0},
		{"leading zeros equal value", "img002.png", "img2.png", 0},
		{"mixed digit and alpha", "img2a.png", "img2b.png", -1},
		{"prefix shorter first", "img.png", "img2.png", -1},
		{"multiple runs", "d1s2.png", "d1s10.png", -1},
		{"big numbers beyond int64", "f99999999999999999999.png", "f100000000000000000000.png", -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := naturalCompare(tt.a, tt.b); got != tt.want {
				t.Errorf("naturalCompare(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestSort_NaturalOrder(t *testing.T) {
	items := []Item{
		{Name: "img10.png", Path: "/p/img10.png"},
		{Name: "IMG3.png", Path: "/p/IMG3.png"},
		{Name: "img2.png", Path: "/p/img2.png"},
		{Name: "a.jpg", Path: "/p/a.jpg"},
	}

	Sort(items)

	want := []string{"a.jpg", "img2.png", "IMG3.png", "img10.png"}
	for i, name := range want {
		if items[i].Name != name {
			t.Errorf("items[%d].Name = %q, want %q", i, items[i].Name, name)
		}
	}
}

func TestList_Directory(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"img10.png", "img2.png", "b.jpg", "notes.txt"} {
		writeFile(t, filepath.Join(dir, name))
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.png"), 0o755); err != nil {
		t.Fatal(err)
	}

	items, start, err := List(dir)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}

	if start != 0 {
		t.Errorf("start = %d, want 0", start)
	}

	want := []string{"b.jpg", "img2.png", "img10.png"}
	if len(items) != len(want) {
		t.Fatalf("len(items) = %d, want %d", len(items), len(want))
	}
	for i, name := range want {
		if items[i].Name != name {
			t.Errorf("items[%d].Name = %q, want %q", i, items[i].Name, name)
		}
	}
}

func TestList_SingleFile(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.png", "b.png", "c.png"} {
		writeFile(t, filepath.Join(dir, name))
	}

	items, start, err := List(filepath.Join(dir, "b.png"))
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}

	if len(items) != 3 {
		t.Fatalf("len(items) = %d, want 3", len(items))
	}
	if start != 1 {
		t.Errorf("start = %d, want 1", start)
	}
	if items[start].Name != "b.png" {
		t.Errorf("items[start].Name = %q, want b.png", items[start].Name)
	}
}

func TestList_MissingRoot(t *testing.T) {
	_, _, err := List(filepath.Join(t.TempDir(), "does-not-exist"))
	if err == nil {
		t.Fatal("List() should fail on missing root")
	}
}

func TestList_EmptyDirectory(t *testing.T) {
	items, start, err := List(t.TempDir())
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("len(items) = %d, want 0", len(items))
	}
	if start != 0 {
		t.Errorf("start = %d, want 0", start)
	}
}

func TestNextPrev_Wraparound(t *testing.T) {
	tests := []struct {
		name string
		i, n int
		next int
		prev int
	}{
		{"middle", 1, 3, 2, 0},
		{"last wraps to first", 2, 3, 0, 1},
		{"first wraps to last", 0, 3, 1, 2},
		{"single item", 0, 1, 0, 0},
		{"empty", 0, 0, -1, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Next(tt.i, tt.n); got != tt.next {
				t.Errorf("Next(%d, %d) = %d, want %d", tt.i, tt.n, got, tt.next)
			}
			if got := Prev(tt.i, tt.n); got != tt.prev {
				t.Errorf("Prev(%d, %d) = %d, want %d", tt.i, tt.n, got, tt.prev)
			}
		})
	}
}

func TestNextPrev_RoundTrip(t *testing.T) {
	// Any sequence of moves summing to a multiple of n returns to start.
	const n = 7
	i := 3
	for range n * 4 {
		i = Next(i, n)
	}
	for range n * 2 {
		i = Prev(i, n)
	}
	if i != 3 {
		t.Errorf("cursor = %d after balanced moves, want 3", i)
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b, n, want int
	}{
		{0, 0, 5, 0},
		{0, 1, 5, 1},
		{0, 4, 5, 1}, // wraps
		{1, 4, 6, 3},
		{0, 3, 6, 3},
		{0, 0, 0, 0},
	}

	for _, tt := range tests {
		if got := Distance(tt.a, tt.b, tt.n); got != tt.want {
			t.Errorf("Distance(%d, %d, %d) = %d, want %d", tt.a, tt.b, tt.n, got, tt.want)
		}
	}
}

func writeFile(t *testing.T, path string) {
	t.Helper()
	if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
}
