package render

import (
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "clean string unchanged",
			input: "IMG_0042.jpg",
			want:  "IMG_0042.jpg",
		},
		{
			name:  "control characters removed",
			input: "photo\x00\x01.png",
			want:  "photo.png",
		},
		{
			name:  "tab preserved",
			input: "a\tb",
			want:  "a\tb",
		},
		{
			name:  "newline removed",
			input: "a\nb",
			want:  "ab",
		},
		{
			name:  "invalid utf8 dropped",
			input: "a\xffb",
			want:  "ab",
		},
		{
			name:  "del byte removed",
			input: "a\x7fb",
			want:  "ab",
		},
		{
			name:  "nbsp becomes space",
			input: "a b",
			want:  "a b",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Sanitize(tt.input)
			if got != tt.want {
				t.Errorf("Sanitize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{
			name:     "no truncation needed",
			input:    "cat.png",
			maxWidth: 10,
			want:     "cat.png",
		},
		{
			name:     "exact fit",
			input:    "hello",
			maxWidth: 5,
			want:     "hello",
		},
		{
			name:     "truncation with ellipsis",
			input:    "very-long-filename.jpg",
			maxWidth: 8,
			want:     "very-lo…",
		},
		{
			name:     "empty string",
			input:    "",
			maxWidth: 10,
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Truncate(tt.input, tt.maxWidth)
			if got != tt.want {
				t.Errorf("Truncate(%q, %d) = %q, want %q", tt.input, tt.maxWidth, got, tt.want)
			}
		})
	}
}

func TestTruncateMiddle(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxWidth int
		want     string
	}{
		{
			name:     "fits unchanged",
			input:    "cat.png",
			maxWidth: 10,
			want:     "cat.png",
		},
		{
			name:     "keeps both ends",
			input:    "vacation-day-0042.jpg",
			maxWidth: 13,
			want:     "vacati…42.jpg",
		},
		{
			name:     "width one",
			input:    "abcdef",
			maxWidth: 1,
			want:     "a",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateMiddle(tt.input, tt.maxWidth)
			if got != tt.want {
				t.Errorf("TruncateMiddle(%q, %d) = %q, want %q", tt.input, tt.maxWidth, got, tt.want)
			}
			if w := runewidth.StringWidth(got); w > tt.maxWidth {
				t.Errorf("TruncateMiddle(%q, %d) is %d cells wide", tt.input, tt.maxWidth, w)
			}
		})
	}
}

func TestTruncateMiddle_WideRunes(t *testing.T) {
	got := TruncateMiddle("写真ファイル0042.png", 10)
	if w := runewidth.StringWidth(got); w > 10 {
		t.Errorf("result %q is %d cells wide, want <= 10", got, w)
	}
	if !strings.Contains(got, "…") {
		t.Errorf("result %q should contain an ellipsis", got)
	}
}

func TestTruncateAndPad(t *testing.T) {
	tests := []struct {
		name  string
		input string
		width int
	}{
		{"short input padded", "abc", 8},
		{"long input truncated", "abcdefghij", 6},
		{"exact width", "abcdef", 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateAndPad(tt.input, tt.width)
			if w := runewidth.StringWidth(got); w != tt.width {
				t.Errorf("TruncateAndPad(%q, %d) is %d cells wide", tt.input, tt.width, w)
			}
		})
	}
}

func TestRow(t *testing.T) {
	got := Row("1/10", "50%", 12)
	want := "1/10     50%"
	if got != want {
		t.Errorf("Row() = %q, want %q", got, want)
	}

	// Overflowing content still gets a one-space gap.
	got = Row("left-side", "right-side", 5)
	if !strings.Contains(got, "left-side right-side") {
		t.Errorf("Row() overflow = %q, want single-space gap", got)
	}
}

func TestSeparator(t *testing.T) {
	got := Separator(4)
	if got != "────" {
		t.Errorf("Separator(4) = %q", got)
	}
}

func TestEmptyLine(t *testing.T) {
	if got := EmptyLine(3); got != "   " {
		t.Errorf("EmptyLine(3) = %q", got)
	}
}
