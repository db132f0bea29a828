package layout

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

// monoFace advances every rune by the same fraction of the size.
type monoFace struct {
	size    int
	advance float64
}

func (f monoFace) Size() int { return f.size }

func (f monoFace) Measure(text string) float64 {
	return float64(utf8.RuneCountInString(text)) * f.advance * float64(f.size)
}

func (f monoFace) Metrics() (float64, float64) {
	return float64(f.size) * 0.8, float64(f.size) * 0.2
}

func TestMeasure(t *testing.T) {
	face := monoFace{size: 10, advance: 1}
	d := Measure("abcd", face)
	if d.Width != 40 {
		t.Fatalf("width = %v, want 40", d.Width)
	}
	if d.Ascent != 8 || d.Descent != 2 || d.LineHeight != 10 {
		t.Fatalf("unexpected vertical metrics %+v", d)
	}
}

func TestWrap(t *testing.T) {
	face := monoFace{size: 10, advance: 1}

	tests := []struct {
		name     string
		text     string
		maxWidth float64
		want     []string
	}{
		{"single line", "hello world", 110, []string{"hello world"}},
		{"exact fit", "hello world", 110, []string{"hello world"}},
		{"breaks", "hello world", 109, []string{"hello", "world"}},
		{"greedy", "aa bb cc dd", 50, []string{"aa bb", "cc dd"}},
		{"collapses whitespace", "  aa\t\tbb \n cc  ", 80, []string{"aa bb cc"}},
		{"empty", "   ", 100, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines, err := Wrap(tt.text, face, tt.maxWidth)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			var got []string
			for _, l := range lines {
				got = append(got, l.Text)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapFailsOnOverlongWord(t *testing.T) {
	face := monoFace{size: 10, advance: 1}

	for _, text := range []string{"abcdefghijk", "ab abcdefghijk cd"} {
		_, err := Wrap(text, face, 100)
		if !errors.Is(err, ErrWrapFailure) {
			t.Fatalf("%q: expected ErrWrapFailure, got %v", text, err)
		}
		var we *WrapError
		if !errors.As(err, &we) || we.Word != "abcdefghijk" || we.Size != 10 {
			t.Fatalf("%q: unexpected wrap error %#v", text, err)
		}
	}
}

func TestWrapLooseKeepsOverlongWord(t *testing.T) {
	face := monoFace{size: 10, advance: 1}
	lines := WrapLoose("ab abcdefghijk cd", face, 100)
	if len(lines) != 3 || lines[1].Text != "abcdefghijk" {
		t.Fatalf("unexpected lines %+v", lines)
	}
}

func TestWrapPreservesWords(t *testing.T) {
	face := monoFace{size: 12, advance: 0.6}
	text := "The quick brown fox jumps over the lazy dog while the cat watches from a distance"

	for _, maxWidth := range []float64{60, 100, 200, 1000} {
		lines, err := Wrap(text, face, maxWidth)
		if err != nil {
			t.Fatalf("maxWidth %v: %v", maxWidth, err)
		}

		var words []string
		for _, l := range lines {
			if face.Measure(l.Text) > maxWidth {
				t.Errorf("maxWidth %v: line %q too wide", maxWidth, l.Text)
			}
			if l.Text != strings.Join(l.Words, " ") {
				t.Errorf("line text %q does not match words %q", l.Text, l.Words)
			}
			words = append(words, l.Words...)
		}
		if !reflect.DeepEqual(words, strings.Fields(text)) {
			t.Fatalf("maxWidth %v: words not preserved: %q", maxWidth, words)
		}
	}
}

func TestWrapIsDeterministic(t *testing.T) {
	face := monoFace{size: 20, advance: 0.55}
	text := "repeat after me the same words every time"

	a, errA := Wrap(text, face, 150)
	b, errB := Wrap(text, face, 150)
	if errA != nil || errB != nil {
		t.Fatalf("unexpected errors: %v, %v", errA, errB)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("wrap not deterministic:\n%v\n%v", a, b)
	}
}

func TestMeasureBlock(t *testing.T) {
	face := monoFace{size: 20, advance: 1}

	block := MeasureBlock([]Line{newLine([]string{"ab"}), newLine([]string{"abcd"}), newLine([]string{"a"})}, face)
	if block.Width != 80 {
		t.Errorf("width = %v, want 80", block.Width)
	}
	if block.Spacing != 6 {
		t.Errorf("spacing = %v, want 6", block.Spacing)
	}
	// 3 lines of 20px plus 2 gaps of 6px
	if block.Height != 72 {
		t.Errorf("height = %v, want 72", block.Height)
	}
	if len(block.Dims) != 3 || block.Dims[1].Width != 80 {
		t.Errorf("unexpected per-line dims %+v", block.Dims)
	}

	one := MeasureBlock([]Line{newLine([]string{"ab"})}, face)
	if one.Height != 20 {
		t.Errorf("single line height = %v, want 20", one.Height)
	}

	empty := MeasureBlock(nil, face)
	if empty.Height != 0 || empty.Width != 0 {
		t.Errorf("empty block = %+v", empty)
	}
}

func TestSpacingFloors(t *testing.T) {
	for size, want := range map[int]float64{10: 3, 11: 3, 13: 3, 14: 4, 120: 36} {
		if got := Spacing(size); got != want {
			t.Errorf("Spacing(%d) = %v, want %v", size, got, want)
		}
	}
}

func TestPlace(t *testing.T) {
	face := monoFace{size: 10, advance: 1}
	block := MeasureBlock([]Line{newLine([]string{"abcd"}), newLine([]string{"ab"})}, face)

	got := Place(block, 100, 50)
	// height 10 + 3 + 10 = 23, start at floor(27/2) = 13
	want := []Placement{
		{Text: "abcd", X: 30, Y: 13, Baseline: 21},
		{Text: "ab", X: 40, Y: 26, Baseline: 34},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestPlaceClampsTop(t *testing.T) {
	face := monoFace{size: 40, advance: 1}
	lines := WrapLoose("a b c d", face, 10)
	block := MeasureBlock(lines, face)

	got := Place(block, 100, 50)
	if got[0].Y != 0 {
		t.Fatalf("first line starts at %v, want 0", got[0].Y)
	}
}
