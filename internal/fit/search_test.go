package fit

import (
	"errors"
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"

	"captionfit/internal/layout"
)

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

func monoSource(advance float64) FaceSource[monoFace] {
	return func(size int) (monoFace, error) {
		return monoFace{size: size, advance: advance}, nil
	}
}

// flatFace measures the same at every size.
type flatFace struct{ size int }

func (f flatFace) Size() int                   { return f.size }
func (f flatFace) Measure(text string) float64 { return float64(len(text)) * 5 }
func (f flatFace) Metrics() (float64, float64) { return 8, 2 }

func defaultOptions() Options {
	return Options{CanvasWidth: 800, CanvasHeight: 400, MinSize: 10, MaxSize: 120, Margin: DefaultMargin}
}

func TestFindBestFitHelloWorld(t *testing.T) {
	res, err := FindBestFit("Hello world", monoSource(0.5), defaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Size != 120 {
		t.Errorf("size = %d, want 120", res.Size)
	}
	if len(res.Block.Lines) != 1 || res.Block.Lines[0].Text != "Hello world" {
		t.Errorf("unexpected lines %+v", res.Block.Lines)
	}
	if res.Face.Size() != res.Size {
		t.Errorf("face size %d does not match result size %d", res.Face.Size(), res.Size)
	}
	if res.Utilization <= 0 || res.Utilization > 1 {
		t.Errorf("utilization %v out of range", res.Utilization)
	}
}

func TestFindBestFitOverlongWord(t *testing.T) {
	text := strings.Repeat("x", 500)

	_, err := FindBestFit(text, monoSource(0.6), defaultOptions())
	if !errors.Is(err, ErrNoFittingSize) {
		t.Fatalf("expected ErrNoFittingSize, got %v", err)
	}
	var nf *NoFitError
	if !errors.As(err, &nf) || nf.MinSize != 10 || nf.MaxSize != 120 {
		t.Fatalf("unexpected error %#v", err)
	}
}

func TestFindBestFitEmptyText(t *testing.T) {
	_, err := FindBestFit("  ", monoSource(0.6), defaultOptions())
	if !errors.Is(err, ErrNoFittingSize) {
		t.Fatalf("expected ErrNoFittingSize, got %v", err)
	}
}

func TestFindBestFitTieGoesToLargerSize(t *testing.T) {
	src := func(size int) (flatFace, error) { return flatFace{size: size}, nil }
	opts := Options{CanvasWidth: 400, CanvasHeight: 200, MinSize: 30, MaxSize: 60, Margin: 20}

	res, err := FindBestFit("tie break", src, opts)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Size != 60 {
		t.Fatalf("size = %d, want 60", res.Size)
	}
}

func TestFindBestFitMatchesExhaustiveMaximum(t *testing.T) {
	texts := []string{
		"Programming is the art of building digital solutions.",
		"Software development takes creativity patience and dedication to solve complex problems.",
		"Artificial intelligence is changing the way we interact with technology creating new possibilities and challenges.",
		"Short",
	}
	opts := defaultOptions()

	for _, text := range texts {
		res, err := FindBestFit(text, monoSource(0.62), opts)
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", text, err)
		}

		bestSize, bestUtil := 0, 0.0
		for size := opts.MaxSize; size >= opts.MinSize; size-- {
			face := monoFace{size: size, advance: 0.62}
			lines, err := layout.Wrap(text, face, float64(opts.AvailableWidth()))
			if err != nil {
				continue
			}
			block := layout.MeasureBlock(lines, face)
			if block.Width > float64(opts.AvailableWidth()) || block.Height > float64(opts.AvailableHeight()) {
				continue
			}
			if u := block.Width * block.Height / opts.AvailableArea(); u > bestUtil {
				bestSize, bestUtil = size, u
			}
		}

		if res.Size != bestSize {
			t.Errorf("%q: size = %d, exhaustive best %d", text, res.Size, bestSize)
		}
		if res.Block.Width > float64(opts.AvailableWidth()) || res.Block.Height > float64(opts.AvailableHeight()) {
			t.Errorf("%q: block %vx%v exceeds available region", text, res.Block.Width, res.Block.Height)
		}

		var words []string
		for _, l := range res.Block.Lines {
			words = append(words, l.Words...)
		}
		if !reflect.DeepEqual(words, strings.Fields(text)) {
			t.Errorf("%q: words not preserved", text)
		}
	}
}

func TestFindBestFitKeepsWinningFace(t *testing.T) {
	built := map[int]*monoFace{}
	src := func(size int) (*monoFace, error) {
		f := &monoFace{size: size, advance: 0.5}
		built[size] = f
		return f, nil
	}

	res, err := FindBestFit("same instance", src, defaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Face != built[res.Size] {
		t.Fatal("result face is not the instance used for measuring")
	}
}

func TestFindBestFitPropagatesFaceErrors(t *testing.T) {
	boom := errors.New("boom")
	src := func(size int) (monoFace, error) {
		if size == 100 {
			return monoFace{}, boom
		}
		return monoFace{size: size, advance: 0.5}, nil
	}

	_, err := FindBestFit("Hello world", src, defaultOptions())
	if err != boom {
		t.Fatalf("expected the face error unchanged, got %v", err)
	}

	opts := defaultOptions()
	opts.MinSize = 100
	if _, err := Fallback("Hello world", src, opts); err != boom {
		t.Fatalf("fallback: expected the face error unchanged, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		opts Options
	}{
		{"zero width", Options{CanvasWidth: 0, CanvasHeight: 400, MinSize: 10, MaxSize: 20}},
		{"negative height", Options{CanvasWidth: 800, CanvasHeight: -1, MinSize: 10, MaxSize: 20}},
		{"negative margin", Options{CanvasWidth: 800, CanvasHeight: 400, MinSize: 10, MaxSize: 20, Margin: -1}},
		{"margin eats canvas", Options{CanvasWidth: 800, CanvasHeight: 40, MinSize: 10, MaxSize: 20, Margin: 20}},
		{"zero min size", Options{CanvasWidth: 800, CanvasHeight: 400, MinSize: 0, MaxSize: 20}},
		{"min above max", Options{CanvasWidth: 800, CanvasHeight: 400, MinSize: 30, MaxSize: 20}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.opts.Validate(); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
			calls := 0
			src := func(size int) (monoFace, error) {
				calls++
				return monoFace{size: size, advance: 0.5}, nil
			}
			if _, err := FindBestFit("text", src, tt.opts); !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("FindBestFit: expected ErrInvalidConfig, got %v", err)
			}
			if calls != 0 {
				t.Fatalf("face source called %d times before validation", calls)
			}
		})
	}

	if err := defaultOptions().Validate(); err != nil {
		t.Fatalf("default options rejected: %v", err)
	}
}

func TestFallback(t *testing.T) {
	text := "tiny " + strings.Repeat("x", 200)

	res, err := Fallback(text, monoSource(0.6), defaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Size != 10 || res.Face.Size() != 10 {
		t.Errorf("size = %d, want 10", res.Size)
	}
	if len(res.Block.Lines) != 2 {
		t.Fatalf("expected 2 lines, got %+v", res.Block.Lines)
	}
	if res.Block.Width <= float64(defaultOptions().AvailableWidth()) {
		t.Errorf("expected overflowing width, got %v", res.Block.Width)
	}
}
