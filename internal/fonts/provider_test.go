package fonts

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"golang.org/x/image/font/gofont/goregular"
)

func TestOpenEmbedded(t *testing.T) {
	p, err := Open("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.Source() != "goregular" {
		t.Errorf("source = %q", p.Source())
	}
}

func TestOpenFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "font.ttf")
	if err := os.WriteFile(path, goregular.TTF, 0644); err != nil {
		t.Fatal(err)
	}

	p, err := Open(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := p.Face(24); err != nil {
		t.Fatalf("face: %v", err)
	}
}

func TestOpenErrors(t *testing.T) {
	_, err := Open(filepath.Join(t.TempDir(), "missing.ttf"))
	if !errors.Is(err, ErrFontLoad) || !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("missing file: got %v", err)
	}

	_, err = FromBytes("garbage", []byte("not a font"))
	if !errors.Is(err, ErrFontLoad) {
		t.Fatalf("garbage bytes: got %v", err)
	}
	var le *LoadError
	if !errors.As(err, &le) || le.Source != "garbage" {
		t.Fatalf("expected *LoadError, got %#v", err)
	}
}

func TestFaceRejectsNonPositiveSize(t *testing.T) {
	p, err := Open("")
	if err != nil {
		t.Fatal(err)
	}
	for _, size := range []int{0, -5} {
		if _, err := p.Face(size); !errors.Is(err, ErrFontLoad) {
			t.Errorf("size %d: expected ErrFontLoad, got %v", size, err)
		}
	}
}

func TestFaceMetricsScaleWithSize(t *testing.T) {
	p, err := Open("")
	if err != nil {
		t.Fatal(err)
	}

	small, err := p.Face(20)
	if err != nil {
		t.Fatal(err)
	}
	large, err := p.Face(80)
	if err != nil {
		t.Fatal(err)
	}

	if small.Size() != 20 || large.Size() != 80 {
		t.Fatalf("sizes %d, %d", small.Size(), large.Size())
	}
	if !(large.Measure("Hello") > small.Measure("Hello")) {
		t.Errorf("width did not grow with size: %v vs %v", small.Measure("Hello"), large.Measure("Hello"))
	}

	sa, sd := small.Metrics()
	la, ld := large.Metrics()
	if sa <= 0 || sd <= 0 || la <= sa || ld < sd {
		t.Errorf("unexpected metrics small=(%v,%v) large=(%v,%v)", sa, sd, la, ld)
	}
	if small.FontFace() == nil {
		t.Error("nil font face")
	}
}

func TestMeasureIsAdditiveForSpaces(t *testing.T) {
	p, err := Open("")
	if err != nil {
		t.Fatal(err)
	}
	f, err := p.Face(40)
	if err != nil {
		t.Fatal(err)
	}

	// Hinted advances are whole pixels, so joining with a space adds up.
	joined := f.Measure("ab cd")
	parts := f.Measure("ab") + f.Measure(" ") + f.Measure("cd")
	if joined > parts+2 || joined < parts-2 {
		t.Errorf("joined %v vs parts %v", joined, parts)
	}
	if f.Measure("") != 0 {
		t.Errorf("empty string width %v", f.Measure(""))
	}
}
