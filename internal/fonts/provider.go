// Package fonts loads a TrueType/OpenType font once and hands out faces at
// pixel sizes for measuring and drawing.
package fonts

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

var ErrFontLoad = errors.New("font load failed")

type LoadError struct {
	Source string
	Size   int
	Err    error
}

func (e *LoadError) Error() string {
	if e.Size != 0 {
		return fmt.Sprintf("load font %s at size %d: %v", e.Source, e.Size, e.Err)
	}
	return fmt.Sprintf("load font %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() []error {
	return []error{ErrFontLoad, e.Err}
}

type Provider struct {
	source string
	parsed *opentype.Font
}

// Open parses the font at path. An empty path selects the embedded Go
// Regular font.
func Open(path string) (*Provider, error) {
	if path == "" {
		return FromBytes("goregular", goregular.TTF)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Source: path, Err: err}
	}
	return FromBytes(path, data)
}

func FromBytes(source string, data []byte) (*Provider, error) {
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, &LoadError{Source: source, Err: err}
	}
	return &Provider{source: source, parsed: parsed}, nil
}

func (p *Provider) Source() string {
	return p.source
}

// Face returns a face where one point is one pixel.
func (p *Provider) Face(size int) (*Face, error) {
	if size <= 0 {
		return nil, &LoadError{Source: p.source, Size: size, Err: errors.New("size must be positive")}
	}

	face, err := opentype.NewFace(p.parsed, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, &LoadError{Source: p.source, Size: size, Err: err}
	}

	m := face.Metrics()
	return &Face{
		size:    size,
		face:    face,
		ascent:  float64(m.Ascent.Ceil()),
		descent: float64(m.Descent.Ceil()),
	}, nil
}

// Face is a font at one size. It satisfies layout.Face and carries the
// font.Face the renderer draws with.
type Face struct {
	size    int
	face    font.Face
	ascent  float64
	descent float64
}

func (f *Face) Size() int {
	return f.size
}

func (f *Face) Measure(text string) float64 {
	return fixedToFloat(font.MeasureString(f.face, text))
}

func (f *Face) Metrics() (ascent, descent float64) {
	return f.ascent, f.descent
}

func (f *Face) FontFace() font.Face {
	return f.face
}

func fixedToFloat(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
