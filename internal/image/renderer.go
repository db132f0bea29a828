package image

import (
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"os"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
)

type Format int

const (
	FormatPNG Format = iota
	FormatJPEG
)

func (f Format) Extension() string {
	if f == FormatJPEG {
		return ".jpg"
	}
	return ".png"
}

// Canvas describes the surface text is drawn on. A nil Background with no
// Photo leaves the canvas fully transparent.
type Canvas struct {
	Width      int
	Height     int
	Background color.Color
	Photo      image.Image
}

// Format is PNG for transparent canvases and JPEG for opaque ones.
func (c Canvas) Format() Format {
	if c.Background == nil && c.Photo == nil {
		return FormatPNG
	}
	return FormatJPEG
}

// DrawCommand draws Text with its baseline starting at (X, Y).
type DrawCommand struct {
	X     float64
	Y     float64
	Text  string
	Face  font.Face
	Color color.Color
}

type Renderer struct {
	processor *Processor
}

func NewRenderer(processor *Processor) *Renderer {
	if processor == nil {
		processor = &Processor{}
	}
	return &Renderer{processor: processor}
}

func (r *Renderer) Render(c Canvas, cmds []DrawCommand) (image.Image, error) {
	if c.Width <= 0 || c.Height <= 0 {
		return nil, fmt.Errorf("canvas %dx%d must be positive", c.Width, c.Height)
	}

	dc := gg.NewContext(c.Width, c.Height)

	if c.Background != nil {
		dc.SetColor(c.Background)
		dc.Clear()
	}
	if c.Photo != nil {
		dc.DrawImage(r.processor.CoverResize(c.Photo, c.Width, c.Height), 0, 0)
	}

	for _, cmd := range cmds {
		if cmd.Face == nil {
			return nil, fmt.Errorf("draw %q: no font face", cmd.Text)
		}
		dc.SetFontFace(cmd.Face)
		dc.SetColor(cmd.Color)
		dc.DrawString(cmd.Text, cmd.X, cmd.Y)
	}

	return dc.Image(), nil
}

func Encode(w io.Writer, img image.Image, format Format) error {
	if format == FormatJPEG {
		return jpeg.Encode(w, img, &jpeg.Options{Quality: 100})
	}
	return png.Encode(w, img)
}

func Save(path string, img image.Image, format Format) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := Encode(f, img, format); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}
