package layout

import (
	"math"
	"strings"
)

// LineSpacingRatio is the gap between consecutive lines as a fraction of the
// font size, floored to whole pixels.
const LineSpacingRatio = 0.3

// Face is the metrics side of a font at one pixel size.
type Face interface {
	Size() int
	Measure(text string) float64
	Metrics() (ascent, descent float64)
}

type Dims struct {
	Width      float64
	LineHeight float64
	Ascent     float64
	Descent    float64
}

// Line is a run of words joined by single spaces.
type Line struct {
	Text  string
	Words []string
}

type Block struct {
	Lines   []Line
	Dims    []Dims
	Width   float64
	Height  float64
	Spacing float64
}

func Measure(text string, face Face) Dims {
	ascent, descent := face.Metrics()
	return Dims{
		Width:      face.Measure(text),
		LineHeight: ascent + descent,
		Ascent:     ascent,
		Descent:    descent,
	}
}

// Wrap greedily packs the whitespace separated words of text into lines no
// wider than maxWidth. It fails with a *WrapError when a word does not fit
// on a line of its own.
func Wrap(text string, face Face, maxWidth float64) ([]Line, error) {
	return wrap(text, face, maxWidth, true)
}

// WrapLoose is Wrap without the failure: an overlong word gets a line to
// itself and overflows it.
func WrapLoose(text string, face Face, maxWidth float64) []Line {
	lines, _ := wrap(text, face, maxWidth, false)
	return lines
}

func wrap(text string, face Face, maxWidth float64, strict bool) ([]Line, error) {
	words := strings.Fields(text)
	space := face.Measure(" ")

	var (
		lines   []Line
		current []string
		width   float64
	)

	for _, word := range words {
		w := face.Measure(word)

		if len(current) == 0 {
			if strict && w > maxWidth {
				return nil, &WrapError{Word: word, Width: w, MaxWidth: maxWidth, Size: face.Size()}
			}
			current = []string{word}
			width = w
			continue
		}

		if width+space+w <= maxWidth {
			current = append(current, word)
			width += space + w
			continue
		}

		lines = append(lines, newLine(current))
		if strict && w > maxWidth {
			return nil, &WrapError{Word: word, Width: w, MaxWidth: maxWidth, Size: face.Size()}
		}
		current = []string{word}
		width = w
	}

	if len(current) > 0 {
		lines = append(lines, newLine(current))
	}
	return lines, nil
}

func newLine(words []string) Line {
	return Line{Text: strings.Join(words, " "), Words: words}
}

// MeasureBlock stacks lines top to bottom with the size-derived spacing
// between them.
func MeasureBlock(lines []Line, face Face) Block {
	block := Block{
		Lines:   lines,
		Dims:    make([]Dims, 0, len(lines)),
		Spacing: Spacing(face.Size()),
	}

	for _, line := range lines {
		d := Measure(line.Text, face)
		block.Width = math.Max(block.Width, d.Width)
		block.Height += d.LineHeight
		block.Dims = append(block.Dims, d)
	}

	if n := len(lines); n > 1 {
		block.Height += float64(n-1) * block.Spacing
	}
	return block
}

func Spacing(size int) float64 {
	return math.Floor(float64(size) * LineSpacingRatio)
}
