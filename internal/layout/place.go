package layout

import "math"

// Placement is where one line goes on the canvas. X and Y are the top-left
// corner of the line box; Baseline is Y plus the ascent.
type Placement struct {
	Text     string
	X        float64
	Y        float64
	Baseline float64
}

// Place centers the block on a canvasWidth x canvasHeight canvas. The block
// never starts above the top edge, even when it is taller than the canvas.
func Place(block Block, canvasWidth, canvasHeight int) []Placement {
	y := math.Max(0, math.Floor((float64(canvasHeight)-block.Height)/2))

	out := make([]Placement, 0, len(block.Lines))
	for i, line := range block.Lines {
		d := block.Dims[i]
		out = append(out, Placement{
			Text:     line.Text,
			X:        math.Floor((float64(canvasWidth) - d.Width) / 2),
			Y:        y,
			Baseline: y + d.Ascent,
		})
		y += d.LineHeight + block.Spacing
	}
	return out
}
