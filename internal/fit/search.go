// Package fit picks the font size that lets a caption fill the most of a
// canvas without spilling over its margins.
package fit

import (
	"errors"

	"captionfit/internal/layout"
)

const DefaultMargin = 20

type Options struct {
	CanvasWidth  int
	CanvasHeight int
	MinSize      int
	MaxSize      int
	Margin       int
}

// Validate rejects options that cannot produce a usable region.
func (o Options) Validate() error {
	switch {
	case o.CanvasWidth <= 0 || o.CanvasHeight <= 0:
		return invalid("canvas %dx%d must be positive", o.CanvasWidth, o.CanvasHeight)
	case o.Margin < 0:
		return invalid("margin %d is negative", o.Margin)
	case o.AvailableWidth() <= 0 || o.AvailableHeight() <= 0:
		return invalid("margin %d leaves no room on a %dx%d canvas", o.Margin, o.CanvasWidth, o.CanvasHeight)
	case o.MinSize <= 0:
		return invalid("min font size %d must be positive", o.MinSize)
	case o.MinSize > o.MaxSize:
		return invalid("min font size %d exceeds max %d", o.MinSize, o.MaxSize)
	}
	return nil
}

func (o Options) AvailableWidth() int  { return o.CanvasWidth - 2*o.Margin }
func (o Options) AvailableHeight() int { return o.CanvasHeight - 2*o.Margin }
func (o Options) AvailableArea() float64 {
	return float64(o.AvailableWidth()) * float64(o.AvailableHeight())
}

// FaceSource builds the face for one pixel size.
type FaceSource[F layout.Face] func(size int) (F, error)

// Result pairs the winning block with the exact face it was measured with.
type Result[F layout.Face] struct {
	Size        int
	Face        F
	Block       layout.Block
	Utilization float64
}

// FindBestFit sweeps every size from MaxSize down to MinSize and keeps the
// one whose block covers the largest share of the available region. Ties go
// to the larger size. Sizes where a word does not fit on a line are skipped.
//
// When nothing fits the error is a *NoFitError. An error from the face
// source aborts the sweep and is returned unchanged.
func FindBestFit[F layout.Face](text string, src FaceSource[F], opts Options) (*Result[F], error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	maxWidth := float64(opts.AvailableWidth())
	maxHeight := float64(opts.AvailableHeight())
	area := opts.AvailableArea()

	var (
		best            *Result[F]
		bestUtilization float64
	)
	for size := opts.MaxSize; size >= opts.MinSize; size-- {
		face, err := src(size)
		if err != nil {
			return nil, err
		}

		lines, err := layout.Wrap(text, face, maxWidth)
		if errors.Is(err, layout.ErrWrapFailure) {
			continue
		}
		if err != nil {
			return nil, err
		}

		block := layout.MeasureBlock(lines, face)
		if block.Height > maxHeight || block.Width > maxWidth {
			continue
		}

		utilization := block.Width * block.Height / area
		if utilization > bestUtilization {
			bestUtilization = utilization
			best = &Result[F]{
				Size:        size,
				Face:        face,
				Block:       block,
				Utilization: utilization,
			}
		}
	}

	if best == nil {
		return nil, &NoFitError{MinSize: opts.MinSize, MaxSize: opts.MaxSize}
	}
	return best, nil
}

// Fallback lays the text out at MinSize without any fit guarantee, letting
// overlong words and lines spill past the margins.
func Fallback[F layout.Face](text string, src FaceSource[F], opts Options) (*Result[F], error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	face, err := src(opts.MinSize)
	if err != nil {
		return nil, err
	}

	block := layout.MeasureBlock(layout.WrapLoose(text, face, float64(opts.AvailableWidth())), face)
	return &Result[F]{
		Size:        opts.MinSize,
		Face:        face,
		Block:       block,
		Utilization: block.Width * block.Height / opts.AvailableArea(),
	}, nil
}
