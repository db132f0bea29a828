package image

import (
	"image"
	"image/draw"

	"github.com/nfnt/resize"
)

type Processor struct{}

// CropToAspect cuts the largest centered region of img with the aspect ratio
// w:h.
func (p *Processor) CropToAspect(img image.Image, w, h int) image.Image {
	b := img.Bounds()
	srcW, srcH := b.Dx(), b.Dy()

	if srcW*h == srcH*w {
		return img
	}

	var crop image.Rectangle
	if srcW*h > srcH*w {
		cw := srcH * w / h
		offset := (srcW - cw) / 2
		crop = image.Rect(b.Min.X+offset, b.Min.Y, b.Min.X+offset+cw, b.Max.Y)
	} else {
		ch := srcW * h / w
		offset := (srcH - ch) / 2
		crop = image.Rect(b.Min.X, b.Min.Y+offset, b.Max.X, b.Min.Y+offset+ch)
	}

	rgba := image.NewRGBA(image.Rect(0, 0, crop.Dx(), crop.Dy()))
	draw.Draw(rgba, rgba.Bounds(), img, crop.Min, draw.Src)
	return rgba
}

func (p *Processor) Resize(img image.Image, w, h int) image.Image {
	return resize.Resize(uint(w), uint(h), img, resize.Lanczos3)
}

// CoverResize scales img to exactly w x h, cropping whatever sticks out.
func (p *Processor) CoverResize(img image.Image, w, h int) image.Image {
	cropped := p.CropToAspect(img, w, h)
	if b := cropped.Bounds(); b.Dx() == w && b.Dy() == h {
		return cropped
	}
	return p.Resize(cropped, w, h)
}
