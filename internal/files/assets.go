package files

import (
	"image"

	"captionfit/internal/fonts"
)

type Assets struct {
	Font       *fonts.Provider
	Background image.Image
}
