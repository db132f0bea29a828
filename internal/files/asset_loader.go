package files

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"

	"captionfit/internal/fonts"
)

type AssetLoader struct {
	fontPath       string
	backgroundPath string
}

// NewAssetLoader takes the font file (empty for the embedded font) and an
// optional background image.
func NewAssetLoader(fontPath, backgroundPath string) *AssetLoader {
	return &AssetLoader{
		fontPath:       fontPath,
		backgroundPath: backgroundPath,
	}
}

func OpenImage(path string) (image.Image, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return img, nil
}

func (l *AssetLoader) Load() (*Assets, error) {
	provider, err := fonts.Open(l.fontPath)
	if err != nil {
		return nil, err
	}

	assets := &Assets{Font: provider}
	if l.backgroundPath == "" {
		return assets, nil
	}

	bg, err := OpenImage(l.backgroundPath)
	if err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}
	assets.Background = bg
	return assets, nil
}
