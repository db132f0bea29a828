package bot

import (
	"path/filepath"
	"strings"
)

func isPNG(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".png")
}
