package layout

import (
	"errors"
	"fmt"
)

var ErrWrapFailure = errors.New("word wider than line")

// WrapError reports the word that could not be placed at a given size.
type WrapError struct {
	Word     string
	Width    float64
	MaxWidth float64
	Size     int
}

func (e *WrapError) Error() string {
	return fmt.Sprintf("wrap at size %d: %q is %.1fpx wide, max %.1fpx", e.Size, e.Word, e.Width, e.MaxWidth)
}

func (e *WrapError) Unwrap() error {
	return ErrWrapFailure
}
