package services

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"log"
	"os"
	"path/filepath"
	"strings"

	"captionfit/internal/config"
	"captionfit/internal/fit"
	"captionfit/internal/fonts"
	imgproc "captionfit/internal/image"
	"captionfit/internal/layout"
)

// Request is one caption to render. A nil Background with no Photo gives a
// transparent PNG; anything else is a JPEG.
type Request struct {
	Text        string
	Name        string
	Width       int
	Height      int
	Margin      int
	MinFontSize int
	MaxFontSize int
	TextColor   color.Color
	Background  color.Color
	Photo       image.Image
}

func (r Request) options() fit.Options {
	return fit.Options{
		CanvasWidth:  r.Width,
		CanvasHeight: r.Height,
		MinSize:      r.MinFontSize,
		MaxSize:      r.MaxFontSize,
		Margin:       r.Margin,
	}
}

type Output struct {
	Path        string
	Format      imgproc.Format
	FontSize    int
	Lines       []string
	Utilization float64
	Clipped     bool
}

type CaptionService struct {
	fonts     *fonts.Provider
	renderer  *imgproc.Renderer
	outputDir string
	overflow  string
	logger    *log.Logger
}

func NewCaptionService(
	provider *fonts.Provider,
	renderer *imgproc.Renderer,
	outputDir string,
	overflow string,
	logger *log.Logger,
) (*CaptionService, error) {
	if logger == nil {
		logger = log.Default()
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	logger.Printf("caption service using font %s, writing to %s", provider.Source(), outputDir)
	return &CaptionService{
		fonts:     provider,
		renderer:  renderer,
		outputDir: outputDir,
		overflow:  overflow,
		logger:    logger,
	}, nil
}

// NewRequest fills a request from the render section of the config.
func NewRequest(cfg config.RenderConfig, text string) (Request, error) {
	fg, err := config.ParseColor(cfg.TextColor)
	if err != nil {
		return Request{}, fmt.Errorf("%w: text color: %v", fit.ErrInvalidConfig, err)
	}
	if fg == nil {
		return Request{}, fmt.Errorf("%w: text color cannot be %s", fit.ErrInvalidConfig, config.None)
	}
	bg, err := config.ParseColor(cfg.BackgroundColor)
	if err != nil {
		return Request{}, fmt.Errorf("%w: background color: %v", fit.ErrInvalidConfig, err)
	}

	return Request{
		Text:        text,
		Name:        "caption",
		Width:       cfg.Width,
		Height:      cfg.Height,
		Margin:      cfg.Margin,
		MinFontSize: cfg.MinFontSize,
		MaxFontSize: cfg.MaxFontSize,
		TextColor:   fg,
		Background:  bg,
	}, nil
}

// Layout runs the font size search for req. With the clip overflow policy a
// caption that fits nowhere is laid out at the minimum size instead of
// failing.
func (s *CaptionService) Layout(req Request) (*fit.Result[*fonts.Face], bool, error) {
	opts := req.options()

	res, err := fit.FindBestFit(req.Text, s.fonts.Face, opts)
	if err == nil {
		return res, false, nil
	}
	if !errors.Is(err, fit.ErrNoFittingSize) || s.overflow != config.OverflowClip {
		return nil, false, err
	}

	s.logger.Printf("[WARN]: %v, clipping %q at size %d", err, req.Name, opts.MinSize)
	res, err = fit.Fallback(req.Text, s.fonts.Face, opts)
	if err != nil {
		return nil, false, err
	}
	return res, true, nil
}

func (s *CaptionService) Compose(req Request) (image.Image, *Output, error) {
	if req.TextColor == nil {
		req.TextColor = color.White
	}

	res, clipped, err := s.Layout(req)
	if err != nil {
		return nil, nil, err
	}

	canvas := imgproc.Canvas{
		Width:      req.Width,
		Height:     req.Height,
		Background: req.Background,
		Photo:      req.Photo,
	}

	placements := layout.Place(res.Block, req.Width, req.Height)
	cmds := make([]imgproc.DrawCommand, 0, len(placements))
	lines := make([]string, 0, len(placements))
	for _, p := range placements {
		cmds = append(cmds, imgproc.DrawCommand{
			X:     p.X,
			Y:     p.Baseline,
			Text:  p.Text,
			Face:  res.Face.FontFace(),
			Color: req.TextColor,
		})
		lines = append(lines, p.Text)
	}

	img, err := s.renderer.Render(canvas, cmds)
	if err != nil {
		return nil, nil, fmt.Errorf("render: %w", err)
	}

	return img, &Output{
		Format:      canvas.Format(),
		FontSize:    res.Size,
		Lines:       lines,
		Utilization: res.Utilization,
		Clipped:     clipped,
	}, nil
}

// Render composes req and writes it to the output directory as
// <name>.png or <name>.jpg.
func (s *CaptionService) Render(ctx context.Context, req Request) (*Output, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	img, out, err := s.Compose(req)
	if err != nil {
		return nil, err
	}

	out.Path = filepath.Join(s.outputDir, outputName(req.Name)+out.Format.Extension())
	if err := imgproc.Save(out.Path, img, out.Format); err != nil {
		return nil, fmt.Errorf("save output: %w", err)
	}

	s.logger.Printf("rendered %s at size %d (%d lines, %.0f%% of canvas)",
		out.Path, out.FontSize, len(out.Lines), out.Utilization*100)
	return out, nil
}

func outputName(name string) string {
	name = strings.TrimSpace(filepath.Base(name))
	if name == "" || name == "." || name == string(filepath.Separator) {
		return "caption"
	}
	return name
}
