package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"captionfit/internal/config"
	"captionfit/internal/files"
	"captionfit/internal/image"
	"captionfit/internal/services"
)

func main() {
	logger := log.Default()
	cfg, err := config.Load(logger)
	if err != nil {
		logger.Fatal(err)
	}

	var (
		text       = flag.String("text", "", "caption to render")
		name       = flag.String("name", "caption", "output file name without extension")
		jobsFile   = flag.String("jobs", "", "YAML file with a list of captions to render")
		background = flag.String("background", "", "optional background image")
	)
	flag.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "output directory")
	flag.StringVar(&cfg.FontFile, "font", cfg.FontFile, "TrueType/OpenType font file, empty for the built-in font")
	flag.IntVar(&cfg.Render.Width, "width", cfg.Render.Width, "canvas width")
	flag.IntVar(&cfg.Render.Height, "height", cfg.Render.Height, "canvas height")
	flag.IntVar(&cfg.Render.Margin, "margin", cfg.Render.Margin, "margin on each side")
	flag.IntVar(&cfg.Render.MinFontSize, "min-size", cfg.Render.MinFontSize, "smallest font size to try")
	flag.IntVar(&cfg.Render.MaxFontSize, "max-size", cfg.Render.MaxFontSize, "largest font size to try")
	flag.StringVar(&cfg.Render.TextColor, "color", cfg.Render.TextColor, "text color: r,g,b or #rrggbb")
	flag.StringVar(&cfg.Render.BackgroundColor, "bg", cfg.Render.BackgroundColor, "background color: r,g,b, #rrggbb or none")
	flag.StringVar(&cfg.Overflow, "overflow", cfg.Overflow, "what to do when nothing fits: fail or clip")
	flag.IntVar(&cfg.Workers, "workers", cfg.Workers, "parallel renders for -jobs")
	flag.Parse()

	if err := config.ValidateOverflow(cfg.Overflow); err != nil {
		logger.Fatal(err)
	}

	if *text == "" && *jobsFile == "" {
		fmt.Fprintln(os.Stderr, "usage: render -text \"caption\" | -jobs captions.yaml [flags]")
		flag.PrintDefaults()
		os.Exit(2)
	}

	assets, err := files.NewAssetLoader(cfg.FontFile, *background).Load()
	if err != nil {
		logger.Fatal(err)
	}

	captionService, err := services.NewCaptionService(
		assets.Font,
		image.NewRenderer(&image.Processor{}),
		cfg.OutputDir,
		cfg.Overflow,
		logger,
	)
	if err != nil {
		logger.Fatal(err)
	}

	template, err := services.NewRequest(cfg.Render, "")
	if err != nil {
		logger.Fatal(err)
	}
	template.Photo = assets.Background

	reqs := []services.Request{withText(template, *text, *name)}
	if *jobsFile != "" {
		reqs, err = jobRequests(*jobsFile, template)
		if err != nil {
			logger.Fatal(err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	failed := 0
	for _, r := range services.NewBatchRenderer(captionService, cfg.Workers, logger).RenderAll(ctx, reqs) {
		if r.Err != nil {
			failed++
			continue
		}
		fmt.Printf("%s: %s (size %d, %d lines)\n", r.Name, r.Output.Path, r.Output.FontSize, len(r.Output.Lines))
	}

	if failed > 0 {
		logger.Printf("%d of %d captions failed", failed, len(reqs))
		os.Exit(1)
	}
}

func withText(template services.Request, text, name string) services.Request {
	template.Text = text
	template.Name = name
	return template
}

func jobRequests(path string, template services.Request) ([]services.Request, error) {
	jobs, err := config.LoadJobs(path)
	if err != nil {
		return nil, err
	}

	reqs := make([]services.Request, 0, len(jobs))
	for _, job := range jobs {
		req := withText(template, job.Text, job.Name)
		if job.Width > 0 {
			req.Width = job.Width
		}
		if job.Height > 0 {
			req.Height = job.Height
		}
		if job.Background != "" {
			bg, err := config.ParseColor(job.Background)
			if err != nil {
				return nil, fmt.Errorf("job %s: %w", job.Name, err)
			}
			req.Background = bg
		}
		reqs = append(reqs, req)
	}
	return reqs, nil
}
