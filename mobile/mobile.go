// Package mobile exposes the caption bot and a one-shot renderer with
// gomobile-friendly signatures.
package mobile

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"captionfit/internal/bot"
	"captionfit/internal/config"
	"captionfit/internal/files"
	"captionfit/internal/fonts"
	"captionfit/internal/handlers"
	"captionfit/internal/image"
	"captionfit/internal/services"
	"captionfit/internal/storage"
)

// runner polls for updates until ctx ends.
type runner func(ctx context.Context) error

type botRun struct {
	cancel context.CancelFunc
	done   chan struct{}
}

type BotControl struct {
	mu        sync.Mutex
	current   *botRun
	newRunner func(token, fontPath, tempDir string) (runner, error)
}

func NewBotControl() *BotControl {
	return &BotControl{newRunner: telegramRunner}
}

func (bc *BotControl) StartBot(token string, fontPath string, tempDir string) string {
	bc.mu.Lock()
	defer bc.mu.Unlock()
	if bc.current != nil {
		return "Bot already started"
	}

	run, err := bc.newRunner(token, fontPath, tempDir)
	if err != nil {
		return fmt.Sprintf("Error %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	r := &botRun{cancel: cancel, done: make(chan struct{})}
	bc.current = r

	go func() {
		defer close(r.done)
		defer cancel()

		log.Println("Bot goroutine started")
		if err := run(ctx); err != nil && !errors.Is(err, context.Canceled) {
			log.Printf("Error running bot: %v", err)
		}

		// A stopped run must not forget a newer one.
		bc.mu.Lock()
		if bc.current == r {
			bc.current = nil
		}
		bc.mu.Unlock()
	}()

	return "Bot started successfully"
}

func (bc *BotControl) StopBot() {
	bc.mu.Lock()
	defer bc.mu.Unlock()
	if bc.current != nil {
		bc.current.cancel()
		bc.current = nil
		log.Println("Bot stopped by user")
	}
}

func (bc *BotControl) Running() bool {
	bc.mu.Lock()
	defer bc.mu.Unlock()
	return bc.current != nil
}

func telegramRunner(token, fontPath, tempDir string) (runner, error) {
	logger := log.Default()

	provider, err := fonts.Open(fontPath)
	if err != nil {
		return nil, fmt.Errorf("loading font: %w", err)
	}

	botService, err := bot.NewTelegramBot(token, logger, 10*1024*1024)
	if err != nil {
		return nil, fmt.Errorf("creating bot: %w", err)
	}

	fileManager, err := files.NewTelegramFileManager(botService, tempDir, 10*1024*1024)
	if err != nil {
		return nil, fmt.Errorf("creating file manager: %w", err)
	}

	captionService, err := services.NewCaptionService(provider, image.NewRenderer(nil), tempDir, config.OverflowFail, logger)
	if err != nil {
		return nil, fmt.Errorf("creating caption service: %w", err)
	}

	template, err := services.NewRequest(config.Default().Render, "")
	if err != nil {
		return nil, fmt.Errorf("building defaults: %w", err)
	}

	handler := handlers.NewHandler(
		captionService,
		template,
		botService,
		fileManager,
		storage.NewRenderStateStore(services.DefaultPreset),
		logger,
	)

	return func(ctx context.Context) error {
		return botService.Start(ctx, handler.HandleUpdate)
	}, nil
}

// RenderCaption writes text fitted onto a width x height canvas into outDir
// and returns the file path. background is r,g,b, #rrggbb or none.
func RenderCaption(text string, width, height int, fontPath, textColor, background, outDir, name string) (string, error) {
	provider, err := fonts.Open(fontPath)
	if err != nil {
		return "", err
	}

	svc, err := services.NewCaptionService(provider, image.NewRenderer(nil), outDir, config.OverflowFail, log.Default())
	if err != nil {
		return "", err
	}

	rc := config.Default().Render
	rc.Width, rc.Height = width, height
	rc.TextColor, rc.BackgroundColor = textColor, background

	req, err := services.NewRequest(rc, text)
	if err != nil {
		return "", err
	}
	req.Name = name

	out, err := svc.Render(context.Background(), req)
	if err != nil {
		return "", err
	}
	return out.Path, nil
}
