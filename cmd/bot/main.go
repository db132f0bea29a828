package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"captionfit/internal/bot"
	"captionfit/internal/config"
	"captionfit/internal/files"
	"captionfit/internal/handlers"
	"captionfit/internal/image"
	"captionfit/internal/services"
	"captionfit/internal/storage"
)

func main() {
	logger := log.Default()
	cfg, err := config.Load(logger)
	if err != nil {
		logger.Fatal(err)
	}
	if cfg.BotToken == "" {
		logger.Fatal("TOKEN environment variable is required")
	}

	assets, err := files.NewAssetLoader(cfg.FontFile, "").Load()
	if err != nil {
		logger.Fatal(err)
	}

	botService, err := bot.NewTelegramBot(cfg.BotToken, logger, cfg.MaxFileSize)
	if err != nil {
		logger.Fatal(err)
	}

	fileManager, err := files.NewTelegramFileManager(botService, cfg.TempDir, cfg.MaxFileSize)
	if err != nil {
		logger.Fatal(err)
	}

	captionService, err := services.NewCaptionService(
		assets.Font,
		image.NewRenderer(&image.Processor{}),
		cfg.TempDir,
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

	handler := handlers.NewHandler(
		captionService,
		template,
		botService,
		fileManager,
		storage.NewRenderStateStore(services.DefaultPreset),
		logger,
	)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := botService.Start(ctx, handler.HandleUpdate); err != nil {
			logger.Printf("Error starting bot: %v", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	fmt.Println("\nShutting down...")
}
