package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/mymmrac/telego"

	"captionfit/internal/bot"
	"captionfit/internal/files"
	"captionfit/internal/fit"
	"captionfit/internal/services"
	"captionfit/internal/storage"
)

const (
	msgMenu     = "✍️ Send me a caption, or a photo with a caption. Pick a canvas below."
	msgNeedText = "❌ Please send caption text, or a photo with a caption."
	msgBusy     = "😵‍💫 Slow down, I'm still fitting the last one."
	msgTooLong  = "📏 That caption doesn't fit this canvas at any size. Try a shorter text or a bigger canvas."
	msgFailed   = "🚧 Error while rendering the caption."
)

type Handler struct {
	captions    *services.CaptionService
	template    services.Request
	bot         bot.Bot
	fileManager files.FileManager
	stateStore  *storage.RenderStateStore
	logger      *log.Logger
}

// NewHandler builds the chat handler. template carries the colors, margin
// and size range every render starts from.
func NewHandler(
	captions *services.CaptionService,
	template services.Request,
	bot bot.Bot,
	fileManager files.FileManager,
	stateStore *storage.RenderStateStore,
	logger *log.Logger,
) *Handler {
	return &Handler{
		captions:    captions,
		template:    template,
		bot:         bot,
		fileManager: fileManager,
		stateStore:  stateStore,
		logger:      logger,
	}
}

func (h *Handler) HandleUpdate(ctx context.Context, update telego.Update) {
	if update.Message == nil {
		return
	}
	msg := update.Message
	chatID := msg.Chat.ID

	if msg.Text == "/start" {
		h.stateStore.Reset(chatID)
		_ = h.bot.ShowMenu(ctx, chatID, msgMenu, presetLabels())
		return
	}

	if preset, ok := services.PresetByLabel(msg.Text); ok {
		h.stateStore.SetPreset(chatID, preset.Name)
		_ = h.bot.SendText(ctx, chatID, fmt.Sprintf("✅ Canvas set to %s (%dx%d).", preset.Name, preset.Width, preset.Height))
		return
	}

	if h.stateStore.IsProcessing(chatID) {
		_ = h.bot.SendText(ctx, chatID, msgBusy)
		return
	}

	if strings.TrimSpace(getText(msg)) == "" {
		_ = h.bot.SendText(ctx, chatID, msgNeedText)
		return
	}

	if !h.stateStore.TryStart(chatID) {
		_ = h.bot.SendText(ctx, chatID, msgBusy)
		return
	}
	defer h.stateStore.Finish(chatID)

	_ = h.handleCaption(ctx, msg)
}

func (h *Handler) handleCaption(ctx context.Context, msg *telego.Message) error {
	chatID := msg.Chat.ID
	_ = h.bot.SendChatAction(ctx, chatID, telego.ChatActionUploadPhoto)

	resultPath, cleanup, err := h.executeCaption(ctx, msg)
	if errors.Is(err, fit.ErrNoFittingSize) {
		return h.fail(ctx, chatID, "caption does not fit", msgTooLong, err)
	}
	if err != nil {
		return h.fail(ctx, chatID, "executeCaption failed", msgFailed, err)
	}
	defer cleanup()

	if err := h.bot.SendFileAuto(ctx, chatID, resultPath); err != nil {
		return h.fail(ctx, chatID, "send error", "🚧 Error sending result.", err)
	}
	return nil
}

func (h *Handler) executeCaption(ctx context.Context, msg *telego.Message) (string, func(), error) {
	chatID := msg.Chat.ID

	req := h.template
	req.Text = getText(msg)
	req.Name = fmt.Sprintf("caption_%d_%d", chatID, msg.MessageID)
	if preset, ok := services.PresetByName(h.stateStore.Preset(chatID)); ok {
		req = preset.Apply(req)
	}

	if hasPhoto(msg) {
		fileID, err := extractFileID(msg)
		if err != nil {
			return "", nil, err
		}

		localPath, cleanupTemp, err := h.fileManager.DownloadToTemp(ctx, fileID)
		if err != nil {
			return "", nil, fmt.Errorf("download failed: %w", err)
		}
		photo, err := files.OpenImage(localPath)
		cleanupTemp()
		if err != nil {
			return "", nil, fmt.Errorf("open photo: %w", err)
		}
		req.Photo = photo
	}

	out, err := h.captions.Render(ctx, req)
	if err != nil {
		return "", nil, fmt.Errorf("render error: %w", err)
	}

	cleanup := func() {
		_ = os.Remove(out.Path)
	}
	return out.Path, cleanup, nil
}

func (h *Handler) fail(ctx context.Context, chatID int64, logMsg, userMsg string, err error) error {
	h.logger.Printf("%s: %v", logMsg, err)
	_ = h.bot.SendText(context.WithoutCancel(ctx), chatID, userMsg)
	return err
}

func presetLabels() []string {
	labels := make([]string, 0, len(services.Presets))
	for _, p := range services.Presets {
		labels = append(labels, p.Label)
	}
	return labels
}

func extractFileID(msg *telego.Message) (string, error) {
	if len(msg.Photo) > 0 {
		return msg.Photo[len(msg.Photo)-1].FileID, nil
	}
	if msg.Document != nil {
		return msg.Document.FileID, nil
	}
	return "", fmt.Errorf("no file")
}

func hasPhoto(msg *telego.Message) bool {
	return len(msg.Photo) > 0 || msg.Document != nil
}

func getText(msg *telego.Message) string {
	if msg.Caption != "" {
		return msg.Caption
	}
	return msg.Text
}
