package files

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"captionfit/internal/bot"
)

// FileSource is the part of the bot the downloader needs.
type FileSource interface {
	GetFile(ctx context.Context, fileID string) (*bot.File, error)
	FileDownloadURL(filePath string) string
}

type telegramFileManager struct {
	client     FileSource
	httpClient *http.Client
	tempDir    string
	maxSize    int64
}

func NewTelegramFileManager(client FileSource, tempDir string, maxSize int64) (FileManager, error) {
	if tempDir == "" {
		tempDir = "temp"
	}
	if err := os.MkdirAll(tempDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create temp dir: %w", err)
	}
	return &telegramFileManager{
		client:     client,
		httpClient: http.DefaultClient,
		tempDir:    tempDir,
		maxSize:    maxSize,
	}, nil
}

func (fm *telegramFileManager) DownloadToTemp(ctx context.Context, fileID string) (string, func(), error) {
	tf, err := fm.client.GetFile(ctx, fileID)
	if err != nil {
		return "", nil, fmt.Errorf("GetFile error: %w", err)
	}
	if tf == nil || tf.FilePath == "" {
		return "", nil, fmt.Errorf("invalid file info from telegram for id %s", fileID)
	}
	if fm.maxSize > 0 && tf.FileSize > fm.maxSize {
		return "", nil, fmt.Errorf("file %s is %d bytes, limit %d", fileID, tf.FileSize, fm.maxSize)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fm.client.FileDownloadURL(tf.FilePath), nil)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := fm.httpClient.Do(req)
	if err != nil {
		return "", nil, fmt.Errorf("download request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", nil, fmt.Errorf("download failed: status %s, body: %s", resp.Status, string(body))
	}

	localName := filepath.Join(fm.tempDir, fileID+"_"+filepath.Base(tf.FilePath))
	out, err := os.Create(localName)
	if err != nil {
		return "", nil, fmt.Errorf("failed to create local file: %w", err)
	}

	var body io.Reader = resp.Body
	if fm.maxSize > 0 {
		body = io.LimitReader(resp.Body, fm.maxSize+1)
	}

	n, err := io.Copy(out, body)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err == nil && fm.maxSize > 0 && n > fm.maxSize {
		err = fmt.Errorf("file exceeds %d bytes", fm.maxSize)
	}
	if err != nil {
		_ = os.Remove(localName)
		return "", nil, fmt.Errorf("failed to save downloaded file: %w", err)
	}

	cleanup := func() {
		_ = os.Remove(localName)
	}

	return localName, cleanup, nil
}
