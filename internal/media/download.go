package media

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	tele "gopkg.in/telebot.v4"
)

// DownloadTimeout is the maximum time to wait for a file download
const DownloadTimeout = 30 * time.Second

// DownloadFromTelegram downloads a file from Telegram using the bot API.
// The file parameter should be a telebot.File with a valid FileID.
func DownloadFromTelegram(bot *tele.Bot, file *tele.File) ([]byte, error) {
	if file == nil || file.FileID == "" {
		return nil, fmt.Errorf("invalid file: missing FileID")
	}

	fileInfo, err := bot.FileByID(file.FileID)
	if err != nil {
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}

	url := fmt.Sprintf("https://api.telegram.org/file/bot%s/%s",
		bot.Token, fileInfo.FilePath)

	client := &http.Client{Timeout: DownloadTimeout}
	resp, err := client.Get(url)
	if err != nil {
		return nil, fmt.Errorf("failed to download file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download failed with status: %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read file content: %w", err)
	}

	return data, nil
}

// SavePhoto downloads a photo (telebot gives us the largest size),
// optimizes it for publishing, and writes it to a temp file. The returned
// path is the session's media reference.
func SavePhoto(bot *tele.Bot, photo *tele.Photo) (string, error) {
	if photo == nil || photo.FileID == "" {
		return "", fmt.Errorf("invalid photo: missing FileID")
	}

	data, err := DownloadFromTelegram(bot, &photo.File)
	if err != nil {
		return "", fmt.Errorf("failed to download photo: %w", err)
	}

	optimized, err := Optimize(data)
	if err != nil {
		return "", fmt.Errorf("failed to optimize photo: %w", err)
	}

	path := filepath.Join(os.TempDir(), fmt.Sprintf("brewpost_%s.jpg", uuid.NewString()))
	if err := os.WriteFile(path, optimized.Data, 0600); err != nil {
		return "", fmt.Errorf("failed to write photo: %w", err)
	}

	return path, nil
}

// SaveVoice downloads a voice clip and writes the raw OGG/Opus bytes to a
// temp file for transcription.
func SaveVoice(bot *tele.Bot, voice *tele.Voice) (string, error) {
	if voice == nil || voice.FileID == "" {
		return "", fmt.Errorf("invalid voice clip: missing FileID")
	}

	data, err := DownloadFromTelegram(bot, &voice.File)
	if err != nil {
		return "", fmt.Errorf("failed to download voice clip: %w", err)
	}

	path := filepath.Join(os.TempDir(), fmt.Sprintf("brewpost_%s.ogg", uuid.NewString()))
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write voice clip: %w", err)
	}

	return path, nil
}
