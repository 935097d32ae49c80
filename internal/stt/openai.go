package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/kczek/brewpost/internal/config"
	. "github.com/kczek/brewpost/internal/logging"
)

const transcriptionURL = "https://api.openai.com/v1/audio/transcriptions"

// RequestTimeout bounds a single transcription call.
const RequestTimeout = 60 * time.Second

// OpenAIProvider implements Transcriber using OpenAI's Whisper API.
type OpenAIProvider struct {
	apiKey string
	model  string
	client *http.Client
}

// NewOpenAIProvider creates a new OpenAI Whisper transcriber.
func NewOpenAIProvider(cfg config.OpenAIConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openai API key not configured")
	}

	model := cfg.STTModel
	if model == "" {
		model = "whisper-1"
	}

	L_info("stt: openai provider initialized", "model", model)

	return &OpenAIProvider{
		apiKey: cfg.APIKey,
		model:  model,
		client: &http.Client{Timeout: RequestTimeout},
	}, nil
}

// Transcribe converts an audio file to text using OpenAI's Whisper API.
// OpenAI accepts OGG/Opus directly - no conversion needed.
func (o *OpenAIProvider) Transcribe(ctx context.Context, filePath string) (string, error) {
	L_debug("stt: openai transcribing", "file", filePath)

	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("open audio file: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", filepath.Base(filePath))
	if err != nil {
		return "", fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", fmt.Errorf("copy file to form: %w", err)
	}

	if err := writer.WriteField("model", o.model); err != nil {
		return "", fmt.Errorf("write model field: %w", err)
	}
	if err := writer.WriteField("response_format", "text"); err != nil {
		return "", fmt.Errorf("write response_format field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", transcriptionURL, &buf)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+o.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := o.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		L_error("stt: openai request failed", "status", resp.StatusCode, "body", string(body))

		var errResp struct {
			Error struct {
				Message string `json:"message"`
			} `json:"error"`
		}
		if json.Unmarshal(body, &errResp) == nil && errResp.Error.Message != "" {
			return "", fmt.Errorf("openai API error: %s", errResp.Error.Message)
		}
		return "", fmt.Errorf("openai API error: status %d", resp.StatusCode)
	}

	// Response is plain text when response_format=text
	result := string(bytes.TrimSpace(body))
	L_debug("stt: openai transcription complete", "length", len(result))

	return result, nil
}

// Name returns the provider name.
func (o *OpenAIProvider) Name() string {
	return "openai"
}
