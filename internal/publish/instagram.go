package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/kczek/brewpost/internal/config"
	. "github.com/kczek/brewpost/internal/logging"
)

// Instagram implements the two-step create-then-publish protocol: first a
// media container is created from the image URL, then the container is
// published by its creation id.
type Instagram struct {
	mediaURL    string
	publishURL  string
	accessToken string
	client      *http.Client
}

// NewInstagram creates the two-step publisher from config.
func NewInstagram(cfg config.InstagramConfig) (*Instagram, error) {
	if cfg.MediaURL == "" || cfg.PublishURL == "" {
		return nil, fmt.Errorf("instagram endpoints not configured")
	}
	if cfg.AccessToken == "" {
		return nil, fmt.Errorf("instagram access token not configured")
	}
	return &Instagram{
		mediaURL:    cfg.MediaURL,
		publishURL:  cfg.PublishURL,
		accessToken: cfg.AccessToken,
		client:      &http.Client{},
	}, nil
}

// Name returns the network name.
func (ig *Instagram) Name() string {
	return "instagram"
}

// Publish creates the media container and publishes it.
func (ig *Instagram) Publish(ctx context.Context, mediaURL, caption string) (string, error) {
	creationID, err := ig.createContainer(ctx, mediaURL, caption)
	if err != nil {
		return "", fmt.Errorf("create media container: %w", err)
	}

	L_debug("publish: instagram container created", "creationID", creationID)

	postID, err := ig.publishContainer(ctx, creationID)
	if err != nil {
		return "", fmt.Errorf("publish container %s: %w", creationID, err)
	}

	return postID, nil
}

func (ig *Instagram) createContainer(ctx context.Context, mediaURL, caption string) (string, error) {
	resp, err := postJSON(ctx, ig.client, ig.mediaURL, map[string]string{
		"image_url":    mediaURL,
		"caption":      caption,
		"access_token": ig.accessToken,
	})
	if err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", fmt.Errorf("response missing creation id")
	}
	return resp.ID, nil
}

func (ig *Instagram) publishContainer(ctx context.Context, creationID string) (string, error) {
	resp, err := postJSON(ctx, ig.client, ig.publishURL, map[string]string{
		"creation_id":  creationID,
		"access_token": ig.accessToken,
	})
	if err != nil {
		return "", err
	}
	return resp.ID, nil
}

// graphResponse is the shared shape of both networks' replies.
type graphResponse struct {
	ID     string `json:"id"`
	PostID string `json:"post_id"`
	Error  *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}

// postJSON posts a JSON body and decodes the graph-style reply, turning
// HTTP and in-band errors into Go errors.
func postJSON(ctx context.Context, client *http.Client, url string, payload map[string]string) (*graphResponse, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var parsed graphResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse response (status %d): %w", resp.StatusCode, err)
	}

	if parsed.Error != nil {
		return nil, fmt.Errorf("API error %d: %s", parsed.Error.Code, parsed.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d: %s", resp.StatusCode, string(raw))
	}

	return &parsed, nil
}
