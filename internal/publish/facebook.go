package publish

import (
	"context"
	"fmt"
	"net/http"

	"github.com/kczek/brewpost/internal/config"
)

// Facebook implements the single-step upload-with-caption protocol.
type Facebook struct {
	url         string
	accessToken string
	client      *http.Client
}

// NewFacebook creates the single-step publisher from config.
func NewFacebook(cfg config.FacebookConfig) (*Facebook, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("facebook endpoint not configured")
	}
	if cfg.AccessToken == "" {
		return nil, fmt.Errorf("facebook access token not configured")
	}
	return &Facebook{
		url:         cfg.URL,
		accessToken: cfg.AccessToken,
		client:      &http.Client{},
	}, nil
}

// Name returns the network name.
func (fb *Facebook) Name() string {
	return "facebook"
}

// Publish posts the photo URL with its caption in one call.
func (fb *Facebook) Publish(ctx context.Context, mediaURL, caption string) (string, error) {
	resp, err := postJSON(ctx, fb.client, fb.url, map[string]string{
		"url":          mediaURL,
		"caption":      caption,
		"access_token": fb.accessToken,
	})
	if err != nil {
		return "", err
	}

	// Photo uploads answer with post_id; fall back to id
	if resp.PostID != "" {
		return resp.PostID, nil
	}
	return resp.ID, nil
}
