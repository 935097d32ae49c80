// Package storage uploads post images to an object-storage bucket and
// hands back the public URL the publish networks fetch from.
package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	storage_go "github.com/supabase-community/storage-go"

	"github.com/kczek/brewpost/internal/config"
	. "github.com/kczek/brewpost/internal/logging"
	"github.com/kczek/brewpost/internal/media"
)

// Uploader turns a local media file into a publicly fetchable URL.
type Uploader interface {
	Upload(ctx context.Context, localPath string) (string, error)
}

// BucketUploader implements Uploader against an S3-compatible storage API.
type BucketUploader struct {
	client     *storage_go.Client
	bucket     string
	publicHost string
}

// NewBucketUploader creates an uploader from config.
func NewBucketUploader(cfg config.StorageConfig) (*BucketUploader, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("storage endpoint not configured")
	}
	if cfg.Bucket == "" || cfg.PublicHost == "" {
		return nil, fmt.Errorf("storage bucket and publicHost are required")
	}

	client := storage_go.NewClient(cfg.Endpoint, cfg.APIKey, nil)

	L_info("storage: uploader initialized", "bucket", cfg.Bucket, "host", cfg.PublicHost)

	return &BucketUploader{
		client:     client,
		bucket:     cfg.Bucket,
		publicHost: cfg.PublicHost,
	}, nil
}

// Upload stores the file under a fresh object key and returns the
// deterministic public URL https://{bucket}.{host}/{key}.
func (u *BucketUploader) Upload(ctx context.Context, localPath string) (string, error) {
	if localPath == "" {
		return "", fmt.Errorf("upload: local path is empty")
	}

	file, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("open media file: %w", err)
	}
	defer file.Close()

	// Content type from magic bytes, not extension
	head := make([]byte, 512)
	n, _ := file.Read(head)
	contentType := media.DetectMIME(head[:n])
	if _, err := file.Seek(0, 0); err != nil {
		return "", fmt.Errorf("rewind media file: %w", err)
	}

	key := uuid.NewString() + filepath.Ext(localPath)

	L_debug("storage: uploading", "key", key, "contentType", contentType)

	if _, err := u.client.UploadFile(u.bucket, key, file, storage_go.FileOptions{
		ContentType: &contentType,
	}); err != nil {
		return "", fmt.Errorf("upload to bucket %s: %w", u.bucket, err)
	}

	url := fmt.Sprintf("https://%s.%s/%s", u.bucket, u.publicHost, key)
	L_info("storage: media uploaded", "url", url)

	return url, nil
}
