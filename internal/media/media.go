// Package media downloads photo and voice payloads from Telegram and
// prepares images for publishing. Publish targets want JPEG within
// Instagram's size limits, so everything is normalized to JPEG here.
package media

import (
	"github.com/gabriel-vasile/mimetype"
)

// Publish limits for images (Instagram is the strictest target)
const (
	MaxDimension = 1440            // Max width or height in pixels
	MaxBytes     = 8 * 1024 * 1024 // 8MB max file size
)

// Supported inbound image MIME types
var SupportedMIMETypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// ImageData represents a processed image ready for upload
type ImageData struct {
	Data     []byte // Raw image bytes
	MimeType string // Always "image/jpeg" after optimization
	Width    int    // Width in pixels
	Height   int    // Height in pixels
}

// Size returns the size in bytes
func (img *ImageData) Size() int {
	return len(img.Data)
}

// DetectMIME returns the MIME type from magic bytes (not file extension)
func DetectMIME(data []byte) string {
	return mimetype.Detect(data).String()
}

// IsSupported returns true if the MIME type can be processed
func IsSupported(mimeType string) bool {
	return SupportedMIMETypes[mimeType]
}
