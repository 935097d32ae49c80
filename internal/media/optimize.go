package media

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	"github.com/disintegration/imaging"

	// Register additional image formats
	_ "golang.org/x/image/webp"
)

// Quality levels to try (descending order)
var qualityLevels = []int{90, 85, 75, 65, 55}

// Dimension levels to try if resizing needed (descending order)
var dimensionLevels = []int{1440, 1200, 1080, 900, 720}

// Optimize normalizes an image to JPEG within the publish limits. PNG and
// WebP input is re-encoded; oversized images are resized and recompressed.
func Optimize(data []byte) (*ImageData, error) {
	mimeType := DetectMIME(data)
	if !IsSupported(mimeType) {
		return nil, fmt.Errorf("unsupported image type: %s", mimeType)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	// Already JPEG and within limits: keep the original bytes
	if mimeType == "image/jpeg" && width <= MaxDimension && height <= MaxDimension && len(data) <= MaxBytes {
		return &ImageData{
			Data:     data,
			MimeType: mimeType,
			Width:    width,
			Height:   height,
		}, nil
	}

	return optimizeWithGridSearch(img, width, height)
}

// optimizeWithGridSearch tries dimension and quality combinations to find
// the first JPEG encoding that fits within limits.
func optimizeWithGridSearch(img image.Image, origWidth, origHeight int) (*ImageData, error) {
	maxDim := max(origWidth, origHeight)

	dimensions := make([]int, 0, len(dimensionLevels)+1)
	if maxDim < MaxDimension {
		dimensions = append(dimensions, maxDim)
	}
	for _, d := range dimensionLevels {
		if d < maxDim {
			dimensions = append(dimensions, d)
		} else if d == maxDim {
			dimensions = append(dimensions, d)
		}
	}
	if len(dimensions) == 0 {
		dimensions = append(dimensions, MaxDimension)
	}

	var smallest *ImageData

	for _, targetDim := range dimensions {
		resized := img
		newWidth, newHeight := origWidth, origHeight
		if origWidth > targetDim || origHeight > targetDim {
			resized = imaging.Fit(img, targetDim, targetDim, imaging.Lanczos)
			bounds := resized.Bounds()
			newWidth = bounds.Dx()
			newHeight = bounds.Dy()
		}

		for _, quality := range qualityLevels {
			var buf bytes.Buffer
			if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: quality}); err != nil {
				continue
			}
			encoded := buf.Bytes()

			if smallest == nil || len(encoded) < len(smallest.Data) {
				smallest = &ImageData{
					Data:     encoded,
					MimeType: "image/jpeg",
					Width:    newWidth,
					Height:   newHeight,
				}
			}

			if len(encoded) <= MaxBytes {
				return &ImageData{
					Data:     encoded,
					MimeType: "image/jpeg",
					Width:    newWidth,
					Height:   newHeight,
				}, nil
			}
		}
	}

	if smallest != nil && len(smallest.Data) > MaxBytes {
		return nil, fmt.Errorf("image could not be reduced below %dMB (got %.2fMB)",
			MaxBytes/(1024*1024), float64(len(smallest.Data))/(1024*1024))
	}
	if smallest == nil {
		return nil, fmt.Errorf("failed to optimize image")
	}
	return smallest, nil
}
