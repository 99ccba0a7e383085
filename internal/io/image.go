package ioutils

import (
	"context"
	"fmt"
	"image"
	_ "image/gif"  // GIF decoder registration
	_ "image/jpeg" // JPEG decoder registration
	_ "image/png"  // PNG decoder registration
	"os"

	_ "golang.org/x/image/bmp"  // BMP decoder registration
	_ "golang.org/x/image/tiff" // TIFF decoder registration
	_ "golang.org/x/image/webp" // WebP decoder registration
)

// ImageInfo describes an image file without decoding its pixels.
type ImageInfo struct {
	Format string
	Width  int
	Height int
}

// String returns "WIDTHxHEIGHT format", e.g. "1080x1350 jpeg".
func (i ImageInfo) String() string {
	return fmt.Sprintf("%dx%d %s", i.Width, i.Height, i.Format)
}

// ImageService inspects flyer images.
//
// Only the header is read, so probing a large flyer is cheap. Supported
// formats are JPEG, PNG, GIF, WebP, BMP and TIFF.
//
// Example usage:
//
//	svc := NewImageService()
//	info, err := svc.Probe(ctx, "/flyers/2024/1.jpg")
//	// info.Width = 1080, info.Height = 1350, info.Format = "jpeg"
type ImageService struct{}

// NewImageService creates a new ImageService.
func NewImageService() *ImageService {
	return &ImageService{}
}

// Probe reads the format and dimensions of the image at path.
//
// Returns image.ErrFormat (wrapped) when the file is not a known image
// format, which happens for files with an image extension but other content.
func (s *ImageService) Probe(ctx context.Context, path string) (ImageInfo, error) {
	if err := ctx.Err(); err != nil {
		return ImageInfo{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return ImageInfo{}, err
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return ImageInfo{}, fmt.Errorf("decoding %s: %w", path, err)
	}

	return ImageInfo{Format: format, Width: cfg.Width, Height: cfg.Height}, nil
}
