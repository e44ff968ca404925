package services

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
)

// maxImageWidth bounds uploaded page photos. Larger images are resized
// down before storage; hero and gallery layouts never need more.
const maxImageWidth = 1600

// ImageService processes owner photo uploads (hero, gallery, story and
// gift images) and stores them through the configured storage backend.
type ImageService struct {
	storage StorageService
}

// NewImageService creates a new image service
func NewImageService(storage StorageService) *ImageService {
	return &ImageService{storage: storage}
}

// ImageUploadResult describes a stored upload
type ImageUploadResult struct {
	Key         string    `json:"key"`
	URL         string    `json:"url"`
	ContentType string    `json:"content_type"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// UploadImage validates, resizes and stores an uploaded photo, returning
// its public URL.
func (s *ImageService) UploadImage(ctx context.Context, reader io.Reader, filename string) (*ImageUploadResult, error) {
	imageData, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	img, format, err := image.Decode(bytes.NewReader(imageData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	if !isValidImageFormat(format) {
		return nil, fmt.Errorf("unsupported image format: %s", format)
	}

	if img.Bounds().Dx() > maxImageWidth {
		img = imaging.Resize(img, maxImageWidth, 0, imaging.Lanczos)
	}

	encoded, err := encodeImage(img, format)
	if err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	key := generateImageKey(filename, format)
	url, err := s.storage.Upload(ctx, key, bytes.NewReader(encoded), getContentType(format))
	if err != nil {
		return nil, fmt.Errorf("failed to upload image: %w", err)
	}

	bounds := img.Bounds()
	return &ImageUploadResult{
		Key:         key,
		URL:         url,
		ContentType: getContentType(format),
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		UploadedAt:  time.Now(),
	}, nil
}

// DeleteImage removes a stored photo by key
func (s *ImageService) DeleteImage(ctx context.Context, key string) error {
	return s.storage.Delete(ctx, key)
}

func encodeImage(img image.Image, format string) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case "png":
		if err := png.Encode(&buf, img); err != nil {
			return nil, err
		}
	default:
		if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

func isValidImageFormat(format string) bool {
	switch format {
	case "jpeg", "png", "gif", "webp":
		return true
	}
	return false
}

func getContentType(format string) string {
	switch format {
	case "png":
		return "image/png"
	case "gif":
		return "image/gif"
	case "webp":
		return "image/webp"
	default:
		return "image/jpeg"
	}
}

// generateImageKey builds a collision-free storage key from the upload
// filename.
func generateImageKey(filename, format string) string {
	base := sanitizeFilename(strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename)))
	if base == "" {
		base = "image"
	}
	ext := format
	if ext == "jpeg" {
		ext = "jpg"
	}
	return fmt.Sprintf("images/%s/%s-%s.%s", time.Now().Format("2006/01"), base, uuid.NewString()[:8], ext)
}

func sanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '-', r == '_':
			b.WriteRune(r)
		case r == ' ':
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-_")
}
