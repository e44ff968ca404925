package services

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"
	"testing"
)

type mockStorage struct {
	uploads map[string][]byte
	deleted []string
}

func newMockStorage() *mockStorage {
	return &mockStorage{uploads: make(map[string][]byte)}
}

func (m *mockStorage) Upload(ctx context.Context, key string, reader io.Reader, contentType string) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", err
	}
	m.uploads[key] = data
	return "https://cdn.example.com/" + key, nil
}

func (m *mockStorage) Delete(ctx context.Context, key string) error {
	m.deleted = append(m.deleted, key)
	delete(m.uploads, key)
	return nil
}

func (m *mockStorage) GetPublicURL(key string) string {
	return "https://cdn.example.com/" + key
}

func testPNG(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := 0; x < width; x++ {
		img.Set(x, 0, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("failed to encode test image: %v", err)
	}
	return buf.Bytes()
}

func TestUploadImage(t *testing.T) {
	storage := newMockStorage()
	service := NewImageService(storage)

	result, err := service.UploadImage(context.Background(), bytes.NewReader(testPNG(t, 20, 10)), "Foto do Casal.png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Width != 20 || result.Height != 10 {
		t.Errorf("unexpected dimensions %dx%d", result.Width, result.Height)
	}
	if result.ContentType != "image/png" {
		t.Errorf("unexpected content type %q", result.ContentType)
	}
	if !strings.Contains(result.Key, "foto-do-casal") {
		t.Errorf("key must carry the sanitized filename, got %q", result.Key)
	}
	if _, ok := storage.uploads[result.Key]; !ok {
		t.Error("image data was not uploaded")
	}
}

func TestUploadImage_RejectsNonImage(t *testing.T) {
	service := NewImageService(newMockStorage())

	_, err := service.UploadImage(context.Background(), strings.NewReader("not an image"), "file.txt")
	if err == nil {
		t.Error("expected an error for non-image data")
	}
}

func TestUploadImage_ResizesOversized(t *testing.T) {
	storage := newMockStorage()
	service := NewImageService(storage)

	result, err := service.UploadImage(context.Background(), bytes.NewReader(testPNG(t, maxImageWidth+400, 100)), "panorama.png")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Width != maxImageWidth {
		t.Errorf("expected resize to %d, got %d", maxImageWidth, result.Width)
	}
}

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Foto do Casal", "foto-do-casal"},
		{"IMG_1234", "img_1234"},
		{"---", ""},
		{"café", "caf"},
	}
	for _, tt := range tests {
		if got := sanitizeFilename(tt.in); got != tt.want {
			t.Errorf("sanitizeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
