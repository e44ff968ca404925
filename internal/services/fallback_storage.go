package services

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FallbackStorageService provides local file storage when R2 is not
// configured, serving uploads from the local uploads directory.
type FallbackStorageService struct {
	basePath string
	baseURL  string
}

// NewFallbackStorageService creates a new local storage service
func NewFallbackStorageService(basePath, baseURL string) *FallbackStorageService {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		log.Printf("failed to create storage directory %s: %v", basePath, err)
	}

	return &FallbackStorageService{
		basePath: basePath,
		baseURL:  strings.TrimSuffix(baseURL, "/"),
	}
}

// Upload saves a file to local storage
func (f *FallbackStorageService) Upload(ctx context.Context, key string, reader io.Reader, contentType string) (string, error) {
	key = strings.TrimPrefix(key, "/")
	fullPath := filepath.Join(f.basePath, key)

	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	file, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create file %s: %w", fullPath, err)
	}
	defer file.Close()

	if _, err := io.Copy(file, reader); err != nil {
		return "", fmt.Errorf("failed to write file %s: %w", fullPath, err)
	}

	return f.GetPublicURL(key), nil
}

// Delete removes a file from local storage
func (f *FallbackStorageService) Delete(ctx context.Context, key string) error {
	key = strings.TrimPrefix(key, "/")
	fullPath := filepath.Join(f.basePath, key)

	err := os.Remove(fullPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file %s: %w", fullPath, err)
	}

	f.cleanupEmptyDirs(filepath.Dir(fullPath))
	return nil
}

// GetPublicURL returns the serving URL for a stored file
func (f *FallbackStorageService) GetPublicURL(key string) string {
	key = strings.TrimPrefix(key, "/")
	return fmt.Sprintf("%s/%s", f.baseURL, key)
}

// cleanupEmptyDirs removes empty directories up to the base path
func (f *FallbackStorageService) cleanupEmptyDirs(dir string) {
	if dir == f.basePath || dir == "." || dir == "/" {
		return
	}

	entries, err := os.ReadDir(dir)
	if err != nil || len(entries) > 0 {
		return
	}

	if err := os.Remove(dir); err == nil {
		f.cleanupEmptyDirs(filepath.Dir(dir))
	}
}

// NewStorageService returns the R2 storage service when credentials are
// configured and the bucket is reachable, falling back to local disk
// storage otherwise.
func NewStorageService(r2 *R2Service, r2Err error, localPath, localBaseURL string) StorageService {
	if r2Err == nil && r2 != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := r2.HealthCheck(ctx); err != nil {
			log.Printf("R2 health check failed (%v), using local storage", err)
			return NewFallbackStorageService(localPath, localBaseURL)
		}
		log.Println("using R2 storage")
		return r2
	}
	if r2Err != nil {
		log.Printf("R2 unavailable (%v), using local storage", r2Err)
	}
	return NewFallbackStorageService(localPath, localBaseURL)
}
