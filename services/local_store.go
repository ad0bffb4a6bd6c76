package services

import (
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/mara-ellison/maras-boutique-api/utils"
)

// LocalURLPrefix is the path under which locally stored images are
// served. URLs issued by the local store are relative.
const LocalURLPrefix = "/uploads"

// LocalAssetStore keeps uploaded images on the local filesystem under a
// static-served directory.
type LocalAssetStore struct {
	baseDir string
}

// NewLocalAssetStore creates the upload directory if needed and returns
// a local store rooted there.
func NewLocalAssetStore(baseDir string) (*LocalAssetStore, error) {
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalAssetStore{baseDir: baseDir}, nil
}

// Store saves the uploaded file under a collision-resistant name and
// returns the relative URL it will be served from.
func (s *LocalAssetStore) Store(fileHeader *multipart.FileHeader) (url string, err error) {
	filename := utils.UniqueAssetName(fileHeader.Filename)
	fullPath := filepath.Join(s.baseDir, filename)

	// Open the uploaded file
	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer func() {
		if closeErr := src.Close(); closeErr != nil {
			log.Printf("warning: failed to close source file: %v", closeErr)
		}
	}()

	// Create the destination file
	dst, err := os.Create(fullPath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer func() {
		if closeErr := dst.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("failed to close destination file: %w", closeErr)
		}
	}()

	// Copy the file
	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return fmt.Sprintf("%s/%s", LocalURLPrefix, filename), nil
}

// Delete removes the file behind a URL previously issued by Store. A
// missing file is not an error.
func (s *LocalAssetStore) Delete(url string) error {
	filename := path.Base(url)

	// Refuse anything that could escape the upload directory
	if filename == "" || filename == "." || filename == ".." ||
		strings.Contains(filename, "/") || strings.Contains(filename, "\\") {
		return fmt.Errorf("invalid asset url %q", url)
	}

	fullPath := filepath.Join(s.baseDir, filename)
	if err := os.Remove(fullPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to delete asset: %w", err)
	}
	return nil
}
