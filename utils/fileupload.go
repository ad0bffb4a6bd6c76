package utils

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// MaxFileSize is 10MB in bytes
	MaxFileSize = 10 * 1024 * 1024
)

// AllowedImageExtensions are the file extensions accepted for product
// image uploads, mapped to their content types.
var AllowedImageExtensions = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
}

// FileUploadError represents a file upload validation error
type FileUploadError struct {
	Code    string
	Message string
}

func (e *FileUploadError) Error() string {
	return e.Message
}

// ValidateImageFile validates the uploaded file format and size
func ValidateImageFile(fileHeader *multipart.FileHeader) error {
	// Check file size
	if fileHeader.Size > MaxFileSize {
		return &FileUploadError{
			Code:    "FILE_TOO_LARGE",
			Message: fmt.Sprintf("File size exceeds maximum allowed size of %d MB", MaxFileSize/(1024*1024)),
		}
	}

	// Check file extension
	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	if _, ok := AllowedImageExtensions[ext]; !ok {
		return &FileUploadError{
			Code:    "INVALID_FILE_FORMAT",
			Message: fmt.Sprintf("File extension %q is not an allowed image format", ext),
		}
	}

	return nil
}

// ContentTypeForFilename returns the content type for an allowed image
// filename, falling back to application/octet-stream.
func ContentTypeForFilename(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	if ct, ok := AllowedImageExtensions[ext]; ok {
		return ct
	}
	return "application/octet-stream"
}

// SanitizeFilename strips any path components from an uploaded filename
// and replaces characters that are unsafe in URLs or object keys.
func SanitizeFilename(filename string) string {
	base := filepath.Base(filename)
	var b strings.Builder
	for _, r := range base {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	sanitized := b.String()
	if sanitized == "" || sanitized == "." || sanitized == ".." {
		return "file"
	}
	return sanitized
}

// UniqueAssetName generates a collision-resistant storage name for an
// uploaded file. Concurrent uploads with identical original names get
// distinct results (uuid fragment), and the original name stays
// recognizable at the end.
func UniqueAssetName(originalName string) string {
	suffix := uuid.NewString()[:8]
	return fmt.Sprintf("%d_%s_%s", time.Now().UnixNano(), suffix, SanitizeFilename(originalName))
}
