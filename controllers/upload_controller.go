package controllers

import (
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/mara-ellison/maras-boutique-api/config"
	"github.com/mara-ellison/maras-boutique-api/utils"
)

// GetUploadedImage handles GET /uploads/:filename - serves product
// images stored by the local asset store. Only registered when the
// local backend is selected; the S3 backend issues absolute URLs.
func GetUploadedImage(c *gin.Context) {
	filename := c.Param("filename")

	// Validate filename is not empty
	if filename == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_REQUEST",
				"message": "Filename is required",
			},
		})
		return
	}

	// Security: Prevent directory traversal attacks
	if strings.Contains(filename, "..") || strings.Contains(filename, "/") || strings.Contains(filename, "\\") {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_FILENAME",
				"message": "Invalid filename",
			},
		})
		return
	}

	// Only stored image formats are served from this directory
	ext := strings.ToLower(filepath.Ext(filename))
	contentType, ok := utils.AllowedImageExtensions[ext]
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_FILE_TYPE",
				"message": "Unsupported image type",
			},
		})
		return
	}

	// Construct full file path
	filePath := filepath.Join(config.GetConfig().UploadDir, filename)

	// Check if file exists
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		c.JSON(http.StatusNotFound, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "FILE_NOT_FOUND",
				"message": "Image not found",
			},
		})
		return
	}

	// Serve the file with appropriate headers
	c.Header("Content-Type", contentType)
	c.Header("Cache-Control", "public, max-age=86400") // Cache for 24 hours
	c.File(filePath)
}
