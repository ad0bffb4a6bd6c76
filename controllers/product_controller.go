package controllers

import (
	"errors"
	"log"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mara-ellison/maras-boutique-api/config"
	"github.com/mara-ellison/maras-boutique-api/models"
	"github.com/mara-ellison/maras-boutique-api/services"
	"github.com/mara-ellison/maras-boutique-api/utils"
)

// imageFormField is the multipart field carrying product image files.
const imageFormField = "images"

// ListProducts handles GET /products and GET /admin/products - returns
// the whole catalog
func ListProducts(c *gin.Context) {
	var products []models.Product
	if err := config.GetDB().Find(&products).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to retrieve products",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    products,
	})
}

// CreateProduct handles POST /admin/products - creates a product from a
// multipart form with up to 5 image files
func CreateProduct(c *gin.Context) {
	name := c.PostForm("name")
	description := c.PostForm("description")
	priceStr := c.PostForm("price")

	if name == "" || priceStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Name and price are required",
			},
		})
		return
	}

	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil || price < 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Price must be a non-negative number",
			},
		})
		return
	}

	files, err := imageFiles(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": err.Error(),
			},
		})
		return
	}

	urls, err := storeImages(files)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "UPLOAD_ERROR",
				"message": "Failed to store product images",
				"details": err.Error(),
			},
		})
		return
	}

	product := models.Product{
		Name:        name,
		Description: description,
		Price:       price,
		ImageURLs:   urls,
	}

	if err := config.GetDB().Create(&product).Error; err != nil {
		// The product never existed, so its freshly stored images are
		// already stale
		deleteAssets(urls)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create product",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    product,
	})
}

// UpdateProduct handles PUT /admin/products/:id - partial update of
// fields and/or images. New images replace the old set wholesale; the
// old assets are deleted only after every new upload has succeeded.
func UpdateProduct(c *gin.Context) {
	db := config.GetDB()
	var product models.Product
	if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NOT_FOUND",
					"message": "Product not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load product",
			},
		})
		return
	}

	// Only supplied fields change
	if name, ok := c.GetPostForm("name"); ok {
		product.Name = name
	}
	if description, ok := c.GetPostForm("description"); ok {
		product.Description = description
	}
	if priceStr, ok := c.GetPostForm("price"); ok {
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price < 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Price must be a non-negative number",
				},
			})
			return
		}
		product.Price = price
	}

	files, err := imageFiles(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": err.Error(),
			},
		})
		return
	}

	// Images are replaced wholesale when new files are supplied and
	// left untouched otherwise
	var staleURLs, newURLs []string
	if len(files) > 0 {
		urls, err := storeImages(files)
		if err != nil {
			// Old assets untouched: a failed upload must not leave the
			// product with fewer images than it had
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "UPLOAD_ERROR",
					"message": "Failed to store product images",
					"details": err.Error(),
				},
			})
			return
		}
		staleURLs = product.ImageURLs
		newURLs = urls
		product.ImageURLs = urls
	}

	if err := db.Save(&product).Error; err != nil {
		// The record still references the old set, so the new uploads
		// are the stale ones
		deleteAssets(newURLs)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update product",
			},
		})
		return
	}

	deleteAssets(staleURLs)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    product,
	})
}

// DeleteProduct handles DELETE /admin/products/:id - removes the
// product and best-effort deletes its image assets
func DeleteProduct(c *gin.Context) {
	db := config.GetDB()
	var product models.Product
	if err := db.First(&product, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NOT_FOUND",
					"message": "Product not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load product",
			},
		})
		return
	}

	if err := db.Delete(&product).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to delete product",
			},
		})
		return
	}

	deleteAssets(product.ImageURLs)

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}

// imageFiles pulls the uploaded image files out of the multipart form
// and validates count, size and format. A request without a multipart
// body simply has no images.
func imageFiles(c *gin.Context) ([]*multipart.FileHeader, error) {
	form, err := c.MultipartForm()
	if err != nil {
		if errors.Is(err, http.ErrNotMultipart) || errors.Is(err, http.ErrMissingBoundary) {
			return nil, nil
		}
		return nil, &utils.FileUploadError{Code: "INVALID_FORM", Message: "Invalid multipart form"}
	}

	files := form.File[imageFormField]
	if len(files) > models.MaxProductImages {
		return nil, &utils.FileUploadError{
			Code:    "TOO_MANY_FILES",
			Message: "A product can have at most 5 images",
		}
	}

	for _, fileHeader := range files {
		if err := utils.ValidateImageFile(fileHeader); err != nil {
			return nil, err
		}
	}

	return files, nil
}

// storeImages uploads every file and returns the issued URLs. All or
// nothing: if any upload fails, the ones that made it are best-effort
// deleted and the error is returned.
func storeImages(files []*multipart.FileHeader) ([]string, error) {
	store := services.GetAssetStore()

	urls := make([]string, 0, len(files))
	for _, fileHeader := range files {
		url, err := store.Store(fileHeader)
		if err != nil {
			deleteAssets(urls)
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}

// deleteAssets removes assets best-effort: individual failures are
// logged and never abort the operation that triggered the cleanup.
func deleteAssets(urls []string) {
	store := services.GetAssetStore()
	for _, url := range urls {
		if err := store.Delete(url); err != nil {
			log.Printf("failed to delete asset %s: %v", url, err)
		}
	}
}
