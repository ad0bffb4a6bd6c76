package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mara-ellison/maras-boutique-api/config"
	"github.com/mara-ellison/maras-boutique-api/models"
)

// CheckoutRequest represents the request body for a checkout
// submission. The phone field arrives on the wire as "number".
type CheckoutRequest struct {
	CustomerName string             `json:"customerName" binding:"required"`
	Email        string             `json:"email" binding:"required"`
	Number       string             `json:"number" binding:"required"`
	Address      string             `json:"address" binding:"required"`
	Cart         []models.OrderItem `json:"cart" binding:"required,min=1"`
}

// UpdateOrderStatusRequest represents the request body for an order
// status update
type UpdateOrderStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// Checkout handles POST /checkout - records a customer order
func Checkout(c *gin.Context) {
	var req CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Missing required fields.",
				"details": err.Error(),
			},
		})
		return
	}

	// Reject nonsensical line items before touching the store
	for _, item := range req.Cart {
		if item.Product == "" || item.Quantity <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "VALIDATION_ERROR",
					"message": "Every cart item needs a product and a positive quantity",
				},
			})
			return
		}
	}

	order := models.Order{
		CustomerName: req.CustomerName,
		Email:        req.Email,
		PhoneNumber:  req.Number,
		Address:      req.Address,
		Items:        req.Cart,
		Status:       models.OrderStatusPending,
	}

	if err := config.GetDB().Create(&order).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Error during checkout",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Checkout successful! Your order has been received.",
	})
}

// ListOrders handles GET /admin/orders - returns all orders, newest first
func ListOrders(c *gin.Context) {
	var orders []models.Order
	if err := config.GetDB().Order("created_at DESC").Find(&orders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to retrieve orders",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    orders,
	})
}

// UpdateOrderStatus handles PATCH /admin/orders/:id - moves an order
// between Pending and Completed. No other field is touched.
func UpdateOrderStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Status is required",
			},
		})
		return
	}

	if !models.ValidStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Status must be Pending or Completed",
			},
		})
		return
	}

	db := config.GetDB()
	var order models.Order
	if err := db.First(&order, "id = ?", c.Param("id")).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "NOT_FOUND",
					"message": "Order not found",
				},
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to load order",
			},
		})
		return
	}

	if err := db.Model(&order).Update("status", req.Status).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to update order status",
			},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"data":    order,
	})
}
