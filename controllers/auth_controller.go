package controllers

import (
	"crypto/subtle"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/mara-ellison/maras-boutique-api/config"
	"github.com/mara-ellison/maras-boutique-api/middleware"
	"github.com/mara-ellison/maras-boutique-api/services"
)

// LoginRequest represents the request body for admin login
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /login - authenticates the admin against the
// configured credentials and issues a session cookie
func Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "VALIDATION_ERROR",
				"message": "Username and password are required",
			},
		})
		return
	}

	cfg := config.GetConfig()

	// Both checks always run and the response never says which one
	// failed.
	usernameOK := subtle.ConstantTimeCompare([]byte(req.Username), []byte(cfg.AdminUsername)) == 1
	passwordOK := bcrypt.CompareHashAndPassword(cfg.AdminPasswordHash, []byte(req.Password)) == nil
	if !usernameOK || !passwordOK {
		c.JSON(http.StatusUnauthorized, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "INVALID_CREDENTIALS",
				"message": "Invalid username or password",
			},
		})
		return
	}

	sessions := services.GetSessionService()
	sessions.PurgeExpired()

	token, err := sessions.Create()
	if err != nil {
		log.Printf("failed to create session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error": gin.H{
				"code":    "DATABASE_ERROR",
				"message": "Failed to create session",
			},
		})
		return
	}

	c.SetCookie(middleware.SessionCookieName, token, int(services.SessionTTL.Seconds()), "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}

// Logout handles POST /logout - destroys the current session. Idempotent:
// a missing or unknown session still succeeds.
func Logout(c *gin.Context) {
	if token, err := middleware.SessionToken(c); err == nil {
		if err := services.GetSessionService().Destroy(token); err != nil {
			log.Printf("failed to destroy session: %v", err)
		}
	}

	// Expire the cookie either way
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}
