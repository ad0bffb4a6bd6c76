package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mara-ellison/maras-boutique-api/config"
	"github.com/mara-ellison/maras-boutique-api/models"
	"github.com/mara-ellison/maras-boutique-api/services"
)

func setupAuthTest(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(&models.Session{}); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	config.SetDB(db)
	services.InitSessionService()
	return db
}

func guardedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/admin/ping", RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"success": true})
	})
	return router
}

func TestRequireAuth_NoCookie(t *testing.T) {
	setupAuthTest(t)
	router := guardedRouter()

	req, _ := http.NewRequest(http.MethodGet, "/admin/ping", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "UNAUTHORIZED")
}

func TestRequireAuth_UnknownToken(t *testing.T) {
	setupAuthTest(t)
	router := guardedRouter()

	req, _ := http.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "forged-token"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_ExpiredSession(t *testing.T) {
	db := setupAuthTest(t)
	router := guardedRouter()

	require.NoError(t, db.Create(&models.Session{
		Token:         "expired",
		Authenticated: true,
		ExpiresAt:     time.Now().Add(-time.Minute),
	}).Error)

	req, _ := http.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: "expired"})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_ValidSession(t *testing.T) {
	setupAuthTest(t)
	router := guardedRouter()

	token, err := services.GetSessionService().Create()
	require.NoError(t, err)

	req, _ := http.NewRequest(http.MethodGet, "/admin/ping", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookieName, Value: token})
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
