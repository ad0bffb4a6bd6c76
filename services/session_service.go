package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"github.com/mara-ellison/maras-boutique-api/config"
	"github.com/mara-ellison/maras-boutique-api/models"
)

// SessionTTL is the sliding expiration window: every authenticated
// request pushes the session's expiry this far into the future.
const SessionTTL = 24 * time.Hour

// SessionService manages server-side admin sessions keyed by opaque
// token. Sessions live in the database so they survive restarts and
// are safe under concurrent requests.
type SessionService struct {
	ttl time.Duration
}

var sessionServiceInstance *SessionService

// InitSessionService initializes the session service
func InitSessionService() *SessionService {
	sessionServiceInstance = &SessionService{ttl: SessionTTL}
	return sessionServiceInstance
}

// GetSessionService returns the initialized session service instance
func GetSessionService() *SessionService {
	return sessionServiceInstance
}

// SetSessionService sets the session service instance (primarily for testing)
func SetSessionService(service *SessionService) {
	sessionServiceInstance = service
}

// Create issues a new authenticated session and returns its token.
func (s *SessionService) Create() (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}

	session := models.Session{
		Token:         token,
		Authenticated: true,
		ExpiresAt:     time.Now().Add(s.ttl),
	}
	if err := config.GetDB().Create(&session).Error; err != nil {
		return "", fmt.Errorf("failed to persist session: %w", err)
	}

	return token, nil
}

// Validate reports whether the token belongs to a live authenticated
// session. A valid lookup slides the expiry forward by the TTL.
func (s *SessionService) Validate(token string) bool {
	if token == "" {
		return false
	}

	db := config.GetDB()
	var session models.Session
	if err := db.First(&session, "token = ?", token).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("session lookup failed: %v", err)
		}
		return false
	}

	if !session.Authenticated || session.Expired() {
		return false
	}

	// Sliding expiration. A failed touch is logged, not fatal: the
	// session is still valid for this request.
	if err := db.Model(&session).Update("expires_at", time.Now().Add(s.ttl)).Error; err != nil {
		log.Printf("failed to extend session expiry: %v", err)
	}

	return true
}

// Destroy removes the session behind the token. Destroying a missing
// or already-destroyed session is not an error.
func (s *SessionService) Destroy(token string) error {
	if token == "" {
		return nil
	}

	if err := config.GetDB().Delete(&models.Session{}, "token = ?", token).Error; err != nil {
		return fmt.Errorf("failed to destroy session: %w", err)
	}
	return nil
}

// PurgeExpired removes sessions past their expiry. Called
// opportunistically on login; losing the race to another request is
// harmless.
func (s *SessionService) PurgeExpired() {
	if err := config.GetDB().Delete(&models.Session{}, "expires_at < ?", time.Now()).Error; err != nil {
		log.Printf("failed to purge expired sessions: %v", err)
	}
}

// generateToken returns 32 random bytes hex-encoded.
func generateToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
