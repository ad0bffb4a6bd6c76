package models

import (
	"time"
)

// Session is a server-held admin session keyed by an opaque token. The
// token travels in a cookie; everything else stays in the database.
// Expiry is sliding: every authenticated request pushes ExpiresAt
// forward.
type Session struct {
	Token         string    `gorm:"primaryKey" json:"-"`
	Authenticated bool      `gorm:"not null" json:"authenticated"`
	CreatedAt     time.Time `json:"created_at"`
	ExpiresAt     time.Time `gorm:"not null;index" json:"expires_at"`
}

// TableName specifies the table name for the Session model
func (Session) TableName() string {
	return "sessions"
}

// Expired reports whether the session has passed its expiry.
func (s *Session) Expired() bool {
	return time.Now().After(s.ExpiresAt)
}
