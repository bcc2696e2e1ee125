package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RefreshToken is the server-side record of an issued refresh token. A token
// is active while RevokedAt is nil and ExpiresAt is in the future. Multiple
// active tokens per user are allowed (one per device/session).
type RefreshToken struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	UserID    primitive.ObjectID `json:"userId" bson:"userId"`
	Token     string             `json:"token" bson:"token"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
	ExpiresAt time.Time          `json:"expiresAt" bson:"expiresAt"`
	RevokedAt *time.Time         `json:"revokedAt,omitempty" bson:"revokedAt,omitempty"`
}

// IsActive reports whether the token can still be exchanged.
func (t *RefreshToken) IsActive(now time.Time) bool {
	return t.RevokedAt == nil && now.Before(t.ExpiresAt)
}
