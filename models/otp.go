package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OTPVerification represents one issued OTP for a phone number. Records are
// never deleted; the history doubles as the rate-limit window and audit trail.
type OTPVerification struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Phone      string             `json:"phone" bson:"phone"`
	OTP        string             `json:"otp" bson:"otp"`
	IsVerified bool               `json:"isVerified" bson:"isVerified"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
	ExpiresAt  time.Time          `json:"expiresAt" bson:"expiresAt"`
}
