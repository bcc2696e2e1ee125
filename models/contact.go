package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Contact types
const (
	ContactTypeCall    = "call"
	ContactTypeMessage = "message"
)

// Contact records one call/message attempt between two users
type Contact struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	FromUserID primitive.ObjectID `json:"fromUserId" bson:"fromUserId"`
	ToUserID   primitive.ObjectID `json:"toUserId" bson:"toUserId"`
	Type       string             `json:"type" bson:"type"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
}

// TrackContactRequest is the body for POST /contacts
type TrackContactRequest struct {
	ToUserID string `json:"toUserId" validate:"required"`
	Type     string `json:"type" validate:"required,oneof=call message"`
}

// ContactParty is the user summary embedded in contact history entries
type ContactParty struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Phone         string `json:"phone"`
	ProfilePicURL string `json:"profilePictureUrl,omitempty"`
}

// ContactResponse is one contact history entry with both parties resolved
type ContactResponse struct {
	ID        string       `json:"id"`
	Type      string       `json:"type"`
	FromUser  ContactParty `json:"fromUser"`
	ToUser    ContactParty `json:"toUser"`
	CreatedAt time.Time    `json:"createdAt"`
}

// ContactHistoryResponse is the paginated contact history
type ContactHistoryResponse struct {
	Success    bool              `json:"success"`
	Contacts   []ContactResponse `json:"contacts"`
	Pagination Pagination        `json:"pagination"`
}
