// models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// User model. A user is created with empty profile fields on first verified
// OTP login; an empty Name means the profile has not been completed yet.
type User struct {
	ID              primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Phone           string             `json:"phone" bson:"phone"`
	Email           string             `json:"email,omitempty" bson:"email,omitempty"`
	Name            string             `json:"name" bson:"name"`
	ProfilePicURL   string             `json:"profilePictureUrl,omitempty" bson:"profilePictureUrl,omitempty"`
	Bio             string             `json:"bio,omitempty" bson:"bio,omitempty"`
	Address         string             `json:"address" bson:"address"`
	City            string             `json:"city" bson:"city"`
	State           string             `json:"state" bson:"state"`
	Pincode         string             `json:"pincode" bson:"pincode"`
	Latitude        *float64           `json:"latitude,omitempty" bson:"latitude,omitempty"`
	Longitude       *float64           `json:"longitude,omitempty" bson:"longitude,omitempty"`
	IsAvailable     bool               `json:"isAvailable" bson:"isAvailable"`
	Skills          []string           `json:"skills" bson:"skills"`
	ExperienceYears int                `json:"experienceYears" bson:"experienceYears"`
	LabourType      string             `json:"labourType" bson:"labourType"`
	Rating          float64            `json:"rating" bson:"rating"`
	TotalReviews    int                `json:"totalReviews" bson:"totalReviews"`
	IsVerified      bool               `json:"isVerified" bson:"isVerified"`
	IsActive        bool               `json:"isActive" bson:"isActive"`
	LastLoginAt     time.Time          `json:"lastLoginAt" bson:"lastLoginAt"`
	CreatedAt       time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt       time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// HasCompletedProfile reports whether the profile-setup step has been done.
func (u *User) HasCompletedProfile() bool {
	return u.Name != ""
}

// UserResponse is the public shape of a user profile
type UserResponse struct {
	ID              string    `json:"id"`
	Phone           string    `json:"phone"`
	Email           string    `json:"email,omitempty"`
	Name            string    `json:"name"`
	ProfilePicURL   string    `json:"profilePictureUrl,omitempty"`
	Bio             string    `json:"bio,omitempty"`
	Address         string    `json:"address"`
	City            string    `json:"city"`
	State           string    `json:"state"`
	Pincode         string    `json:"pincode"`
	Latitude        *float64  `json:"latitude,omitempty"`
	Longitude       *float64  `json:"longitude,omitempty"`
	IsAvailable     bool      `json:"isAvailable"`
	Skills          []string  `json:"skills"`
	ExperienceYears int       `json:"experienceYears"`
	LabourType      string    `json:"labourType"`
	Rating          float64   `json:"rating"`
	TotalReviews    int       `json:"totalReviews"`
	IsVerified      bool      `json:"isVerified"`
	CreatedAt       time.Time `json:"createdAt"`
}

// FormatUser converts a User to its public response shape. Returns nil for a
// nil user or a user whose profile has not been completed; the client relies
// on a null user to branch into profile setup.
func FormatUser(u *User) *UserResponse {
	if u == nil || !u.HasCompletedProfile() {
		return nil
	}

	skills := u.Skills
	if skills == nil {
		skills = []string{}
	}

	return &UserResponse{
		ID:              u.ID.Hex(),
		Phone:           u.Phone,
		Email:           u.Email,
		Name:            u.Name,
		ProfilePicURL:   u.ProfilePicURL,
		Bio:             u.Bio,
		Address:         u.Address,
		City:            u.City,
		State:           u.State,
		Pincode:         u.Pincode,
		Latitude:        u.Latitude,
		Longitude:       u.Longitude,
		IsAvailable:     u.IsAvailable,
		Skills:          skills,
		ExperienceYears: u.ExperienceYears,
		LabourType:      u.LabourType,
		Rating:          u.Rating,
		TotalReviews:    u.TotalReviews,
		IsVerified:      u.IsVerified,
		CreatedAt:       u.CreatedAt,
	}
}
