// services/user_service.go
package services

import (
	"context"
	"log"
	"os"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rozgar360/rozgar_backend/models"
	"github.com/rozgar360/rozgar_backend/repositories"
	"github.com/rozgar360/rozgar_backend/utils"
)

// ProfileData is the payload for completing or updating a profile
type ProfileData struct {
	Name            string   `json:"name" validate:"required"`
	Email           string   `json:"email" validate:"omitempty,email"`
	Address         string   `json:"address" validate:"required"`
	City            string   `json:"city" validate:"required"`
	State           string   `json:"state" validate:"required"`
	Pincode         string   `json:"pincode" validate:"required"`
	Bio             string   `json:"bio"`
	IsAvailable     bool     `json:"isAvailable"`
	Skills          []string `json:"skills" validate:"required,min=1"`
	ExperienceYears int      `json:"experienceYears" validate:"min=0"`
	LabourType      string   `json:"labourType" validate:"required"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
}

// ProfileUpdate is the partial payload for PUT /users/profile
type ProfileUpdate struct {
	Name            *string  `json:"name"`
	Email           *string  `json:"email"`
	Address         *string  `json:"address"`
	City            *string  `json:"city"`
	State           *string  `json:"state"`
	Pincode         *string  `json:"pincode"`
	Bio             *string  `json:"bio"`
	IsAvailable     *bool    `json:"isAvailable"`
	Skills          []string `json:"skills"`
	ExperienceYears *int     `json:"experienceYears"`
	LabourType      *string  `json:"labourType"`
	Latitude        *float64 `json:"latitude"`
	Longitude       *float64 `json:"longitude"`
}

// UserService owns profile mutation after login
type UserService struct {
	users  *repositories.UserRepository
	logger *log.Logger
}

func NewUserService(users *repositories.UserRepository) *UserService {
	return &UserService{
		users:  users,
		logger: log.New(os.Stdout, "[USER] ", log.LstdFlags),
	}
}

// CompleteProfile fills in the empty profile created at first login. It can
// run only once; later changes go through UpdateProfile.
func (s *UserService) CompleteProfile(ctx context.Context, userID primitive.ObjectID, data ProfileData) (*models.UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.NewDatabaseError("Failed to complete profile", err)
	}
	if user == nil {
		return nil, utils.NewNotFoundError("User not found")
	}

	if user.HasCompletedProfile() {
		return nil, utils.NewValidationError("Profile already completed. Use update endpoint instead.")
	}

	fields := bson.M{
		"name":            utils.SanitizeInput(data.Name),
		"email":           utils.SanitizeInput(data.Email),
		"address":         utils.SanitizeInput(data.Address),
		"city":            utils.SanitizeInput(data.City),
		"state":           utils.SanitizeInput(data.State),
		"pincode":         utils.SanitizeInput(data.Pincode),
		"bio":             utils.SanitizeInput(data.Bio),
		"isAvailable":     data.IsAvailable,
		"skills":          data.Skills,
		"experienceYears": data.ExperienceYears,
		"labourType":      data.LabourType,
	}
	if data.Latitude != nil {
		fields["latitude"] = *data.Latitude
	}
	if data.Longitude != nil {
		fields["longitude"] = *data.Longitude
	}

	if err := s.users.UpdateFields(ctx, userID, fields); err != nil {
		s.logger.Printf("Error completing profile for %s: %v", userID.Hex(), err)
		return nil, utils.NewDatabaseError("Failed to complete profile", err)
	}

	updated, err := s.users.FindByID(ctx, userID)
	if err != nil || updated == nil {
		return nil, utils.NewDatabaseError("Failed to fetch updated profile", err)
	}

	s.logger.Printf("Profile completed for user %s", userID.Hex())
	return models.FormatUser(updated), nil
}

// GetProfile returns a user's own profile
func (s *UserService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*models.UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.NewDatabaseError("Failed to fetch user profile", err)
	}
	if user == nil {
		return nil, utils.NewNotFoundError("User not found")
	}

	return models.FormatUser(user), nil
}

// UpdateProfile applies a partial update to a completed profile
func (s *UserService) UpdateProfile(ctx context.Context, userID primitive.ObjectID, updates ProfileUpdate) (*models.UserResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, utils.NewDatabaseError("Failed to update profile", err)
	}
	if user == nil {
		return nil, utils.NewNotFoundError("User not found")
	}

	fields := bson.M{}
	if updates.Name != nil && *updates.Name != "" {
		fields["name"] = utils.SanitizeInput(*updates.Name)
	}
	if updates.Email != nil {
		fields["email"] = utils.SanitizeInput(*updates.Email)
	}
	if updates.Address != nil && *updates.Address != "" {
		fields["address"] = utils.SanitizeInput(*updates.Address)
	}
	if updates.City != nil && *updates.City != "" {
		fields["city"] = utils.SanitizeInput(*updates.City)
	}
	if updates.State != nil && *updates.State != "" {
		fields["state"] = utils.SanitizeInput(*updates.State)
	}
	if updates.Pincode != nil && *updates.Pincode != "" {
		fields["pincode"] = utils.SanitizeInput(*updates.Pincode)
	}
	if updates.Bio != nil {
		fields["bio"] = utils.SanitizeInput(*updates.Bio)
	}
	if updates.IsAvailable != nil {
		fields["isAvailable"] = *updates.IsAvailable
	}
	if updates.Skills != nil {
		fields["skills"] = updates.Skills
	}
	if updates.ExperienceYears != nil {
		fields["experienceYears"] = *updates.ExperienceYears
	}
	if updates.LabourType != nil && *updates.LabourType != "" {
		fields["labourType"] = *updates.LabourType
	}
	if updates.Latitude != nil {
		fields["latitude"] = *updates.Latitude
	}
	if updates.Longitude != nil {
		fields["longitude"] = *updates.Longitude
	}

	if len(fields) > 0 {
		if err := s.users.UpdateFields(ctx, userID, fields); err != nil {
			s.logger.Printf("Error updating profile for %s: %v", userID.Hex(), err)
			return nil, utils.NewDatabaseError("Failed to update profile", err)
		}
	}

	updated, err := s.users.FindByID(ctx, userID)
	if err != nil || updated == nil {
		return nil, utils.NewDatabaseError("Failed to fetch updated profile", err)
	}

	s.logger.Printf("Profile updated for user %s", userID.Hex())
	return models.FormatUser(updated), nil
}

// ToggleAvailability flips the work-availability flag
func (s *UserService) ToggleAvailability(ctx context.Context, userID primitive.ObjectID, isAvailable bool) error {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return utils.NewDatabaseError("Failed to update availability", err)
	}
	if user == nil {
		return utils.NewNotFoundError("User not found")
	}

	if err := s.users.UpdateFields(ctx, userID, bson.M{"isAvailable": isAvailable}); err != nil {
		return utils.NewDatabaseError("Failed to update availability", err)
	}

	s.logger.Printf("Availability updated for user %s: %v", userID.Hex(), isAvailable)
	return nil
}
