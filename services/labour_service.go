// services/labour_service.go
package services

import (
	"context"
	"log"
	"math"
	"os"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rozgar360/rozgar_backend/models"
	"github.com/rozgar360/rozgar_backend/repositories"
	"github.com/rozgar360/rozgar_backend/utils"
)

// nearbyFetchLimit bounds how many located profiles are pulled into memory
// for the distance scan.
const nearbyFetchLimit = 1000

// LabourService serves the marketplace's read side: search, detail and
// nearby lookups over completed profiles.
type LabourService struct {
	users  *repositories.UserRepository
	logger *log.Logger
}

func NewLabourService(users *repositories.UserRepository) *LabourService {
	return &LabourService{
		users:  users,
		logger: log.New(os.Stdout, "[LABOUR] ", log.LstdFlags),
	}
}

// Search runs the filtered, paginated labour listing
func (s *LabourService) Search(ctx context.Context, filters models.LabourSearchFilters) (*models.LabourSearchResponse, error) {
	if filters.Page < 1 {
		filters.Page = 1
	}
	if filters.Limit < 1 {
		filters.Limit = 20
	}
	if filters.Limit > 100 {
		filters.Limit = 100
	}

	users, total, err := s.users.Search(ctx, filters)
	if err != nil {
		s.logger.Printf("Error searching labours: %v", err)
		return nil, utils.NewDatabaseError("Failed to search labours", err)
	}

	labours := make([]models.UserResponse, 0, len(users))
	for i := range users {
		if formatted := models.FormatUser(&users[i]); formatted != nil {
			labours = append(labours, *formatted)
		}
	}

	totalPages := int(math.Ceil(float64(total) / float64(filters.Limit)))

	return &models.LabourSearchResponse{
		Success: true,
		Labours: labours,
		Pagination: models.Pagination{
			Page:       filters.Page,
			Limit:      filters.Limit,
			Total:      total,
			TotalPages: totalPages,
		},
	}, nil
}

// GetByID returns one labour profile. Incomplete profiles are invisible to
// other users.
func (s *LabourService) GetByID(ctx context.Context, id primitive.ObjectID) (*models.UserResponse, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		s.logger.Printf("Error fetching labour %s: %v", id.Hex(), err)
		return nil, utils.NewDatabaseError("Failed to fetch labour details", err)
	}
	if user == nil {
		return nil, utils.NewNotFoundError("Labour not found")
	}
	if !user.HasCompletedProfile() {
		return nil, utils.NewNotFoundError("Labour profile not completed")
	}

	return models.FormatUser(user), nil
}

// Nearby returns completed profiles within radius km of the given point,
// closest first. The distance filter runs in memory over the located set.
func (s *LabourService) Nearby(ctx context.Context, latitude, longitude, radius float64, limit int) ([]models.LabourWithDistance, error) {
	if latitude == 0 && longitude == 0 {
		return nil, utils.NewValidationError("Latitude and longitude are required")
	}
	if latitude < -90 || latitude > 90 {
		return nil, utils.NewValidationError("Invalid latitude")
	}
	if longitude < -180 || longitude > 180 {
		return nil, utils.NewValidationError("Invalid longitude")
	}

	if radius <= 0 {
		radius = 10
	}
	if limit <= 0 {
		limit = 20
	}

	users, err := s.users.FindWithLocation(ctx, nearbyFetchLimit)
	if err != nil {
		s.logger.Printf("Error fetching located labours: %v", err)
		return nil, utils.NewDatabaseError("Failed to fetch nearby labours", err)
	}

	return FilterByDistance(users, latitude, longitude, radius, limit), nil
}

// FilterByDistance annotates each located profile with its distance from
// the origin, drops everything outside the radius and returns the closest
// entries first.
func FilterByDistance(users []models.User, latitude, longitude, radius float64, limit int) []models.LabourWithDistance {
	result := make([]models.LabourWithDistance, 0, len(users))

	for i := range users {
		u := &users[i]
		if u.Latitude == nil || u.Longitude == nil {
			continue
		}

		distance := utils.HaversineDistance(latitude, longitude, *u.Latitude, *u.Longitude)
		if distance > radius {
			continue
		}

		formatted := models.FormatUser(u)
		if formatted == nil {
			continue
		}

		result = append(result, models.LabourWithDistance{
			UserResponse: *formatted,
			Distance:     math.Round(distance*100) / 100,
		})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Distance < result[j].Distance
	})

	if len(result) > limit {
		result = result[:limit]
	}

	return result
}
