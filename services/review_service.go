// services/review_service.go
package services

import (
	"context"
	"log"
	"math"
	"os"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rozgar360/rozgar_backend/models"
	"github.com/rozgar360/rozgar_backend/utils"
)

// ReviewStore is the persistence surface for review rows
type ReviewStore interface {
	Upsert(ctx context.Context, reviewerID, revieweeID primitive.ObjectID, rating int, comment string) (*models.Review, error)
	FindByReviewee(ctx context.Context, revieweeID primitive.ObjectID, skip, limit int64) ([]models.Review, int64, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Review, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	FindRatings(ctx context.Context, revieweeID primitive.ObjectID) ([]int, error)
}

// ReviewUserStore is the slice of user persistence the review flow touches
type ReviewUserStore interface {
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	UpdateRating(ctx context.Context, id primitive.ObjectID, rating float64, totalReviews int) error
}

// ReviewService handles ratings left for labours and keeps each labour's
// aggregate rating in sync.
type ReviewService struct {
	reviews ReviewStore
	users   ReviewUserStore
	logger  *log.Logger
}

func NewReviewService(reviews ReviewStore, users ReviewUserStore) *ReviewService {
	return &ReviewService{
		reviews: reviews,
		users:   users,
		logger:  log.New(os.Stdout, "[REVIEW] ", log.LstdFlags),
	}
}

// AddReview creates or replaces the caller's review for a labour
func (s *ReviewService) AddReview(ctx context.Context, reviewerID, revieweeID primitive.ObjectID, rating int, comment string) (*models.ReviewResponse, error) {
	if reviewerID == revieweeID {
		return nil, utils.NewValidationError("Cannot review yourself")
	}
	if rating < 1 || rating > 5 {
		return nil, utils.NewValidationError("Rating must be between 1 and 5")
	}

	reviewee, err := s.users.FindByID(ctx, revieweeID)
	if err != nil {
		return nil, utils.NewDatabaseError("Failed to add review", err)
	}
	if reviewee == nil {
		return nil, utils.NewNotFoundError("Labour not found")
	}

	review, err := s.reviews.Upsert(ctx, reviewerID, revieweeID, rating, utils.SanitizeInput(comment))
	if err != nil {
		s.logger.Printf("Error adding review %s -> %s: %v", reviewerID.Hex(), revieweeID.Hex(), err)
		return nil, utils.NewDatabaseError("Failed to add review", err)
	}

	s.refreshUserRating(ctx, revieweeID)

	s.logger.Printf("Review added by %s for %s", reviewerID.Hex(), revieweeID.Hex())

	return s.toResponse(ctx, review), nil
}

// GetReviewsForUser returns the reviews a labour received, with the
// aggregate rating and paging.
func (s *ReviewService) GetReviewsForUser(ctx context.Context, userID primitive.ObjectID, page, limit int) (*models.ReviewListResponse, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	skip := int64((page - 1) * limit)

	reviews, total, err := s.reviews.FindByReviewee(ctx, userID, skip, int64(limit))
	if err != nil {
		s.logger.Printf("Error fetching reviews for %s: %v", userID.Hex(), err)
		return nil, utils.NewDatabaseError("Failed to fetch reviews", err)
	}

	responses := make([]models.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		if resp := s.toResponse(ctx, &reviews[i]); resp != nil {
			responses = append(responses, *resp)
		}
	}

	var averageRating float64
	var totalReviews int
	if user, err := s.users.FindByID(ctx, userID); err == nil && user != nil {
		averageRating = user.Rating
		totalReviews = user.TotalReviews
	}

	return &models.ReviewListResponse{
		Success:       true,
		Reviews:       responses,
		AverageRating: averageRating,
		TotalReviews:  totalReviews,
		Pagination: models.Pagination{
			Page:       page,
			Limit:      limit,
			Total:      total,
			TotalPages: int(math.Ceil(float64(total) / float64(limit))),
		},
	}, nil
}

// DeleteReview removes the caller's own review and refreshes the aggregate
func (s *ReviewService) DeleteReview(ctx context.Context, reviewID, userID primitive.ObjectID) error {
	review, err := s.reviews.FindByID(ctx, reviewID)
	if err != nil {
		return utils.NewDatabaseError("Failed to delete review", err)
	}
	if review == nil {
		return utils.NewNotFoundError("Review not found")
	}

	if review.ReviewerID != userID {
		return utils.NewValidationError("You can only delete your own reviews")
	}

	if err := s.reviews.Delete(ctx, reviewID); err != nil {
		s.logger.Printf("Error deleting review %s: %v", reviewID.Hex(), err)
		return utils.NewDatabaseError("Failed to delete review", err)
	}

	s.refreshUserRating(ctx, review.RevieweeID)

	s.logger.Printf("Review %s deleted by %s", reviewID.Hex(), userID.Hex())
	return nil
}

// refreshUserRating recomputes and stores the aggregate rating. Failures
// are logged only; the stored aggregate is a cache of the review rows.
func (s *ReviewService) refreshUserRating(ctx context.Context, userID primitive.ObjectID) {
	ratings, err := s.reviews.FindRatings(ctx, userID)
	if err != nil {
		s.logger.Printf("Error loading ratings for %s: %v", userID.Hex(), err)
		return
	}

	average := AverageRating(ratings)

	if err := s.users.UpdateRating(ctx, userID, average, len(ratings)); err != nil {
		s.logger.Printf("Error updating rating for %s: %v", userID.Hex(), err)
	}
}

// AverageRating computes the mean of the ratings rounded to two decimals.
// An empty slice averages to zero.
func AverageRating(ratings []int) float64 {
	if len(ratings) == 0 {
		return 0
	}

	sum := 0
	for _, r := range ratings {
		sum += r
	}

	average := float64(sum) / float64(len(ratings))
	return math.Round(average*100) / 100
}

// toResponse resolves the reviewer summary for one review
func (s *ReviewService) toResponse(ctx context.Context, review *models.Review) *models.ReviewResponse {
	resp := &models.ReviewResponse{
		ID:        review.ID.Hex(),
		Rating:    review.Rating,
		Comment:   review.Comment,
		CreatedAt: review.CreatedAt,
	}

	if reviewer, err := s.users.FindByID(ctx, review.ReviewerID); err == nil && reviewer != nil {
		resp.Reviewer = models.ReviewerInfo{
			ID:            reviewer.ID.Hex(),
			Name:          reviewer.Name,
			ProfilePicURL: reviewer.ProfilePicURL,
		}
	}

	return resp
}
