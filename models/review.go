package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review left by one user for a labour. One review per reviewer/reviewee
// pair; re-submitting replaces the previous rating and comment.
type Review struct {
	ID         primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	ReviewerID primitive.ObjectID `json:"reviewerId" bson:"reviewerId"`
	RevieweeID primitive.ObjectID `json:"revieweeId" bson:"revieweeId"`
	Rating     int                `json:"rating" bson:"rating"`
	Comment    string             `json:"comment,omitempty" bson:"comment,omitempty"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// ReviewerInfo is the reviewer summary embedded in review responses
type ReviewerInfo struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ProfilePicURL string `json:"profilePictureUrl,omitempty"`
}

// ReviewResponse is a review with its reviewer summary attached
type ReviewResponse struct {
	ID        string       `json:"id"`
	Rating    int          `json:"rating"`
	Comment   string       `json:"comment,omitempty"`
	Reviewer  ReviewerInfo `json:"reviewer"`
	CreatedAt time.Time    `json:"createdAt"`
}

// AddReviewRequest is the body for POST /reviews
type AddReviewRequest struct {
	RevieweeID string `json:"revieweeId" validate:"required"`
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	Comment    string `json:"comment"`
}

// ReviewListResponse is the paginated review listing for a user
type ReviewListResponse struct {
	Success       bool             `json:"success"`
	Reviews       []ReviewResponse `json:"reviews"`
	AverageRating float64          `json:"averageRating"`
	TotalReviews  int              `json:"totalReviews"`
	Pagination    Pagination       `json:"pagination"`
}
