package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rozgar360/rozgar_backend/models"
	"github.com/rozgar360/rozgar_backend/services"
)

// ReviewController maps the review endpoints onto the review service
type ReviewController struct {
	reviews *services.ReviewService
}

func NewReviewController(reviews *services.ReviewService) *ReviewController {
	return &ReviewController{reviews: reviews}
}

// AddReview handles POST /reviews
func (rc *ReviewController) AddReview(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req models.AddReviewRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Rating must be between 1 and 5",
		})
	}

	revieweeID, err := primitive.ObjectIDFromHex(req.RevieweeID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid reviewee ID",
		})
	}

	review, err := rc.reviews.AddReview(c.Request().Context(), userID, revieweeID, req.Rating, req.Comment)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"review":  review,
	})
}

// GetReviews handles GET /reviews/:userId
func (rc *ReviewController) GetReviews(c echo.Context) error {
	userID, err := primitive.ObjectIDFromHex(c.Param("userId"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid user ID",
		})
	}

	resp, err := rc.reviews.GetReviewsForUser(c.Request().Context(), userID, queryInt(c, "page", 1), queryInt(c, "limit", 20))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, resp)
}

// DeleteReview handles DELETE /reviews/:id
func (rc *ReviewController) DeleteReview(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	reviewID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid review ID",
		})
	}

	if err := rc.reviews.DeleteReview(c.Request().Context(), reviewID, userID); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Review deleted",
	})
}
