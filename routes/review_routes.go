package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/rozgar360/rozgar_backend/controllers"
	"github.com/rozgar360/rozgar_backend/middleware"
)

// RegisterReviewRoutes sets up the review endpoints, all behind JWT auth
func RegisterReviewRoutes(api *echo.Group, reviewController *controllers.ReviewController) {
	reviews := api.Group("/reviews", middleware.JWTMiddleware())

	reviews.GET("/:userId", reviewController.GetReviews)
	reviews.POST("", reviewController.AddReview)
	reviews.DELETE("/:id", reviewController.DeleteReview)
}
