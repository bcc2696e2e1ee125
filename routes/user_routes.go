package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/rozgar360/rozgar_backend/controllers"
	"github.com/rozgar360/rozgar_backend/middleware"
)

// RegisterUserRoutes sets up the profile endpoints, all behind JWT auth
func RegisterUserRoutes(api *echo.Group, userController *controllers.UserController) {
	users := api.Group("/users", middleware.JWTMiddleware())

	users.POST("/profile", userController.CompleteProfile)
	users.GET("/profile", userController.GetProfile)
	users.PUT("/profile", userController.UpdateProfile)
	users.PATCH("/availability", userController.ToggleAvailability)
}
