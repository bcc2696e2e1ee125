package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/rozgar360/rozgar_backend/controllers"
	"github.com/rozgar360/rozgar_backend/middleware"
)

// RegisterContactRoutes sets up the contact tracking endpoints, all behind
// JWT auth
func RegisterContactRoutes(api *echo.Group, contactController *controllers.ContactController) {
	contacts := api.Group("/contacts", middleware.JWTMiddleware())

	contacts.POST("", contactController.TrackContact)
	contacts.GET("/history", contactController.GetHistory)
}
