package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/rozgar360/rozgar_backend/controllers"
	"github.com/rozgar360/rozgar_backend/middleware"
)

// RegisterLabourRoutes sets up the labour discovery endpoints, all behind
// JWT auth; only logged-in users can browse the marketplace.
func RegisterLabourRoutes(api *echo.Group, labourController *controllers.LabourController) {
	labours := api.Group("/labours", middleware.JWTMiddleware())

	labours.GET("", labourController.Search)
	labours.GET("/nearby", labourController.Nearby)
	labours.GET("/:id", labourController.GetByID)
}
