package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/rozgar360/rozgar_backend/config"
	"github.com/rozgar360/rozgar_backend/controllers"
)

// Controllers bundles the controllers the route registration needs
type Controllers struct {
	Auth    *controllers.AuthController
	User    *controllers.UserController
	Labour  *controllers.LabourController
	Review  *controllers.ReviewController
	Contact *controllers.ContactController
}

// SetupRoutes mounts every route group under the versioned API prefix
func SetupRoutes(e *echo.Echo, ctrl Controllers) {
	api := e.Group("/api/" + config.APIVersion())

	RegisterAuthRoutes(api, ctrl.Auth)
	RegisterUserRoutes(api, ctrl.User)
	RegisterLabourRoutes(api, ctrl.Labour)
	RegisterReviewRoutes(api, ctrl.Review)
	RegisterContactRoutes(api, ctrl.Contact)
}
