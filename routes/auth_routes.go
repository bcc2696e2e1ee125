package routes

import (
	"github.com/labstack/echo/v4"

	"github.com/rozgar360/rozgar_backend/controllers"
	"github.com/rozgar360/rozgar_backend/middleware"
)

// RegisterAuthRoutes sets up the OTP and token endpoints. Logout needs a
// valid access token; everything else is public.
func RegisterAuthRoutes(api *echo.Group, authController *controllers.AuthController) {
	auth := api.Group("/auth")

	auth.POST("/send-otp", authController.SendOTP)
	auth.POST("/verify-otp", authController.VerifyOTP)
	auth.POST("/refresh-token", authController.RefreshToken)
	auth.POST("/logout", authController.Logout, middleware.JWTMiddleware())
}
