package controllers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/rozgar360/rozgar_backend/middleware"
	"github.com/rozgar360/rozgar_backend/models"
	"github.com/rozgar360/rozgar_backend/services"
	"github.com/rozgar360/rozgar_backend/utils"
)

// AuthController maps the auth endpoints onto the auth service
type AuthController struct {
	auth *services.AuthService
}

func NewAuthController(auth *services.AuthService) *AuthController {
	return &AuthController{auth: auth}
}

// SendOTP handles POST /auth/send-otp
func (ac *AuthController) SendOTP(c echo.Context) error {
	var req models.SendOTPRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Phone number is required",
		})
	}

	resp, err := ac.auth.SendOTP(c.Request().Context(), utils.SanitizeInput(req.Phone))
	if err != nil {
		return err
	}

	if !resp.Success {
		// Rate-limit rejections get 429, delivery failures 400; both carry
		// the soft-failure body unchanged
		status := http.StatusBadRequest
		if strings.Contains(resp.Message, "Too many") {
			status = http.StatusTooManyRequests
		}
		return c.JSON(status, resp)
	}

	return c.JSON(http.StatusOK, resp)
}

// VerifyOTP handles POST /auth/verify-otp
func (ac *AuthController) VerifyOTP(c echo.Context) error {
	var req models.VerifyOTPRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}

	resp, err := ac.auth.VerifyOTP(c.Request().Context(), utils.SanitizeInput(req.Phone), utils.SanitizeInput(req.OTP))
	if err != nil {
		// Wrong or expired codes are client mistakes on this endpoint, so
		// they surface as 400 rather than the kind's default 401
		if appErr, ok := utils.AsAppError(err); ok {
			switch appErr.Kind {
			case utils.KindValidation, utils.KindAuthentication:
				return c.JSON(http.StatusBadRequest, models.Response{
					Success: false,
					Message: appErr.Message,
				})
			}
		}
		return err
	}

	return c.JSON(http.StatusOK, resp)
}

// RefreshToken handles POST /auth/refresh-token
func (ac *AuthController) RefreshToken(c echo.Context) error {
	var req models.RefreshTokenRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}

	resp, err := ac.auth.RefreshAccessToken(c.Request().Context(), req.RefreshToken)
	if err != nil {
		if appErr, ok := utils.AsAppError(err); ok && appErr.Kind != utils.KindDatabase {
			return c.JSON(http.StatusUnauthorized, models.Response{
				Success: false,
				Message: appErr.Message,
			})
		}
		return err
	}

	return c.JSON(http.StatusOK, resp)
}

// Logout handles POST /auth/logout. Requires a valid access token; the user
// is taken from the token, never from the body.
func (ac *AuthController) Logout(c echo.Context) error {
	userID, err := middleware.ExtractUserID(c)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "No token provided")
	}

	var req models.LogoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}

	if err := ac.auth.Logout(c.Request().Context(), userID, req.RefreshToken); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Logged out successfully",
	})
}
