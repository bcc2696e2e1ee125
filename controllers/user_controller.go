package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rozgar360/rozgar_backend/middleware"
	"github.com/rozgar360/rozgar_backend/models"
	"github.com/rozgar360/rozgar_backend/services"
)

// UserController maps the profile endpoints onto the user service
type UserController struct {
	users *services.UserService
}

func NewUserController(users *services.UserService) *UserController {
	return &UserController{users: users}
}

// CompleteProfile handles POST /users/profile
func (uc *UserController) CompleteProfile(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req services.ProfileData
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Missing or invalid profile fields",
		})
	}

	profile, err := uc.users.CompleteProfile(c.Request().Context(), userID, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, map[string]interface{}{
		"success": true,
		"user":    profile,
	})
}

// GetProfile handles GET /users/profile
func (uc *UserController) GetProfile(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	profile, err := uc.users.GetProfile(c.Request().Context(), userID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    profile,
	})
}

// UpdateProfile handles PUT /users/profile
func (uc *UserController) UpdateProfile(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req services.ProfileUpdate
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}

	profile, err := uc.users.UpdateProfile(c.Request().Context(), userID, req)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"user":    profile,
	})
}

// ToggleAvailability handles PATCH /users/availability
func (uc *UserController) ToggleAvailability(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req struct {
		IsAvailable *bool `json:"isAvailable"`
	}
	if err := c.Bind(&req); err != nil || req.IsAvailable == nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "isAvailable is required",
		})
	}

	if err := uc.users.ToggleAvailability(c.Request().Context(), userID, *req.IsAvailable); err != nil {
		return err
	}

	return c.JSON(http.StatusOK, models.Response{
		Success: true,
		Message: "Availability updated",
	})
}

// currentUserID reads the authenticated user's ObjectID from the JWT claims
func currentUserID(c echo.Context) (primitive.ObjectID, error) {
	userID, err := middleware.ExtractUserID(c)
	if err != nil {
		return primitive.NilObjectID, echo.NewHTTPError(http.StatusUnauthorized, "No token provided")
	}

	objID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return primitive.NilObjectID, echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	return objID, nil
}
