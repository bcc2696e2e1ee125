package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rozgar360/rozgar_backend/models"
	"github.com/rozgar360/rozgar_backend/services"
)

// ContactController maps the contact tracking endpoints onto the contact service
type ContactController struct {
	contacts *services.ContactService
}

func NewContactController(contacts *services.ContactService) *ContactController {
	return &ContactController{contacts: contacts}
}

// TrackContact handles POST /contacts
func (cc *ContactController) TrackContact(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req models.TrackContactRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid request body",
		})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Contact type must be call or message",
		})
	}

	toUserID, err := primitive.ObjectIDFromHex(req.ToUserID)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid user ID",
		})
	}

	if err := cc.contacts.TrackContact(c.Request().Context(), userID, toUserID, req.Type); err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, models.Response{
		Success: true,
		Message: "Contact tracked",
	})
}

// GetHistory handles GET /contacts/history
func (cc *ContactController) GetHistory(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	resp, err := cc.contacts.GetContactHistory(
		c.Request().Context(),
		userID,
		c.QueryParam("direction"),
		queryInt(c, "page", 1),
		queryInt(c, "limit", 20),
	)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, resp)
}
