package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/rozgar360/rozgar_backend/models"
	"github.com/rozgar360/rozgar_backend/services"
	"github.com/rozgar360/rozgar_backend/utils"
)

// LabourController maps the labour discovery endpoints onto the labour service
type LabourController struct {
	labours *services.LabourService
}

func NewLabourController(labours *services.LabourService) *LabourController {
	return &LabourController{labours: labours}
}

// Search handles GET /labours
func (lc *LabourController) Search(c echo.Context) error {
	filters := models.LabourSearchFilters{
		Search:     utils.SanitizeInput(c.QueryParam("search")),
		City:       utils.SanitizeInput(c.QueryParam("city")),
		LabourType: utils.SanitizeInput(c.QueryParam("labourType")),
		SortBy:     c.QueryParam("sortBy"),
		Page:       queryInt(c, "page", 1),
		Limit:      queryInt(c, "limit", 20),
	}

	if skills := c.QueryParam("skills"); skills != "" {
		for _, skill := range strings.Split(skills, ",") {
			if s := strings.TrimSpace(skill); s != "" {
				filters.Skills = append(filters.Skills, s)
			}
		}
	}

	if v := c.QueryParam("minExperience"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filters.MinExperience = &n
		}
	}
	if v := c.QueryParam("maxExperience"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			filters.MaxExperience = &n
		}
	}
	if v := c.QueryParam("minRating"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			filters.MinRating = f
		}
	}
	filters.AvailableOnly = c.QueryParam("available") == "true"

	resp, err := lc.labours.Search(c.Request().Context(), filters)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, resp)
}

// Nearby handles GET /labours/nearby
func (lc *LabourController) Nearby(c echo.Context) error {
	lat, err := strconv.ParseFloat(c.QueryParam("lat"), 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "lat and lng are required",
		})
	}
	lng, err := strconv.ParseFloat(c.QueryParam("lng"), 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "lat and lng are required",
		})
	}

	var radius float64
	if v := c.QueryParam("radius"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			radius = f
		}
	}

	labours, err := lc.labours.Nearby(c.Request().Context(), lat, lng, radius, queryInt(c, "limit", 20))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, models.NearbyLaboursResponse{
		Success: true,
		Labours: labours,
	})
}

// GetByID handles GET /labours/:id
func (lc *LabourController) GetByID(c echo.Context) error {
	objID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, models.Response{
			Success: false,
			Message: "Invalid labour ID",
		})
	}

	labour, err := lc.labours.GetByID(c.Request().Context(), objID)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"success": true,
		"labour":  labour,
	})
}

// queryInt parses an integer query parameter with a fallback
func queryInt(c echo.Context, name string, fallback int) int {
	v := c.QueryParam(name)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
