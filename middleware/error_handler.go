// middleware/error_handler.go
package middleware

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/rozgar360/rozgar_backend/config"
	"github.com/rozgar360/rozgar_backend/models"
	"github.com/rozgar360/rozgar_backend/utils"
)

// HTTPErrorHandler turns every uncaught error into the {success,message}
// envelope. Internal details are hidden in production.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	statusCode := http.StatusInternalServerError
	message := "Internal server error"

	if appErr, ok := utils.AsAppError(err); ok {
		statusCode = appErr.StatusCode()
		message = appErr.Message
	} else if httpErr, ok := err.(*echo.HTTPError); ok {
		statusCode = httpErr.Code
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		}
	}

	if statusCode >= http.StatusInternalServerError {
		log.Printf("Error handling %s %s: %v", c.Request().Method, c.Request().URL.Path, err)
		if config.IsProduction() {
			message = "Internal server error"
		} else if message == "Internal server error" && err != nil {
			message = err.Error()
		}
	}

	if writeErr := c.JSON(statusCode, models.Response{
		Success: false,
		Message: message,
	}); writeErr != nil {
		log.Printf("Error writing error response: %v", writeErr)
	}
}
