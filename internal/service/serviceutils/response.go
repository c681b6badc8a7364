package serviceutils

import (
	"github.com/labstack/echo/v4"

	"github.com/AlefSillva/projeto-empresa-db/internal/logger"
)

// ErrorResponse is the body returned for failed requests.
type ErrorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// ResponseError logs err with the request logger and writes an ErrorResponse.
func ResponseError(c echo.Context, status int, message string, err error) error {
	body := ErrorResponse{Message: message}
	if err != nil {
		logger.ErrorLog(c.Request().Context(), "%s: %v", message, err)
		body.Error = err.Error()
	}
	return c.JSON(status, body)
}

// ResponseSuccess writes data as the JSON body.
func ResponseSuccess(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, data)
}
