package apperrors

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
)

// AppError carries the HTTP status and the public message for a failure.
// Err holds the underlying cause and is only ever logged, never returned
// in a response body.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// HTTPErrorHandler translates errors at the API boundary. AppErrors map to
// their status and public message, echo errors pass through, anything else
// is reported as a generic 500.
func HTTPErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	var appErr *AppError
	if errors.As(err, &appErr) {
		if appErr.Err != nil {
			log.Printf("request failed: %s: %v", appErr.Message, appErr.Err)
		}
		c.JSON(appErr.Code, echo.Map{"error": appErr.Message})
		return
	}

	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		c.JSON(httpErr.Code, echo.Map{"error": fmt.Sprintf("%v", httpErr.Message)})
		return
	}

	log.Printf("unexpected error: %v", err)
	c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
}
