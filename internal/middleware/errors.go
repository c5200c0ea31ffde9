package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"catalogadmin/internal/common"
	"catalogadmin/pkg/log"

	"github.com/labstack/echo/v4"
)

// ErrorHandler renders every error as {success: false, message}.
func ErrorHandler(logger log.LoggerService) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var (
			status  int
			message string
			he      *echo.HTTPError
		)
		if errors.As(err, &he) {
			status = he.Code
			message = fmt.Sprint(he.Message)
		} else {
			status, message = common.StatusFor(err)
		}

		if status >= http.StatusInternalServerError {
			logger.Error("%s %s: %v", c.Request().Method, c.Request().URL.Path, err)
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, common.ErrorResponse{Success: false, Message: message})
		}
		if err != nil {
			logger.Error("failed to write error response: %v", err)
		}
	}
}
