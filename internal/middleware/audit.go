package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"catalogadmin/internal/common"
	"catalogadmin/pkg/log"

	"github.com/labstack/echo/v4"
)

// Audit logs every write made through the API together with the admin who
// made it. Reads are only logged when they fail.
func Audit(logger log.LoggerService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			method := c.Request().Method
			if !shouldAudit(method, c.Path(), err) {
				return err
			}

			actor := "anonymous"
			if id, ok := common.GetIdentityFromContext(c.Request().Context()); ok {
				actor = id.Email
			}

			status := c.Response().Status
			if err != nil {
				var he *echo.HTTPError
				if errors.As(err, &he) {
					status = he.Code
				} else {
					status, _ = common.StatusFor(err)
				}
			}

			logger.Info("audit: %s %s actor=%s status=%d ip=%s took=%s",
				method, c.Request().URL.Path, actor, status, c.RealIP(), time.Since(start).Round(time.Millisecond))
			return err
		}
	}
}

func shouldAudit(method, path string, reqErr error) bool {
	if strings.HasPrefix(path, "/health") || strings.HasPrefix(path, "/uploads/") {
		return false
	}
	if reqErr != nil {
		return true
	}
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}
