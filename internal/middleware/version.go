package middleware

import (
	"github.com/labstack/echo/v4"
)

const HeaderAPIVersion = "X-API-Version"

// APIVersion stamps every response with the running build version.
func APIVersion(version string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if version != "" {
				c.Response().Header().Set(HeaderAPIVersion, version)
			}
			return next(c)
		}
	}
}
