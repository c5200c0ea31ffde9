package middleware

import (
	"net/http"

	"catalogadmin/internal/common"
	"catalogadmin/internal/services"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

const (
	claimsContextKey = "claims"

	msgTokenRequired = "Access token required"
	msgTokenInvalid  = "Invalid or expired token"
)

// TokenParser verifies a raw bearer token.
type TokenParser interface {
	ParseToken(tokenString string) (*services.TokenClaims, error)
}

// JWT rejects requests without a valid bearer token and stores the decoded
// identity in the request context.
func JWT(parser TokenParser) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey: claimsContextKey,
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return parser.ParseToken(auth)
		},
		SuccessHandler: func(c echo.Context) {
			claims, ok := c.Get(claimsContextKey).(*services.TokenClaims)
			if !ok {
				return
			}
			ctx := common.WithIdentity(c.Request().Context(), claims.Identity())
			c.SetRequest(c.Request().WithContext(ctx))
		},
		ErrorHandler: func(c echo.Context, err error) error {
			if c.Request().Header.Get(echo.HeaderAuthorization) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, msgTokenRequired).SetInternal(err)
			}
			return echo.NewHTTPError(http.StatusUnauthorized, msgTokenInvalid).SetInternal(err)
		},
	})
}
