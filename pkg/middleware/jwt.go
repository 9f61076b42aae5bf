package middleware

import (
	"net/http"
	"strings"

	"WashroomMonitor/internal/auth"

	"github.com/labstack/echo/v4"
)

// UserContextKey holds the *auth.JWTClaims of an authenticated request.
const UserContextKey = "user"

// JWTMiddleware rejects requests without a valid Bearer token issued by tokens.
func JWTMiddleware(tokens *auth.TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Missing Token"})
			}

			tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid Token"})
			}
			claims, err := tokens.Validate(strings.TrimSpace(tokenString))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid Token"})
			}
			c.Set(UserContextKey, claims)
			return next(c)
		}
	}
}
