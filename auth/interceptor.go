package auth

import (
	"strings"

	"github.com/labstack/echo/v4"
)

const (
	AdminTokenHeader = "X-Admin-Token"
	bearerPrefix     = "Bearer "
)

// AdminVerifier decides whether a request carries admin credentials.
type AdminVerifier interface {
	VerifyAdmin(adminToken, authorization string) error
}

// AdminInterceptor guards admin routes. Rejections surface as the verifier's
// error and are rendered by the server error handler.
func AdminInterceptor(verifier AdminVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header
			if err := verifier.VerifyAdmin(header.Get(AdminTokenHeader), header.Get(echo.HeaderAuthorization)); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// BearerToken extracts the token from an "Authorization: Bearer <token>" value.
func BearerToken(authorization string) (string, bool) {
	if len(authorization) <= len(bearerPrefix) || !strings.EqualFold(authorization[:len(bearerPrefix)], bearerPrefix) {
		return "", false
	}
	token := strings.TrimSpace(authorization[len(bearerPrefix):])
	return token, token != ""
}
