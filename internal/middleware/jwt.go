package middleware // middleware provides shared request processing for handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/academic-records-api/internal/utils"
)

// Context keys under which the access guard stores the verified identity.
const (
	CtxUserID = "user_id"
	CtxEmail  = "email"
)

// JWTAuth returns an Echo middleware that guards protected routes. It
// requires an `Authorization: Bearer <token>` header; a missing header or
// a different scheme is rejected with 403 before any token parsing. A
// token that fails signature or expiry checks is rejected with the same
// generic message regardless of the reason, so callers cannot probe which
// check failed. On success the decoded identity is attached to the
// request context under CtxUserID and CtxEmail; handlers must trust only
// identity sourced from this guard.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusForbidden, echo.Map{
					"success": false,
					"message": "Token missing or invalid",
				})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			claims, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				// Expired vs tampered is interesting for diagnostics
				// but must not be visible to the client.
				if errors.Is(err, utils.ErrTokenExpired) {
					c.Logger().Debugf("rejected expired token")
				}
				return c.JSON(http.StatusForbidden, echo.Map{
					"success": false,
					"message": "Token verification failed",
				})
			}

			c.Set(CtxUserID, claims.UserID)
			c.Set(CtxEmail, claims.Email)
			return next(c)
		}
	}
}
