package api

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// userIDKey is the echo context key carrying the authenticated user id.
const userIDKey = "userID"

// RequireAuth resolves the bearer token once per request and attaches
// the authenticated user id to the echo context. Requests without a
// valid token are rejected with 401.
func RequireAuth(auth Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID, err := auth.UserIDFromAuthHeader(c.Request().Header.Get(echo.HeaderAuthorization))
			if err != nil {
				return c.JSON(http.StatusUnauthorized, errorResponse{Message: "Authentication required", Error: err.Error()})
			}
			c.Set(userIDKey, userID)
			return next(c)
		}
	}
}

// callerID returns the authenticated user id stored by RequireAuth.
func callerID(c echo.Context) string {
	id, _ := c.Get(userIDKey).(string)
	return id
}
