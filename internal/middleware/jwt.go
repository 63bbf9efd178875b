package middleware // middleware holds the echo middleware shared by the rental routes

import (
    "net/http"
    "strings"

    "github.com/labstack/echo/v4"

    "github.com/iliyamo/vehicle-rental/internal/utils"
)

// Context keys set by JWTAuth.
const (
    ctxSubject = "subject"
    ctxRole    = "role"
)

// JWTAuth returns an Echo middleware that validates a Bearer access token and
// stores the token's subject and role in the request context.  The secret
// must match the one used by cmd/issuetoken.
func JWTAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
            }
            claims, err := utils.ParseAccessToken(secret, strings.TrimPrefix(auth, "Bearer "))
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
            }
            c.Set(ctxSubject, claims.Subject)
            c.Set(ctxRole, claims.Role)
            return next(c)
        }
    }
}

// Subject returns the authenticated operator, or "anon" before JWTAuth has
// run.
func Subject(c echo.Context) string {
    if s, ok := c.Get(ctxSubject).(string); ok && s != "" {
        return s
    }
    return "anon"
}
