package handler // handler defines http handlers

import (
    "errors" // sentinel values used in getUserID

    "github.com/labstack/echo/v4" // echo defines request context types
)

// getUserID extracts the authenticated user id that the JWT middleware
// stored in the echo context. The middleware always stores a string; any
// other shape means the route was registered without JWTAuth.
func getUserID(c echo.Context) (string, error) {
    v := c.Get("user_id")
    if s, ok := v.(string); ok && s != "" {
        return s, nil
    }
    return "", errors.New("invalid user_id in context")
}
