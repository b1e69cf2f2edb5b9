package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/labstack/echo/v4"
)

const APIKeyHeader = "X-Api-Key"

// APIKey guards a route group with a shared key sent in X-Api-Key (or the
// api_key query parameter for browser downloads). When enabled=false it
// passes everything through.
func APIKey(enabled bool, key string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !enabled {
				return next(c)
			}
			got := c.Request().Header.Get(APIKeyHeader)
			if got == "" {
				got = c.QueryParam("api_key")
			}
			if got == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing API key"})
			}
			if subtle.ConstantTimeCompare([]byte(got), []byte(key)) != 1 {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid API key"})
			}
			return next(c)
		}
	}
}
