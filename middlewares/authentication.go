// SPDX-License-Identifier: GPL-3.0-only

package middlewares

import (
	"context"
	"errors"
	"net/http"

	"arvai-server/models"
	"arvai-server/repository"

	"github.com/labstack/echo/v4"
)

// APIKeyHeader carries the secret on every authenticated request.
const APIKeyHeader = "X-Arvai-API-Key"

// KeyVerifier maps a presented credential to a verified key record. The
// middleware depends on this function rather than a concrete store so a
// stronger scheme can be swapped in without touching the routes.
type KeyVerifier func(ctx context.Context, presented string) (*models.APIKey, error)

// VerifyAPIKeyMiddleware rejects requests whose header is missing,
// malformed, unknown or revoked. All authentication failures answer
// with the same 401 body; a store failure is not an authentication
// verdict and surfaces as 500 instead.
func VerifyAPIKeyMiddleware(verify KeyVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			presented := c.Request().Header.Get(APIKeyHeader)

			apiKey, err := verify(c.Request().Context(), presented)
			if errors.Is(err, repository.ErrUnauthenticated) {
				c.Logger().Error("API key authentication failed.")
				return &echo.HTTPError{
					Code:    http.StatusUnauthorized,
					Message: "Invalid or missing API key",
				}
			}
			if err != nil {
				c.Logger().Errorf("API key verification failed: %v", err)
				return echo.ErrInternalServerError
			}

			c.Set("api_key", *apiKey)
			return next(c)
		}
	}
}
