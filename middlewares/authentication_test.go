// SPDX-License-Identifier: GPL-3.0-only

package middlewares

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"arvai-server/models"
	"arvai-server/repository"

	"github.com/labstack/echo/v4"
)

func stubVerifier(valid string) KeyVerifier {
	return func(_ context.Context, presented string) (*models.APIKey, error) {
		if presented == valid {
			return &models.APIKey{ID: 7, KeyPrefix: "arvai_012345", IsActive: true}, nil
		}
		return nil, repository.ErrUnauthenticated
	}
}

func runMiddleware(t *testing.T, verify KeyVerifier, header string) (*echo.Echo, echo.Context, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/bookmarks", nil)
	if header != "" {
		req.Header.Set(APIKeyHeader, header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	err := VerifyAPIKeyMiddleware(verify)(next)(c)
	return e, c, err
}

func TestMiddlewareAcceptsValidKey(t *testing.T) {
	secret := "arvai_0123456789abcdef0123456789abcdef"

	_, c, err := runMiddleware(t, stubVerifier(secret), secret)
	if err != nil {
		t.Fatalf("Expected request to pass, got %v", err)
	}

	apiKey, ok := c.Get("api_key").(models.APIKey)
	if !ok {
		t.Fatal("Expected verified key stored in context")
	}
	if apiKey.ID != 7 {
		t.Errorf("Expected key ID 7, got %d", apiKey.ID)
	}
}

func TestMiddlewareFailsClosedOnStoreError(t *testing.T) {
	storeDown := func(_ context.Context, _ string) (*models.APIKey, error) {
		return nil, errors.New("database is locked")
	}

	_, _, err := runMiddleware(t, storeDown, "arvai_0123456789abcdef0123456789abcdef")

	httpErr, ok := err.(*echo.HTTPError)
	if !ok {
		t.Fatalf("Expected *echo.HTTPError, got %v", err)
	}
	if httpErr.Code != http.StatusInternalServerError {
		t.Errorf("A store failure must not pass as an auth verdict: expected 500, got %d", httpErr.Code)
	}
}

func TestMiddlewareRejectsUniformly(t *testing.T) {
	secret := "arvai_0123456789abcdef0123456789abcdef"

	cases := map[string]string{
		"missing header": "",
		"wrong prefix":   "ak_0123456789abcdef0123456789abcdef",
		"unknown key":    "arvai_ffffffffffffffffffffffffffffffff",
	}

	var messages []any
	for name, header := range cases {
		_, _, err := runMiddleware(t, stubVerifier(secret), header)

		httpErr, ok := err.(*echo.HTTPError)
		if !ok {
			t.Fatalf("%s: expected *echo.HTTPError, got %v", name, err)
		}
		if httpErr.Code != http.StatusUnauthorized {
			t.Errorf("%s: expected 401, got %d", name, httpErr.Code)
		}
		messages = append(messages, httpErr.Message)
	}

	for i := 1; i < len(messages); i++ {
		if messages[i] != messages[0] {
			t.Errorf("Rejection bodies must not reveal the failure mode: %v vs %v", messages[0], messages[i])
		}
	}
}
