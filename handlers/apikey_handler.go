// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"net/http"
	"strconv"
	"time"

	"arvai-server/repository"

	"github.com/labstack/echo/v4"
)

type APIKeyHandler struct {
	Repo repository.APIKeyRepository
}

// CreateAPIKeyHandler godoc
// @Summary      Issue an API key
// @Description  Generates a new API key for the browser extension. The full secret is
// @Description  only returned once in this response and cannot be retrieved again.
// @Tags         api-keys
// @Accept       json
// @Produce      json
// @Param        request body CreateAPIKeyRequest false "Key label"
// @Success      201 {object} CreateAPIKeyResponse "API key created"
// @Failure      400 {object} echo.HTTPError "Bad request"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /api/keys [post]
func (h *APIKeyHandler) CreateAPIKeyHandler(c echo.Context) error {
	logger := c.Logger()

	var req CreateAPIKeyRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid create API key request payload:", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid request payload, please ensure it is well-formed and has content-type application/json header",
		}
	}

	issued, err := h.Repo.Issue(c.Request().Context(), req.Name)
	if err != nil {
		logger.Errorf("Failed to issue API key: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Infof("API key %d issued.", issued.ID)
	return c.JSON(http.StatusCreated, CreateAPIKeyResponse{
		ID:        issued.ID,
		Key:       issued.Key,
		KeyPrefix: issued.KeyPrefix,
		Name:      issued.Name,
		CreatedAt: issued.CreatedAt.UTC().Format(time.RFC3339),
	})
}

// ListAPIKeysHandler godoc
// @Summary      List API keys
// @Description  Lists all API keys, newest first. Only the display prefix is shown;
// @Description  full secrets are never returned after creation.
// @Tags         api-keys
// @Produce      json
// @Success      200 {array} APIKeyDetails "API keys"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /api/keys [get]
func (h *APIKeyHandler) ListAPIKeysHandler(c echo.Context) error {
	logger := c.Logger()

	keys, err := h.Repo.List(c.Request().Context())
	if err != nil {
		logger.Errorf("Failed to list API keys: %v", err)
		return echo.ErrInternalServerError
	}

	details := make([]APIKeyDetails, 0, len(keys))
	for _, key := range keys {
		detail := APIKeyDetails{
			ID:        key.ID,
			KeyPrefix: key.KeyPrefix,
			Name:      key.Name,
			IsActive:  key.IsActive,
			CreatedAt: key.CreatedAt.UTC().Format(time.RFC3339),
		}
		if key.LastUsedAt != nil {
			lastUsed := key.LastUsedAt.UTC().Format(time.RFC3339)
			detail.LastUsedAt = &lastUsed
		}
		details = append(details, detail)
	}

	return c.JSON(http.StatusOK, details)
}

// RevokeAPIKeyHandler godoc
// @Summary      Revoke an API key
// @Description  Soft-disables a key. A revoked key fails verification but stays listed.
// @Tags         api-keys
// @Produce      json
// @Param        key_id  path  int  true  "API key ID"
// @Success      200 {object} MessageResponse "API key revoked"
// @Failure      400 {object} echo.HTTPError "Bad request"
// @Failure      404 {object} echo.HTTPError "Not found"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /api/keys/{key_id}/revoke [post]
func (h *APIKeyHandler) RevokeAPIKeyHandler(c echo.Context) error {
	logger := c.Logger()

	id, err := parseIDParam(c, "key_id")
	if err != nil {
		return err
	}

	revoked, err := h.Repo.Revoke(c.Request().Context(), id)
	if err != nil {
		logger.Errorf("Failed to revoke API key: %v", err)
		return echo.ErrInternalServerError
	}
	if !revoked {
		return &echo.HTTPError{
			Code:    http.StatusNotFound,
			Message: "API key not found",
		}
	}

	logger.Infof("API key %d revoked.", id)
	return c.JSON(http.StatusOK, MessageResponse{
		Message: "API key revoked",
		Detail:  "id=" + strconv.FormatUint(uint64(id), 10),
	})
}

// DeleteAPIKeyHandler godoc
// @Summary      Delete an API key
// @Description  Removes a key permanently.
// @Tags         api-keys
// @Produce      json
// @Param        key_id  path  int  true  "API key ID"
// @Success      200 {object} MessageResponse "API key deleted"
// @Failure      400 {object} echo.HTTPError "Bad request"
// @Failure      404 {object} echo.HTTPError "Not found"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /api/keys/{key_id} [delete]
func (h *APIKeyHandler) DeleteAPIKeyHandler(c echo.Context) error {
	logger := c.Logger()

	id, err := parseIDParam(c, "key_id")
	if err != nil {
		return err
	}

	deleted, err := h.Repo.Delete(c.Request().Context(), id)
	if err != nil {
		logger.Errorf("Failed to delete API key: %v", err)
		return echo.ErrInternalServerError
	}
	if !deleted {
		return &echo.HTTPError{
			Code:    http.StatusNotFound,
			Message: "API key not found",
		}
	}

	logger.Infof("API key %d deleted.", id)
	return c.JSON(http.StatusOK, MessageResponse{
		Message: "API key deleted",
		Detail:  "id=" + strconv.FormatUint(uint64(id), 10),
	})
}
