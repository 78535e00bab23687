// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"net/http"

	"arvai-server/commons"

	"github.com/labstack/echo/v4"
)

// HealthHandler godoc
// @Summary      Health check
// @Tags         system
// @Produce      json
// @Success      200 {object} HealthResponse "Service status"
// @Router       /health [get]
func HealthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{
		Status:  "ok",
		Version: commons.AppVersion,
	})
}
