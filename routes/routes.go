// SPDX-License-Identifier: GPL-3.0-only

package routes

import (
	"arvai-server/commons"
	"arvai-server/handlers"
	"arvai-server/middlewares"
	"arvai-server/repository"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

// RegisterRoutes wires the repositories onto the HTTP surface. All
// bookmark routes sit behind the API-key check; the key-management
// routes are the bootstrap surface the desktop frontend uses to mint
// the first key, so they stay open.
func RegisterRoutes(e *echo.Echo, conn *gorm.DB) {
	commons.Logger.Debug("Registering routes")

	bookmarkRepo := repository.NewBookmarkRepository(conn)
	apiKeyRepo := repository.NewAPIKeyRepository(conn)

	requireAPIKey := middlewares.VerifyAPIKeyMiddleware(apiKeyRepo.Verify)

	bookmarkHandler := &handlers.BookmarkHandler{Repo: bookmarkRepo}
	apiKeyHandler := &handlers.APIKeyHandler{Repo: apiKeyRepo}

	e.GET("/health", handlers.HealthHandler)

	api := e.Group("/api")
	api.GET("/bookmarks/check", bookmarkHandler.CheckBookmarkHandler, requireAPIKey)
	api.POST("/bookmarks", bookmarkHandler.CreateBookmarkHandler, requireAPIKey)
	api.GET("/bookmarks", bookmarkHandler.ListBookmarksHandler, requireAPIKey)
	api.GET("/bookmarks/:bookmark_id", bookmarkHandler.GetBookmarkHandler, requireAPIKey)
	api.PATCH("/bookmarks/:bookmark_id", bookmarkHandler.UpdateBookmarkHandler, requireAPIKey)
	api.DELETE("/bookmarks/:bookmark_id", bookmarkHandler.DeleteBookmarkHandler, requireAPIKey)

	api.POST("/keys", apiKeyHandler.CreateAPIKeyHandler)
	api.GET("/keys", apiKeyHandler.ListAPIKeysHandler)
	api.POST("/keys/:key_id/revoke", apiKeyHandler.RevokeAPIKeyHandler)
	api.DELETE("/keys/:key_id", apiKeyHandler.DeleteAPIKeyHandler)

	commons.Logger.Info("Routes registered successfully")
}
