// SPDX-License-Identifier: GPL-3.0-only

package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"arvai-server/models"
	"arvai-server/repository"

	"github.com/labstack/echo/v4"
)

type BookmarkHandler struct {
	Repo repository.BookmarkRepository
}

func bookmarkDetails(bookmark *models.Bookmark) BookmarkDetails {
	return BookmarkDetails{
		ID:          bookmark.ID,
		URL:         bookmark.URL,
		Title:       bookmark.Title,
		Description: bookmark.Description,
		Favicon:     bookmark.Favicon,
		Domain:      bookmark.Domain,
		Tags:        bookmark.TagList(),
		Source:      bookmark.Source,
		CreatedAt:   bookmark.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt:   bookmark.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// parseIDParam rejects non-numeric path ids. Any integer, zero
// included, passes through and resolves to 404 when no record holds it.
func parseIDParam(c echo.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid " + name + " format",
		}
	}
	return uint(id), nil
}

// CreateBookmarkHandler godoc
// @Summary      Save a bookmark
// @Description  Saves a tab. Saving a URL that already exists updates the existing record:
// @Description  non-empty fields overwrite, empty fields keep the stored values.
// @Tags         bookmarks
// @Accept       json
// @Produce      json
// @Param        X-Arvai-API-Key  header  string  true  "API key issued via /api/keys"
// @Param        request body CreateBookmarkRequest true "Bookmark payload"
// @Success      201 {object} BookmarkDetails "Bookmark saved"
// @Failure      400 {object} echo.HTTPError "Bad request"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /api/bookmarks [post]
func (h *BookmarkHandler) CreateBookmarkHandler(c echo.Context) error {
	logger := c.Logger()

	var req CreateBookmarkRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid create bookmark request payload:", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid request payload, please ensure it is well-formed and has content-type application/json header",
		}
	}

	if req.URL == "" {
		logger.Error("URL is required.")
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "url field is required",
		}
	}

	bookmark, err := h.Repo.Upsert(c.Request().Context(), repository.BookmarkInput{
		URL:         req.URL,
		Title:       req.Title,
		Description: req.Description,
		Favicon:     req.Favicon,
		Tags:        req.Tags,
		Source:      req.Source,
	})
	if errors.Is(err, repository.ErrInvalidInput) {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "url field is malformed",
		}
	}
	if errors.Is(err, repository.ErrConflict) {
		return &echo.HTTPError{
			Code:    http.StatusConflict,
			Message: "A bookmark with this URL already exists",
		}
	}
	if err != nil {
		logger.Errorf("Failed to save bookmark: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Infof("Bookmark %d saved.", bookmark.ID)
	return c.JSON(http.StatusCreated, bookmarkDetails(bookmark))
}

// ListBookmarksHandler godoc
// @Summary      List bookmarks
// @Description  Lists bookmarks newest first, with optional keyword search and tag filter.
// @Description  The keyword matches title, url, description and domain; the tag must match
// @Description  one stored label exactly.
// @Tags         bookmarks
// @Produce      json
// @Param        X-Arvai-API-Key  header  string  true  "API key issued via /api/keys"
// @Param        q      query  string  false  "Keyword search"
// @Param        tag    query  string  false  "Tag filter"
// @Param        limit  query  int     false  "Page size (default 50, max 200)"
// @Param        offset query  int     false  "Page offset (default 0)"
// @Success      200 {object} BookmarkListResponse "One page of bookmarks"
// @Failure      400 {object} echo.HTTPError "Bad request"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /api/bookmarks [get]
func (h *BookmarkHandler) ListBookmarksHandler(c echo.Context) error {
	logger := c.Logger()

	limit := repository.DefaultListLimit
	offset := 0
	if raw := c.QueryParam("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 1 || v > repository.MaxListLimit {
			return &echo.HTTPError{
				Code:    http.StatusBadRequest,
				Message: "limit must be an integer between 1 and 200",
			}
		}
		limit = v
	}
	if raw := c.QueryParam("offset"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			return &echo.HTTPError{
				Code:    http.StatusBadRequest,
				Message: "offset must be a non-negative integer",
			}
		}
		offset = v
	}

	bookmarks, total, err := h.Repo.List(c.Request().Context(), repository.BookmarkFilter{
		Query:  c.QueryParam("q"),
		Tag:    c.QueryParam("tag"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		logger.Errorf("Failed to list bookmarks: %v", err)
		return echo.ErrInternalServerError
	}

	items := make([]BookmarkDetails, 0, len(bookmarks))
	for i := range bookmarks {
		items = append(items, bookmarkDetails(&bookmarks[i]))
	}

	return c.JSON(http.StatusOK, BookmarkListResponse{
		Total: total,
		Items: items,
	})
}

// CheckBookmarkHandler godoc
// @Summary      Check whether a URL is bookmarked
// @Description  Lightweight existence probe used by the browser extension to avoid
// @Description  duplicate prompts.
// @Tags         bookmarks
// @Produce      json
// @Param        X-Arvai-API-Key  header  string  true  "API key issued via /api/keys"
// @Param        url  query  string  true  "URL to check"
// @Success      200 {object} BookmarkCheckResponse "Check result"
// @Failure      400 {object} echo.HTTPError "Bad request"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /api/bookmarks/check [get]
func (h *BookmarkHandler) CheckBookmarkHandler(c echo.Context) error {
	logger := c.Logger()

	rawURL := c.QueryParam("url")
	if rawURL == "" {
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "url query parameter is required",
		}
	}

	check, err := h.Repo.CheckByURL(c.Request().Context(), rawURL)
	if err != nil {
		logger.Errorf("Failed to check bookmark: %v", err)
		return echo.ErrInternalServerError
	}

	resp := BookmarkCheckResponse{Bookmarked: check.Bookmarked}
	if check.Bookmarked {
		id := check.ID
		createdAt := check.CreatedAt.UTC().Format(time.RFC3339)
		resp.BookmarkID = &id
		resp.CreatedAt = &createdAt
	}
	return c.JSON(http.StatusOK, resp)
}

// GetBookmarkHandler godoc
// @Summary      Get a bookmark
// @Tags         bookmarks
// @Produce      json
// @Param        X-Arvai-API-Key  header  string  true  "API key issued via /api/keys"
// @Param        bookmark_id  path  int  true  "Bookmark ID"
// @Success      200 {object} BookmarkDetails "Bookmark"
// @Failure      400 {object} echo.HTTPError "Bad request"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      404 {object} echo.HTTPError "Not found"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /api/bookmarks/{bookmark_id} [get]
func (h *BookmarkHandler) GetBookmarkHandler(c echo.Context) error {
	logger := c.Logger()

	id, err := parseIDParam(c, "bookmark_id")
	if err != nil {
		return err
	}

	bookmark, err := h.Repo.GetByID(c.Request().Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		return &echo.HTTPError{
			Code:    http.StatusNotFound,
			Message: "Bookmark not found",
		}
	}
	if err != nil {
		logger.Errorf("Failed to fetch bookmark: %v", err)
		return echo.ErrInternalServerError
	}

	return c.JSON(http.StatusOK, bookmarkDetails(bookmark))
}

// UpdateBookmarkHandler godoc
// @Summary      Update a bookmark
// @Description  Partial update: only supplied fields change. Unlike saving, an explicitly
// @Description  supplied empty tag list clears the tags.
// @Tags         bookmarks
// @Accept       json
// @Produce      json
// @Param        X-Arvai-API-Key  header  string  true  "API key issued via /api/keys"
// @Param        bookmark_id  path  int  true  "Bookmark ID"
// @Param        request body UpdateBookmarkRequest true "Fields to update"
// @Success      200 {object} BookmarkDetails "Updated bookmark"
// @Failure      400 {object} echo.HTTPError "Bad request"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      404 {object} echo.HTTPError "Not found"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /api/bookmarks/{bookmark_id} [patch]
func (h *BookmarkHandler) UpdateBookmarkHandler(c echo.Context) error {
	logger := c.Logger()

	id, err := parseIDParam(c, "bookmark_id")
	if err != nil {
		return err
	}

	var req UpdateBookmarkRequest
	if err := c.Bind(&req); err != nil {
		logger.Error("Invalid update bookmark request payload:", err)
		return &echo.HTTPError{
			Code:    http.StatusBadRequest,
			Message: "Invalid request payload, please ensure it is well-formed and has content-type application/json header",
		}
	}

	bookmark, err := h.Repo.Update(c.Request().Context(), id, repository.BookmarkPatch{
		Title:       req.Title,
		Description: req.Description,
		Favicon:     req.Favicon,
		Tags:        req.Tags,
	})
	if errors.Is(err, repository.ErrNotFound) {
		return &echo.HTTPError{
			Code:    http.StatusNotFound,
			Message: "Bookmark not found",
		}
	}
	if err != nil {
		logger.Errorf("Failed to update bookmark: %v", err)
		return echo.ErrInternalServerError
	}

	logger.Infof("Bookmark %d updated.", bookmark.ID)
	return c.JSON(http.StatusOK, bookmarkDetails(bookmark))
}

// DeleteBookmarkHandler godoc
// @Summary      Delete a bookmark
// @Tags         bookmarks
// @Produce      json
// @Param        X-Arvai-API-Key  header  string  true  "API key issued via /api/keys"
// @Param        bookmark_id  path  int  true  "Bookmark ID"
// @Success      200 {object} MessageResponse "Bookmark deleted"
// @Failure      400 {object} echo.HTTPError "Bad request"
// @Failure      401 {object} echo.HTTPError "Unauthorized"
// @Failure      404 {object} echo.HTTPError "Not found"
// @Failure      500 {object} echo.HTTPError "Internal server error"
// @Router       /api/bookmarks/{bookmark_id} [delete]
func (h *BookmarkHandler) DeleteBookmarkHandler(c echo.Context) error {
	logger := c.Logger()

	id, err := parseIDParam(c, "bookmark_id")
	if err != nil {
		return err
	}

	deleted, err := h.Repo.Delete(c.Request().Context(), id)
	if err != nil {
		logger.Errorf("Failed to delete bookmark: %v", err)
		return echo.ErrInternalServerError
	}
	if !deleted {
		return &echo.HTTPError{
			Code:    http.StatusNotFound,
			Message: "Bookmark not found",
		}
	}

	logger.Infof("Bookmark %d deleted.", id)
	return c.JSON(http.StatusOK, MessageResponse{
		Message: "Bookmark deleted",
		Detail:  "id=" + strconv.FormatUint(uint64(id), 10),
	})
}
