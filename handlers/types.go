// SPDX-License-Identifier: GPL-3.0-only

package handlers

// swagger:model CreateBookmarkRequest
type CreateBookmarkRequest struct {
	// URL of the saved tab, acts as the identity key for upsert
	// required: true
	URL string `json:"url" example:"https://go.dev/blog/error-handling"`
	// Page title
	Title string `json:"title" example:"Error handling and Go"`
	// Page description or selected text
	Description string `json:"description" example:"Notes on idiomatic error handling."`
	// Favicon URL or data URI
	Favicon string `json:"favicon" example:"https://go.dev/favicon.ico"`
	// Free-text labels
	Tags []string `json:"tags" example:"go,errors"`
	// Origin of the save, defaults to "extension"
	Source string `json:"source" example:"extension"`
}

// swagger:model UpdateBookmarkRequest
type UpdateBookmarkRequest struct {
	// New title; omit to keep the stored value
	Title *string `json:"title" example:"Error handling and Go"`
	// New description; omit to keep the stored value
	Description *string `json:"description" example:"Updated notes."`
	// New favicon; omit to keep the stored value
	Favicon *string `json:"favicon" example:"https://go.dev/favicon.ico"`
	// New tag set; an explicitly supplied empty list clears all tags
	Tags *[]string `json:"tags" example:"go,reading-list"`
}

// swagger:model BookmarkDetails
type BookmarkDetails struct {
	// Bookmark ID
	ID uint `json:"id" example:"42"`
	// Bookmark URL
	URL string `json:"url" example:"https://go.dev/blog/error-handling"`
	// Page title
	Title string `json:"title" example:"Error handling and Go"`
	// Page description
	Description string `json:"description" example:"Notes on idiomatic error handling."`
	// Favicon URL or data URI
	Favicon string `json:"favicon" example:"https://go.dev/favicon.ico"`
	// Host component derived from the URL
	Domain string `json:"domain" example:"go.dev"`
	// Tag labels
	Tags []string `json:"tags" example:"go,errors"`
	// Origin of the save
	Source string `json:"source" example:"extension"`
	// Timestamp of the first save
	CreatedAt string `json:"created_at" example:"2023-10-01T12:00:00Z"`
	// Timestamp of the latest mutation
	UpdatedAt string `json:"updated_at" example:"2023-10-01T12:00:00Z"`
}

// swagger:model BookmarkListResponse
type BookmarkListResponse struct {
	// Size of the filtered set before pagination
	Total int64 `json:"total" example:"205"`
	// One page of bookmarks, newest first
	Items []BookmarkDetails `json:"items"`
}

// swagger:model BookmarkCheckResponse
type BookmarkCheckResponse struct {
	// Whether the URL is already saved
	Bookmarked bool `json:"bookmarked" example:"true"`
	// ID of the existing bookmark, if any
	BookmarkID *uint `json:"bookmark_id,omitempty" example:"42"`
	// First-save timestamp of the existing bookmark, if any
	CreatedAt *string `json:"created_at,omitempty" example:"2023-10-01T12:00:00Z"`
}

// swagger:model CreateAPIKeyRequest
type CreateAPIKeyRequest struct {
	// Label for the key, defaults to "Extension"
	Name string `json:"name" example:"Extension"`
}

// swagger:model CreateAPIKeyResponse
type CreateAPIKeyResponse struct {
	// Key ID
	ID uint `json:"id" example:"1"`
	// The full secret. Shown exactly once, store it securely.
	Key string `json:"key" example:"arvai_0123456789abcdef0123456789abcdef"`
	// Display prefix stored for listings
	KeyPrefix string `json:"key_prefix" example:"arvai_012345"`
	// Label of the key
	Name string `json:"name" example:"Extension"`
	// Timestamp of issuance
	CreatedAt string `json:"created_at" example:"2023-10-01T12:00:00Z"`
}

// swagger:model APIKeyDetails
type APIKeyDetails struct {
	// Key ID
	ID uint `json:"id" example:"1"`
	// Display prefix of the secret
	KeyPrefix string `json:"key_prefix" example:"arvai_012345"`
	// Label of the key
	Name string `json:"name" example:"Extension"`
	// Whether the key is active; false means revoked
	IsActive bool `json:"is_active" example:"true"`
	// Timestamp of issuance
	CreatedAt string `json:"created_at" example:"2023-10-01T12:00:00Z"`
	// Timestamp of the last successful verification
	LastUsedAt *string `json:"last_used_at" example:"2023-10-01T12:00:00Z"`
}

// swagger:model MessageResponse
type MessageResponse struct {
	// Message indicating the result of the operation
	Message string `json:"message" example:"Bookmark deleted"`
	// Additional detail
	Detail string `json:"detail,omitempty" example:"id=42"`
}

// swagger:model HealthResponse
type HealthResponse struct {
	// Service status
	Status string `json:"status" example:"ok"`
	// Server version
	Version string `json:"version" example:"0.1.0"`
}
