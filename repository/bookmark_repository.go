// SPDX-License-Identifier: GPL-3.0-only

package repository

import (
	"context"
	"errors"
	"net/url"
	"time"

	"arvai-server/models"

	"gorm.io/gorm"
)

const (
	MaxListLimit     = 200
	DefaultListLimit = 50
)

// BookmarkInput carries the fields of a save request. Empty fields are
// allowed; on an existing URL they leave the stored value untouched
// (merge, don't erase).
type BookmarkInput struct {
	URL         string
	Title       string
	Description string
	Favicon     string
	Tags        []string
	Source      string
}

// BookmarkPatch is an explicit partial update. Nil means "not supplied".
// Unlike BookmarkInput, a supplied empty value overwrites: Tags pointing
// at an empty slice clears the tag set.
type BookmarkPatch struct {
	Title       *string
	Description *string
	Favicon     *string
	Tags        *[]string
}

type BookmarkFilter struct {
	Query  string
	Tag    string
	Limit  int
	Offset int
}

// BookmarkCheck is the lightweight existence probe used by the browser
// extension before prompting.
type BookmarkCheck struct {
	Bookmarked bool
	ID         uint
	CreatedAt  time.Time
}

type BookmarkRepository interface {
	Upsert(ctx context.Context, in BookmarkInput) (*models.Bookmark, error)
	GetByID(ctx context.Context, id uint) (*models.Bookmark, error)
	GetByURL(ctx context.Context, rawURL string) (*models.Bookmark, error)
	List(ctx context.Context, filter BookmarkFilter) ([]models.Bookmark, int64, error)
	Update(ctx context.Context, id uint, patch BookmarkPatch) (*models.Bookmark, error)
	Delete(ctx context.Context, id uint) (bool, error)
	CheckByURL(ctx context.Context, rawURL string) (BookmarkCheck, error)
}

type GormBookmarkRepository struct {
	db *gorm.DB
}

func NewBookmarkRepository(db *gorm.DB) *GormBookmarkRepository {
	return &GormBookmarkRepository{db: db}
}

// ExtractDomain derives the host component of a URL. It returns "" when
// the value does not parse or carries no host.
func ExtractDomain(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// Upsert saves a tab. A new URL inserts a full record; a known URL is
// merged in place: title/description/favicon/tags only overwrite when
// the supplied value is non-empty, domain and source always refresh,
// created_at never changes. A concurrent first save losing the unique
// index race is retried as an update.
func (r *GormBookmarkRepository) Upsert(ctx context.Context, in BookmarkInput) (*models.Bookmark, error) {
	if in.URL == "" {
		return nil, ErrInvalidInput
	}
	if _, err := url.Parse(in.URL); err != nil {
		return nil, ErrInvalidInput
	}
	if in.Source == "" {
		in.Source = "extension"
	}

	var bookmark models.Bookmark
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("url = ?", in.URL).First(&bookmark).Error
		if err == nil {
			return mergeBookmark(tx, &bookmark, in)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		bookmark = models.Bookmark{
			URL:         in.URL,
			Title:       in.Title,
			Description: in.Description,
			Favicon:     in.Favicon,
			Domain:      ExtractDomain(in.URL),
			Tags:        models.JoinTags(in.Tags),
			Source:      in.Source,
		}
		// The insert runs under a savepoint. Without it a unique
		// violation aborts the whole transaction on postgres and the
		// retry below could never read the winning row.
		err = tx.Transaction(func(tx *gorm.DB) error {
			return tx.Create(&bookmark).Error
		})
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Another request inserted this URL first.
			if err := tx.Where("url = ?", in.URL).First(&bookmark).Error; err != nil {
				return err
			}
			return mergeBookmark(tx, &bookmark, in)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return &bookmark, nil
}

func mergeBookmark(tx *gorm.DB, bookmark *models.Bookmark, in BookmarkInput) error {
	if in.Title != "" {
		bookmark.Title = in.Title
	}
	if in.Description != "" {
		bookmark.Description = in.Description
	}
	if in.Favicon != "" {
		bookmark.Favicon = in.Favicon
	}
	if tags := models.JoinTags(in.Tags); tags != "" {
		bookmark.Tags = tags
	}
	bookmark.Domain = ExtractDomain(in.URL)
	bookmark.Source = in.Source
	return tx.Save(bookmark).Error
}

func (r *GormBookmarkRepository) GetByID(ctx context.Context, id uint) (*models.Bookmark, error) {
	var bookmark models.Bookmark
	err := r.db.WithContext(ctx).First(&bookmark, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &bookmark, nil
}

func (r *GormBookmarkRepository) GetByURL(ctx context.Context, rawURL string) (*models.Bookmark, error) {
	var bookmark models.Bookmark
	err := r.db.WithContext(ctx).Where("url = ?", rawURL).First(&bookmark).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &bookmark, nil
}

// List returns one page of bookmarks, newest first, plus the total size
// of the filtered set. Query matches any of title/url/description/domain
// case-insensitively; Tag must match one stored label exactly. Both
// filters together are ANDed.
func (r *GormBookmarkRepository) List(ctx context.Context, filter BookmarkFilter) ([]models.Bookmark, int64, error) {
	if filter.Limit < 1 || filter.Limit > MaxListLimit {
		return nil, 0, ErrInvalidInput
	}
	if filter.Offset < 0 {
		return nil, 0, ErrInvalidInput
	}

	var (
		bookmarks []models.Bookmark
		total     int64
	)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Model(&models.Bookmark{})

		if filter.Query != "" {
			pattern := "%" + filter.Query + "%"
			q = q.Where(
				"LOWER(title) LIKE LOWER(?) OR LOWER(url) LIKE LOWER(?) OR LOWER(description) LIKE LOWER(?) OR LOWER(domain) LIKE LOWER(?)",
				pattern, pattern, pattern, pattern,
			)
		}

		if filter.Tag != "" {
			// The four boundary patterns of the comma-joined encoding:
			// whole string, leading, inner, trailing. Anything looser
			// would let "ai" match a stored "air".
			tag := filter.Tag
			q = q.Where(
				"tags = ? OR tags LIKE ? OR tags LIKE ? OR tags LIKE ?",
				tag, tag+",%", "%,"+tag+",%", "%,"+tag,
			)
		}

		if err := q.Count(&total).Error; err != nil {
			return err
		}
		return q.Order("created_at DESC").
			Limit(filter.Limit).
			Offset(filter.Offset).
			Find(&bookmarks).Error
	})
	if err != nil {
		return nil, 0, err
	}
	return bookmarks, total, nil
}

// Update applies an explicit partial update. Supplied-but-empty values
// do overwrite here; that is the difference from Upsert's merge.
func (r *GormBookmarkRepository) Update(ctx context.Context, id uint, patch BookmarkPatch) (*models.Bookmark, error) {
	var bookmark models.Bookmark
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.First(&bookmark, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		if patch.Title != nil {
			bookmark.Title = *patch.Title
		}
		if patch.Description != nil {
			bookmark.Description = *patch.Description
		}
		if patch.Favicon != nil {
			bookmark.Favicon = *patch.Favicon
		}
		if patch.Tags != nil {
			bookmark.SetTagList(*patch.Tags)
		}
		return tx.Save(&bookmark).Error
	})
	if err != nil {
		return nil, err
	}
	return &bookmark, nil
}

func (r *GormBookmarkRepository) Delete(ctx context.Context, id uint) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.Bookmark{}, id)
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	return deleted, err
}

func (r *GormBookmarkRepository) CheckByURL(ctx context.Context, rawURL string) (BookmarkCheck, error) {
	if rawURL == "" {
		return BookmarkCheck{}, ErrInvalidInput
	}
	bookmark, err := r.GetByURL(ctx, rawURL)
	if errors.Is(err, ErrNotFound) {
		return BookmarkCheck{Bookmarked: false}, nil
	}
	if err != nil {
		return BookmarkCheck{}, err
	}
	return BookmarkCheck{
		Bookmarked: true,
		ID:         bookmark.ID,
		CreatedAt:  bookmark.CreatedAt,
	}, nil
}
