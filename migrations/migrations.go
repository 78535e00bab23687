// SPDX-License-Identifier: GPL-3.0-only

package migrations

import (
	"fmt"

	"arvai-server/models"
	"arvai-server/repository"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"
)

func List() []*gormigrate.Migration {
	return []*gormigrate.Migration{
		{
			// Rows saved before domain derivation existed carry an
			// empty domain column.
			ID: "001_backfill_bookmark_domains",
			Migrate: func(tx *gorm.DB) error {
				var bookmarks []models.Bookmark
				if err := tx.Where("domain = ? AND url <> ?", "", "").
					Find(&bookmarks).Error; err != nil {
					return fmt.Errorf("failed to fetch bookmarks without domain: %w", err)
				}

				for i := range bookmarks {
					domain := repository.ExtractDomain(bookmarks[i].URL)
					if domain == "" {
						continue
					}
					if err := tx.Model(&bookmarks[i]).Update("domain", domain).Error; err != nil {
						return fmt.Errorf("failed to backfill domain for bookmark %d: %w", bookmarks[i].ID, err)
					}
				}
				return nil
			},
			Rollback: func(tx *gorm.DB) error { return nil },
		},
	}
}
