// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"strings"
	"time"
)

var AllModels []any

// Bookmark is a saved browser tab. URL is the natural identity: saving
// the same URL twice updates the existing row. Tags are stored as one
// comma-joined string; no tag is ever empty and order is preserved.
// Rows are hard-deleted, a soft-delete column would keep holding the
// unique url slot.
type Bookmark struct {
	ID          uint      `gorm:"primaryKey"`
	URL         string    `gorm:"size:2048;not null;uniqueIndex"`
	Title       string    `gorm:"type:text;not null;default:''"`
	Description string    `gorm:"type:text;not null;default:''"`
	Favicon     string    `gorm:"type:text;not null;default:''"`
	Domain      string    `gorm:"size:255;not null;default:'';index"`
	Tags        string    `gorm:"type:text;not null;default:''"`
	Source      string    `gorm:"size:64;not null;default:'extension'"`
	CreatedAt   time.Time `gorm:"index"`
	UpdatedAt   time.Time
}

// TagList splits the stored encoding back into labels.
func (b *Bookmark) TagList() []string {
	tags := []string{}
	for _, t := range strings.Split(b.Tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func (b *Bookmark) SetTagList(tags []string) {
	b.Tags = JoinTags(tags)
}

// JoinTags builds the comma-joined storage form, dropping empty labels.
func JoinTags(tags []string) string {
	clean := make([]string, 0, len(tags))
	for _, t := range tags {
		if t = strings.TrimSpace(t); t != "" {
			clean = append(clean, t)
		}
	}
	return strings.Join(clean, ",")
}

func init() {
	AllModels = append(AllModels, &Bookmark{})
}
