// SPDX-License-Identifier: GPL-3.0-only

package models

import (
	"time"
)

// APIKey holds the one-way digest of an issued secret. The secret itself
// is returned to the caller once at creation and never stored.
type APIKey struct {
	ID         uint   `gorm:"primaryKey"`
	KeyHash    string `gorm:"size:64;not null;uniqueIndex"`
	KeyPrefix  string `gorm:"size:12;not null"`
	Name       string `gorm:"size:255;not null;default:'Extension'"`
	IsActive   bool   `gorm:"not null;default:true"`
	LastUsedAt *time.Time
	CreatedAt  time.Time
}

func init() {
	AllModels = append(AllModels, &APIKey{})
}
