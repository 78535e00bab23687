// SPDX-License-Identifier: GPL-3.0-only

package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"arvai-server/crypto"
	"arvai-server/models"

	"gorm.io/gorm"
)

// IssuedKey is the one-time answer to Issue. Key holds the full secret;
// it is never persisted and never returned again.
type IssuedKey struct {
	ID        uint
	Key       string
	KeyPrefix string
	Name      string
	CreatedAt time.Time
}

// APIKeyRepository is the credential store gating every data endpoint.
type APIKeyRepository interface {
	Issue(ctx context.Context, name string) (*IssuedKey, error)
	Verify(ctx context.Context, presented string) (*models.APIKey, error)
	List(ctx context.Context) ([]models.APIKey, error)
	Revoke(ctx context.Context, id uint) (bool, error)
	Delete(ctx context.Context, id uint) (bool, error)
}

type GormAPIKeyRepository struct {
	db *gorm.DB
}

func NewAPIKeyRepository(db *gorm.DB) *GormAPIKeyRepository {
	return &GormAPIKeyRepository{db: db}
}

func (r *GormAPIKeyRepository) Issue(ctx context.Context, name string) (*IssuedKey, error) {
	if name == "" {
		name = "Extension"
	}

	key, err := crypto.GenerateAPIKey()
	if err != nil {
		return nil, err
	}

	apiKey := models.APIKey{
		KeyHash:   crypto.HashAPIKey(key),
		KeyPrefix: crypto.KeyPrefix(key),
		Name:      name,
		IsActive:  true,
	}
	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Create(&apiKey).Error
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrConflict
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	return &IssuedKey{
		ID:        apiKey.ID,
		Key:       key,
		KeyPrefix: apiKey.KeyPrefix,
		Name:      apiKey.Name,
		CreatedAt: apiKey.CreatedAt,
	}, nil
}

// Verify checks a presented secret against the stored digests. Missing
// value, wrong prefix, unknown digest and revoked key all come back as
// the same ErrUnauthenticated. A successful check records the use time
// in the same transaction, so a verified key is never observed without
// its LastUsedAt bump.
func (r *GormAPIKeyRepository) Verify(ctx context.Context, presented string) (*models.APIKey, error) {
	if presented == "" {
		return nil, ErrUnauthenticated
	}
	if !strings.HasPrefix(presented, crypto.APIKeyPrefix) {
		return nil, ErrUnauthenticated
	}

	digest := crypto.HashAPIKey(presented)

	var apiKey models.APIKey
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("key_hash = ? AND is_active = ?", digest, true).First(&apiKey).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUnauthenticated
		}
		if err != nil {
			return err
		}
		if !crypto.VerifyDigest(digest, apiKey.KeyHash) {
			return ErrUnauthenticated
		}

		now := time.Now().UTC()
		apiKey.LastUsedAt = &now
		return tx.Model(&apiKey).Update("last_used_at", now).Error
	})
	if err != nil {
		return nil, err
	}
	return &apiKey, nil
}

// List returns key summaries, newest first. The secret is not part of
// the model; only hash and display prefix ever reach a listing.
func (r *GormAPIKeyRepository) List(ctx context.Context) ([]models.APIKey, error) {
	var keys []models.APIKey
	err := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&keys).Error
	if err != nil {
		return nil, err
	}
	return keys, nil
}

// Revoke soft-disables a key. Idempotent: revoking a revoked key still
// reports true.
func (r *GormAPIKeyRepository) Revoke(ctx context.Context, id uint) (bool, error) {
	var revoked bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var apiKey models.APIKey
		err := tx.First(&apiKey, id).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		revoked = true
		if !apiKey.IsActive {
			return nil
		}
		return tx.Model(&apiKey).Update("is_active", false).Error
	})
	return revoked, err
}

func (r *GormAPIKeyRepository) Delete(ctx context.Context, id uint) (bool, error) {
	var deleted bool
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Delete(&models.APIKey{}, id)
		if res.Error != nil {
			return res.Error
		}
		deleted = res.RowsAffected > 0
		return nil
	})
	return deleted, err
}
