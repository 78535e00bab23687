// SPDX-License-Identifier: GPL-3.0-only

package repository

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"arvai-server/crypto"
	"arvai-server/models"
)

func TestIssueReturnsSecretOnce(t *testing.T) {
	repo := NewAPIKeyRepository(newTestDB(t))
	ctx := context.Background()

	issued, err := repo.Issue(ctx, "Extension")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	if !strings.HasPrefix(issued.Key, crypto.APIKeyPrefix) {
		t.Errorf("Expected secret with %q prefix, got %s", crypto.APIKeyPrefix, issued.Key)
	}
	if issued.KeyPrefix != issued.Key[:12] {
		t.Errorf("Expected display prefix %q, got %q", issued.Key[:12], issued.KeyPrefix)
	}

	var stored models.APIKey
	if err := repo.db.First(&stored, issued.ID).Error; err != nil {
		t.Fatalf("Failed to load stored key: %v", err)
	}
	if stored.KeyHash == issued.Key {
		t.Error("The secret must not be stored in recoverable form")
	}
	if stored.KeyHash != crypto.HashAPIKey(issued.Key) {
		t.Error("Stored hash should be the digest of the secret")
	}
	if !stored.IsActive {
		t.Error("A freshly issued key should be active")
	}
	if stored.LastUsedAt != nil {
		t.Error("A freshly issued key should have no last-use time")
	}
}

func TestIssueDefaultsName(t *testing.T) {
	repo := NewAPIKeyRepository(newTestDB(t))

	issued, err := repo.Issue(context.Background(), "")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if issued.Name != "Extension" {
		t.Errorf("Expected default name 'Extension', got %q", issued.Name)
	}
}

func TestVerifyUpdatesLastUsed(t *testing.T) {
	repo := NewAPIKeyRepository(newTestDB(t))
	ctx := context.Background()

	issued, err := repo.Issue(ctx, "Extension")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	before := time.Now().UTC().Add(-time.Second)
	apiKey, err := repo.Verify(ctx, issued.Key)
	if err != nil {
		t.Fatalf("Verify failed for a valid secret: %v", err)
	}
	if apiKey.ID != issued.ID {
		t.Errorf("Expected key %d, got %d", issued.ID, apiKey.ID)
	}
	if apiKey.LastUsedAt == nil {
		t.Fatal("Expected last_used_at to be set on successful verification")
	}
	if apiKey.LastUsedAt.Before(before) {
		t.Errorf("Expected a recent last_used_at, got %v", apiKey.LastUsedAt)
	}

	var stored models.APIKey
	if err := repo.db.First(&stored, issued.ID).Error; err != nil {
		t.Fatalf("Failed to load stored key: %v", err)
	}
	if stored.LastUsedAt == nil {
		t.Error("Expected last_used_at persisted")
	}
}

func TestVerifyFailureModesAreUniform(t *testing.T) {
	repo := NewAPIKeyRepository(newTestDB(t))
	ctx := context.Background()

	cases := map[string]string{
		"empty":        "",
		"wrong prefix": "ak_0123456789abcdef0123456789abcdef",
		"unknown":      "arvai_ffffffffffffffffffffffffffffffff",
	}
	for name, presented := range cases {
		if _, err := repo.Verify(ctx, presented); !errors.Is(err, ErrUnauthenticated) {
			t.Errorf("%s: expected ErrUnauthenticated, got %v", name, err)
		}
	}
}

func TestVerifyFailsAfterRevoke(t *testing.T) {
	repo := NewAPIKeyRepository(newTestDB(t))
	ctx := context.Background()

	issued, err := repo.Issue(ctx, "Extension")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}
	if _, err := repo.Verify(ctx, issued.Key); err != nil {
		t.Fatalf("Verify before revoke failed: %v", err)
	}

	revoked, err := repo.Revoke(ctx, issued.ID)
	if err != nil {
		t.Fatalf("Revoke failed: %v", err)
	}
	if !revoked {
		t.Error("Expected revoke to report true for an existing key")
	}

	if _, err := repo.Verify(ctx, issued.Key); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("Expected ErrUnauthenticated after revoke, got %v", err)
	}
}

func TestRevokeIsIdempotent(t *testing.T) {
	repo := NewAPIKeyRepository(newTestDB(t))
	ctx := context.Background()

	issued, err := repo.Issue(ctx, "Extension")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	for i := 0; i < 2; i++ {
		revoked, err := repo.Revoke(ctx, issued.ID)
		if err != nil {
			t.Fatalf("Revoke attempt %d failed: %v", i+1, err)
		}
		if !revoked {
			t.Errorf("Revoke attempt %d should report true", i+1)
		}
	}

	revoked, err := repo.Revoke(ctx, 9999)
	if err != nil {
		t.Fatalf("Revoke of unknown ID failed: %v", err)
	}
	if revoked {
		t.Error("Revoke of unknown ID should report false")
	}
}

func TestListNewestFirstWithoutSecrets(t *testing.T) {
	repo := NewAPIKeyRepository(newTestDB(t))
	ctx := context.Background()

	var secrets []string
	for _, name := range []string{"First", "Second", "Third"} {
		issued, err := repo.Issue(ctx, name)
		if err != nil {
			t.Fatalf("Issue %q failed: %v", name, err)
		}
		secrets = append(secrets, issued.Key)
		time.Sleep(20 * time.Millisecond)
	}

	keys, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(keys) != 3 {
		t.Fatalf("Expected 3 keys, got %d", len(keys))
	}
	if keys[0].Name != "Third" || keys[2].Name != "First" {
		t.Errorf("Expected newest first, got %s..%s", keys[0].Name, keys[2].Name)
	}
	for _, key := range keys {
		for _, secret := range secrets {
			if key.KeyHash == secret {
				t.Error("Listing must not expose a secret")
			}
		}
		if len(key.KeyPrefix) > 12 {
			t.Errorf("Display prefix too long: %q", key.KeyPrefix)
		}
	}
}

func TestDeleteAPIKey(t *testing.T) {
	repo := NewAPIKeyRepository(newTestDB(t))
	ctx := context.Background()

	issued, err := repo.Issue(ctx, "Extension")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	deleted, err := repo.Delete(ctx, issued.ID)
	if err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if !deleted {
		t.Error("Expected delete to report true for an existing key")
	}

	if _, err := repo.Verify(ctx, issued.Key); !errors.Is(err, ErrUnauthenticated) {
		t.Errorf("Expected ErrUnauthenticated after delete, got %v", err)
	}

	deleted, err = repo.Delete(ctx, issued.ID)
	if err != nil {
		t.Fatalf("Second delete failed: %v", err)
	}
	if deleted {
		t.Error("Second delete should report false")
	}
}
