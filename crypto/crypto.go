// SPDX-License-Identifier: GPL-3.0-only

package crypto

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

const (
	// APIKeyPrefix marks every secret this server issues. The browser
	// extension and the auth middleware both key off it.
	APIKeyPrefix = "arvai_"

	apiKeyRandomBytes = 16
	displayPrefixLen  = 12
)

func GenerateRandomString(prefix string, length int, encoding string) (string, error) {
	supported_encodings := []string{"hex", "base64"}

	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}

	switch encoding {
	case "hex":
		return prefix + hex.EncodeToString(b), nil
	case "base64":
		return prefix + base64.StdEncoding.EncodeToString(b), nil
	default:
		return "", fmt.Errorf("unsupported encoding: %s, Supported encodings are: %s", encoding, supported_encodings)
	}
}

// GenerateAPIKey produces a new secret: "arvai_" followed by 32 hex
// characters from a CSPRNG.
func GenerateAPIKey() (string, error) {
	return GenerateRandomString(APIKeyPrefix, apiKeyRandomBytes, "hex")
}

// HashAPIKey returns the hex SHA-256 digest of a secret. The digest is
// deterministic: the credential store uses it as the lookup column, so a
// salted scheme cannot be used here.
func HashAPIKey(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}

// KeyPrefix returns the first 12 characters of a secret, or the whole
// value if shorter. Cosmetic only, shown in key listings.
func KeyPrefix(key string) string {
	if len(key) < displayPrefixLen {
		return key
	}
	return key[:displayPrefixLen]
}

// VerifyDigest compares two hex digests in constant time.
func VerifyDigest(presented, stored string) bool {
	return hmac.Equal([]byte(presented), []byte(stored))
}
