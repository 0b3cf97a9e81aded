// Package hasher computes the content-addressed fingerprint stored
// alongside every LexicalRecord.
package hasher

import (
	"crypto/sha256"
	"encoding/hex"
)

// Hash returns the lowercase hex SHA-256 digest of body's UTF-8 bytes. It is
// used solely as a deduplication/change-detection marker; it never fails.
func Hash(body string) string {
	sum := sha256.Sum256([]byte(body))
	return hex.EncodeToString(sum[:])
}
