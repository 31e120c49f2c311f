package util

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// JobID derives the stable dedup/idempotency key for a listing. Same
// (title, company, source) always hashes to the same id regardless of case.
func JobID(title, company, source string) string {
	key := strings.ToLower(CleanText(title)) + "|" +
		strings.ToLower(CleanText(company)) + "|" +
		strings.ToLower(CleanText(source))
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])[:16]
}
