package services

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/logsage/backend/internal/models"
)

// Fingerprint computes the dedup-cache key for a submission: the lowercase
// hex SHA-256 of the sanitized log, log type, and serialized option set,
// joined with "|". Any request field that affects the result (such as the
// action-list flag) must be folded into optionsJSON, never hashed separately.
// Not security-sensitive; used purely for deduplication.
func Fingerprint(sanitizedLog string, logType models.LogType, optionsJSON string) string {
	sum := sha256.Sum256([]byte(sanitizedLog + "|" + string(logType) + "|" + optionsJSON))
	return hex.EncodeToString(sum[:])
}
