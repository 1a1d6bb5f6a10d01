package entities

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"math"
)

// ContentHash returns the lowercase hex SHA-256 digest of content. It is a
// content-identity key for de-duplication and versioning, not a credential.
func ContentHash(content []byte) string {
	sum := sha256.Sum256(content)
	return hex.EncodeToString(sum[:])
}

// CheckedSize converts a byte length to the int64 used by Statistics.Size and
// rejects lengths that do not fit instead of truncating them.
func CheckedSize(length uint64) (int64, error) {
	if length > math.MaxInt64 {
		return 0, fmt.Errorf("byte length %d does not fit in int64", length)
	}
	return int64(length), nil
}
