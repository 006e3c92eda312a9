package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// LegacyDigest computes the unsalted sha256 hex digest that old
// deployments stored as their configured hash. Kept only for backward
// compatibility, new hashes always go through Hasher.
func LegacyDigest(secret string) string {
	sum := sha256.Sum256([]byte(secret))
	return hex.EncodeToString(sum[:])
}

// SafeCompare reports whether a and b are equal without leaking where
// they first differ. Both sides are digested before the comparison so
// inputs of unequal length cost the same as inputs of equal length.
func SafeCompare(a, b string) bool {
	da := sha256.Sum256([]byte(a))
	db := sha256.Sum256([]byte(b))
	return subtle.ConstantTimeCompare(da[:], db[:]) == 1
}
