package utils

import (
	"crypto/sha1"
	"crypto/subtle"
	"encoding/hex"
)

// HashPassword returns the hex SHA-1 digest of plain.
//
// The billing store keeps credentials as a single unsalted SHA-1 pass; this
// must not be upgraded here or logins against the existing pkg_user rows stop
// working. Any migration to a stronger scheme has to happen in the billing
// system first.
func HashPassword(plain string) string {
	sum := sha1.Sum([]byte(plain))
	return hex.EncodeToString(sum[:])
}

// VerifyPassword compares a stored digest with the digest of plain in
// constant time.
func VerifyPassword(storedHash, plain string) bool {
	computed := HashPassword(plain)
	return subtle.ConstantTimeCompare([]byte(storedHash), []byte(computed)) == 1
}
