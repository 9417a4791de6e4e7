// internal/app/system/auth/password.go
package auth

import (
	"crypto/subtle"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// BcryptCost is used when hashing a new admin password.
const BcryptCost = 12

// HashPassword hashes a password using bcrypt. Used by deployment tooling to
// produce a hash for the admin_password config value.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword verifies a login attempt against the configured admin secret.
// The secret may be a bcrypt hash (recommended) or a plain value for dev
// setups; plain values are compared in constant time.
func CheckPassword(password, secret string) bool {
	if strings.HasPrefix(secret, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(secret), []byte(password)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(password), []byte(secret)) == 1
}
