package auth

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/base64"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt cost used when none is configured.
const DefaultCost = 10

// HashSecret returns the bcrypt hash of secret. The secret is pre-digested
// so any length is accepted.
func HashSecret(secret string, cost int) (string, error) {
	if cost == 0 {
		cost = DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword(digest(secret), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckSecret reports whether secret matches stored. Values that are not
// bcrypt hashes are accounts written in the plain layout and are compared
// verbatim.
func CheckSecret(secret, stored string) bool {
	if isHash(stored) {
		return bcrypt.CompareHashAndPassword([]byte(stored), digest(secret)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(secret), []byte(stored)) == 1
}

func digest(secret string) []byte {
	sum := sha256.Sum256([]byte(secret))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

func isHash(stored string) bool {
	if !strings.HasPrefix(stored, "$2") {
		return false
	}
	_, err := bcrypt.Cost([]byte(stored))
	return err == nil
}
