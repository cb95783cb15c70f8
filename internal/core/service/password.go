package service

import (
	"crypto/rand"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// tokenEntropy is the number of random bytes digested into a token.
const tokenEntropy = 1024

var bcryptPrefixes = []string{"$2a$", "$2b$", "$2y$"}

// HashPassword returns the hex SHA-1 digest used by participant credential
// files. SHA-1 is weak for passwords; bcrypt hashes are accepted as well.
func HashPassword(password string) string {
	sum := sha1.Sum([]byte(password))
	return hex.EncodeToString(sum[:])
}

// checkPassword compares a plaintext password against a stored hash, picking
// the scheme from the hash format.
func checkPassword(stored, password string) bool {
	for _, prefix := range bcryptPrefixes {
		if strings.HasPrefix(stored, prefix) {
			return bcrypt.CompareHashAndPassword([]byte(stored), []byte(password)) == nil
		}
	}
	return subtle.ConstantTimeCompare([]byte(strings.ToLower(stored)), []byte(HashPassword(password))) == 1
}

// newToken returns an opaque random identifier.
func newToken() (string, error) {
	buf := make([]byte, tokenEntropy)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	sum := sha256.Sum256(buf)
	return hex.EncodeToString(sum[:]), nil
}
