package auth

import (
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// GenerateCode produces a fresh single-use confirmation code. A v4 UUID
// carries enough entropy that the code cannot be guessed within its TTL.
func GenerateCode() string {
	return uuid.New().String()
}

// HashCode creates a bcrypt hash of a confirmation code. Only the hash is
// stored; the plaintext code travels to the user by email.
func HashCode(code string) (string, error) {
	hashedBytes, err := bcrypt.GenerateFromPassword([]byte(code), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashedBytes), nil
}

// VerifyCode checks the provided confirmation code against the stored hash.
func VerifyCode(hashedCode, providedCode string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashedCode), []byte(providedCode))
}
