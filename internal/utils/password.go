package utils

import "golang.org/x/crypto/bcrypt"

// HashPassword returns a bcrypt digest of plain using the given cost.
// The salt is generated per call, so hashing the same password twice
// yields different digests.
func HashPassword(plain string, cost int) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// VerifyPassword compares a bcrypt digest and a plaintext candidate.
// bcrypt's comparison is constant time by construction.
func VerifyPassword(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
