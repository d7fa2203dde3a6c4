// Package password provides password hashing for user credentials.
package password

import "golang.org/x/crypto/bcrypt"

const cost = bcrypt.DefaultCost

// Hash hashes a plaintext password with bcrypt.
func Hash(plain string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plain), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// Compare checks a plaintext password against a stored bcrypt hash.
func Compare(hashed, plain string) error {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain))
}
