package helper

import "golang.org/x/crypto/bcrypt"

// HashPassword hashes password with bcrypt at the given cost, salting it.
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
