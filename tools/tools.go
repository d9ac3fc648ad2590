package tools

import (
	"golang.org/x/crypto/bcrypt"
)

// HashPassword genera el hash bcrypt de una contraseña en texto plano.
func HashPassword(password string, cost int) (string, error) {
	if cost <= 0 {
		cost = bcrypt.DefaultCost
	}
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

// CheckPassword compara una contraseña en texto plano contra su hash.
func CheckPassword(plain string, hashed string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
