package controllers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"os"
	"strconv"

	"tramita/config"
)

var security config.Security

// SetSecurity fija la configuración de seguridad (secreto JWT, vigencia
// del token, costo de bcrypt). Las variables de entorno tienen prioridad
// sobre el archivo de configuración.
func SetSecurity(s config.Security) {
	security = s
}

func getJWTSecret() string {
	secret := getenv("JWT_SECRET", "")
	if secret == "" {
		secret = getenv("TRAMITA_JWT_SECRET", "")
	}
	if secret == "" {
		secret = security.JwtSecret
	}
	if secret == "" {
		secret = "CHANGE_ME"
	}
	return secret
}

func tokenValidHours() int {
	if n := getenvInt("TOKEN_VALID_HOURS", 0); n > 0 {
		return n
	}
	if security.TokenValidHrs > 0 {
		return security.TokenValidHrs
	}
	return 8
}

func bcryptCost() int {
	if n := getenvInt("BCRYPT_COST", 0); n > 0 {
		return n
	}
	if security.BcryptCost > 0 {
		return security.BcryptCost
	}
	return 10
}

func signHS256JWT(secret string, claims map[string]any) (string, error) {
	header := map[string]any{"alg": "HS256", "typ": "JWT"}
	headB, err := json.Marshal(header)
	if err != nil {
		return "", err
	}
	payloadB, err := json.Marshal(claims)
	if err != nil {
		return "", err
	}

	enc := base64.RawURLEncoding
	unsigned := enc.EncodeToString(headB) + "." + enc.EncodeToString(payloadB)

	h := hmac.New(sha256.New, []byte(secret))
	_, _ = h.Write([]byte(unsigned))
	sig := enc.EncodeToString(h.Sum(nil))
	return unsigned + "." + sig, nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func getenvInt(k string, def int) int {
	s := getenv(k, "")
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}
