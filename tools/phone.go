package tools

import (
	"fmt"
	"strings"
	"unicode"
)

// NormalizePhone normaliza el identificador del remitente al formato que
// guardamos en la base: solo dígitos, en formato internacional, sin '+'.
// Twilio manda el From como "whatsapp:+573101234567".
func NormalizePhone(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	raw = strings.TrimPrefix(raw, "whatsapp:")
	if raw == "" {
		return "", fmt.Errorf("empty phone")
	}

	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	phone := b.String()
	phone = strings.TrimLeft(phone, "0")

	if len(phone) < 10 {
		return "", fmt.Errorf("invalid phone length: %d", len(phone))
	}
	return phone, nil
}
