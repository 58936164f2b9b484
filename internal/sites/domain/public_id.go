package domain

import (
	"crypto/rand"
	"fmt"
)

// idAlphabet drops characters that are easy to misread in a URL (0/o, 1/l/i).
const idAlphabet = "23456789abcdefghjkmnpqrstuvwxyz"

const idCodeLen = 8

// NewPublicID returns a short URL-safe site id such as "obra-k7m2x9qa".
func NewPublicID(prefix string) (string, error) {
	buf := make([]byte, idCodeLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("public id: %w", err)
	}
	for i, b := range buf {
		buf[i] = idAlphabet[int(b)%len(idAlphabet)]
	}
	return prefix + "-" + string(buf), nil
}
