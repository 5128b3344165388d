package utils

import "crypto/rand"

const randomCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateRandomString returns an n-character uppercase alphanumeric string,
// used for receipt number suffixes.
func GenerateRandomString(n int) string {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		panic("failed to read random bytes")
	}
	for i := range b {
		b[i] = randomCharset[int(b[i])%len(randomCharset)]
	}
	return string(b)
}
