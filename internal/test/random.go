package test

import (
	"math/rand/v2"
	"strings"
)

const credentialAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// RandomCredential returns a pseudo-random alphanumeric string of minLen to maxLen characters.
func RandomCredential(minLen, maxLen int) string {
	if minLen <= 0 {
		minLen = 1
	}
	if maxLen < minLen {
		maxLen = minLen
	}
	length := minLen + rand.IntN(maxLen-minLen+1)

	var b strings.Builder
	b.Grow(length)
	for range length {
		b.WriteByte(credentialAlphabet[rand.IntN(len(credentialAlphabet))])
	}
	return b.String()
}

// RandomEmail returns a mixed-case address on example.com.
func RandomEmail() string {
	return RandomCredential(6, 12) + "@Example.com"
}
