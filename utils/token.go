package utils

import "crypto/rand"

const tokenCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateRandomToken returns a random code of the given length. Reset
// codes gate account recovery, so the bytes come from crypto/rand.
func GenerateRandomToken(length int) string {
	buf := make([]byte, length)
	if _, err := rand.Read(buf); err != nil {
		panic(err)
	}
	token := make([]byte, length)
	for i, b := range buf {
		token[i] = tokenCharset[int(b)%len(tokenCharset)]
	}
	return string(token)
}
