package boreas

import (
	"math/rand/v2"
	"strings"
)

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

const idLength = 24

// generateID returns a random identifier scoped to owner, such as
// "node-a.3fZk...". An empty owner yields the bare random part.
func generateID(owner string) string {
	var b strings.Builder
	b.Grow(len(owner) + 1 + idLength)
	if owner != "" {
		b.WriteString(owner)
		b.WriteByte('.')
	}
	for range idLength {
		b.WriteByte(idAlphabet[rand.IntN(len(idAlphabet))])
	}
	return b.String()
}
