package boreas

import (
	"fmt"
	"strings"
)

// Assignment is a raw "key=value" declaration taken from an annotation.
type Assignment string

// Split separates the key from the value at the first "=". The value keeps
// any further "=" characters, so "key=a=b" yields ("key", "a=b"). An
// assignment without "=" is malformed.
func (a Assignment) Split() (string, string, error) {
	key, value, ok := strings.Cut(string(a), "=")
	if !ok {
		return "", "", fmt.Errorf("%w: %q", ErrMalformedAssignment, string(a))
	}
	return key, value, nil
}

func toAssignments(raw []string) []Assignment {
	if len(raw) == 0 {
		return nil
	}
	assignments := make([]Assignment, len(raw))
	for i, s := range raw {
		assignments[i] = Assignment(s)
	}
	return assignments
}
