// Package idgen provides short, URL-safe ids for page handles and sortable
// correlation ids for outbound requests.
package idgen

import (
	"crypto/rand"
	"fmt"
	"time"

	nanoid "github.com/matoous/go-nanoid/v2"
	"github.com/oklog/ulid/v2"
)

// Alphabet defines the character set used for the random portion of handle
// ids. It stays within characters that are valid in HTML id attributes.
var Alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Length is the number of random characters generated (excluding the prefix).
var Length = 10

// Generate returns a new handle id with the given prefix.
func Generate(prefix string) (string, error) {
	id, err := nanoid.Generate(Alphabet, Length)
	if err != nil {
		return "", fmt.Errorf("idgen: %w", err)
	}
	return prefix + id, nil
}

// RequestID returns a ULID for correlating a request across log lines.
func RequestID() string {
	entropy := ulid.Monotonic(rand.Reader, 0)
	return ulid.MustNew(ulid.Timestamp(time.Now()), entropy).String()
}
