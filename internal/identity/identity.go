// Package identity mints the opaque per-device identifiers used as userId and
// authorId across collections. The value is generated once per device and
// persisted client-side; the server never maps it to a person.
package identity

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	// Prefix matches the ids already present in the production store.
	Prefix = "user_"

	alphabet     = "0123456789abcdefghijklmnopqrstuvwxyz"
	suffixLength = 9
)

// New returns a fresh device identifier, e.g. "user_k3f9x2m1q".
func New() (string, error) {
	suffix, err := gonanoid.Generate(alphabet, suffixLength)
	if err != nil {
		return "", err
	}
	return Prefix + suffix, nil
}
