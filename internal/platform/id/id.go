// Package id generates collision-resistant identifiers for domain records.
package id

import (
	crand "crypto/rand"
	"encoding/base32"
	"fmt"
	"strings"
)

var encoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// NewID returns a 26-character lowercase base32 identifier backed by 16
// random bytes with UUIDv4 version and variant bits set.
func NewID() (string, error) {
	var b [16]byte
	if _, err := crand.Read(b[:]); err != nil {
		return "", fmt.Errorf("read random id bytes: %w", err)
	}
	b[6] = (b[6] & 0x0F) | 0x40
	b[8] = (b[8] & 0x3F) | 0x80

	return strings.ToLower(encoding.EncodeToString(b[:])), nil
}
