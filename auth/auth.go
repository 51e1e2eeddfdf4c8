// Copyright (c) 2026 Camilo Sanz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrInvalidAdminKey = errors.New("invalid admin key")

// GenerateToken creates the opaque voting token embedded in a student's
// QR credential. 16 random bytes (128 bits): possession of the token is
// what authenticates a voting session, so it must not be derivable from
// any personal data.
func GenerateToken() (string, error) {
	b := make([]byte, 16)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate voting token: %w", err)
	}
	// URL-safe base64 without padding
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "="), nil
}

// DeriveUsername builds the deterministic base login name for a student:
// given-name initial + last surname, folded to lowercase ASCII, plus the
// tail of the document id. "Ana María Rojas" / "1002003" yields
// "arojas003".
func DeriveUsername(fullName, docID string) string {
	parts := strings.Fields(normalize(fullName))

	var base string
	switch len(parts) {
	case 0:
		base = "estudiante"
	case 1:
		base = parts[0]
	default:
		base = parts[0][:1] + parts[len(parts)-1]
	}

	if len(base) > 12 {
		base = base[:12]
	}

	tail := docID
	if len(tail) > 3 {
		tail = tail[len(tail)-3:]
	}

	return base + tail
}

// WithSuffix disambiguates a derived username on collision. Attempt 1 is
// the bare name; attempts 2..n append the attempt number.
func WithSuffix(base string, attempt int) string {
	if attempt <= 1 {
		return base
	}
	return base + strconv.Itoa(attempt)
}

// ValidateAdminKey compares the presented admin key against the
// configured one in constant time.
func ValidateAdminKey(got, want string) error {
	if want == "" || !hmac.Equal([]byte(got), []byte(want)) {
		return ErrInvalidAdminKey
	}
	return nil
}

// normalize lowercases and strips everything but ASCII letters and
// digits, folding the accented letters common in Spanish names first.
func normalize(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		switch r {
		case 'á':
			r = 'a'
		case 'é':
			r = 'e'
		case 'í':
			r = 'i'
		case 'ó':
			r = 'o'
		case 'ú', 'ü':
			r = 'u'
		case 'ñ':
			r = 'n'
		}
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == ' ' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
