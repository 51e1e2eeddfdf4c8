// Copyright (c) 2026 Camilo Sanz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides credential primitives for the election server.

# Voting Tokens

Voting tokens are random 16-byte (128-bit) secrets:

	token, err := auth.GenerateToken()

Tokens are URL-safe base64 encoded without padding. The token is what a
student's QR credential encodes; possession of it - not knowledge of any
personal data - is what authenticates a voting session.

# Usernames

Login usernames are derived deterministically from the student's name
and document id:

	base := auth.DeriveUsername("Ana María Rojas", "1002003") // "arojas003"
	name := auth.WithSuffix(base, attempt)                    // "arojas0032" on retry

Accented letters common in Spanish names are folded to ASCII first.

# Admin Keys

The administration endpoints share one configured key, compared in
constant time:

	err := auth.ValidateAdminKey(r.Header.Get("X-Admin-Key"), cfg.AdminKey)
*/
package auth
