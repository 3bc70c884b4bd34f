// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides admin key generation and validation.

# Admin Keys

Admin keys use HMAC-SHA256 to create deterministic, verifiable keys:

	adminKey := auth.GenerateAdminKey(auth.ScopeStarSchema, salt)
	err := auth.ValidateAdminKey(auth.ScopeStarSchema, adminKey, salt)

The key is URL-safe base64 encoded without padding. Since it's deterministic,
the same scope and salt always produce the same key, so the server never
stores it. Operators print it with:

	go run . -admin-salt "$ADMIN_KEY_SALT" -print-admin-key

Loads and resets send it in the X-Admin-Key header.
*/
package auth
