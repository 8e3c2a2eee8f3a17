// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides password hashing, session tokens, and IP hashing.

# Passwords

Passwords are stored as bcrypt hashes:

	hash, err := auth.HashPassword(password)
	ok := auth.CheckPassword(hash, password)

# Session Tokens

Session tokens are HMAC-SHA256 signed and self-contained:

	token := auth.SignToken(userID, secret, auth.DefaultTokenTTL)
	userID, err := auth.VerifyToken(token, secret)

Format: "v1.<userID>.<expiryUnix>.<signature>". Verification needs no
server-side session state; tampered or expired tokens are rejected with
ErrInvalidToken / ErrExpiredToken.

# IP Hashing

For privacy-preserving vote deduplication:

	hash := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
