// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides password hashing and token utilities.

# Passwords

Registration passwords are hashed with bcrypt at the default cost:

	hash, err := auth.HashPassword(password)
	err := auth.CheckPassword(password, hash)

CheckPassword returns ErrCredentialInvalid on mismatch; callers should
surface it the same way as an unknown identity so login responses do
not reveal which IDs exist.

# Capture Tokens

Capture tokens identify one authentication session:

	token := auth.NewCaptureToken()

Tokens are random UUIDs. They carry no claims; all session state lives
server-side, and a token is useless once its session closes.

# ID Hashing

For privacy-preserving audit log text:

	hash := auth.HashID(universityID, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256. Raw university
IDs stay in the database; log lines carry only the digest.
*/
package auth
