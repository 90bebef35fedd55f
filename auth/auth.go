// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

var ErrCredentialInvalid = errors.New("credential invalid")

// HashPassword hashes a registration password with bcrypt at the
// default cost.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// CheckPassword compares a login password against the stored bcrypt
// hash. Returns ErrCredentialInvalid on mismatch.
func CheckPassword(password, storedHash string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(storedHash), []byte(password)); err != nil {
		return ErrCredentialInvalid
	}
	return nil
}

// NewCaptureToken creates the single-use token handed out after a
// successful credential check. The token identifies one authentication
// session and is useless once that session reaches a terminal state.
func NewCaptureToken() string {
	return uuid.NewString()
}

// HashID creates a one-way hash of a university ID for audit log text.
// Raw IDs stay in the database; log lines carry only the digest.
// Includes salt to prevent rainbow table attacks.
func HashID(id, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(id))
	sum := h.Sum(nil)
	// First 16 hex chars (64 bits) - enough to correlate lines
	return hex.EncodeToString(sum[:8])
}
