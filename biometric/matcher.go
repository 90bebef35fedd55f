// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package biometric

import (
	"context"
	"errors"
)

var (
	// ErrNoMatch means no registered identity scored above the engine's
	// own floor. The session still applies the configured acceptance
	// threshold on top of the returned confidence.
	ErrNoMatch = errors.New("no matching identity")

	// ErrNotLive means the capture failed the liveness pre-check.
	ErrNotLive = errors.New("capture failed liveness check")
)

// Match is the engine's best guess for a captured image.
type Match struct {
	IdentityID string
	Confidence float64
}

// Matcher is the external recognition capability. Implementations may
// block on model inference or a remote call, so Match takes a context;
// the session bounds it with the configured capture timeout.
type Matcher interface {
	Match(ctx context.Context, image []byte) (Match, error)
}

// TemplateRef derives the stored template reference for an enrollment
// capture. Real engines store embeddings; the built-in matcher stores
// a digest of the enrollment image.
func TemplateRef(image []byte) string {
	return digest(image)
}
