// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package biometric

import (
	"context"
	"crypto/sha256"
	"encoding/hex"

	"github.com/danielhkuo/unielect/models"
)

// minCaptureBytes rejects obviously broken frames before matching.
// A webcam JPEG is never this small.
const minCaptureBytes = 64

// TemplateSource is the slice of the identity store the matcher needs.
type TemplateSource interface {
	ListIdentities() ([]models.Identity, error)
}

// TemplateMatcher is the built-in reference Matcher: it compares the
// capture's digest against every enrolled template reference and
// returns an exact digest match with confidence 1.0. It stands in for
// a real recognition engine behind the same interface and keeps the
// rest of the system honest about the contract (one best match, a
// confidence, or ErrNoMatch).
type TemplateMatcher struct {
	source TemplateSource
}

func NewTemplateMatcher(source TemplateSource) *TemplateMatcher {
	return &TemplateMatcher{source: source}
}

func (m *TemplateMatcher) Match(ctx context.Context, image []byte) (Match, error) {
	if err := ctx.Err(); err != nil {
		return Match{}, err
	}
	if len(image) < minCaptureBytes {
		return Match{}, ErrNotLive
	}

	idents, err := m.source.ListIdentities()
	if err != nil {
		return Match{}, err
	}

	d := digest(image)
	for _, ident := range idents {
		if ident.TemplateRef != "" && ident.TemplateRef == d {
			return Match{IdentityID: ident.ID, Confidence: 1.0}, nil
		}
	}
	return Match{}, ErrNoMatch
}

func digest(image []byte) string {
	sum := sha256.Sum256(image)
	return hex.EncodeToString(sum[:])
}
