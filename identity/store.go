// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package identity

import (
	"errors"

	"github.com/danielhkuo/unielect/models"
)

var (
	ErrNotFound    = errors.New("identity not found")
	ErrDuplicateID = errors.New("identity already registered")
)

// Store holds registered identities and their credential hashes and
// biometric template references. The session and the ledger both take
// a Store instead of reaching into shared state.
type Store interface {
	// GetIdentity returns the voter or candidate with the given
	// university ID, or ErrNotFound.
	GetIdentity(id string) (models.Identity, error)

	// GetCandidate returns the candidate record, or ErrNotFound if the
	// ID is absent or belongs to a plain voter.
	GetCandidate(id string) (models.Candidate, error)

	// ListCandidates returns all registered candidates ordered by ID.
	ListCandidates() ([]models.Candidate, error)

	// ListIdentities returns every registered identity (voters and
	// candidates) ordered by ID. The matcher scans these for template
	// references.
	ListIdentities() ([]models.Identity, error)

	// CreateVoter registers a new voter. ErrDuplicateID if the ID is
	// already taken by any identity.
	CreateVoter(v models.Identity) error

	// CreateCandidate registers a new candidate. ErrDuplicateID if the
	// ID is already taken by any identity.
	CreateCandidate(c models.Candidate) error

	// HasVoted reports whether the identity has an accepted vote.
	// ErrNotFound if the ID is not registered.
	HasVoted(id string) (bool, error)

	// SetVoted flips the has-voted flag. Only the ledger calls this,
	// inside its commit lock; the false case exists so a failed journal
	// append can be unwound.
	SetVoted(id string, voted bool) error
}
