// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/danielhkuo/unielect/auth"
	"github.com/danielhkuo/unielect/biometric"
	"github.com/danielhkuo/unielect/identity"
	"github.com/danielhkuo/unielect/models"
)

// Session states
const (
	StateBiometricCapture = "biometric_capture"
	StateBiometricVerify  = "biometric_verify"
	StateAuthenticated    = "authenticated"
	StateRejected         = "rejected"
)

var (
	ErrIdentityNotFound  = errors.New("identity not found")
	ErrCredentialInvalid = errors.New("credential invalid")
	ErrSessionNotFound   = errors.New("no session for capture token")
	ErrSessionClosed     = errors.New("session already closed")
	ErrTimeout           = errors.New("biometric capture timed out")
	ErrBiometricMismatch = errors.New("captured face matches a different identity")
	ErrNoMatch           = errors.New("no identity matched above threshold")
)

// session tracks one login attempt. Single use: once the state is
// Authenticated or Rejected, every further call fails with
// ErrSessionClosed so a stale capture token cannot be replayed.
type session struct {
	token     string
	claimedID string
	role      string
	state     string
	outcome   string
	deadline  time.Time
}

func (s *session) terminal() bool {
	return s.state == StateAuthenticated || s.state == StateRejected
}

// Manager drives the two-factor state machine for all live login
// attempts. Sessions are independent; the map lock only guards
// bookkeeping, never a matcher call.
type Manager struct {
	store     identity.Store
	matcher   biometric.Matcher
	sink      AuditSink
	threshold float64
	timeout   time.Duration
	logSalt   string

	mu       sync.Mutex
	sessions map[string]*session
}

func NewManager(store identity.Store, matcher biometric.Matcher, sink AuditSink, threshold float64, timeout time.Duration, logSalt string) *Manager {
	return &Manager{
		store:     store,
		matcher:   matcher,
		sink:      sink,
		threshold: threshold,
		timeout:   timeout,
		logSalt:   logSalt,
		sessions:  make(map[string]*session),
	}
}

// Begin runs the credential check for a claimed identity. On success
// the attempt transitions to BiometricCapture and the returned capture
// token must be presented with the webcam frame before the capture
// timeout.
func (m *Manager) Begin(claimedID, password string) (string, error) {
	ident, err := m.store.GetIdentity(claimedID)
	if err != nil {
		if errors.Is(err, identity.ErrNotFound) {
			slog.Warn("login for unknown identity", "claimed", auth.HashID(claimedID, m.logSalt))
			return "", ErrIdentityNotFound
		}
		return "", err
	}

	if err := auth.CheckPassword(password, ident.PasswordHash); err != nil {
		m.record(claimedID, models.AuthPasswordMismatch)
		return "", ErrCredentialInvalid
	}

	token := auth.NewCaptureToken()

	m.mu.Lock()
	m.sweepLocked(time.Now())
	m.sessions[token] = &session{
		token:     token,
		claimedID: claimedID,
		role:      ident.Role,
		state:     StateBiometricCapture,
		deadline:  time.Now().Add(m.timeout),
	}
	m.mu.Unlock()

	slog.Info("credential check passed", "claimed", auth.HashID(claimedID, m.logSalt))
	return token, nil
}

// SubmitCapture runs the biometric factor for the session behind the
// capture token. Exactly one of three outcomes: the matched identity is
// the claimed one above threshold (Authenticated), a different identity
// matched above threshold (BiometricMismatch - one person trying to
// authenticate as another), or nothing matched (NoMatch). All three
// close the session.
func (m *Manager) SubmitCapture(ctx context.Context, token string, image []byte) (models.AuthenticatedIdentity, float64, error) {
	m.mu.Lock()
	s, ok := m.sessions[token]
	if !ok {
		m.mu.Unlock()
		return models.AuthenticatedIdentity{}, 0, ErrSessionNotFound
	}
	if s.terminal() {
		m.mu.Unlock()
		return models.AuthenticatedIdentity{}, 0, ErrSessionClosed
	}

	now := time.Now()
	if now.After(s.deadline) {
		m.closeLocked(s, models.AuthTimeout)
		m.mu.Unlock()
		return models.AuthenticatedIdentity{}, 0, ErrTimeout
	}
	s.state = StateBiometricVerify
	deadline := s.deadline
	m.mu.Unlock()

	// Matcher calls can take real latency; bound them by what is left
	// of the session's deadline, without holding the map lock.
	ctx, cancel := context.WithDeadline(ctx, deadline)
	defer cancel()

	match, err := m.matcher.Match(ctx, image)

	m.mu.Lock()
	defer m.mu.Unlock()

	if s.terminal() {
		// Lost a race with another submit for the same token
		return models.AuthenticatedIdentity{}, 0, ErrSessionClosed
	}

	switch {
	case err != nil && (errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled)):
		m.closeLocked(s, models.AuthTimeout)
		return models.AuthenticatedIdentity{}, 0, ErrTimeout
	case errors.Is(err, biometric.ErrNoMatch), errors.Is(err, biometric.ErrNotLive):
		m.closeLocked(s, models.AuthNoMatch)
		return models.AuthenticatedIdentity{}, 0, ErrNoMatch
	case err != nil:
		m.closeLocked(s, models.AuthNoMatch)
		return models.AuthenticatedIdentity{}, 0, err
	}

	if match.Confidence < m.threshold {
		m.closeLocked(s, models.AuthNoMatch)
		return models.AuthenticatedIdentity{}, match.Confidence, ErrNoMatch
	}

	if match.IdentityID != s.claimedID {
		m.closeLocked(s, models.AuthBiometricMismatch)
		return models.AuthenticatedIdentity{}, match.Confidence, ErrBiometricMismatch
	}

	s.state = StateAuthenticated
	s.outcome = models.AuthSuccess
	// Fresh window for redeeming the proof against the ledger
	s.deadline = time.Now().Add(m.timeout)
	m.record(s.claimedID, models.AuthSuccess)

	return models.AuthenticatedIdentity{ID: s.claimedID, Role: s.role}, match.Confidence, nil
}

// Redeem exchanges an Authenticated session's capture token for the
// identity proof the ledger accepts, and discards the session so the
// proof cannot be redeemed twice. A proof not redeemed within its
// window expires with ErrTimeout.
func (m *Manager) Redeem(token string) (models.AuthenticatedIdentity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.sessions[token]
	if !ok {
		return models.AuthenticatedIdentity{}, ErrSessionNotFound
	}
	if s.state != StateAuthenticated {
		return models.AuthenticatedIdentity{}, ErrSessionClosed
	}
	if time.Now().After(s.deadline) {
		// The attempt keeps its success record; only the proof lapses.
		delete(m.sessions, token)
		return models.AuthenticatedIdentity{}, ErrTimeout
	}

	delete(m.sessions, token)
	return models.AuthenticatedIdentity{ID: s.claimedID, Role: s.role}, nil
}

// Live returns the number of non-terminal sessions.
func (m *Manager) Live() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := 0
	for _, s := range m.sessions {
		if !s.terminal() {
			n++
		}
	}
	return n
}

// closeLocked moves a session to Rejected and emits its audit record.
// Caller must hold mu.
func (m *Manager) closeLocked(s *session, outcome string) {
	s.state = StateRejected
	s.outcome = outcome
	m.record(s.claimedID, outcome)
}

// sweepLocked drops rejected sessions and any session whose window
// lapsed. Authenticated sessions stay until redeemed or expired.
// Caller must hold mu.
func (m *Manager) sweepLocked(now time.Time) {
	for token, s := range m.sessions {
		if s.state == StateRejected {
			delete(m.sessions, token)
			continue
		}
		if now.After(s.deadline) {
			if !s.terminal() {
				// Close before deleting: an in-flight capture still
				// holds this session and must observe a terminal state
				// rather than record a second outcome.
				m.closeLocked(s, models.AuthTimeout)
			}
			delete(m.sessions, token)
		}
	}
}

func (m *Manager) record(claimedID, outcome string) {
	rec := models.AuthRecord{ClaimedID: claimedID, Outcome: outcome, At: time.Now()}
	if m.sink != nil {
		m.sink.Record(rec)
	}
	slog.Info("authentication attempt closed",
		"claimed", auth.HashID(claimedID, m.logSalt),
		"outcome", outcome,
	)
}
