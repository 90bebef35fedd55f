package models

import "time"

// Identity roles
const (
	RoleVoter     = "voter"
	RoleCandidate = "candidate"
)

// Ledger entry outcomes
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
)

// Rejection reasons recorded on ledger entries
const (
	ReasonUnknownCandidate = "unknown_candidate"
	ReasonAlreadyVoted     = "already_voted"
)

// Authentication attempt outcomes
const (
	AuthSuccess           = "success"
	AuthPasswordMismatch  = "password_mismatch"
	AuthBiometricMismatch = "biometric_mismatch"
	AuthNoMatch           = "no_match"
	AuthTimeout           = "timeout"
)

// Request types

type RegisterVoterRequest struct {
	UniversityID string `json:"university_id"`
	FirstName    string `json:"firstname"`
	LastName     string `json:"lastname"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Image        string `json:"image"` // base64 biometric enrollment capture
}

type RegisterCandidateRequest struct {
	UniversityID string `json:"university_id"`
	FirstName    string `json:"firstname"`
	LastName     string `json:"lastname"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	Bio          string `json:"about_yourself"`
	Image        string `json:"image"`
}

type LoginRequest struct {
	UniversityID string `json:"university_id"`
	Password     string `json:"password"`
}

type SubmitCaptureRequest struct {
	CaptureToken string `json:"capture_token"`
	Image        string `json:"image"` // base64 webcam frame
}

type CastVoteRequest struct {
	CaptureToken string `json:"capture_token"` // proof of an authenticated session
	CandidateID  string `json:"candidate_id"`
}

type ApproveRequest struct {
	SequenceNumber uint64 `json:"sequence_number"`
}

// Response types

type RegisterResponse struct {
	UniversityID string `json:"university_id"`
	Message      string `json:"message"`
}

type LoginResponse struct {
	CaptureToken string `json:"capture_token"`
}

type SubmitCaptureResponse struct {
	Outcome      string  `json:"outcome"`
	UniversityID string  `json:"university_id,omitempty"`
	Role         string  `json:"role,omitempty"`
	Confidence   float64 `json:"confidence,omitempty"`
}

type CastVoteResponse struct {
	Outcome        string `json:"outcome"`
	Reason         string `json:"reason,omitempty"`
	SequenceNumber uint64 `json:"sequence_number"`
}

type ApproveResponse struct {
	SequenceNumber uint64    `json:"sequence_number"`
	WinnerID       string    `json:"winner_id"`
	ApprovedAt     time.Time `json:"approved_at"`
}

// Domain types

// Identity is a registered voter or candidate, keyed by university ID.
// HasVoted is the only field mutated after registration; the ledger
// flips it exactly once under its commit lock.
type Identity struct {
	ID           string `json:"university_id"`
	Role         string `json:"role"`
	FirstName    string `json:"firstname"`
	LastName     string `json:"lastname"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // Never expose in JSON
	TemplateRef  string `json:"-"` // Biometric template digest, never exposed
	HasVoted     bool   `json:"has_voted"`
}

type Candidate struct {
	Identity
	Bio         string `json:"about_yourself"`
	PortraitRef string `json:"portrait_ref,omitempty"`
}

// AuthenticatedIdentity is the output of a completed two-factor
// authentication attempt. The ledger accepts only these and never
// re-runs authentication.
type AuthenticatedIdentity struct {
	ID   string `json:"university_id"`
	Role string `json:"role"`
}

// LedgerEntry is one immutable audit record of a vote attempt.
// Entries are never edited or removed; corrections are new entries.
type LedgerEntry struct {
	SequenceNumber uint64    `json:"sequence_number"`
	Timestamp      time.Time `json:"timestamp"`
	VoterID        string    `json:"voter_id"`
	CandidateID    string    `json:"candidate_id"`
	Outcome        string    `json:"outcome"`
	Reason         string    `json:"reason,omitempty"`
}

// TallyRow is one candidate's line in a tally snapshot, derived from
// the accepted entries in the ledger and never stored as truth.
type TallyRow struct {
	CandidateID string `json:"candidate_id"`
	Count       uint64 `json:"count"`
}

// AuthRecord is the audit trail entry emitted on every terminal
// transition of an authentication session, vote or no vote.
type AuthRecord struct {
	ClaimedID string    `json:"claimed_id"`
	Outcome   string    `json:"outcome"`
	At        time.Time `json:"at"`
}

// Approval pins an auditor's sign-off to a ledger sequence number.
// Votes committed after the cutoff are auditable as post-approval.
type Approval struct {
	SequenceNumber uint64     `json:"sequence_number"`
	WinnerID       string     `json:"winner_id"`
	Tally          []TallyRow `json:"tally"`
	ApprovedAt     time.Time  `json:"approved_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
