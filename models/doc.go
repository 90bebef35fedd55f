// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - RegisterVoterRequest: university_id, names, email, password, image
  - RegisterCandidateRequest: the above plus about_yourself
  - LoginRequest: university_id, password
  - SubmitCaptureRequest: capture_token, image
  - CastVoteRequest: capture_token, candidate_id
  - ApproveRequest: sequence_number

# Response Types

  - RegisterResponse: university_id, message
  - LoginResponse: capture_token
  - SubmitCaptureResponse: outcome, university_id, role, confidence
  - CastVoteResponse: outcome, reason, sequence_number
  - ApproveResponse: sequence_number, winner_id, approved_at
  - ErrorResponse: error, message

# Domain Types

  - Identity: registered voter or candidate, keyed by university ID
  - Candidate: Identity plus bio and portrait reference
  - AuthenticatedIdentity: output of a completed two-factor attempt
  - LedgerEntry: one immutable record of a vote attempt
  - TallyRow: one candidate's line in a tally snapshot
  - AuthRecord: one authentication attempt in the audit trail
  - Approval: an auditor sign-off pinned to a sequence number

PasswordHash and TemplateRef are tagged json:"-" and never serialize.

# Constants

Ledger outcomes and rejection reasons:

	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"

	ReasonUnknownCandidate = "unknown_candidate"
	ReasonAlreadyVoted     = "already_voted"

Authentication outcomes:

	AuthSuccess           = "success"
	AuthPasswordMismatch  = "password_mismatch"
	AuthBiometricMismatch = "biometric_mismatch"
	AuthNoMatch           = "no_match"
	AuthTimeout           = "timeout"

Roles:

	RoleVoter     = "voter"
	RoleCandidate = "candidate"
*/
package models
