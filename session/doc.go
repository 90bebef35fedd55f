// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package session drives the two-factor authentication state machine.

# States

Every login attempt is one session moving through:

	biometric_capture → biometric_verify → authenticated
	                                     ↘ rejected

Both terminal states close the session; a closed session's capture
token is dead and a new login must start from the beginning.

# Flow

The credential factor creates the session:

	token, err := manager.Begin(claimedID, password)

The biometric factor resolves it:

	proof, confidence, err := manager.SubmitCapture(ctx, token, frame)

SubmitCapture has exactly one of three outcomes: the claimed identity
matched above threshold (authenticated), a different identity matched
above threshold (biometric mismatch - someone authenticating as
someone else), or nothing matched. A session that is not resolved
before the capture timeout closes as rejected with outcome timeout.

An authenticated session is redeemed once for the identity proof the
ledger accepts:

	proof, err := manager.Redeem(token)

Redeem deletes the session, so one authentication backs at most one
ledger commit.

# Audit Trail

Every terminal transition emits a models.AuthRecord to the configured
AuditSink, whether or not a vote follows. AuditLog is the built-in
append-only sink; auditors read it newest-first via Recent. Log lines
carry salted hashes of university IDs, never the raw IDs.
*/
package session
