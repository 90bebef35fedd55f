// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/unielect/cliparse"
	"github.com/danielhkuo/unielect/ledger"
	"github.com/danielhkuo/unielect/middleware"
	"github.com/danielhkuo/unielect/models"
	"github.com/danielhkuo/unielect/session"
)

type VotingHandler struct {
	sessions *session.Manager
	votes    *ledger.Ledger
	cfg      cliparse.Config
}

func NewVotingHandler(sessions *session.Manager, votes *ledger.Ledger, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{sessions: sessions, votes: votes, cfg: cfg}
}

// Login handles POST /auth/login
// First factor: credential check. On success the caller gets a capture
// token and must complete the biometric factor before the timeout.
func (h *VotingHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.UniversityID == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "university_id and password are required")
		return
	}

	token, err := h.sessions.Begin(req.UniversityID, req.Password)
	switch {
	case errors.Is(err, session.ErrIdentityNotFound), errors.Is(err, session.ErrCredentialInvalid):
		// Same response for both - do not reveal which IDs exist
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid credentials")
		return
	case err != nil:
		slog.Error("failed to begin session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to start login")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{CaptureToken: token})
}

// SubmitCapture handles POST /auth/capture
// Second factor: the webcam frame is matched against enrolled
// templates and correlated with the claimed identity.
func (h *VotingHandler) SubmitCapture(w http.ResponseWriter, r *http.Request) {
	var req models.SubmitCaptureRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.CaptureToken == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "capture_token is required")
		return
	}

	image, err := decodeImage(req.Image)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid image format")
		return
	}

	proof, confidence, err := h.sessions.SubmitCapture(r.Context(), req.CaptureToken, image)
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Unknown capture token")
		return
	case errors.Is(err, session.ErrSessionClosed):
		middleware.ErrorResponse(w, http.StatusConflict, "Session already closed; start a new login")
		return
	case errors.Is(err, session.ErrTimeout):
		middleware.JSONResponse(w, http.StatusRequestTimeout, models.SubmitCaptureResponse{
			Outcome: models.AuthTimeout,
		})
		return
	case errors.Is(err, session.ErrBiometricMismatch):
		middleware.JSONResponse(w, http.StatusForbidden, models.SubmitCaptureResponse{
			Outcome:    models.AuthBiometricMismatch,
			Confidence: confidence,
		})
		return
	case errors.Is(err, session.ErrNoMatch):
		middleware.JSONResponse(w, http.StatusForbidden, models.SubmitCaptureResponse{
			Outcome:    models.AuthNoMatch,
			Confidence: confidence,
		})
		return
	case err != nil:
		slog.Error("biometric verification failed", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Verification failed")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SubmitCaptureResponse{
		Outcome:      models.AuthSuccess,
		UniversityID: proof.ID,
		Role:         proof.Role,
		Confidence:   confidence,
	})
}

// CastVote handles POST /votes
// The capture token of an authenticated session is the identity proof;
// it is redeemed here, so a retried request cannot reuse it.
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	var req models.CastVoteRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.CaptureToken == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "capture_token is required")
		return
	}
	if req.CandidateID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "candidate_id is required")
		return
	}

	proof, err := h.sessions.Redeem(req.CaptureToken)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Not authenticated; complete login first")
		return
	}

	entry, err := h.votes.CastVote(proof, req.CandidateID)
	switch {
	case errors.Is(err, ledger.ErrUnknownCandidate):
		middleware.JSONResponse(w, http.StatusNotFound, models.CastVoteResponse{
			Outcome:        models.OutcomeRejected,
			Reason:         models.ReasonUnknownCandidate,
			SequenceNumber: entry.SequenceNumber,
		})
		return
	case errors.Is(err, ledger.ErrAlreadyVoted):
		middleware.JSONResponse(w, http.StatusConflict, models.CastVoteResponse{
			Outcome:        models.OutcomeRejected,
			Reason:         models.ReasonAlreadyVoted,
			SequenceNumber: entry.SequenceNumber,
		})
		return
	case err != nil:
		slog.Error("failed to commit vote", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to cast vote")
		return
	}

	middleware.JSONResponse(w, http.StatusCreated, models.CastVoteResponse{
		Outcome:        models.OutcomeAccepted,
		SequenceNumber: entry.SequenceNumber,
	})
}

// GetTally handles GET /votes/tally
func (h *VotingHandler) GetTally(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, map[string]interface{}{
		"tally":    h.votes.Tally(),
		"sequence": h.votes.LatestSequence(),
	})
}

// GetLog handles GET /votes/log?limit=N
// Newest first; callers page by asking again with a smaller limit.
func (h *VotingHandler) GetLog(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if s := r.URL.Query().Get("limit"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 0 {
			middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]interface{}{
		"entries": h.votes.Log(limit),
	})
}
