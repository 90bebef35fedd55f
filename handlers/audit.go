// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/danielhkuo/unielect/audit"
	"github.com/danielhkuo/unielect/cliparse"
	"github.com/danielhkuo/unielect/middleware"
	"github.com/danielhkuo/unielect/models"
	"github.com/danielhkuo/unielect/session"
)

type AuditHandler struct {
	auditor *audit.Auditor
	poller  *audit.Poller
	authLog *session.AuditLog
	cfg     cliparse.Config
}

func NewAuditHandler(auditor *audit.Auditor, poller *audit.Poller, authLog *session.AuditLog, cfg cliparse.Config) *AuditHandler {
	return &AuditHandler{auditor: auditor, poller: poller, authLog: authLog, cfg: cfg}
}

// GetLeaderboard handles GET /audit/leaderboard
// Serves the poller's cached snapshot; possibly stale, never partial.
func (h *AuditHandler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, h.poller.Snapshot())
}

// GetAuthLog handles GET /audit/auth-log?limit=N
// The trail of authentication attempts, including ones that never
// reached a vote.
func (h *AuditHandler) GetAuthLog(w http.ResponseWriter, r *http.Request) {
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
		"records": h.authLog.Recent(limit),
	})
}

// GetWinner handles GET /audit/winner
func (h *AuditHandler) GetWinner(w http.ResponseWriter, r *http.Request) {
	winner, err := h.auditor.ComputeWinner()
	if errors.Is(err, audit.ErrNoVotesCast) {
		middleware.ErrorResponse(w, http.StatusNotFound, "No votes cast yet")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, winner)
}

// Approve handles POST /audit/approve
// Pins the auditor's sign-off to a ledger sequence number. One-way;
// re-approving at or below a previous cutoff is rejected.
func (h *AuditHandler) Approve(w http.ResponseWriter, r *http.Request) {
	var req models.ApproveRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	approval, err := h.auditor.Approve(req.SequenceNumber)
	switch {
	case errors.Is(err, audit.ErrStaleApproval):
		middleware.ErrorResponse(w, http.StatusConflict, "Approval cutoff is not past the last approved sequence")
		return
	case errors.Is(err, audit.ErrFutureSequence):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Sequence number is beyond the ledger head")
		return
	case errors.Is(err, audit.ErrNoVotesCast):
		middleware.ErrorResponse(w, http.StatusConflict, "Cannot approve before any votes are cast")
		return
	case err != nil:
		slog.Error("failed to record approval", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to approve result")
		return
	}

	slog.Info("auditor approved result", "sequence", approval.SequenceNumber, "winner", approval.WinnerID)

	middleware.JSONResponse(w, http.StatusOK, models.ApproveResponse{
		SequenceNumber: approval.SequenceNumber,
		WinnerID:       approval.WinnerID,
		ApprovedAt:     approval.ApprovedAt,
	})
}

// GetApprovals handles GET /audit/approvals
func (h *AuditHandler) GetApprovals(w http.ResponseWriter, r *http.Request) {
	middleware.JSONResponse(w, http.StatusOK, map[string]interface{}{
		"approvals": h.auditor.Approvals(),
	})
}
