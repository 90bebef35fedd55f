// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/unielect/audit"
	"github.com/danielhkuo/unielect/cliparse"
	"github.com/danielhkuo/unielect/handlers"
	"github.com/danielhkuo/unielect/identity"
	"github.com/danielhkuo/unielect/ledger"
	"github.com/danielhkuo/unielect/middleware"
	"github.com/danielhkuo/unielect/session"
)

// Deps is everything the routes need, wired in main.
type Deps struct {
	Store    identity.Store
	Sessions *session.Manager
	Votes    *ledger.Ledger
	Auditor  *audit.Auditor
	Poller   *audit.Poller
	AuthLog  *session.AuditLog
}

func NewRouter(d Deps, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	identityHandler := handlers.NewIdentityHandler(d.Store, cfg)
	votingHandler := handlers.NewVotingHandler(d.Sessions, d.Votes, cfg)
	auditHandler := handlers.NewAuditHandler(d.Auditor, d.Poller, d.AuthLog, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Registration
	mux.HandleFunc("POST /voters", middleware.WithLogging(identityHandler.RegisterVoter))
	mux.HandleFunc("GET /voters/{id}", middleware.WithLogging(identityHandler.GetVoter))
	mux.HandleFunc("POST /candidates", middleware.WithLogging(identityHandler.RegisterCandidate))
	mux.HandleFunc("GET /candidates", middleware.WithLogging(identityHandler.ListCandidates))
	mux.HandleFunc("GET /candidates/{id}", middleware.WithLogging(identityHandler.GetCandidate))

	// Two-factor authentication
	mux.HandleFunc("POST /auth/login", middleware.WithLogging(votingHandler.Login))
	mux.HandleFunc("POST /auth/capture", middleware.WithLogging(votingHandler.SubmitCapture))

	// Voting
	mux.HandleFunc("POST /votes", middleware.WithLogging(votingHandler.CastVote))
	mux.HandleFunc("GET /votes/tally", middleware.WithLogging(votingHandler.GetTally))
	mux.HandleFunc("GET /votes/log", middleware.WithLogging(votingHandler.GetLog))

	// Auditor
	mux.HandleFunc("GET /audit/leaderboard", middleware.WithLogging(auditHandler.GetLeaderboard))
	mux.HandleFunc("GET /audit/auth-log", middleware.WithLogging(auditHandler.GetAuthLog))
	mux.HandleFunc("GET /audit/winner", middleware.WithLogging(auditHandler.GetWinner))
	mux.HandleFunc("POST /audit/approve", middleware.WithLogging(auditHandler.Approve))
	mux.HandleFunc("GET /audit/approvals", middleware.WithLogging(auditHandler.GetApprovals))

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("unielect API v1"))
	})

	return mux
}
