// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers_test

import (
	"context"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/danielhkuo/unielect/audit"
	"github.com/danielhkuo/unielect/models"
	"github.com/danielhkuo/unielect/router"
	"github.com/danielhkuo/unielect/testutil"
)

// newServer wires the full route table over an in-memory election.
func newServer(t *testing.T) (*testutil.Election, *http.ServeMux) {
	t.Helper()

	e := testutil.NewElection(t)
	poller := audit.NewPoller(e.Votes, e.Cfg.PollInterval)
	mux := router.NewRouter(router.Deps{
		Store:    e.Store,
		Sessions: e.Sessions,
		Votes:    e.Votes,
		Auditor:  e.Auditor,
		Poller:   poller,
		AuthLog:  e.AuthLog,
	}, e.Cfg)
	return e, mux
}

func imageB64(id string) string {
	return base64.StdEncoding.EncodeToString(testutil.EnrollImage(id))
}

// authenticate runs both factors over HTTP and returns the capture token.
func authenticate(t *testing.T, mux *http.ServeMux, id string) string {
	t.Helper()

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/auth/login", models.LoginRequest{
		UniversityID: id,
		Password:     testutil.TestPassword,
	}, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var login models.LoginResponse
	testutil.AssertJSON(t, w, &login)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/auth/capture", models.SubmitCaptureRequest{
		CaptureToken: login.CaptureToken,
		Image:        imageB64(id),
	}, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var capture models.SubmitCaptureResponse
	testutil.AssertJSON(t, w, &capture)
	if capture.Outcome != models.AuthSuccess {
		t.Fatalf("Expected capture outcome success, got %q", capture.Outcome)
	}

	return login.CaptureToken
}

func TestRegisterAndVoteFlow(t *testing.T) {
	_, mux := newServer(t)

	// Register a voter and a candidate over the API.
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/voters", models.RegisterVoterRequest{
		UniversityID: "U1001",
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Email:        "ada@campus.test",
		Password:     testutil.TestPassword,
		Image:        imageB64("U1001"),
	}, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/candidates", models.RegisterCandidateRequest{
		UniversityID: "C2001",
		FirstName:    "Grace",
		LastName:     "Hopper",
		Email:        "grace@campus.test",
		Password:     testutil.TestPassword,
		Bio:          "Compilers for everyone",
		Image:        imageB64("C2001"),
	}, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)

	token := authenticate(t, mux, "U1001")

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/votes", models.CastVoteRequest{
		CaptureToken: token,
		CandidateID:  "C2001",
	}, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)

	var vote models.CastVoteResponse
	testutil.AssertJSON(t, w, &vote)
	if vote.Outcome != models.OutcomeAccepted || vote.SequenceNumber != 1 {
		t.Errorf("Expected accepted vote at sequence 1, got %+v", vote)
	}

	// The tally reflects the commit.
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/votes/tally", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var tallyResp struct {
		Tally    []models.TallyRow `json:"tally"`
		Sequence uint64            `json:"sequence"`
	}
	testutil.AssertJSON(t, w, &tallyResp)
	if len(tallyResp.Tally) != 1 || tallyResp.Tally[0].CandidateID != "C2001" || tallyResp.Tally[0].Count != 1 {
		t.Errorf("Expected tally [{C2001 1}], got %v", tallyResp.Tally)
	}
}

func TestRegisterDuplicateID(t *testing.T) {
	e, mux := newServer(t)
	testutil.AddVoter(t, e.Store, "U1001")

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/voters", models.RegisterVoterRequest{
		UniversityID: "U1001",
		FirstName:    "Ada",
		LastName:     "Lovelace",
		Password:     "pw",
		Image:        imageB64("U1001"),
	}, nil))
	testutil.AssertStatus(t, w, http.StatusConflict)
}

func TestRegisterMissingFields(t *testing.T) {
	_, mux := newServer(t)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/voters", models.RegisterVoterRequest{
		UniversityID: "U1001",
	}, nil))
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestLoginInvalidCredentials(t *testing.T) {
	e, mux := newServer(t)
	testutil.AddVoter(t, e.Store, "U1001")

	// Wrong password and unknown ID look identical to the caller.
	for _, req := range []models.LoginRequest{
		{UniversityID: "U1001", Password: "wrong"},
		{UniversityID: "GHOST", Password: testutil.TestPassword},
	} {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, testutil.MakeRequest("POST", "/auth/login", req, nil))
		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	}
}

func TestCaptureWrongFace(t *testing.T) {
	e, mux := newServer(t)
	testutil.AddVoter(t, e.Store, "U1001")
	testutil.AddVoter(t, e.Store, "U1002")

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/auth/login", models.LoginRequest{
		UniversityID: "U1001",
		Password:     testutil.TestPassword,
	}, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var login models.LoginResponse
	testutil.AssertJSON(t, w, &login)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/auth/capture", models.SubmitCaptureRequest{
		CaptureToken: login.CaptureToken,
		Image:        imageB64("U1002"),
	}, nil))
	testutil.AssertStatus(t, w, http.StatusForbidden)

	var capture models.SubmitCaptureResponse
	testutil.AssertJSON(t, w, &capture)
	if capture.Outcome != models.AuthBiometricMismatch {
		t.Errorf("Expected biometric_mismatch outcome, got %q", capture.Outcome)
	}
}

func TestCaptureUnknownToken(t *testing.T) {
	_, mux := newServer(t)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/auth/capture", models.SubmitCaptureRequest{
		CaptureToken: "bogus",
		Image:        imageB64("U1001"),
	}, nil))
	testutil.AssertStatus(t, w, http.StatusUnauthorized)
}

func TestCastVoteWithoutAuthentication(t *testing.T) {
	e, mux := newServer(t)
	testutil.AddCandidate(t, e.Store, "C2001")

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/votes", models.CastVoteRequest{
		CaptureToken: "bogus",
		CandidateID:  "C2001",
	}, nil))
	testutil.AssertStatus(t, w, http.StatusUnauthorized)
}

func TestCastVoteTokenIsSingleUse(t *testing.T) {
	e, mux := newServer(t)
	testutil.AddVoter(t, e.Store, "U1001")
	testutil.AddCandidate(t, e.Store, "C2001")

	token := authenticate(t, mux, "U1001")

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/votes", models.CastVoteRequest{
		CaptureToken: token,
		CandidateID:  "C2001",
	}, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)

	// Replaying the same token fails authentication, not vote rules.
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/votes", models.CastVoteRequest{
		CaptureToken: token,
		CandidateID:  "C2001",
	}, nil))
	testutil.AssertStatus(t, w, http.StatusUnauthorized)
}

func TestDoubleVoteRejected(t *testing.T) {
	e, mux := newServer(t)
	testutil.AddVoter(t, e.Store, "U1001")
	testutil.AddCandidate(t, e.Store, "C2001")
	testutil.AddCandidate(t, e.Store, "C2002")

	token := authenticate(t, mux, "U1001")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/votes", models.CastVoteRequest{
		CaptureToken: token,
		CandidateID:  "C2001",
	}, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)

	// A fresh full authentication does not earn a second vote.
	token = authenticate(t, mux, "U1001")
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/votes", models.CastVoteRequest{
		CaptureToken: token,
		CandidateID:  "C2002",
	}, nil))
	testutil.AssertStatus(t, w, http.StatusConflict)

	var vote models.CastVoteResponse
	testutil.AssertJSON(t, w, &vote)
	if vote.Reason != models.ReasonAlreadyVoted {
		t.Errorf("Expected reason already_voted, got %q", vote.Reason)
	}
	if vote.SequenceNumber != 2 {
		t.Errorf("Rejection should consume sequence 2, got %d", vote.SequenceNumber)
	}
}

func TestVoteForUnknownCandidate(t *testing.T) {
	e, mux := newServer(t)
	testutil.AddVoter(t, e.Store, "U1001")

	token := authenticate(t, mux, "U1001")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/votes", models.CastVoteRequest{
		CaptureToken: token,
		CandidateID:  "NOPE",
	}, nil))
	testutil.AssertStatus(t, w, http.StatusNotFound)

	var vote models.CastVoteResponse
	testutil.AssertJSON(t, w, &vote)
	if vote.Reason != models.ReasonUnknownCandidate {
		t.Errorf("Expected reason unknown_candidate, got %q", vote.Reason)
	}
}

func TestGetCandidateNotFound(t *testing.T) {
	_, mux := newServer(t)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/candidates/GHOST", nil, nil))
	testutil.AssertStatus(t, w, http.StatusNotFound)
}

func TestGetVoterHidesSecrets(t *testing.T) {
	e, mux := newServer(t)
	testutil.AddVoter(t, e.Store, "U1001")

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/voters/U1001", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var body map[string]interface{}
	testutil.AssertJSON(t, w, &body)
	if _, ok := body["password_hash"]; ok {
		t.Error("Voter response must not carry the password hash")
	}
	if _, ok := body["template_ref"]; ok {
		t.Error("Voter response must not carry the biometric template")
	}
	if body["university_id"] != "U1001" {
		t.Errorf("Expected university_id U1001, got %v", body["university_id"])
	}
}

func TestVoteLogEndpoint(t *testing.T) {
	e, mux := newServer(t)
	testutil.AddVoter(t, e.Store, "U1001")
	testutil.AddCandidate(t, e.Store, "C2001")

	token := authenticate(t, mux, "U1001")
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/votes", models.CastVoteRequest{
		CaptureToken: token,
		CandidateID:  "C2001",
	}, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/votes/log?limit=10", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var logResp struct {
		Entries []models.LedgerEntry `json:"entries"`
	}
	testutil.AssertJSON(t, w, &logResp)
	if len(logResp.Entries) != 1 || logResp.Entries[0].Outcome != models.OutcomeAccepted {
		t.Errorf("Expected one accepted entry, got %v", logResp.Entries)
	}

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/votes/log?limit=-1", nil, nil))
	testutil.AssertStatus(t, w, http.StatusBadRequest)
}

func TestAuditEndpoints(t *testing.T) {
	e, mux := newServer(t)
	testutil.AddVoter(t, e.Store, "U1001")
	testutil.AddCandidate(t, e.Store, "C2001")

	// No votes yet: winner is a 404, not a default.
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/audit/winner", nil, nil))
	testutil.AssertStatus(t, w, http.StatusNotFound)

	token := authenticate(t, mux, "U1001")
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/votes", models.CastVoteRequest{
		CaptureToken: token,
		CandidateID:  "C2001",
	}, nil))
	testutil.AssertStatus(t, w, http.StatusCreated)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/audit/winner", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var winner models.TallyRow
	testutil.AssertJSON(t, w, &winner)
	if winner.CandidateID != "C2001" {
		t.Errorf("Expected winner C2001, got %q", winner.CandidateID)
	}

	// Approve at the current head, then verify replays are rejected.
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/audit/approve", models.ApproveRequest{SequenceNumber: 1}, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/audit/approve", models.ApproveRequest{SequenceNumber: 1}, nil))
	testutil.AssertStatus(t, w, http.StatusConflict)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("POST", "/audit/approve", models.ApproveRequest{SequenceNumber: 42}, nil))
	testutil.AssertStatus(t, w, http.StatusBadRequest)

	// The auth log shows the attempt trail.
	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/audit/auth-log", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var authLog struct {
		Records []models.AuthRecord `json:"records"`
	}
	testutil.AssertJSON(t, w, &authLog)
	if len(authLog.Records) != 1 || authLog.Records[0].Outcome != models.AuthSuccess {
		t.Errorf("Expected one success auth record, got %v", authLog.Records)
	}

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/audit/approvals", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)

	var approvals struct {
		Approvals []models.Approval `json:"approvals"`
	}
	testutil.AssertJSON(t, w, &approvals)
	if len(approvals.Approvals) != 1 {
		t.Errorf("Expected 1 approval, got %d", len(approvals.Approvals))
	}
}

func TestLeaderboardEndpoint(t *testing.T) {
	e := testutil.NewElection(t)
	testutil.AddVoter(t, e.Store, "U1001")
	testutil.AddCandidate(t, e.Store, "C2001")

	poller := audit.NewPoller(e.Votes, 10*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go poller.Run(ctx)

	mux := router.NewRouter(router.Deps{
		Store:    e.Store,
		Sessions: e.Sessions,
		Votes:    e.Votes,
		Auditor:  e.Auditor,
		Poller:   poller,
		AuthLog:  e.AuthLog,
	}, e.Cfg)

	if _, err := e.Votes.CastVote(models.AuthenticatedIdentity{ID: "U1001", Role: models.RoleVoter}, "C2001"); err != nil {
		t.Fatalf("CastVote failed: %v", err)
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, testutil.MakeRequest("GET", "/audit/leaderboard", nil, nil))
		testutil.AssertStatus(t, w, http.StatusOK)

		var board audit.Leaderboard
		testutil.AssertJSON(t, w, &board)
		if board.Sequence == 1 {
			if len(board.Tally) != 1 || board.Tally[0].CandidateID != "C2001" {
				t.Errorf("Expected leaderboard tally [{C2001 1}], got %v", board.Tally)
			}
			return
		}
		if time.Now().After(deadline) {
			t.Fatalf("Leaderboard never caught up; snapshot %+v", board)
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestHealthEndpoint(t *testing.T) {
	_, mux := newServer(t)

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, testutil.MakeRequest("GET", "/health", nil, nil))
	testutil.AssertStatus(t, w, http.StatusOK)
}
