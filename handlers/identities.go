// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/base64"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/unielect/auth"
	"github.com/danielhkuo/unielect/biometric"
	"github.com/danielhkuo/unielect/cliparse"
	"github.com/danielhkuo/unielect/identity"
	"github.com/danielhkuo/unielect/middleware"
	"github.com/danielhkuo/unielect/models"
)

type IdentityHandler struct {
	store identity.Store
	cfg   cliparse.Config
}

func NewIdentityHandler(store identity.Store, cfg cliparse.Config) *IdentityHandler {
	return &IdentityHandler{store: store, cfg: cfg}
}

// decodeImage accepts a raw base64 payload or a data URL
// ("data:image/jpeg;base64,...") as the webcam widget sends it.
func decodeImage(encoded string) ([]byte, error) {
	if i := strings.IndexByte(encoded, ','); i >= 0 {
		encoded = encoded[i+1:]
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, err
	}
	if len(data) == 0 {
		return nil, errors.New("decoded image is empty")
	}
	return data, nil
}

// RegisterVoter handles POST /voters
func (h *IdentityHandler) RegisterVoter(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterVoterRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.UniversityID == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "university_id and password are required")
		return
	}
	if req.FirstName == "" || req.LastName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "firstname and lastname are required")
		return
	}

	image, err := decodeImage(req.Image)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid image format")
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register voter")
		return
	}

	voter := models.Identity{
		ID:           req.UniversityID,
		Role:         models.RoleVoter,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: passwordHash,
		TemplateRef:  biometric.TemplateRef(image),
	}

	if err := h.store.CreateVoter(voter); err != nil {
		if errors.Is(err, identity.ErrDuplicateID) {
			middleware.ErrorResponse(w, http.StatusConflict, "Voter already registered")
			return
		}
		slog.Error("failed to create voter", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register voter")
		return
	}

	slog.Info("voter registered", "voter", auth.HashID(req.UniversityID, h.cfg.LogHashSalt))

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterResponse{
		UniversityID: req.UniversityID,
		Message:      "Voter registered successfully",
	})
}

// RegisterCandidate handles POST /candidates
func (h *IdentityHandler) RegisterCandidate(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterCandidateRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.UniversityID == "" || req.Password == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "university_id and password are required")
		return
	}
	if req.FirstName == "" || req.LastName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "firstname and lastname are required")
		return
	}

	image, err := decodeImage(req.Image)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid image format")
		return
	}

	passwordHash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("failed to hash password", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register candidate")
		return
	}

	candidate := models.Candidate{
		Identity: models.Identity{
			ID:           req.UniversityID,
			Role:         models.RoleCandidate,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			Email:        req.Email,
			PasswordHash: passwordHash,
			TemplateRef:  biometric.TemplateRef(image),
		},
		Bio:         req.Bio,
		PortraitRef: biometric.TemplateRef(image),
	}

	if err := h.store.CreateCandidate(candidate); err != nil {
		if errors.Is(err, identity.ErrDuplicateID) {
			middleware.ErrorResponse(w, http.StatusConflict, "Candidate already registered")
			return
		}
		slog.Error("failed to create candidate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to register candidate")
		return
	}

	slog.Info("candidate registered", "candidate", auth.HashID(req.UniversityID, h.cfg.LogHashSalt))

	middleware.JSONResponse(w, http.StatusCreated, models.RegisterResponse{
		UniversityID: req.UniversityID,
		Message:      "Candidate registered successfully",
	})
}

// ListCandidates handles GET /candidates
func (h *IdentityHandler) ListCandidates(w http.ResponseWriter, r *http.Request) {
	candidates, err := h.store.ListCandidates()
	if err != nil {
		slog.Error("failed to list candidates", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, map[string]interface{}{
		"candidates": candidates,
	})
}

// GetCandidate handles GET /candidates/:id
func (h *IdentityHandler) GetCandidate(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	candidate, err := h.store.GetCandidate(id)
	if err != nil {
		if errors.Is(err, identity.ErrNotFound) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Candidate not found")
			return
		}
		slog.Error("failed to query candidate", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, candidate)
}

// GetVoter handles GET /voters/:id
// Returns profile fields only; the password hash and biometric
// template never leave the store.
func (h *IdentityHandler) GetVoter(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if id == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	ident, err := h.store.GetIdentity(id)
	if err != nil {
		if errors.Is(err, identity.ErrNotFound) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Voter not found")
			return
		}
		slog.Error("failed to query voter", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, ident)
}
