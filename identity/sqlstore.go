// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package identity

import (
	"database/sql"
	"fmt"

	"github.com/danielhkuo/unielect/models"
)

// SQLStore backs the identity registry with the voter and candidate
// tables (see db.CreateSchema). Works against postgres and sqlite.
type SQLStore struct {
	db *sql.DB
}

func NewSQLStore(db *sql.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) GetIdentity(id string) (models.Identity, error) {
	var ident models.Identity
	err := s.db.QueryRow(`
		SELECT university_id, firstname, lastname, email, password_hash, template_ref, has_voted
		FROM voter
		WHERE university_id = $1
	`, id).Scan(
		&ident.ID, &ident.FirstName, &ident.LastName, &ident.Email,
		&ident.PasswordHash, &ident.TemplateRef, &ident.HasVoted,
	)

	if err == nil {
		ident.Role = models.RoleVoter
		return ident, nil
	}
	if err != sql.ErrNoRows {
		return models.Identity{}, fmt.Errorf("failed to query voter: %w", err)
	}

	// Candidates authenticate the same way voters do
	c, err := s.GetCandidate(id)
	if err != nil {
		return models.Identity{}, err
	}
	return c.Identity, nil
}

func (s *SQLStore) GetCandidate(id string) (models.Candidate, error) {
	var c models.Candidate
	err := s.db.QueryRow(`
		SELECT university_id, firstname, lastname, email, password_hash, template_ref,
		       has_voted, about_yourself, portrait_ref
		FROM candidate
		WHERE university_id = $1
	`, id).Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.PasswordHash,
		&c.TemplateRef, &c.HasVoted, &c.Bio, &c.PortraitRef,
	)

	if err == sql.ErrNoRows {
		return models.Candidate{}, ErrNotFound
	}
	if err != nil {
		return models.Candidate{}, fmt.Errorf("failed to query candidate: %w", err)
	}

	c.Role = models.RoleCandidate
	return c, nil
}

func (s *SQLStore) ListCandidates() ([]models.Candidate, error) {
	rows, err := s.db.Query(`
		SELECT university_id, firstname, lastname, email, password_hash, template_ref,
		       has_voted, about_yourself, portrait_ref
		FROM candidate
		ORDER BY university_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query candidates: %w", err)
	}
	defer rows.Close()

	candidates := []models.Candidate{}
	for rows.Next() {
		var c models.Candidate
		if err := rows.Scan(
			&c.ID, &c.FirstName, &c.LastName, &c.Email, &c.PasswordHash,
			&c.TemplateRef, &c.HasVoted, &c.Bio, &c.PortraitRef,
		); err != nil {
			return nil, fmt.Errorf("failed to scan candidate: %w", err)
		}
		c.Role = models.RoleCandidate
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

func (s *SQLStore) ListIdentities() ([]models.Identity, error) {
	rows, err := s.db.Query(`
		SELECT university_id, firstname, lastname, email, password_hash, template_ref, has_voted, 'voter' AS role
		FROM voter
		UNION ALL
		SELECT university_id, firstname, lastname, email, password_hash, template_ref, has_voted, 'candidate' AS role
		FROM candidate
		ORDER BY university_id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query identities: %w", err)
	}
	defer rows.Close()

	idents := []models.Identity{}
	for rows.Next() {
		var ident models.Identity
		if err := rows.Scan(
			&ident.ID, &ident.FirstName, &ident.LastName, &ident.Email,
			&ident.PasswordHash, &ident.TemplateRef, &ident.HasVoted, &ident.Role,
		); err != nil {
			return nil, fmt.Errorf("failed to scan identity: %w", err)
		}
		idents = append(idents, ident)
	}
	return idents, rows.Err()
}

func (s *SQLStore) CreateVoter(v models.Identity) error {
	if err := s.checkTaken(v.ID); err != nil {
		return err
	}

	_, err := s.db.Exec(`
		INSERT INTO voter (university_id, firstname, lastname, email, password_hash, template_ref, has_voted)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, v.ID, v.FirstName, v.LastName, v.Email, v.PasswordHash, v.TemplateRef, false)
	if err != nil {
		return fmt.Errorf("failed to insert voter: %w", err)
	}
	return nil
}

func (s *SQLStore) CreateCandidate(c models.Candidate) error {
	if err := s.checkTaken(c.ID); err != nil {
		return err
	}

	_, err := s.db.Exec(`
		INSERT INTO candidate (university_id, firstname, lastname, email, password_hash,
		                       template_ref, has_voted, about_yourself, portrait_ref)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, c.ID, c.FirstName, c.LastName, c.Email, c.PasswordHash, c.TemplateRef, false, c.Bio, c.PortraitRef)
	if err != nil {
		return fmt.Errorf("failed to insert candidate: %w", err)
	}
	return nil
}

func (s *SQLStore) HasVoted(id string) (bool, error) {
	ident, err := s.GetIdentity(id)
	if err != nil {
		return false, err
	}
	return ident.HasVoted, nil
}

func (s *SQLStore) SetVoted(id string, voted bool) error {
	res, err := s.db.Exec(`UPDATE voter SET has_voted = $1 WHERE university_id = $2`, voted, id)
	if err != nil {
		return fmt.Errorf("failed to update voter: %w", err)
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}

	res, err = s.db.Exec(`UPDATE candidate SET has_voted = $1 WHERE university_id = $2`, voted, id)
	if err != nil {
		return fmt.Errorf("failed to update candidate: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// checkTaken enforces global ID uniqueness across both tables. The
// primary keys catch same-table duplicates; this catches cross-table.
func (s *SQLStore) checkTaken(id string) error {
	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS(
			SELECT 1 FROM voter WHERE university_id = $1
			UNION
			SELECT 1 FROM candidate WHERE university_id = $1
		)
	`, id).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check identity: %w", err)
	}
	if exists {
		return ErrDuplicateID
	}
	return nil
}
