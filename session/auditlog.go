// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"sync"

	"github.com/danielhkuo/unielect/models"
)

// AuditSink receives a record for every terminal transition of an
// authentication attempt, vote or no vote.
type AuditSink interface {
	Record(rec models.AuthRecord)
}

// AuditLog is the default sink: an append-only in-memory trail served
// to the auditor's live view. Records are never edited or removed.
type AuditLog struct {
	mu      sync.RWMutex
	records []models.AuthRecord
}

func NewAuditLog() *AuditLog {
	return &AuditLog{}
}

func (l *AuditLog) Record(rec models.AuthRecord) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.records = append(l.records, rec)
}

// Recent returns up to limit records, newest first. limit <= 0 returns
// everything.
func (l *AuditLog) Recent(limit int) []models.AuthRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()

	n := len(l.records)
	if limit <= 0 || limit > n {
		limit = n
	}

	out := make([]models.AuthRecord, 0, limit)
	for i := n - 1; i >= n-limit; i-- {
		out = append(out, l.records[i])
	}
	return out
}

func (l *AuditLog) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.records)
}
