// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package audit

import (
	"context"
	"sync"
	"time"

	"github.com/danielhkuo/unielect/models"
)

// Leaderboard is one poll's view of the election: the tally and the
// tail of the log as of a sequence number. Reads may lag the latest
// commit; they are never partial.
type Leaderboard struct {
	Sequence  uint64               `json:"sequence"`
	Tally     []models.TallyRow    `json:"tally"`
	Entries   []models.LedgerEntry `json:"entries"`
	UpdatedAt time.Time            `json:"updated_at"`
}

// Poller drives the auditor's live view: it polls the ledger's read
// API on a fixed interval and caches the snapshot. Each poll is
// independent and idempotent - a missed tick costs display freshness,
// nothing else.
type Poller struct {
	ledger   Reader
	interval time.Duration
	logTail  int

	mu       sync.RWMutex
	snapshot Leaderboard
}

func NewPoller(ledger Reader, interval time.Duration) *Poller {
	return &Poller{
		ledger:   ledger,
		interval: interval,
		logTail:  50,
	}
}

// Run polls until the context is cancelled. An immediate first poll
// means the view is populated before the first interval elapses.
func (p *Poller) Run(ctx context.Context) {
	p.poll()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.poll()
		}
	}
}

// Snapshot returns the most recent leaderboard.
func (p *Poller) Snapshot() Leaderboard {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.snapshot
}

func (p *Poller) poll() {
	board := Leaderboard{
		Sequence:  p.ledger.LatestSequence(),
		Tally:     p.ledger.Tally(),
		Entries:   p.ledger.Log(p.logTail),
		UpdatedAt: time.Now().UTC(),
	}

	p.mu.Lock()
	p.snapshot = board
	p.mu.Unlock()
}
