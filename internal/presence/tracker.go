// Package presence tracks per-user online state. The tracker is
// process-local and non-persistent: after a restart every user reads as
// "unknown" until their next login or logout. Presence is a liveness
// signal, not a durable audit fact.
package presence

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

// Record is the presence bookkeeping for one user
type Record struct {
	Online       bool       `json:"online"`
	LastLoginAt  *time.Time `json:"lastLoginAt,omitempty"`
	LastLogoutAt *time.Time `json:"lastLogoutAt,omitempty"`
	LastSeenAt   *time.Time `json:"lastSeenAt,omitempty"`
}

// Tracker keeps presence records keyed by user id. Construct one in
// main and inject it.
type Tracker struct {
	mu      sync.Mutex
	records map[int]Record
	logger  *logrus.Entry
}

// NewTracker creates an empty tracker
func NewTracker(logger *logrus.Entry) *Tracker {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Tracker{
		records: make(map[int]Record),
		logger:  logger,
	}
}

// MarkLogin records a login event, creating the record if absent
func (t *Tracker) MarkLogin(userID int) Record {
	now := time.Now()

	t.mu.Lock()
	defer t.mu.Unlock()

	rec := t.records[userID]
	rec.Online = true
	rec.LastLoginAt = &now
	rec.LastSeenAt = &now
	t.records[userID] = rec
	return rec
}

// MarkLogout records a logout event. An id that was never seen is a
// no-op returning the zero record: logout can race a restart that wiped
// the login, and that must never be an error.
func (t *Tracker) MarkLogout(userID int) Record {
	t.mu.Lock()
	defer t.mu.Unlock()

	rec, ok := t.records[userID]
	if !ok {
		t.logger.WithField("user_id", userID).Debug("logout for unknown user, ignoring")
		return Record{}
	}

	now := time.Now()
	rec.Online = false
	rec.LastLogoutAt = &now
	rec.LastSeenAt = &now
	t.records[userID] = rec
	return rec
}

// Get returns the record for a user and whether one exists. Absence
// means "unknown", which consumers must distinguish from offline.
func (t *Tracker) Get(userID int) (Record, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	rec, ok := t.records[userID]
	return rec, ok
}

// Snapshot returns a copy of all records keyed by user id
func (t *Tracker) Snapshot() map[int]Record {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make(map[int]Record, len(t.records))
	for id, rec := range t.records {
		out[id] = rec
	}
	return out
}
