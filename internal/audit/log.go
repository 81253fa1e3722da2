// Package audit keeps a bounded, in-memory, append-only activity log.
// The log is process-local: it is a liveness/activity feed for the
// dashboard, not a durable audit store.
package audit

import (
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	// Capacity is the fixed maximum number of retained entries.
	// Overflow drops the oldest entries, never the newest.
	Capacity = 300

	// DefaultListLimit is used when List is called with limit <= 0
	DefaultListLimit = 10

	// MaxListLimit caps how many entries a single List call returns
	MaxListLimit = 50
)

// Actor is the identity snapshot attributed to an entry, captured by
// value at append time. Later changes to the real user never alter
// historical entries.
type Actor struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Entry is a single audit record
type Entry struct {
	ID         int64          `json:"id"`
	Timestamp  time.Time      `json:"timestamp"`
	Actor      Actor          `json:"actor"`
	Action     string         `json:"action"`
	EntityType string         `json:"entityType,omitempty"`
	EntityID   string         `json:"entityId,omitempty"`
	Meta       map[string]any `json:"meta,omitempty"`
}

// Option customizes an appended entry
type Option func(*Entry)

// WithEntity attaches the acted-on entity to the entry
func WithEntity(entityType, entityID string) Option {
	return func(e *Entry) {
		e.EntityType = entityType
		e.EntityID = entityID
	}
}

// WithMeta attaches a metadata bag to the entry
func WithMeta(meta map[string]any) Option {
	return func(e *Entry) {
		e.Meta = meta
	}
}

// Log is the process-wide audit sequence. Construct one in main and
// inject it; entries are stored most-recent-first.
type Log struct {
	mu      sync.Mutex
	entries []Entry
	nextID  int64
	logger  *logrus.Entry
	notify  func(Entry)
}

// NewLog creates an empty audit log
func NewLog(logger *logrus.Entry) *Log {
	if logger == nil {
		logger = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Log{
		entries: make([]Entry, 0, Capacity),
		nextID:  1,
		logger:  logger,
	}
}

// OnAppend registers a best-effort hook invoked after each append,
// outside the log's lock. Used for the live dashboard feed.
func (l *Log) OnAppend(fn func(Entry)) {
	l.mu.Lock()
	l.notify = fn
	l.mu.Unlock()
}

// Append records an action. IDs are monotonic from 1 and never reused,
// even after truncation. Returns the stored entry.
func (l *Log) Append(actor Actor, action string, opts ...Option) (Entry, error) {
	if action == "" {
		return Entry{}, fmt.Errorf("audit action is required")
	}

	entry := Entry{
		Timestamp: time.Now(),
		Actor:     actor,
		Action:    action,
	}
	for _, opt := range opts {
		opt(&entry)
	}

	l.mu.Lock()
	entry.ID = l.nextID
	l.nextID++

	// Head insertion keeps the stored order most-recent-first
	l.entries = append(l.entries, Entry{})
	copy(l.entries[1:], l.entries)
	l.entries[0] = entry

	if len(l.entries) > Capacity {
		l.entries = l.entries[:Capacity]
	}
	notify := l.notify
	l.mu.Unlock()

	if notify != nil {
		notify(entry)
	}

	return entry, nil
}

// List returns the limit most recent entries, head-first. The limit is
// clamped to [1, MaxListLimit]; limit <= 0 means DefaultListLimit.
func (l *Log) List(limit int) []Entry {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if limit > len(l.entries) {
		limit = len(l.entries)
	}
	out := make([]Entry, limit)
	copy(out, l.entries[:limit])
	return out
}

// Len returns the number of retained entries
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}
