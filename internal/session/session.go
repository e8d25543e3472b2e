// Package session holds the per-form state that must stay fixed while a user
// edits a document: the reference code and the "today" stamp.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/cleared-dev/ngodocs/internal/id"
)

// Session is one form interaction. It is safe for concurrent use.
type Session struct {
	ID       uuid.UUID
	OpenedAt time.Time
	// Today is OpenedAt truncated to its calendar date.
	Today time.Time

	scheme id.Scheme
	gen    *id.Generator

	once sync.Once
	ref  id.Code
}

// New opens a session whose reference code will follow scheme.
func New(scheme id.Scheme, gen *id.Generator, now time.Time) *Session {
	if gen == nil {
		gen = id.NewGenerator(nil)
	}
	return &Session{
		ID:       uuid.New(),
		OpenedAt: now,
		Today:    time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC),
		scheme:   scheme,
		gen:      gen,
	}
}

// Reference returns the session's reference code, drawing it on first use.
// Every later call returns the same code.
func (s *Session) Reference() id.Code {
	s.once.Do(func() {
		s.ref = s.gen.Generate(s.scheme, s.OpenedAt)
	})
	return s.ref
}

// Scheme returns the reference code scheme the session was opened with.
func (s *Session) Scheme() id.Scheme {
	return s.scheme
}

// Reset discards the session and opens a new one for the same scheme, as when
// the page is reloaded. The new session draws its own reference code.
func (s *Session) Reset(now time.Time) *Session {
	return New(s.scheme, s.gen, now)
}
