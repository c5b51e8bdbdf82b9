// Package session keeps per-conversation state for the interactive bot:
// accumulated matches, the weekend selection, and the playlist links already
// processed. Nothing here survives a process restart.
package session

import (
	"sync"

	"github.com/avivkr/lineup-tools/internal/lineup"
)

// Session is the state of one user's conversation. The transport handles one
// turn per user at a time, so Session itself needs no locking.
type Session struct {
	Relevant        []*lineup.Artist
	SelectedWeekend string

	// LastPrompt caches the rendered generator payload for the current
	// selection, so a retry after a generator failure reuses it.
	LastPrompt string

	Links []string
}

// HasLink reports whether a playlist link was already processed in this
// session, so re-submissions can be ignored instead of double-counted.
func (s *Session) HasLink(link string) bool {
	for _, l := range s.Links {
		if l == link {
			return true
		}
	}
	return false
}

// AddLink records a processed playlist link.
func (s *Session) AddLink(link string) {
	s.Links = append(s.Links, link)
}

// HasMatches reports whether there is anything to schedule. An empty match
// set is a normal state that suppresses the generate step, not an error.
func (s *Session) HasMatches() bool {
	return len(s.Relevant) > 0
}

// SelectWeekend records the weekend choice. A cached prompt belongs to an
// earlier selection and match set, so it is invalidated here.
func (s *Session) SelectWeekend(weekend string) {
	s.SelectedWeekend = weekend
	s.LastPrompt = ""
}

// Clear resets the session to its initial state.
func (s *Session) Clear() {
	s.Relevant = nil
	s.SelectedWeekend = ""
	s.LastPrompt = ""
	s.Links = nil
}

// Registry hands out sessions keyed by conversation ID. Turns from different
// users may arrive on different goroutines; the map is the only shared state.
type Registry struct {
	mu       sync.Mutex
	sessions map[int64]*Session
}

func NewRegistry() *Registry {
	return &Registry{sessions: make(map[int64]*Session)}
}

// Get returns the session for a conversation, creating it on first use.
func (r *Registry) Get(id int64) *Session {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		s = &Session{}
		r.sessions[id] = s
	}
	return s
}

// Drop removes a conversation's session entirely.
func (r *Registry) Drop(id int64) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}
