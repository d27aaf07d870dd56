package location

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/i474232898/weather-location-service/internal/gazetteer"
	"github.com/i474232898/weather-location-service/internal/geocode"
)

// suggestionLimit caps the autocomplete list recomputed on every query edit.
const suggestionLimit = 10

// State is the lifecycle of one search session.
type State int

const (
	// StateIdle: empty query, no selection.
	StateIdle State = iota
	// StateTyping: non-empty query, no coordinates.
	StateTyping
	// StateResolving: a suggestion was chosen, resolution in flight.
	StateResolving
	// StateResolved: coordinates available.
	StateResolved
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateTyping:
		return "typing"
	case StateResolving:
		return "resolving"
	case StateResolved:
		return "resolved"
	default:
		return "unknown"
	}
}

// Session is the per-search resolver state machine. Resolutions run on their
// own goroutine; a monotonic token makes the latest SetQuery/Select/Clear
// win, so a slow superseded resolution can never apply its outcome.
type Session struct {
	mu sync.Mutex

	gaz     *gazetteer.Gazetteer
	geo     geocode.Geocoder
	timeout time.Duration
	notify  func()

	state       State
	query       string
	suggestions []string
	resolved    *Resolved
	token       uint64
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithResolveTimeout bounds each resolution attempt. The default is 10s; a
// timeout surfaces as an unresolved selection, not a fault.
func WithResolveTimeout(d time.Duration) SessionOption {
	return func(s *Session) { s.timeout = d }
}

// WithNotify registers a callback invoked after each resolution attempt
// settles, whether its outcome was applied or discarded.
func WithNotify(fn func()) SessionOption {
	return func(s *Session) { s.notify = fn }
}

// NewSession creates an idle search session. geo may be nil, in which case
// every selection resolves through the gazetteer fallback.
func NewSession(gaz *gazetteer.Gazetteer, geo geocode.Geocoder, opts ...SessionOption) *Session {
	s := &Session{
		gaz:     gaz,
		geo:     geo,
		timeout: 10 * time.Second,
		state:   StateIdle,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SetQuery replaces the query text, drops any resolved location immediately
// (a stale selection must never be shown alongside a changed query), and
// recomputes suggestions.
func (s *Session) SetQuery(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token++ // supersede any in-flight resolution
	s.query = text
	s.resolved = nil

	if strings.TrimSpace(text) == "" {
		s.state = StateIdle
		s.suggestions = nil
		return
	}
	s.state = StateTyping
	s.suggestions = s.gaz.Search(text, suggestionLimit)
}

// Select confirms a suggestion and starts its asynchronous resolution. The
// query text becomes the chosen name in display form and stays that way even
// if resolution fails.
func (s *Session) Select(fullName string) {
	s.mu.Lock()
	s.token++
	token := s.token
	s.state = StateResolving
	s.query = DisplayName(fullName)
	s.suggestions = nil
	s.resolved = nil
	s.mu.Unlock()

	go s.resolve(token, fullName)
}

func (s *Session) resolve(token uint64, fullName string) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	res, err := Resolve(ctx, s.gaz, s.geo, fullName)

	s.mu.Lock()
	if s.token == token {
		if err != nil {
			// Confirmed place name without a pin.
			s.state = StateTyping
			s.resolved = nil
		} else {
			s.state = StateResolved
			s.resolved = &res
		}
	}
	notify := s.notify
	s.mu.Unlock()

	if notify != nil {
		notify()
	}
}

// Clear discards the query, suggestions, and any resolved location.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token++
	s.state = StateIdle
	s.query = ""
	s.suggestions = nil
	s.resolved = nil
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Query returns the current query text.
func (s *Session) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// Suggestions returns a copy of the current autocomplete list.
func (s *Session) Suggestions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.suggestions))
	copy(out, s.suggestions)
	return out
}

// Resolved returns the resolved location, if resolution has completed
// successfully and has not been superseded.
func (s *Session) Resolved() (Resolved, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.resolved == nil {
		return Resolved{}, false
	}
	return *s.resolved, true
}
