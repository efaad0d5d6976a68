package command

import (
	"sync"
	"time"

	"github.com/yildirimberke/berke-terminal-dashboard/internal/domain/models"
	"github.com/yildirimberke/berke-terminal-dashboard/internal/registry"
)

// State is the console session state.
type State string

const (
	StateIdle    State = "idle"
	StateTyping  State = "typing"
	StateResults State = "results"
)

// Timer schedules a function after a delay and can cancel it. The default
// uses wall-clock timers; tests inject a synchronous one.
type Timer func(d time.Duration, fn func()) (cancel func())

func wallTimer(d time.Duration, fn func()) func() {
	t := time.AfterFunc(d, fn)
	return func() { t.Stop() }
}

// Session is the console interaction state machine. Typed text is searched
// after a debounce; results are navigated with a clamped selection; Enter
// commits the selected entity or, with no results visible, parses the raw
// text as a command.
type Session struct {
	client     *registry.Client
	dispatcher *Dispatcher
	debounce   time.Duration
	timer      Timer

	mu        sync.Mutex
	state     State
	text      string
	results   []models.SearchMatch
	selection int
	cancel    func()
}

// SessionOption configures a Session.
type SessionOption func(*Session)

// WithDebounce sets the search debounce interval.
func WithDebounce(d time.Duration) SessionOption {
	return func(s *Session) { s.debounce = d }
}

// WithTimer injects the debounce timer implementation.
func WithTimer(t Timer) SessionOption {
	return func(s *Session) { s.timer = t }
}

// NewSession creates an idle console session.
func NewSession(client *registry.Client, dispatcher *Dispatcher, opts ...SessionOption) *Session {
	s := &Session{
		client:     client,
		dispatcher: dispatcher,
		debounce:   250 * time.Millisecond,
		timer:      wallTimer,
		state:      StateIdle,
		selection:  -1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current session state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Results returns the currently visible matches.
func (s *Session) Results() []models.SearchMatch {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results
}

// Selection returns the highlighted result index, -1 when none.
func (s *Session) Selection() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection
}

// Input records typed text and arms the debounce. Earlier pending searches
// are cancelled; only the last keystroke's search runs.
func (s *Session) Input(text string) {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.text = text
	s.state = StateTyping
	token := s.client.Begin()
	s.mu.Unlock()

	// schedule outside the lock: a synchronous timer fires inline and
	// applySearch takes the mutex itself
	cancel := s.timer(s.debounce, func() {
		s.applySearch(token, text)
	})

	s.mu.Lock()
	s.cancel = cancel
	s.mu.Unlock()
}

func (s *Session) applySearch(token uint64, text string) {
	matches, applied := s.client.Search(token, text)
	if !applied {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state == StateIdle {
		// dismissed while the search was in flight
		return
	}
	s.results = matches
	s.state = StateResults
	if len(matches) > 0 {
		s.selection = 0
	} else {
		s.selection = -1
	}
}

// Move shifts the highlighted result by delta, clamped to the result list.
func (s *Session) Move(delta int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateResults || len(s.results) == 0 {
		return
	}
	s.selection += delta
	if s.selection < 0 {
		s.selection = 0
	}
	if s.selection >= len(s.results) {
		s.selection = len(s.results) - 1
	}
}

// Enter commits the session: with a visible selection it looks up that
// entity, otherwise the raw text is parsed as a command. The session
// returns to idle either way.
func (s *Session) Enter() (Result, error) {
	s.mu.Lock()
	var cmd Command
	if s.state == StateResults && s.selection >= 0 && s.selection < len(s.results) {
		cmd = Command{Kind: KindLookup, Key: s.results[s.selection].Key}
	} else {
		cmd = Parse(s.text)
	}
	s.resetLocked()
	s.mu.Unlock()

	return s.dispatcher.Dispatch(cmd)
}

// Escape dismisses results and returns the session to idle.
func (s *Session) Escape() {
	s.mu.Lock()
	s.resetLocked()
	s.mu.Unlock()
}

func (s *Session) resetLocked() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.state = StateIdle
	s.text = ""
	s.results = nil
	s.selection = -1
	s.client.Reset()
}
