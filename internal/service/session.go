package service

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/vortex/composer-engine/pkg/composer"
)

// Command is one composer operation requested over HTTP. Type selects
// which Model method runs; the remaining fields are interpreted
// according to Type and are otherwise ignored.
type Command struct {
	Type  string `json:"type"`
	Text  string `json:"text,omitempty"`
	Start int    `json:"start,omitempty"`
	End   int    `json:"end,omitempty"`
	URL   string `json:"url,omitempty"`
}

// CommandResult is the state of a session after applying a batch of
// commands: the full rendered content plus the selection and toolbar
// state a host would redraw from.
type CommandResult struct {
	HTML           string            `json:"html"`
	SelectionStart int               `json:"selection_start"`
	SelectionEnd   int               `json:"selection_end"`
	Actions        map[string]string `json:"actions"`
}

// ContentSnapshot reports a session's document in every format the
// engine can render it in.
type ContentSnapshot struct {
	HTML      string `json:"html"`
	Markdown  string `json:"markdown"`
	PlainText string `json:"plain_text"`
}

// SessionService defines the interface for running composer commands
// against server-held sessions.
type SessionService interface {
	// Create starts a new, empty session and returns its id.
	Create() string

	// Apply runs commands against session id in order and returns the
	// resulting state. An error aborts the batch at the command that
	// failed; commands applied before it are not rolled back.
	Apply(id string, commands []Command) (*CommandResult, error)

	// Content returns session id's document rendered as HTML, Markdown,
	// and plain text.
	Content(id string) (*ContentSnapshot, error)

	// Delete discards session id. A no-op if it doesn't exist.
	Delete(id string)
}

type sessionEntry struct {
	mu       sync.Mutex
	model    *composer.Model[uint16]
	lastUsed time.Time
}

type sessionService struct {
	mu                    sync.Mutex
	sessions              map[string]*sessionEntry
	idleTTL               time.Duration
	maxCommandsPerRequest int
}

// NewSessionService creates a SessionService that evicts sessions idle
// for longer than idleTTL and rejects command batches larger than
// maxCommandsPerRequest.
func NewSessionService(idleTTL time.Duration, maxCommandsPerRequest int) SessionService {
	s := &sessionService{
		sessions:              make(map[string]*sessionEntry),
		idleTTL:               idleTTL,
		maxCommandsPerRequest: maxCommandsPerRequest,
	}
	go s.reapLoop()
	return s
}

func (s *sessionService) Create() string {
	id := newSessionID()
	s.mu.Lock()
	s.sessions[id] = &sessionEntry{model: composer.New[uint16](), lastUsed: time.Now()}
	s.mu.Unlock()
	return id
}

func (s *sessionService) Apply(id string, commands []Command) (*CommandResult, error) {
	if len(commands) > s.maxCommandsPerRequest {
		return nil, fmt.Errorf("service: %d commands exceeds the %d-command limit per request", len(commands), s.maxCommandsPerRequest)
	}

	entry, err := s.lookup(id)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	entry.lastUsed = time.Now()

	for _, cmd := range commands {
		if err := dispatchCommand(entry.model, cmd); err != nil {
			return nil, fmt.Errorf("service: apply %q: %w", cmd.Type, err)
		}
	}

	start, end := entry.model.GetSelection()
	return &CommandResult{
		HTML:           entry.model.GetContentAsHTML(),
		SelectionStart: start,
		SelectionEnd:   end,
		Actions:        actionStrings(entry.model.ActionStates()),
	}, nil
}

func (s *sessionService) Content(id string) (*ContentSnapshot, error) {
	entry, err := s.lookup(id)
	if err != nil {
		return nil, err
	}
	entry.mu.Lock()
	defer entry.mu.Unlock()
	entry.lastUsed = time.Now()
	return &ContentSnapshot{
		HTML:      entry.model.GetContentAsHTML(),
		Markdown:  entry.model.GetContentAsMarkdown(),
		PlainText: entry.model.GetContentAsPlainText(),
	}, nil
}

func (s *sessionService) Delete(id string) {
	s.mu.Lock()
	delete(s.sessions, id)
	s.mu.Unlock()
}

func (s *sessionService) lookup(id string) (*sessionEntry, error) {
	s.mu.Lock()
	entry, ok := s.sessions[id]
	s.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("service: unknown session %q", id)
	}
	return entry, nil
}

func (s *sessionService) reapLoop() {
	ticker := time.NewTicker(s.idleTTL / 2)
	defer ticker.Stop()
	for range ticker.C {
		cutoff := time.Now().Add(-s.idleTTL)
		s.mu.Lock()
		for id, entry := range s.sessions {
			entry.mu.Lock()
			stale := entry.lastUsed.Before(cutoff)
			entry.mu.Unlock()
			if stale {
				delete(s.sessions, id)
			}
		}
		s.mu.Unlock()
	}
}

func newSessionID() string {
	var buf [16]byte
	_, _ = rand.Read(buf[:])
	return hex.EncodeToString(buf[:])
}
