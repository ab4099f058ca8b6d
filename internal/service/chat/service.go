// Package chat orchestrates one conversational turn: resolve the
// session, record the user message, replay the bounded context window to
// the provider, and record the reply.
package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/hustlesynth/synth-backend/internal/model/chat"
	"github.com/hustlesynth/synth-backend/internal/provider"
	"github.com/hustlesynth/synth-backend/internal/store"
)

// ErrEmptyMessage rejects a turn before any session state is touched.
var ErrEmptyMessage = errors.New("message is required")

// Completer is the upstream call the service depends on. Satisfied by
// *provider.Client; tests substitute a stub.
type Completer interface {
	Complete(ctx context.Context, messages []provider.Message) (string, error)
}

// Result is a successful turn: the assistant text and the session id the
// client must echo on its next request.
type Result struct {
	Text      string
	SessionID string
}

// Service wires the session store and the completion provider.
type Service struct {
	store  *store.SessionStore
	llm    Completer
	system string
	window int
	logger zerolog.Logger
	now    func() time.Time
}

// NewService creates the chat service. system is the fixed instruction
// prepended to every upstream call; window is the maximum number of
// history messages replayed per turn.
func NewService(sessions *store.SessionStore, llm Completer, system string, window int, logger zerolog.Logger) *Service {
	return &Service{
		store:  sessions,
		llm:    llm,
		system: system,
		window: window,
		logger: logger,
		now:    time.Now,
	}
}

// Handle runs one turn. The user message is recorded as soon as it
// validates, and stays recorded even when the upstream call fails; the
// assistant message is only recorded on success.
func (s *Service) Handle(ctx context.Context, message, sessionID string) (Result, error) {
	text := strings.TrimSpace(message)
	if text == "" {
		return Result{}, ErrEmptyMessage
	}

	id, history := s.store.Record(sessionID, chat.NewUserMessage(text, s.now()))

	window := Window(s.system, history, s.window)
	reply, err := s.llm.Complete(ctx, window)
	if err != nil {
		return Result{}, fmt.Errorf("complete turn for session %s: %w", id, err)
	}

	if !s.store.Append(id, chat.NewAssistantMessage(reply, s.now())) {
		// Session was swept while the provider call was in flight. The
		// reply still goes back to the caller; the history is gone.
		s.logger.Warn().Str("session", id).Msg("session expired mid-turn, reply not recorded")
		return Result{Text: reply, SessionID: id}, nil
	}
	s.store.Touch(id)

	return Result{Text: reply, SessionID: id}, nil
}

// NewSession provisions an empty session and returns its id.
func (s *Service) NewSession(_ context.Context) string {
	return s.store.Create().ID
}

// History returns the stored transcript for a session, oldest first. An
// unknown session yields an empty transcript, not an error.
func (s *Service) History(_ context.Context, sessionID string) []chat.Message {
	return s.store.History(sessionID)
}

// Clear deletes the session. Clearing an unknown session succeeds.
func (s *Service) Clear(_ context.Context, sessionID string) {
	s.store.Delete(sessionID)
}
