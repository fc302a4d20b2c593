// Package chat holds the advisor chat transcript for one browser.
package chat

import (
	"context"
	"strings"
	"sync"

	"github.com/NoorJehan20/CareerCompass-FYP/internal/gateway"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	Greeting     = "👋 Hi! I'm your CareerCompass Assistant. How can I help you today?"
	ErrorText    = "⚠️ Error connecting to backend. Please try again."
	EmptyReply   = "Sorry, I couldn't get a response."
	GeneralQuery = "General Query"
)

// Sender identifies who wrote a message.
type Sender string

const (
	User      Sender = "user"
	Assistant Sender = "assistant"
)

// Message is one transcript entry. It is never modified after being appended.
type Message struct {
	ID      string   `json:"id"`
	Text    string   `json:"text"`
	Sender  Sender   `json:"sender"`
	Sources []string `json:"sources,omitempty"`
}

// Advisor produces replies to user messages.
type Advisor interface {
	Chat(ctx context.Context, message string) (gateway.ChatReply, error)
}

// Session is an append-only transcript plus the requests it has in flight.
// Concurrent sends are not paired with their replies; replies are appended in
// the order they arrive.
type Session struct {
	advisor Advisor
	log     *zap.Logger

	mu       sync.Mutex
	messages []Message
	inflight int
	closed   bool
	started  sync.Once
}

// NewSession opens a transcript containing the greeting.
func NewSession(advisor Advisor, log *zap.Logger) *Session {
	return &Session{
		advisor:  advisor,
		log:      log,
		messages: []Message{newMessage(Greeting, Assistant, nil)},
	}
}

func newMessage(text string, sender Sender, sources []string) Message {
	return Message{ID: uuid.NewString(), Text: text, Sender: sender, Sources: sources}
}

// Start submits the prompt a page was opened with. Only the first call has any
// effect; an empty prompt is ignored.
func (s *Session) Start(ctx context.Context, prompt string) {
	s.started.Do(func() {
		s.Submit(ctx, prompt)
	})
}

// Submit appends the user's message and returns without waiting; the reply is
// appended when it arrives.
func (s *Session) Submit(ctx context.Context, text string) bool {
	text, ok := s.post(text)
	if !ok {
		return false
	}
	go func() {
		reply, err := s.advisor.Chat(ctx, text)
		s.deliver(reply, err)
	}()
	return true
}

// Send appends the user's message and waits for the advisor's reply, which is
// appended as well. Failures become a fixed assistant message. It reports false
// without touching the transcript when text is blank or the session is closed.
func (s *Session) Send(ctx context.Context, text string) bool {
	text, ok := s.post(text)
	if !ok {
		return false
	}
	reply, err := s.advisor.Chat(ctx, text)
	s.deliver(reply, err)
	return true
}

// post appends the user message and marks a request in flight.
func (s *Session) post(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return "", false
	}
	s.messages = append(s.messages, newMessage(text, User, nil))
	s.inflight++
	return text, true
}

func (s *Session) deliver(reply gateway.ChatReply, err error) {
	var msg Message
	if err != nil {
		s.log.Warn("Chat request failed", zap.Error(err))
		msg = newMessage(ErrorText, Assistant, nil)
	} else {
		text := reply.Reply
		if text == "" {
			text = EmptyReply
		}
		msg = newMessage(text, Assistant, reply.Sources)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight--
	if s.closed {
		s.log.Debug("Dropping reply for closed chat session")
		return
	}
	s.messages = append(s.messages, msg)
}

// Transcript returns a copy of the messages so far.
func (s *Session) Transcript() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// Loading reports whether any request is still waiting for a reply.
func (s *Session) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inflight > 0
}

// Close disposes the session. Replies that arrive afterwards are dropped.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

// InitialPrompt is the prompt the home page's "Ask CC" box opens the chat with.
func InitialPrompt(input string) string {
	if p := strings.TrimSpace(input); p != "" {
		return p
	}
	return GeneralQuery
}
