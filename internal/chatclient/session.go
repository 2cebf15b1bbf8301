package chatclient

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"hotel-chat-backend/internal/fallback"

	"github.com/google/uuid"
)

const (
	// WelcomeMessage seeds every new or reset session.
	WelcomeMessage = "Welcome to Cincinnati Hotel! I'm your personal concierge. How can I help you today? Feel free to ask about our rooms, amenities, dining options, or anything else about your stay."

	// ApologyMessage is appended when the send fails for any reason. It asks
	// for contact details instead of suggesting a retry, so it carries the
	// contact form.
	ApologyMessage = "I'm sorry, I'm having trouble connecting right now. Would you like to leave your contact details so our customer service team can get back to you?"

	// unreadableReplyMessage covers upstream bodies that parse as JSON but
	// yield no displayable text.
	unreadableReplyMessage = "I'm sorry, I couldn't process your request. Please try again."
)

var (
	ErrEmptyMessage = errors.New("chatclient: message is empty")
	ErrBusy         = errors.New("chatclient: a send is already in flight")
)

type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// Message is one entry in the session log. Immutable once appended.
type Message struct {
	ID                  string
	Role                Role
	Content             string
	Timestamp           time.Time
	TriggersContactForm bool

	// ContactForm is a fresh, unsubmitted instance attached to each bot
	// message that triggered the hand-off. Per message, never shared.
	ContactForm *ContactForm
}

// ChatSender forwards one guest message and returns the raw upstream reply.
type ChatSender interface {
	SendChat(ctx context.Context, userID, message string, timestamp time.Time) (json.RawMessage, error)
}

// ContactSubmitter forwards captured contact details.
type ContactSubmitter interface {
	SubmitContact(ctx context.Context, userID, name, phone, email string) error
}

// Session holds one guest's chat state: the ordered message log, the unsent
// input buffer and the single in-flight guard. All methods are safe for
// concurrent use, though the intended driver is a single UI loop.
type Session struct {
	mu           sync.Mutex
	id           string
	messages     []Message
	pendingInput string
	awaiting     bool
	lastID       int64

	sender     ChatSender
	submitter  ContactSubmitter
	classifier *fallback.Classifier
	now        func() time.Time
}

func NewSession(sender ChatSender, submitter ContactSubmitter, classifier *fallback.Classifier) *Session {
	return NewSessionWithClock(sender, submitter, classifier, time.Now)
}

func NewSessionWithClock(sender ChatSender, submitter ContactSubmitter, classifier *fallback.Classifier, now func() time.Time) *Session {
	if classifier == nil {
		classifier = fallback.NewClassifier("")
	}
	if now == nil {
		now = time.Now
	}
	s := &Session{
		sender:     sender,
		submitter:  submitter,
		classifier: classifier,
		now:        now,
	}
	s.resetLocked()
	return s
}

func (s *Session) ID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.id
}

// Messages returns a snapshot of the log in append order.
func (s *Session) Messages() []Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Message, len(s.messages))
	copy(out, s.messages)
	return out
}

func (s *Session) IsAwaitingResponse() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.awaiting
}

func (s *Session) SetInput(text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingInput = text
}

func (s *Session) PendingInput() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pendingInput
}

// Send submits the pending input buffer.
func (s *Session) Send(ctx context.Context) error {
	return s.SendMessage(ctx, s.PendingInput())
}

// SendMessage appends the guest message, forwards it and appends exactly one
// bot message once the call completes. Empty input and sends attempted while
// a call is in flight are rejected without touching the log or the network.
// A reply that lands after the session has been reset is discarded.
func (s *Session) SendMessage(ctx context.Context, text string) error {
	s.mu.Lock()
	if strings.TrimSpace(text) == "" {
		s.mu.Unlock()
		return ErrEmptyMessage
	}
	if s.awaiting {
		s.mu.Unlock()
		return ErrBusy
	}

	userMessage := s.appendLocked(RoleUser, text, false)
	s.pendingInput = ""
	s.awaiting = true
	sessionID := s.id
	s.mu.Unlock()

	raw, err := s.sender.SendChat(ctx, sessionID, userMessage.Content, userMessage.Timestamp)

	s.mu.Lock()
	defer s.mu.Unlock()

	// The session may have been reset (or left) while the request was in
	// flight. The stale result must not touch the regenerated session.
	if s.id != sessionID {
		return nil
	}
	s.awaiting = false

	if err != nil {
		s.appendLocked(RoleBot, ApologyMessage, true)
		return nil
	}

	if s.classifier.IsFallbackRaw(raw) {
		content := fallback.Text(raw)
		if content == "" {
			content = s.classifier.Sentence()
		}
		s.appendLocked(RoleBot, content, true)
		return nil
	}

	content := fallback.Text(raw)
	if content == "" {
		content = unreadableReplyMessage
	}
	s.appendLocked(RoleBot, content, false)
	return nil
}

// Reset discards the log, reseeds the welcome message and regenerates the
// session id. Always lands in the idle state.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resetLocked()
}

// Leave ends the session on navigation away. The next visit starts fresh.
func (s *Session) Leave() {
	s.Reset()
}

func (s *Session) resetLocked() {
	s.id = uuid.NewString()
	s.pendingInput = ""
	s.awaiting = false
	s.messages = s.messages[:0]
	s.appendLocked(RoleBot, WelcomeMessage, false)
}

func (s *Session) appendLocked(role Role, content string, triggersContactForm bool) Message {
	// Time-derived ids, bumped when two appends land in the same tick.
	id := s.now().UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id

	message := Message{
		ID:                  strconv.FormatInt(id, 10),
		Role:                role,
		Content:             content,
		Timestamp:           s.now(),
		TriggersContactForm: triggersContactForm,
	}
	if triggersContactForm && role == RoleBot {
		message.ContactForm = NewContactForm(s.id, s.submitter)
	}

	s.messages = append(s.messages, message)
	return message
}
