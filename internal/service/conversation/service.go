package conversation

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sort"
	"strings"
	"time"

	"hotel-chat-backend/internal/database"
	"hotel-chat-backend/internal/fallback"
	"hotel-chat-backend/internal/model"
	"hotel-chat-backend/internal/webhook"

	"github.com/google/uuid"
)

type ErrorCode string

const (
	ErrorCodeValidation    ErrorCode = "validation_error"
	ErrorCodeConfiguration ErrorCode = "configuration_error"
	ErrorCodeUpstream      ErrorCode = "upstream_error"
	ErrorCodeInternal      ErrorCode = "internal_error"
)

type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// AnalyticsChannel is the pub/sub channel dashboards listen on for refresh
// pushes.
const AnalyticsChannel = "hotel-analytics"

// Publisher pushes a best-effort change notification after an exchange is
// recorded.
type Publisher interface {
	Publish(channel string, payload interface{}) error
}

type SendMessageParams struct {
	UserID    string
	Message   string
	Timestamp string
}

type SendMessageResult struct {
	Response     json.RawMessage
	Fallback     bool
	Conversation model.ConversationItem
}

type TopicCount struct {
	Topic string
	Count int
}

// AnalyticsSummary mirrors the admin dashboard aggregation: distinct guests
// seen, and question counts per non-empty topic, most asked first.
type AnalyticsSummary struct {
	TotalSessions     int
	QuestionsPerTopic []TopicCount
}

type Service struct {
	repo       Repository
	forwarder  *webhook.Forwarder
	classifier *fallback.Classifier
	publisher  Publisher
	now        func() time.Time
}

func New(db *database.Database, forwarder *webhook.Forwarder, classifier *fallback.Classifier, publisher Publisher) *Service {
	return NewWithRepository(NewDynamoRepository(db), forwarder, classifier, publisher, time.Now)
}

func NewWithRepository(repo Repository, forwarder *webhook.Forwarder, classifier *fallback.Classifier, publisher Publisher, now func() time.Time) *Service {
	if classifier == nil {
		classifier = fallback.NewClassifier("")
	}
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo:       repo,
		forwarder:  forwarder,
		classifier: classifier,
		publisher:  publisher,
		now:        now,
	}
}

// SendMessage forwards a guest message to the automation webhook, records
// the exchange and returns the upstream body verbatim. Recording and the
// analytics push are best-effort: a storage hiccup must not turn a delivered
// answer into a guest-visible error.
func (s *Service) SendMessage(ctx context.Context, params SendMessageParams) (SendMessageResult, error) {
	raw, err := s.forwarder.ForwardChat(ctx, webhook.ChatPayload{
		UserID:    params.UserID,
		Message:   params.Message,
		Timestamp: params.Timestamp,
	})
	if err != nil {
		return SendMessageResult{}, mapForwarderError(err)
	}

	isFallback := s.classifier.IsFallbackRaw(raw)

	userID := strings.TrimSpace(params.UserID)
	if userID == "" {
		userID = webhook.AnonymousUserID
	}

	conversationID := uuid.NewString()
	item := model.ConversationItem{
		PK:             model.ConversationPK(userID, conversationID),
		ConversationID: conversationID,
		UserID:         userID,
		Question:       strings.TrimSpace(params.Message),
		Answer:         fallback.Text(raw),
		Topic:          extractTopic(raw),
		Fallback:       isFallback,
		CreatedAt:      s.now().UTC().Format(time.RFC3339),
	}

	if err := s.repo.CreateConversation(ctx, item); err != nil {
		log.Printf("conversation: record exchange failed: %v", err)
	} else if s.publisher != nil {
		if err := s.publisher.Publish(AnalyticsChannel, map[string]string{
			"event":          "conversation_recorded",
			"conversationId": conversationID,
		}); err != nil {
			log.Printf("conversation: analytics publish failed: %v", err)
		}
	}

	return SendMessageResult{
		Response:     raw,
		Fallback:     isFallback,
		Conversation: item,
	}, nil
}

// Summary aggregates the recorded exchanges for the dashboard.
func (s *Service) Summary(ctx context.Context) (AnalyticsSummary, error) {
	items, err := s.repo.ListConversations(ctx)
	if err != nil {
		return AnalyticsSummary{}, newError(ErrorCodeInternal, "Failed to load chat analytics", err)
	}

	users := make(map[string]struct{})
	topics := make(map[string]int)
	for _, item := range items {
		users[item.UserID] = struct{}{}
		topic := strings.TrimSpace(item.Topic)
		if topic != "" {
			topics[topic]++
		}
	}

	summary := AnalyticsSummary{
		TotalSessions:     len(users),
		QuestionsPerTopic: make([]TopicCount, 0, len(topics)),
	}
	for topic, count := range topics {
		summary.QuestionsPerTopic = append(summary.QuestionsPerTopic, TopicCount{Topic: topic, Count: count})
	}
	sortTopics(summary.QuestionsPerTopic)

	return summary, nil
}

// sortTopics orders by count descending, then topic for a stable display.
func sortTopics(topics []TopicCount) {
	sort.Slice(topics, func(i, j int) bool {
		if topics[i].Count != topics[j].Count {
			return topics[i].Count > topics[j].Count
		}
		return topics[i].Topic < topics[j].Topic
	})
}

// extractTopic pulls the optional topic label some workflow versions attach
// to their reply.
func extractTopic(raw json.RawMessage) string {
	var decoded map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return ""
	}
	topic, _ := decoded["topic"].(string)
	return strings.TrimSpace(topic)
}

func mapForwarderError(err error) error {
	var fwdErr *webhook.Error
	if !errors.As(err, &fwdErr) {
		return newError(ErrorCodeInternal, "Internal server error", err)
	}

	switch fwdErr.Code {
	case webhook.ErrorCodeValidation:
		return newError(ErrorCodeValidation, fwdErr.Message, fwdErr.Err)
	case webhook.ErrorCodeConfiguration:
		return newError(ErrorCodeConfiguration, fwdErr.Message, fwdErr.Err)
	default:
		return newError(ErrorCodeUpstream, fwdErr.Message, fwdErr.Err)
	}
}
