package endpoints

import (
	"context"
	"sync"
	"time"

	"hotel-chat-backend/internal/api"
	"hotel-chat-backend/internal/model"
	"hotel-chat-backend/internal/queue"
)

// The metrics registry is process-global, so every test shares one server.
var (
	serverOnce   sync.Once
	sharedServer *api.APIServer
)

func testServer() *api.APIServer {
	serverOnce.Do(func() {
		queueManager := queue.NewRequestQueueManager(10, 1)
		sharedServer = api.NewAPIServer(":0", queueManager, nil, nil)
	})
	return sharedServer
}

func endpointFixedTime() time.Time {
	return time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
}

type conversationTestRepository struct {
	mu            sync.Mutex
	conversations []model.ConversationItem
}

func (m *conversationTestRepository) CreateConversation(ctx context.Context, conversation model.ConversationItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conversations = append(m.conversations, conversation)
	return nil
}

func (m *conversationTestRepository) ListConversations(ctx context.Context) ([]model.ConversationItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]model.ConversationItem, len(m.conversations))
	copy(out, m.conversations)
	return out, nil
}

type contactTestRepository struct {
	mu    sync.Mutex
	leads []model.ContactLeadItem
}

func (m *contactTestRepository) CreateLead(ctx context.Context, lead model.ContactLeadItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.leads = append(m.leads, lead)
	return nil
}

type uploadTestRepository struct {
	mu      sync.Mutex
	uploads []model.UploadItem
}

func (m *uploadTestRepository) CreateUpload(ctx context.Context, upload model.UploadItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploads = append(m.uploads, upload)
	return nil
}
