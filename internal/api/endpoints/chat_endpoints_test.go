package endpoints

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"hotel-chat-backend/internal/dto"
	"hotel-chat-backend/internal/fallback"
	"hotel-chat-backend/internal/model"
	conversationservice "hotel-chat-backend/internal/service/conversation"
	"hotel-chat-backend/internal/webhook"
)

func setupChatHandler(repo conversationservice.Repository, webhookURL string) http.Handler {
	forwarder := webhook.NewForwarder(webhook.Config{GuestChatURL: webhookURL})
	service := conversationservice.NewWithRepository(repo, forwarder, fallback.NewClassifier(""), nil, endpointFixedTime)
	chatEndpoints := NewChatEndpoints(service)

	server := testServer()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/chat", server.MakeHTTPHandleFunc(chatEndpoints.Chat))
	mux.HandleFunc("/api/v1/analytics/chat", server.MakeHTTPHandleFunc(chatEndpoints.ChatAnalytics))
	return mux
}

func TestChatForwardsAndResponds(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"output": "Checkout is at 11 AM."}`))
	}))
	defer upstream.Close()

	repo := &conversationTestRepository{}
	handler := setupChatHandler(repo, upstream.URL)

	payload, _ := json.Marshal(dto.ChatRequest{
		UserID:    "guest-1",
		Message:   "When is checkout?",
		Timestamp: "2024-05-10T12:00:00Z",
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", bytes.NewReader(payload))
	res := httptest.NewRecorder()

	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}

	var resp dto.ChatResponse
	if err := json.Unmarshal(res.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success {
		t.Fatal("expected success")
	}
	if string(resp.Response) != `{"output": "Checkout is at 11 AM."}` {
		t.Fatalf("unexpected response %s", resp.Response)
	}
	if len(repo.conversations) != 1 {
		t.Fatalf("expected 1 recorded exchange, got %d", len(repo.conversations))
	}
}

func TestChatRejectsMissingFields(t *testing.T) {
	handler := setupChatHandler(&conversationTestRepository{}, "http://localhost:0")

	payload, _ := json.Marshal(dto.ChatRequest{UserID: "guest-1"})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", bytes.NewReader(payload))
	res := httptest.NewRecorder()

	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", res.Code, res.Body.String())
	}

	var resp ApiMessageResponse
	if err := json.Unmarshal(res.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Message != "Missing required fields: message and timestamp" {
		t.Fatalf("unexpected message %q", resp.Message)
	}
}

func TestChatRejectsInvalidJSON(t *testing.T) {
	handler := setupChatHandler(&conversationTestRepository{}, "http://localhost:0")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/chat", bytes.NewReader([]byte("{not json")))
	res := httptest.NewRecorder()

	handler.ServeHTTP(res, req)

	if res.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", res.Code, res.Body.String())
	}
}

func TestChatRejectsGet(t *testing.T) {
	handler := setupChatHandler(&conversationTestRepository{}, "http://localhost:0")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/chat", nil)
	res := httptest.NewRecorder()

	handler.ServeHTTP(res, req)

	if res.Code != http.StatusMethodNotAllowed {
		t.Fatalf("expected 405, got %d", res.Code)
	}
}

func TestChatAnalyticsAggregates(t *testing.T) {
	repo := &conversationTestRepository{
		conversations: []model.ConversationItem{
			{UserID: "guest-1", Topic: "checkout"},
			{UserID: "guest-1", Topic: "dining"},
			{UserID: "guest-2", Topic: "dining"},
		},
	}
	handler := setupChatHandler(repo, "http://localhost:0")

	req := httptest.NewRequest(http.MethodGet, "/api/v1/analytics/chat", nil)
	res := httptest.NewRecorder()

	handler.ServeHTTP(res, req)

	if res.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", res.Code, res.Body.String())
	}

	var resp dto.ChatAnalyticsResponse
	if err := json.Unmarshal(res.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.TotalSessions != 2 {
		t.Fatalf("expected 2 sessions, got %d", resp.TotalSessions)
	}
	if len(resp.QuestionsPerTopic) != 2 {
		t.Fatalf("expected 2 topics, got %d", len(resp.QuestionsPerTopic))
	}
	if resp.QuestionsPerTopic[0].Topic != "dining" || resp.QuestionsPerTopic[0].Count != 2 {
		t.Fatalf("expected dining first, got %+v", resp.QuestionsPerTopic[0])
	}
}
