package endpoints

import (
	"encoding/json"
	"fmt"
	"net/http"

	"hotel-chat-backend/internal/dto"
	conversationservice "hotel-chat-backend/internal/service/conversation"
)

type ChatEndpoints interface {
	Chat(http.ResponseWriter, *http.Request) error
	ChatAnalytics(http.ResponseWriter, *http.Request) error
}

type chatEndpoints struct {
	service *conversationservice.Service
}

func NewChatEndpoints(service *conversationservice.Service) ChatEndpoints {
	return &chatEndpoints{
		service: service,
	}
}

func (h *chatEndpoints) Chat(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodPost: h.handleChat,
	})
}

func (h *chatEndpoints) ChatAnalytics(w http.ResponseWriter, r *http.Request) error {
	return MethodHandler(w, r, map[string]func(http.ResponseWriter, *http.Request) error{
		http.MethodGet: h.handleChatAnalytics,
	})
}

func (h *chatEndpoints) handleChat(w http.ResponseWriter, r *http.Request) error {
	var req dto.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid request payload",
			ErrorLog:   fmt.Errorf("decode chat request: %w", err),
		}
	}

	result, err := h.service.SendMessage(r.Context(), conversationservice.SendMessageParams{
		UserID:    req.UserID,
		Message:   req.Message,
		Timestamp: req.Timestamp,
	})
	if err != nil {
		return mapConversationServiceError(err)
	}

	return WriteJSON(w, http.StatusOK, dto.ChatResponse{
		Success:  true,
		Response: result.Response,
	})
}

func (h *chatEndpoints) handleChatAnalytics(w http.ResponseWriter, r *http.Request) error {
	summary, err := h.service.Summary(r.Context())
	if err != nil {
		return mapConversationServiceError(err)
	}

	resp := dto.ChatAnalyticsResponse{
		TotalSessions:     summary.TotalSessions,
		QuestionsPerTopic: make([]dto.TopicCount, 0, len(summary.QuestionsPerTopic)),
	}
	for _, topic := range summary.QuestionsPerTopic {
		resp.QuestionsPerTopic = append(resp.QuestionsPerTopic, dto.TopicCount{
			Topic: topic.Topic,
			Count: topic.Count,
		})
	}

	return WriteJSON(w, http.StatusOK, resp)
}

func mapConversationServiceError(err error) error {
	if err == nil {
		return nil
	}

	svcErr, ok := err.(*conversationservice.Error)
	if !ok {
		return &HTTPError{
			StatusCode: http.StatusInternalServerError,
			Message:    "Internal server error",
			ErrorLog:   fmt.Errorf("conversation service: %w", err),
		}
	}

	var errorLog error
	if svcErr.Err != nil {
		errorLog = fmt.Errorf("%s: %w", svcErr.Message, svcErr.Err)
	} else {
		errorLog = svcErr
	}

	switch svcErr.Code {
	case conversationservice.ErrorCodeValidation:
		return &HTTPError{
			StatusCode: http.StatusBadRequest,
			Message:    svcErr.Message,
			ErrorLog:   errorLog,
		}
	default:
		return &HTTPError{
			StatusCode: http.StatusInternalServerError,
			Message:    svcErr.Message,
			ErrorLog:   errorLog,
		}
	}
}
