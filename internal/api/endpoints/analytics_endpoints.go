package endpoints

import (
	"fmt"
	"net/http"

	conversationservice "hotel-chat-backend/internal/service/conversation"
	"hotel-chat-backend/internal/websocket"

	"github.com/google/uuid"
)

type AnalyticsEndpoints interface {
	Websocket(http.ResponseWriter, *http.Request) error
}

type analyticsEndpoints struct {
	handler *websocket.Handler
}

func NewAnalyticsEndpoints(handler *websocket.Handler) AnalyticsEndpoints {
	return &analyticsEndpoints{
		handler: handler,
	}
}

// Websocket attaches a dashboard to the analytics refresh feed. Clients get
// a push whenever an exchange is recorded and re-fetch the summary.
func (h *analyticsEndpoints) Websocket(w http.ResponseWriter, r *http.Request) error {
	if r.Method != http.MethodGet {
		return &HTTPError{
			StatusCode: http.StatusMethodNotAllowed,
			Message:    "Method not allowed.",
			ErrorLog:   fmt.Errorf("method not allowed"),
		}
	}

	h.handler.CreateChannel(conversationservice.AnalyticsChannel)
	h.handler.JoinChannel(w, r, conversationservice.AnalyticsChannel, uuid.NewString())
	return nil
}
