package router

import (
	"net/http"

	"hotel-chat-backend/internal/api"
	"hotel-chat-backend/internal/api/endpoints"
	"hotel-chat-backend/internal/fallback"
	conversationservice "hotel-chat-backend/internal/service/conversation"
	"hotel-chat-backend/internal/webhook"
	"hotel-chat-backend/internal/websocket"
)

// redisPublisher feeds the analytics refresh channel through the shared
// redis connection.
type redisPublisher struct{}

func (redisPublisher) Publish(channel string, payload interface{}) error {
	return websocket.Publish(channel, payload)
}

func ChatRoutes(prefix string, forwarder *webhook.Forwarder, classifier *fallback.Classifier) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		service := conversationservice.New(s.Database(), forwarder, classifier, redisPublisher{})
		chatEndpoints := endpoints.NewChatEndpoints(service)

		mux.HandleFunc(prefix+"/chat", s.MakeHTTPHandleFunc(chatEndpoints.Chat))
		mux.HandleFunc(prefix+"/analytics/chat", s.MakeHTTPHandleFunc(chatEndpoints.ChatAnalytics))
	}
}
