package router

import (
	"net/http"

	"hotel-chat-backend/internal/api"
	"hotel-chat-backend/internal/api/endpoints"
	contactservice "hotel-chat-backend/internal/service/contact"
	"hotel-chat-backend/internal/webhook"
)

func ContactRoutes(prefix string, forwarder *webhook.Forwarder) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		service := contactservice.New(s.Database(), forwarder)
		contactEndpoints := endpoints.NewContactEndpoints(service)

		mux.HandleFunc(prefix+"/contact", s.MakeHTTPHandleFunc(contactEndpoints.SubmitContactInfo))
	}
}
