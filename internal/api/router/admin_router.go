package router

import (
	"net/http"

	"hotel-chat-backend/internal/api"
	"hotel-chat-backend/internal/api/endpoints"
	uploadservice "hotel-chat-backend/internal/service/upload"
	"hotel-chat-backend/internal/webhook"
)

func AdminRoutes(prefix string, forwarder *webhook.Forwarder) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		service := uploadservice.New(s.Database(), forwarder)
		adminEndpoints := endpoints.NewAdminEndpoints(service)

		mux.HandleFunc(prefix+"/admin/upload-hotel-info", s.MakeHTTPHandleFunc(adminEndpoints.UploadHotelInfo))
	}
}
