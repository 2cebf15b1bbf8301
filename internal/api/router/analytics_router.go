package router

import (
	"net/http"

	"hotel-chat-backend/internal/api"
	"hotel-chat-backend/internal/api/endpoints"
)

func AnalyticsWebsocketRoutes(prefix string) api.RouteRegistrar {
	return func(mux *http.ServeMux, s *api.APIServer) {
		analyticsEndpoints := endpoints.NewAnalyticsEndpoints(s.Handler())

		mux.HandleFunc(prefix+"/analytics", s.MakeHTTPHandleFunc(analyticsEndpoints.Websocket))
	}
}
