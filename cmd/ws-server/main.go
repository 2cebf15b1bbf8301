package main

import (
	"log"

	"hotel-chat-backend/internal/api"
	"hotel-chat-backend/internal/api/router"
	"hotel-chat-backend/internal/database"
	"hotel-chat-backend/internal/queue"
	conversationservice "hotel-chat-backend/internal/service/conversation"
	"hotel-chat-backend/internal/websocket"

	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env file loaded: %v", err)
	}

	queueManager := queue.NewRequestQueueManager(10, 10)
	db, err := database.NewDatabase()
	if err != nil {
		log.Fatalf("db init failed: %v", err)
	}

	hub := websocket.NewHub()
	go hub.Run()
	handler := websocket.NewHandler(hub)
	handler.CreateChannel(conversationservice.AnalyticsChannel)

	server := api.NewAPIServer(
		":83",
		queueManager,
		db,
		handler,
		router.UtilsRoutes("/api/ws/v1"),
		router.AnalyticsWebsocketRoutes("/api/ws/v1"),
	)

	server.Run()
}
