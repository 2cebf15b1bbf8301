package main

import (
	"log"

	"hotel-chat-backend/internal/api"
	"hotel-chat-backend/internal/api/router"
	"hotel-chat-backend/internal/database"
	"hotel-chat-backend/internal/fallback"
	"hotel-chat-backend/internal/queue"
	"hotel-chat-backend/internal/webhook"

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

	forwarder := webhook.NewForwarder(webhook.ConfigFromEnv())
	classifier := fallback.ClassifierFromEnv()

	server := api.NewAPIServer(
		":82",
		queueManager,
		db,
		nil,
		router.UtilsRoutes("/api/v1"),
		router.ChatRoutes("/api/v1", forwarder, classifier),
		router.ContactRoutes("/api/v1", forwarder),
		router.AdminRoutes("/api/v1", forwarder),
	)

	server.Run()
}
