package websocket

import (
	"context"
	"log"
	"net/http"
	"time"

	"hotel-chat-backend/internal/env"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/websocket"
)

var (
	upgrader    websocket.Upgrader
	redisClient *redis.Client
)

func init() {
	upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			return true
		},
	}
	redisClient = redis.NewClient(&redis.Options{
		Addr:     env.Get(env.AnalyticsRedisURL),
		Password: env.Get(env.AnalyticsRedisPass),
		DB:       0,
	})
}

// Handler bridges redis pub/sub channels to connected websocket clients.
// The API servers publish change notifications; the ws server relays them to
// every dashboard subscribed to the channel.
type Handler struct {
	hub         *Hub
	redisClient *redis.Client
}

func NewHandler(h *Hub) *Handler {
	return &Handler{
		hub:         h,
		redisClient: redisClient,
	}
}

func (h *Handler) subscribeToChannel(channelID string) {
	if _, exists := h.hub.Channels[channelID]; !exists {
		log.Printf("Channel %s not found for subscription", channelID)
		return
	}

	subscriber := h.redisClient.Subscribe(context.Background(), channelID)
	defer subscriber.Close()

	ch := subscriber.Channel()
	for msg := range ch {
		h.hub.Broadcast <- &WSMessage{
			Content:   msg.Payload,
			ChannelID: channelID,
			Timestamp: time.Now().Unix(),
		}
	}
	log.Printf("Unsubscribed from redis channel: %s", channelID)
}

// CreateChannel registers a notification channel and starts relaying its
// redis feed. Safe to call for an existing channel.
func (h *Handler) CreateChannel(id string) {
	if _, exists := h.hub.Channels[id]; exists {
		return
	}

	h.hub.Channels[id] = &Channel{
		Id:      id,
		Clients: make(map[string]*WSClient),
	}
	setChannels(len(h.hub.Channels))

	go h.subscribeToChannel(id)
}

// JoinChannel upgrades the request and attaches the client to the channel.
func (h *Handler) JoinChannel(w http.ResponseWriter, r *http.Request, channelID, clientID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	cl := &WSClient{
		Conn:      conn,
		Message:   make(chan *WSMessage, 10),
		ID:        clientID,
		ChannelID: channelID,
		done:      make(chan struct{}),
		isClosed:  false,
	}

	h.hub.Register <- cl

	go cl.keepAlive()
	go cl.writeMessage()
	go cl.readMessage(h.hub)
}
