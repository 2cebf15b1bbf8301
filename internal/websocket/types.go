package websocket

// Channel groups the dashboard clients subscribed to one notification
// stream, e.g. the chat-analytics refresh feed.
type Channel struct {
	Id      string               `json:"id"`
	Clients map[string]*WSClient `json:"clients"`
}

type WSMessage struct {
	Content   string `json:"content"`
	ChannelID string `json:"channelId"`
	Timestamp int64  `json:"timestamp"`
}
