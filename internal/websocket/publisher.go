package websocket

import (
	"context"
	"encoding/json"
	"fmt"
)

func Publish(channelID string, payload interface{}) error {
	if channelID == "" {
		return fmt.Errorf("websocket publish: channelID required")
	}
	if redisClient == nil {
		return fmt.Errorf("websocket publish: redis client not initialised")
	}

	messageJSON, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("websocket publish: marshal payload: %w", err)
	}

	if err := redisClient.Publish(context.Background(), channelID, string(messageJSON)).Err(); err != nil {
		return fmt.Errorf("websocket publish: redis publish: %w", err)
	}
	return nil
}
