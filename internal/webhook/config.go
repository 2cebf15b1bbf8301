package webhook

import (
	"strconv"
	"time"

	"hotel-chat-backend/internal/env"
)

const DefaultTimeout = 30 * time.Second

// Config holds the environment-resolved webhook targets. It is built once at
// process start and injected into the Forwarder; nothing reads these URLs ad
// hoc. An unset URL is tolerated here and surfaces as a configuration error
// on the endpoint that needs it.
type Config struct {
	GuestChatURL       string
	ContactFallbackURL string
	AdminUploadURL     string
	Timeout            time.Duration
}

func ConfigFromEnv() Config {
	timeout := DefaultTimeout
	if raw := env.Get(env.WebhookTimeoutSeconds); raw != "" {
		if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
			timeout = time.Duration(secs) * time.Second
		}
	}

	return Config{
		GuestChatURL:       env.Get(env.GuestChatWebhookURL),
		ContactFallbackURL: env.Get(env.ContactFallbackWebhookURL),
		AdminUploadURL:     env.Get(env.AdminUploadWebhookURL),
		Timeout:            timeout,
	}
}
