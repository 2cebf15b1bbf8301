package env

import (
	"os"
)

const (
	AWSRegion        = "AWS_REGION"
	AWSID            = "AWS_ID"
	AWSSecret        = "AWS_SECRET"
	AWSToken         = "AWS_TOKEN"
	DynamoDBEndpoint = "DYNAMODB_ENDPOINT"

	AnalyticsRedisURL  = "ANALYTICS_REDIS_URL"
	AnalyticsRedisPass = "ANALYTICS_REDIS_PASS"
	WebUrl             = "WEB_URL"

	// Webhook targets are resolved once into webhook.Config. A missing URL
	// disables only the endpoint that depends on it, so none of them are
	// checked at startup.
	GuestChatWebhookURL       = "GUEST_CHAT_N8N_WEBHOOK_URL"
	ContactFallbackWebhookURL = "FALLBACK_N8N_WEBHOOK_URL"
	AdminUploadWebhookURL     = "ADMIN_UPLOAD_N8N_WEBHOOK_URL"
	WebhookTimeoutSeconds     = "WEBHOOK_TIMEOUT_SECONDS"
	FallbackSentence          = "FALLBACK_SENTENCE"
)

func Get(key string) string {
	return os.Getenv(key)
}

func GetOrDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func MustGet(key string) string {
	val := os.Getenv(key)
	if val == "" {
		panic("env: required environment variable not set: " + key)
	}
	return val
}
