package dto

import "encoding/json"

type ChatRequest struct {
	UserID    string `json:"userId"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// ChatResponse wraps the upstream workflow body untouched.
type ChatResponse struct {
	Success  bool            `json:"success"`
	Response json.RawMessage `json:"response"`
}
