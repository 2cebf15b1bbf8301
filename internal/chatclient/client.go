package chatclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// Client talks to the concierge API over HTTP. It satisfies both ChatSender
// and ContactSubmitter, so one instance backs a whole Session.
type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
	}
}

type chatRequest struct {
	UserID    string `json:"userId"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type chatResponse struct {
	Success  bool            `json:"success"`
	Response json.RawMessage `json:"response"`
}

type contactRequest struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Email  string `json:"email"`
}

type apiErrorResponse struct {
	Message string `json:"message"`
}

func (c *Client) SendChat(ctx context.Context, userID, message string, timestamp time.Time) (json.RawMessage, error) {
	var out chatResponse
	err := c.postJSON(ctx, "/api/v1/chat", chatRequest{
		UserID:    userID,
		Message:   message,
		Timestamp: timestamp.UTC().Format(time.RFC3339),
	}, &out)
	if err != nil {
		return nil, err
	}
	if !out.Success {
		return nil, fmt.Errorf("chat api: unsuccessful response")
	}
	return out.Response, nil
}

func (c *Client) SubmitContact(ctx context.Context, userID, name, phone, email string) error {
	return c.postJSON(ctx, "/api/v1/contact", contactRequest{
		UserID: userID,
		Name:   name,
		Phone:  phone,
		Email:  email,
	}, nil)
}

func (c *Client) postJSON(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request %s: %w", path, err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		var apiErr apiErrorResponse
		if decodeErr := json.NewDecoder(res.Body).Decode(&apiErr); decodeErr == nil && apiErr.Message != "" {
			return fmt.Errorf("request %s: %s (status %d)", path, apiErr.Message, res.StatusCode)
		}
		return fmt.Errorf("request %s: status %d", path, res.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
