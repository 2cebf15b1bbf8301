package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	// MaxUploadBytes caps hotel-info PDFs at 50 MiB, checked before any
	// network call.
	MaxUploadBytes = 50 * 1024 * 1024

	// AnonymousUserID substitutes for a missing userId so the automation
	// workflow always receives one.
	AnonymousUserID = "anonymous"

	contactSource = "guest_chat_fallback"

	// upstreamBodyLimit bounds how much of an error body is retained for
	// the server log.
	upstreamBodyLimit = 8 * 1024
)

// Forwarder relays validated payloads to the configured n8n webhooks and
// normalizes whatever comes back. It holds no state beyond the HTTP client,
// so a single instance is shared across handlers.
type Forwarder struct {
	cfg    Config
	client *http.Client
	now    func() time.Time
}

func NewForwarder(cfg Config) *Forwarder {
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Forwarder{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		now:    time.Now,
	}
}

// NewForwarderWithClock is used by tests that need deterministic timestamps.
func NewForwarderWithClock(cfg Config, now func() time.Time) *Forwarder {
	f := NewForwarder(cfg)
	if now != nil {
		f.now = now
	}
	return f
}

type ChatPayload struct {
	UserID    string `json:"userId"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

type ContactPayload struct {
	UserID string `json:"userId"`
	Name   string `json:"name"`
	Phone  string `json:"phone"`
	Email  string `json:"email"`
}

type UploadPayload struct {
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// UploadResult echoes the accepted file details next to the upstream reply.
type UploadResult struct {
	FileName string
	FileSize int64
	Response json.RawMessage
}

// ForwardChat relays one guest message. The upstream body is returned
// verbatim so callers can hand it to the client unmodified.
func (f *Forwarder) ForwardChat(ctx context.Context, payload ChatPayload) (json.RawMessage, error) {
	var missing []string
	if strings.TrimSpace(payload.Message) == "" {
		missing = append(missing, "message")
	}
	if strings.TrimSpace(payload.Timestamp) == "" {
		missing = append(missing, "timestamp")
	}
	if len(missing) > 0 {
		return nil, newError(ErrorCodeValidation,
			"Missing required fields: "+strings.Join(missing, " and "), nil)
	}

	if f.cfg.GuestChatURL == "" {
		return nil, newError(ErrorCodeConfiguration, "Webhook URL not configured",
			fmt.Errorf("guest chat webhook URL not set"))
	}

	if payload.UserID == "" {
		payload.UserID = AnonymousUserID
	}

	return f.postJSON(ctx, f.cfg.GuestChatURL, payload)
}

// ForwardContact relays captured contact details. Name and email are trimmed
// and a server-side timestamp and source marker are attached, matching what
// the fallback workflow expects.
func (f *Forwarder) ForwardContact(ctx context.Context, payload ContactPayload) (json.RawMessage, error) {
	var missing []string
	if strings.TrimSpace(payload.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(payload.Phone) == "" {
		missing = append(missing, "phone")
	}
	if strings.TrimSpace(payload.Email) == "" {
		missing = append(missing, "email")
	}
	if len(missing) > 0 {
		return nil, newError(ErrorCodeValidation,
			"Missing required fields: "+joinFields(missing), nil)
	}

	if f.cfg.ContactFallbackURL == "" {
		return nil, newError(ErrorCodeConfiguration, "Webhook URL not configured",
			fmt.Errorf("contact fallback webhook URL not set"))
	}

	userID := payload.UserID
	if userID == "" {
		userID = AnonymousUserID
	}

	body := map[string]string{
		"userId":    userID,
		"name":      strings.TrimSpace(payload.Name),
		"phone":     payload.Phone,
		"email":     strings.TrimSpace(payload.Email),
		"timestamp": f.now().UTC().Format(time.RFC3339),
		"source":    contactSource,
	}

	return f.postJSON(ctx, f.cfg.ContactFallbackURL, body)
}

// ForwardUpload validates and relays a hotel-info PDF as multipart form data.
func (f *Forwarder) ForwardUpload(ctx context.Context, payload UploadPayload) (UploadResult, error) {
	if payload.Content == nil || payload.FileName == "" {
		return UploadResult{}, newError(ErrorCodeValidation, "No file provided", nil)
	}
	if payload.ContentType != "application/pdf" {
		return UploadResult{}, newError(ErrorCodeValidation, "Only PDF files are allowed",
			fmt.Errorf("rejected content type %q", payload.ContentType))
	}
	if payload.Size > MaxUploadBytes {
		return UploadResult{}, newError(ErrorCodeValidation, "File size exceeds 50MB limit",
			fmt.Errorf("rejected %d byte upload", payload.Size))
	}

	if f.cfg.AdminUploadURL == "" {
		return UploadResult{}, newError(ErrorCodeConfiguration, "Webhook URL not configured",
			fmt.Errorf("admin upload webhook URL not set"))
	}

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("file", payload.FileName)
	if err != nil {
		return UploadResult{}, newError(ErrorCodeTransport, "Failed to process file",
			fmt.Errorf("create form file: %w", err))
	}
	if _, err := io.Copy(part, payload.Content); err != nil {
		return UploadResult{}, newError(ErrorCodeTransport, "Failed to process file",
			fmt.Errorf("copy upload body: %w", err))
	}

	fields := map[string]string{
		"fileName":   payload.FileName,
		"fileSize":   strconv.FormatInt(payload.Size, 10),
		"uploadedAt": f.now().UTC().Format(time.RFC3339),
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return UploadResult{}, newError(ErrorCodeTransport, "Failed to process file",
				fmt.Errorf("write form field %s: %w", name, err))
		}
	}

	if err := writer.Close(); err != nil {
		return UploadResult{}, newError(ErrorCodeTransport, "Failed to process file",
			fmt.Errorf("close multipart writer: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, f.cfg.AdminUploadURL, &buf)
	if err != nil {
		return UploadResult{}, newError(ErrorCodeTransport, "Failed to process file",
			fmt.Errorf("build upload request: %w", err))
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	raw, err := f.do(req, "Failed to process file")
	if err != nil {
		return UploadResult{}, err
	}

	return UploadResult{
		FileName: payload.FileName,
		FileSize: payload.Size,
		Response: raw,
	}, nil
}

func (f *Forwarder) postJSON(ctx context.Context, url string, payload any) (json.RawMessage, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, newError(ErrorCodeTransport, "Internal server error",
			fmt.Errorf("marshal webhook payload: %w", err))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, newError(ErrorCodeTransport, "Internal server error",
			fmt.Errorf("build webhook request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")

	return f.do(req, "Failed to send message to webhook")
}

// do executes the request and maps the outcome onto the error taxonomy. The
// generic message is what ultimately reaches the client; the wrapped error
// keeps the upstream detail for the log.
func (f *Forwarder) do(req *http.Request, genericMessage string) (json.RawMessage, error) {
	res, err := f.client.Do(req)
	if err != nil {
		return nil, newError(ErrorCodeTransport, genericMessage,
			fmt.Errorf("webhook request to %s: %w", req.URL.Host, err))
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(res.Body, upstreamBodyLimit))
	if err != nil {
		return nil, newError(ErrorCodeTransport, genericMessage,
			fmt.Errorf("read webhook response: %w", err))
	}

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, newError(ErrorCodeUpstream, genericMessage,
			fmt.Errorf("webhook returned %s: %s", res.Status, string(raw)))
	}

	if !json.Valid(raw) {
		return nil, newError(ErrorCodeUpstream, genericMessage,
			fmt.Errorf("webhook returned unparsable body: %q", string(raw)))
	}

	return json.RawMessage(raw), nil
}

func joinFields(fields []string) string {
	switch len(fields) {
	case 1:
		return fields[0]
	case 2:
		return fields[0] + " and " + fields[1]
	default:
		return strings.Join(fields[:len(fields)-1], ", ") + ", and " + fields[len(fields)-1]
	}
}
