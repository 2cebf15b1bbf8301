package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func fixedClock() time.Time {
	return time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
}

func TestForwardChatRelaysPayload(t *testing.T) {
	var received map[string]string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("unexpected method %s", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %s", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Errorf("decode upstream body: %v", err)
		}
		w.Write([]byte(`{"output": "Checkout is at 11 AM."}`))
	}))
	defer upstream.Close()

	f := NewForwarder(Config{GuestChatURL: upstream.URL})

	raw, err := f.ForwardChat(context.Background(), ChatPayload{
		UserID:    "guest-1",
		Message:   "When is checkout?",
		Timestamp: "2024-05-10T12:00:00Z",
	})
	if err != nil {
		t.Fatalf("ForwardChat error: %v", err)
	}
	if string(raw) != `{"output": "Checkout is at 11 AM."}` {
		t.Fatalf("unexpected body %s", raw)
	}
	if received["userId"] != "guest-1" || received["message"] != "When is checkout?" {
		t.Fatalf("unexpected forwarded payload %+v", received)
	}
}

func TestForwardChatDefaultsAnonymousUser(t *testing.T) {
	var received map[string]string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&received)
		w.Write([]byte(`{}`))
	}))
	defer upstream.Close()

	f := NewForwarder(Config{GuestChatURL: upstream.URL})

	if _, err := f.ForwardChat(context.Background(), ChatPayload{
		Message:   "Hello",
		Timestamp: "2024-05-10T12:00:00Z",
	}); err != nil {
		t.Fatalf("ForwardChat error: %v", err)
	}
	if received["userId"] != AnonymousUserID {
		t.Fatalf("expected anonymous user id, got %q", received["userId"])
	}
}

func TestForwardChatValidatesBeforeNetwork(t *testing.T) {
	called := false
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer upstream.Close()

	f := NewForwarder(Config{GuestChatURL: upstream.URL})

	_, err := f.ForwardChat(context.Background(), ChatPayload{})
	webhookErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if webhookErr.Code != ErrorCodeValidation {
		t.Fatalf("expected validation error, got %s", webhookErr.Code)
	}
	if webhookErr.Message != "Missing required fields: message and timestamp" {
		t.Fatalf("unexpected message %q", webhookErr.Message)
	}
	if called {
		t.Fatal("validation failure must not reach the webhook")
	}
}

func TestForwardChatMissingConfiguration(t *testing.T) {
	f := NewForwarder(Config{})

	_, err := f.ForwardChat(context.Background(), ChatPayload{
		Message:   "Hello",
		Timestamp: "2024-05-10T12:00:00Z",
	})
	webhookErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if webhookErr.Code != ErrorCodeConfiguration {
		t.Fatalf("expected configuration error, got %s", webhookErr.Code)
	}
	if webhookErr.Message != "Webhook URL not configured" {
		t.Fatalf("unexpected message %q", webhookErr.Message)
	}
}

func TestForwardChatUpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "workflow exploded", http.StatusBadGateway)
	}))
	defer upstream.Close()

	f := NewForwarder(Config{GuestChatURL: upstream.URL})

	_, err := f.ForwardChat(context.Background(), ChatPayload{
		Message:   "Hello",
		Timestamp: "2024-05-10T12:00:00Z",
	})
	webhookErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if webhookErr.Code != ErrorCodeUpstream {
		t.Fatalf("expected upstream error, got %s", webhookErr.Code)
	}
	if webhookErr.Message != "Failed to send message to webhook" {
		t.Fatalf("unexpected message %q", webhookErr.Message)
	}
	if webhookErr.Err == nil || !strings.Contains(webhookErr.Err.Error(), "workflow exploded") {
		t.Fatalf("expected upstream detail in wrapped error, got %v", webhookErr.Err)
	}
}

func TestForwardChatUnparsableUpstreamBody(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html>definitely not json</html>"))
	}))
	defer upstream.Close()

	f := NewForwarder(Config{GuestChatURL: upstream.URL})

	_, err := f.ForwardChat(context.Background(), ChatPayload{
		Message:   "Hello",
		Timestamp: "2024-05-10T12:00:00Z",
	})
	webhookErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if webhookErr.Code != ErrorCodeUpstream {
		t.Fatalf("expected upstream error, got %s", webhookErr.Code)
	}
}

func TestForwardChatUnreachableWebhook(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	upstream.Close()

	f := NewForwarder(Config{GuestChatURL: upstream.URL})

	_, err := f.ForwardChat(context.Background(), ChatPayload{
		Message:   "Hello",
		Timestamp: "2024-05-10T12:00:00Z",
	})
	webhookErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if webhookErr.Code != ErrorCodeTransport {
		t.Fatalf("expected transport error, got %s", webhookErr.Code)
	}
}

func TestForwardContactEnrichesPayload(t *testing.T) {
	var received map[string]string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewDecoder(r.Body).Decode(&received)
		w.Write([]byte(`{"status": "ok"}`))
	}))
	defer upstream.Close()

	f := NewForwarderWithClock(Config{ContactFallbackURL: upstream.URL}, fixedClock)

	_, err := f.ForwardContact(context.Background(), ContactPayload{
		UserID: "guest-1",
		Name:   "  Jane Doe  ",
		Phone:  "+15551234567",
		Email:  " jane@example.com ",
	})
	if err != nil {
		t.Fatalf("ForwardContact error: %v", err)
	}

	if received["name"] != "Jane Doe" {
		t.Fatalf("expected trimmed name, got %q", received["name"])
	}
	if received["email"] != "jane@example.com" {
		t.Fatalf("expected trimmed email, got %q", received["email"])
	}
	if received["timestamp"] != "2024-05-10T12:00:00Z" {
		t.Fatalf("unexpected timestamp %q", received["timestamp"])
	}
	if received["source"] != "guest_chat_fallback" {
		t.Fatalf("unexpected source %q", received["source"])
	}
}

func TestForwardContactValidatesRequiredFields(t *testing.T) {
	called := false
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer upstream.Close()

	f := NewForwarder(Config{ContactFallbackURL: upstream.URL})

	_, err := f.ForwardContact(context.Background(), ContactPayload{})
	webhookErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if webhookErr.Code != ErrorCodeValidation {
		t.Fatalf("expected validation error, got %s", webhookErr.Code)
	}
	if webhookErr.Message != "Missing required fields: name, phone, and email" {
		t.Fatalf("unexpected message %q", webhookErr.Message)
	}
	if called {
		t.Fatal("validation failure must not reach the webhook")
	}
}

func TestForwardUploadRelaysMultipart(t *testing.T) {
	var fileName, fileSize, uploadedAt, fileBody string
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("parse multipart form: %v", err)
			return
		}
		fileName = r.FormValue("fileName")
		fileSize = r.FormValue("fileSize")
		uploadedAt = r.FormValue("uploadedAt")

		file, header, err := r.FormFile("file")
		if err != nil {
			t.Errorf("read form file: %v", err)
			return
		}
		defer file.Close()
		if header.Filename != "hotel-info.pdf" {
			t.Errorf("unexpected filename %s", header.Filename)
		}
		body, _ := io.ReadAll(file)
		fileBody = string(body)

		w.Write([]byte(`{"status": "processed"}`))
	}))
	defer upstream.Close()

	f := NewForwarderWithClock(Config{AdminUploadURL: upstream.URL}, fixedClock)

	content := "%PDF-1.7 fake body"
	result, err := f.ForwardUpload(context.Background(), UploadPayload{
		FileName:    "hotel-info.pdf",
		ContentType: "application/pdf",
		Size:        int64(len(content)),
		Content:     strings.NewReader(content),
	})
	if err != nil {
		t.Fatalf("ForwardUpload error: %v", err)
	}

	if fileName != "hotel-info.pdf" {
		t.Fatalf("unexpected fileName field %q", fileName)
	}
	if fileSize != "18" {
		t.Fatalf("unexpected fileSize field %q", fileSize)
	}
	if uploadedAt != "2024-05-10T12:00:00Z" {
		t.Fatalf("unexpected uploadedAt field %q", uploadedAt)
	}
	if fileBody != content {
		t.Fatalf("file body did not survive the relay: %q", fileBody)
	}
	if result.FileName != "hotel-info.pdf" || result.FileSize != int64(len(content)) {
		t.Fatalf("unexpected result %+v", result)
	}
	if string(result.Response) != `{"status": "processed"}` {
		t.Fatalf("unexpected upstream response %s", result.Response)
	}
}

func TestForwardUploadRejectsBeforeNetwork(t *testing.T) {
	called := false
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer upstream.Close()

	f := NewForwarder(Config{AdminUploadURL: upstream.URL})

	cases := []struct {
		name    string
		payload UploadPayload
		message string
	}{
		{
			name:    "missing file",
			payload: UploadPayload{},
			message: "No file provided",
		},
		{
			name: "wrong content type",
			payload: UploadPayload{
				FileName:    "notes.txt",
				ContentType: "text/plain",
				Size:        10,
				Content:     strings.NewReader("plain text"),
			},
			message: "Only PDF files are allowed",
		},
		{
			name: "oversized file",
			payload: UploadPayload{
				FileName:    "huge.pdf",
				ContentType: "application/pdf",
				Size:        MaxUploadBytes + 1,
				Content:     bytes.NewReader(nil),
			},
			message: "File size exceeds 50MB limit",
		},
	}

	for _, tc := range cases {
		_, err := f.ForwardUpload(context.Background(), tc.payload)
		webhookErr, ok := err.(*Error)
		if !ok {
			t.Fatalf("%s: expected *Error, got %T", tc.name, err)
		}
		if webhookErr.Code != ErrorCodeValidation {
			t.Fatalf("%s: expected validation error, got %s", tc.name, webhookErr.Code)
		}
		if webhookErr.Message != tc.message {
			t.Fatalf("%s: unexpected message %q", tc.name, webhookErr.Message)
		}
	}
	if called {
		t.Fatal("rejected uploads must not reach the webhook")
	}
}
