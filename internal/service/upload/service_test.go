package upload

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"hotel-chat-backend/internal/model"
	"hotel-chat-backend/internal/webhook"
)

type memoryRepository struct {
	mu        sync.Mutex
	uploads   []model.UploadItem
	createErr error
}

func (m *memoryRepository) CreateUpload(ctx context.Context, upload model.UploadItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.createErr != nil {
		return m.createErr
	}
	m.uploads = append(m.uploads, upload)
	return nil
}

func testClock() time.Time {
	return time.Date(2024, 5, 10, 12, 0, 0, 0, time.UTC)
}

func TestUploadRecordsFile(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "processed"}`))
	}))
	defer upstream.Close()

	repo := &memoryRepository{}
	forwarder := webhook.NewForwarder(webhook.Config{AdminUploadURL: upstream.URL})
	svc := NewWithRepository(repo, forwarder, testClock)

	content := "%PDF-1.7 fake body"
	result, err := svc.Upload(context.Background(), UploadParams{
		FileName:    "hotel-info.pdf",
		ContentType: "application/pdf",
		Size:        int64(len(content)),
		Content:     strings.NewReader(content),
	})
	if err != nil {
		t.Fatalf("Upload error: %v", err)
	}

	if result.FileName != "hotel-info.pdf" || result.FileSize != int64(len(content)) {
		t.Fatalf("unexpected result %+v", result)
	}
	if string(result.Response) != `{"status": "processed"}` {
		t.Fatalf("unexpected response %s", result.Response)
	}

	if len(repo.uploads) != 1 {
		t.Fatalf("expected 1 recorded upload, got %d", len(repo.uploads))
	}
	item := repo.uploads[0]
	if item.FileName != "hotel-info.pdf" || item.FileSize != int64(len(content)) {
		t.Fatalf("unexpected item %+v", item)
	}
	if item.UploadedAt != "2024-05-10T12:00:00Z" {
		t.Fatalf("unexpected uploadedAt %q", item.UploadedAt)
	}
	if item.UploadID == "" {
		t.Fatal("expected an upload id")
	}
}

func TestUploadRejectsNonPDF(t *testing.T) {
	called := false
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer upstream.Close()

	repo := &memoryRepository{}
	forwarder := webhook.NewForwarder(webhook.Config{AdminUploadURL: upstream.URL})
	svc := NewWithRepository(repo, forwarder, testClock)

	_, err := svc.Upload(context.Background(), UploadParams{
		FileName:    "notes.txt",
		ContentType: "text/plain",
		Size:        10,
		Content:     strings.NewReader("plain text"),
	})
	svcErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if svcErr.Code != ErrorCodeValidation {
		t.Fatalf("expected validation error, got %s", svcErr.Code)
	}
	if svcErr.Message != "Only PDF files are allowed" {
		t.Fatalf("unexpected message %q", svcErr.Message)
	}
	if called {
		t.Fatal("rejected upload must not reach the webhook")
	}
	if len(repo.uploads) != 0 {
		t.Fatal("rejected upload must not be recorded")
	}
}

func TestUploadStorageFailureStillSucceeds(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "processed"}`))
	}))
	defer upstream.Close()

	repo := &memoryRepository{createErr: errors.New("dynamo unavailable")}
	forwarder := webhook.NewForwarder(webhook.Config{AdminUploadURL: upstream.URL})
	svc := NewWithRepository(repo, forwarder, testClock)

	content := "%PDF-1.7 fake body"
	if _, err := svc.Upload(context.Background(), UploadParams{
		FileName:    "hotel-info.pdf",
		ContentType: "application/pdf",
		Size:        int64(len(content)),
		Content:     strings.NewReader(content),
	}); err != nil {
		t.Fatalf("a storage failure must not fail a processed upload: %v", err)
	}
}

func TestUploadUpstreamFailure(t *testing.T) {
	upstream := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "workflow exploded", http.StatusInternalServerError)
	}))
	defer upstream.Close()

	repo := &memoryRepository{}
	forwarder := webhook.NewForwarder(webhook.Config{AdminUploadURL: upstream.URL})
	svc := NewWithRepository(repo, forwarder, testClock)

	content := "%PDF-1.7 fake body"
	_, err := svc.Upload(context.Background(), UploadParams{
		FileName:    "hotel-info.pdf",
		ContentType: "application/pdf",
		Size:        int64(len(content)),
		Content:     strings.NewReader(content),
	})
	svcErr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if svcErr.Code != ErrorCodeUpstream {
		t.Fatalf("expected upstream error, got %s", svcErr.Code)
	}
	if svcErr.Message != "Failed to process file" {
		t.Fatalf("unexpected message %q", svcErr.Message)
	}
	if len(repo.uploads) != 0 {
		t.Fatal("failed upload must not be recorded")
	}
}
