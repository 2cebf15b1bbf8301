package upload

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"time"

	"hotel-chat-backend/internal/database"
	"hotel-chat-backend/internal/model"
	"hotel-chat-backend/internal/webhook"

	"github.com/google/uuid"
)

type ErrorCode string

const (
	ErrorCodeValidation    ErrorCode = "validation_error"
	ErrorCodeConfiguration ErrorCode = "configuration_error"
	ErrorCodeUpstream      ErrorCode = "upstream_error"
	ErrorCodeInternal      ErrorCode = "internal_error"
)

type Error struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

type UploadParams struct {
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader
}

type UploadResultData struct {
	FileName string
	FileSize int64
	Response json.RawMessage
}

type Service struct {
	repo      Repository
	forwarder *webhook.Forwarder
	now       func() time.Time
}

func New(db *database.Database, forwarder *webhook.Forwarder) *Service {
	return NewWithRepository(NewDynamoRepository(db), forwarder, time.Now)
}

func NewWithRepository(repo Repository, forwarder *webhook.Forwarder, now func() time.Time) *Service {
	if now == nil {
		now = time.Now
	}
	return &Service{
		repo:      repo,
		forwarder: forwarder,
		now:       now,
	}
}

// Upload relays a hotel-info PDF to the processing workflow and records the
// accepted file. Type and size limits are enforced by the forwarder before
// any bytes leave the process.
func (s *Service) Upload(ctx context.Context, params UploadParams) (UploadResultData, error) {
	result, err := s.forwarder.ForwardUpload(ctx, webhook.UploadPayload{
		FileName:    params.FileName,
		ContentType: params.ContentType,
		Size:        params.Size,
		Content:     params.Content,
	})
	if err != nil {
		return UploadResultData{}, mapForwarderError(err)
	}

	item := model.UploadItem{
		UploadID:   uuid.NewString(),
		FileName:   result.FileName,
		FileSize:   result.FileSize,
		UploadedAt: s.now().UTC().Format(time.RFC3339),
	}
	if err := s.repo.CreateUpload(ctx, item); err != nil {
		log.Printf("upload: record upload failed: %v", err)
	}

	return UploadResultData{
		FileName: result.FileName,
		FileSize: result.FileSize,
		Response: result.Response,
	}, nil
}

func mapForwarderError(err error) error {
	var fwdErr *webhook.Error
	if !errors.As(err, &fwdErr) {
		return newError(ErrorCodeInternal, "Internal server error", err)
	}

	switch fwdErr.Code {
	case webhook.ErrorCodeValidation:
		return newError(ErrorCodeValidation, fwdErr.Message, fwdErr.Err)
	case webhook.ErrorCodeConfiguration:
		return newError(ErrorCodeConfiguration, fwdErr.Message, fwdErr.Err)
	default:
		return newError(ErrorCodeUpstream, fwdErr.Message, fwdErr.Err)
	}
}
