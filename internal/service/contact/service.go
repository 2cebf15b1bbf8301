package contact

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"regexp"
	"strings"
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

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

const leadSource = "guest_chat_fallback"

type SubmitParams struct {
	UserID string
	Name   string
	Phone  string
	Email  string
}

type SubmitResult struct {
	Response json.RawMessage
	Lead     model.ContactLeadItem
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

// Submit validates the captured contact details, forwards them to the
// fallback workflow and records the lead. A lead that reached the workflow
// is never failed afterwards over a local storage problem.
func (s *Service) Submit(ctx context.Context, params SubmitParams) (SubmitResult, error) {
	var missing []string
	if strings.TrimSpace(params.Name) == "" {
		missing = append(missing, "name")
	}
	if strings.TrimSpace(params.Phone) == "" {
		missing = append(missing, "phone")
	}
	if strings.TrimSpace(params.Email) == "" {
		missing = append(missing, "email")
	}
	if len(missing) > 0 {
		return SubmitResult{}, newError(ErrorCodeValidation,
			"Missing required fields: name, phone, and email", nil)
	}

	email := strings.TrimSpace(params.Email)
	if !emailPattern.MatchString(email) {
		return SubmitResult{}, newError(ErrorCodeValidation, "Invalid email format", nil)
	}

	raw, err := s.forwarder.ForwardContact(ctx, webhook.ContactPayload{
		UserID: params.UserID,
		Name:   params.Name,
		Phone:  params.Phone,
		Email:  params.Email,
	})
	if err != nil {
		return SubmitResult{}, mapForwarderError(err)
	}

	userID := strings.TrimSpace(params.UserID)
	if userID == "" {
		userID = webhook.AnonymousUserID
	}

	leadID := uuid.NewString()
	lead := model.ContactLeadItem{
		PK:        model.LeadPK(userID, leadID),
		LeadID:    leadID,
		UserID:    userID,
		Name:      strings.TrimSpace(params.Name),
		Phone:     params.Phone,
		Email:     email,
		Source:    leadSource,
		CreatedAt: s.now().UTC().Format(time.RFC3339),
	}
	if err := s.repo.CreateLead(ctx, lead); err != nil {
		log.Printf("contact: record lead failed: %v", err)
	}

	return SubmitResult{
		Response: raw,
		Lead:     lead,
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
