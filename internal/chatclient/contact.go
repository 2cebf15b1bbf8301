package chatclient

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
)

var (
	ErrAlreadySubmitted = errors.New("chatclient: contact form already submitted")
	ErrSubmitInFlight   = errors.New("chatclient: contact submission already in flight")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type ContactFormState string

const (
	ContactFormEditing    ContactFormState = "editing"
	ContactFormSubmitting ContactFormState = "submitting"
	ContactFormSubmitted  ContactFormState = "submitted"
)

// InvalidFieldsError reports which fields blocked a submission. Nothing is
// sent over the network while it would be returned.
type InvalidFieldsError struct {
	Fields []string
}

func (e *InvalidFieldsError) Error() string {
	return fmt.Sprintf("chatclient: invalid contact fields: %s", strings.Join(e.Fields, ", "))
}

// ContactForm is the contact-capture hand-off attached to a fallback bot
// message. Each instance submits at most once; a later fallback event gets
// its own fresh form.
type ContactForm struct {
	mu        sync.Mutex
	userID    string
	name      string
	phone     string
	email     string
	state     ContactFormState
	submitter ContactSubmitter
}

func NewContactForm(userID string, submitter ContactSubmitter) *ContactForm {
	return &ContactForm{
		userID:    userID,
		state:     ContactFormEditing,
		submitter: submitter,
	}
}

func (f *ContactForm) SetName(name string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.name = name
}

func (f *ContactForm) SetPhone(phone string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.phone = phone
}

func (f *ContactForm) SetEmail(email string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.email = email
}

func (f *ContactForm) State() ContactFormState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Validate reports the fields that currently block submission.
func (f *ContactForm) Validate() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.validateLocked()
}

func (f *ContactForm) validateLocked() error {
	var invalid []string
	if strings.TrimSpace(f.name) == "" {
		invalid = append(invalid, "name")
	}
	if !emailPattern.MatchString(strings.TrimSpace(f.email)) {
		invalid = append(invalid, "email")
	}
	if _, ok := NormalizePhone(f.phone); !ok {
		invalid = append(invalid, "phone")
	}
	if len(invalid) > 0 {
		return &InvalidFieldsError{Fields: invalid}
	}
	return nil
}

// Submit validates the fields and forwards them once. Invalid fields and
// in-flight or completed submissions never reach the network. A failed
// submission leaves the form editable for another attempt.
func (f *ContactForm) Submit(ctx context.Context) error {
	f.mu.Lock()
	switch f.state {
	case ContactFormSubmitted:
		f.mu.Unlock()
		return ErrAlreadySubmitted
	case ContactFormSubmitting:
		f.mu.Unlock()
		return ErrSubmitInFlight
	}

	if err := f.validateLocked(); err != nil {
		f.mu.Unlock()
		return err
	}

	phone, _ := NormalizePhone(f.phone)
	name := strings.TrimSpace(f.name)
	email := strings.TrimSpace(f.email)
	userID := f.userID
	f.state = ContactFormSubmitting
	f.mu.Unlock()

	err := f.submitter.SubmitContact(ctx, userID, name, phone, email)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.state = ContactFormEditing
		return err
	}
	f.state = ContactFormSubmitted
	return nil
}

// NormalizePhone reduces North American phone spellings to +1XXXXXXXXXX.
// Separators (spaces, dashes, dots, parentheses) and an optional leading +1
// or 1 are tolerated; anything that does not leave exactly ten digits is
// rejected.
func NormalizePhone(phone string) (string, bool) {
	var digits strings.Builder
	for _, r := range strings.TrimSpace(phone) {
		switch {
		case r >= '0' && r <= '9':
			digits.WriteRune(r)
		case r == ' ' || r == '-' || r == '.' || r == '(' || r == ')' || r == '+':
			// separator, skip
		default:
			return "", false
		}
	}

	number := digits.String()
	if len(number) == 11 && strings.HasPrefix(number, "1") {
		number = number[1:]
	}
	if len(number) != 10 {
		return "", false
	}
	return "+1" + number, true
}
