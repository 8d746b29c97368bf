package enquiry

import (
	"errors"
	"html"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

var (
	ErrEnquiryNotFound = errors.New("enquiry not found")
)

var policy = bluemonday.StrictPolicy()

// sanitize strips markup and keeps the remaining text as typed.
// Escaping is left to whatever renders it.
func sanitize(s string) string {
	return html.UnescapeString(policy.Sanitize(s))
}

// Enquiry is a message left through the contact form.
type Enquiry struct {
	ID        uuid.UUID `json:"enquiry_id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Subject   string    `json:"subject"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	Date      time.Time `json:"date"`
	Timestamp int64     `json:"timestamp"`
}

type Form struct {
	Username string
	Email    string
	Subject  string
	Phone    string
	Message  string
}

func NewEnquiry(form Form, now time.Time) *Enquiry {
	now = now.UTC()

	return &Enquiry{
		ID:        uuid.New(),
		Username:  sanitize(form.Username),
		Email:     sanitize(form.Email),
		Subject:   sanitize(form.Subject),
		Phone:     sanitize(form.Phone),
		Message:   sanitize(form.Message),
		Date:      now,
		Timestamp: now.UnixMilli(),
	}
}
