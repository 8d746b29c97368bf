package notify

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/kevinburke/twilio-go"

	"github.com/flarexio/technozen/admission"
	"github.com/flarexio/technozen/conf"
	"github.com/flarexio/technozen/enquiry"
)

type messageSender interface {
	SendMessage(from string, to string, body string, mediaURLs []*url.URL) (*twilio.Message, error)
}

// SMS sends short acknowledgements through Twilio. Only numbers in
// international format are messaged.
type SMS struct {
	messages messageSender
	from     string
}

func NewSMS(cfg conf.SMS) *SMS {
	client := twilio.NewClient(cfg.AccountSID, cfg.AuthToken, nil)

	return &SMS{
		messages: client.Messages,
		from:     cfg.From,
	}
}

func (s *SMS) EnquiryReceived(ctx context.Context, e *enquiry.Enquiry) error {
	to := normalizePhone(e.Phone)
	if !strings.HasPrefix(to, "+") {
		return nil
	}

	body := fmt.Sprintf("Technozen India: thank you %s, we received your enquiry and will call you back soon.", e.Username)
	return s.send(to, body)
}

func (s *SMS) AdmissionReceived(ctx context.Context, a *admission.Admission) error {
	body := fmt.Sprintf("Technozen India: admission application received. Your student ID is %s.", a.StudentID)
	return s.send(a.ContactNumber, body)
}

func (s *SMS) send(to string, body string) error {
	if s.messages == nil {
		return errors.New("twilio not set up")
	}

	msg, err := s.messages.SendMessage(s.from, to, body, nil)
	if err != nil {
		return fmt.Errorf("failed to send sms: %w", err)
	}

	if msg.ErrorCode != 0 {
		return errors.New(msg.ErrorMessage)
	}

	return nil
}

func normalizePhone(phone string) string {
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '-' {
			return -1
		}
		return r
	}, phone)
}
