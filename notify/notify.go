package notify

import (
	"context"
	"errors"
	"io"

	"github.com/flarexio/technozen/admission"
	"github.com/flarexio/technozen/conf"
	"github.com/flarexio/technozen/enquiry"
)

// Notifier acknowledges accepted submissions.
type Notifier interface {
	EnquiryReceived(ctx context.Context, e *enquiry.Enquiry) error
	AdmissionReceived(ctx context.Context, a *admission.Admission) error
}

// NewNotifier builds the notifiers enabled in cfg. With nothing enabled
// the result acknowledges nothing.
func NewNotifier(cfg conf.Notifications) (*Multi, error) {
	notifiers := make([]Notifier, 0)

	if cfg.Mail.Enabled {
		mailer, err := NewMailer(cfg.Mail)
		if err != nil {
			return nil, err
		}

		notifiers = append(notifiers, mailer)
	}

	if cfg.SMS.Enabled {
		notifiers = append(notifiers, NewSMS(cfg.SMS))
	}

	if cfg.EventBus.Enabled {
		publisher, err := NewEventPublisher(cfg.EventBus)
		if err != nil {
			return nil, err
		}

		notifiers = append(notifiers, publisher)
	}

	return NewMulti(notifiers...), nil
}

func NewMulti(notifiers ...Notifier) *Multi {
	return &Multi{notifiers}
}

// Multi fans out to every notifier and joins their errors.
type Multi struct {
	notifiers []Notifier
}

func (m *Multi) Len() int {
	return len(m.notifiers)
}

func (m *Multi) EnquiryReceived(ctx context.Context, e *enquiry.Enquiry) error {
	var errs []error
	for _, n := range m.notifiers {
		if err := n.EnquiryReceived(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (m *Multi) AdmissionReceived(ctx context.Context, a *admission.Admission) error {
	var errs []error
	for _, n := range m.notifiers {
		if err := n.AdmissionReceived(ctx, a); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func (m *Multi) Close() error {
	var errs []error
	for _, n := range m.notifiers {
		if c, ok := n.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}

	return errors.Join(errs...)
}
