package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"text/template"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/flarexio/technozen/admission"
	"github.com/flarexio/technozen/conf"
	"github.com/flarexio/technozen/enquiry"
)

var (
	enquiryMail = template.Must(template.New("enquiry").Parse(`Dear {{.Username}},

Thank you for contacting Technozen India. We have received your enquiry{{if .Subject}} about "{{.Subject}}"{{end}} and will get back to you shortly.

Enquiry ID: {{.ID}}

Technozen India
`))

	admissionMail = template.Must(template.New("admission").Parse(`Dear {{.FullName}},

Thank you for applying to Technozen India. Your admission application has been received.

Student admission ID: {{.StudentID}}
Course: {{.CourseInterested}}{{if .SubCourse}} / {{.SubCourse}}{{end}}
Joining date: {{.JoiningDate}}
Batch time: {{.BatchTime}}

Please quote your student admission ID in any correspondence.

Technozen India
`))
)

// SendFunc matches (*mail.Client).DialAndSendWithContext.
type SendFunc func(ctx context.Context, msgs ...*mail.Msg) error

func NewMailer(cfg conf.Mail) (*Mailer, error) {
	if err := mail.NewMsg().From(cfg.From); err != nil {
		return nil, fmt.Errorf("invalid mail sender: %w", err)
	}

	if cfg.Host == "" {
		return nil, errors.New("mail host not configured")
	}

	port := cfg.Port
	if port == 0 {
		port = 587
	}

	opts := []mail.Option{
		mail.WithPort(port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
		mail.WithTimeout(10 * time.Second),
	}

	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, err
	}

	return &Mailer{
		addr: net.JoinHostPort(cfg.Host, strconv.Itoa(port)),
		from: cfg.From,
		send: client.DialAndSendWithContext,
	}, nil
}

// Mailer sends acknowledgement emails to the submitter over SMTP.
type Mailer struct {
	addr string
	from string
	send SendFunc
}

func (m *Mailer) EnquiryReceived(ctx context.Context, e *enquiry.Enquiry) error {
	var body bytes.Buffer
	if err := enquiryMail.Execute(&body, e); err != nil {
		return err
	}

	return m.deliver(ctx, e.Email, "We received your enquiry", body.String())
}

func (m *Mailer) AdmissionReceived(ctx context.Context, a *admission.Admission) error {
	var body bytes.Buffer
	if err := admissionMail.Execute(&body, a); err != nil {
		return err
	}

	subject := "Admission application received - " + a.StudentID.String()
	return m.deliver(ctx, a.EmailID, subject, body.String())
}

func (m *Mailer) deliver(ctx context.Context, to string, subject string, body string) error {
	msg := mail.NewMsg(mail.WithEncoding(mail.NoEncoding))
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("invalid mail sender: %w", err)
	}

	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient: %w", err)
	}

	msg.Subject(subject)
	msg.SetDate()
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := m.send(ctx, msg); err != nil {
		return fmt.Errorf("failed to send mail via %s: %w", m.addr, err)
	}

	return nil
}
