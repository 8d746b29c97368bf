package notify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/oklog/ulid/v2"

	"github.com/flarexio/technozen/admission"
	"github.com/flarexio/technozen/conf"
	"github.com/flarexio/technozen/enquiry"
)

type EventName string

const (
	EnquiryReceived   EventName = "enquiry_received"
	AdmissionReceived EventName = "admission_received"
)

type Event struct {
	ID         string    `json:"id"`
	Name       EventName `json:"name"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data"`
}

func NewEvent(name EventName, data any) *Event {
	id := ulid.Make()

	return &Event{
		ID:         id.String(),
		Name:       name,
		OccurredAt: ulid.Time(id.Time()).UTC(),
		Data:       data,
	}
}

func NewEventPublisher(cfg conf.EventBus) (*EventPublisher, error) {
	url := cfg.URL
	if url == "" {
		url = nats.DefaultURL
	}

	nc, err := nats.Connect(url, nats.Name("technozen"))
	if err != nil {
		return nil, err
	}

	return &EventPublisher{nc, cfg.Subject}, nil
}

// EventPublisher publishes submissions on
// <subject>.enquiries.received and <subject>.admissions.received.
type EventPublisher struct {
	nc      *nats.Conn
	subject string
}

func (p *EventPublisher) EnquiryReceived(ctx context.Context, e *enquiry.Enquiry) error {
	return p.publish(p.subject+".enquiries.received", NewEvent(EnquiryReceived, e))
}

func (p *EventPublisher) AdmissionReceived(ctx context.Context, a *admission.Admission) error {
	return p.publish(p.subject+".admissions.received", NewEvent(AdmissionReceived, a))
}

func (p *EventPublisher) publish(topic string, e *Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return err
	}

	return p.nc.Publish(topic, data)
}

func (p *EventPublisher) Close() error {
	return p.nc.Drain()
}
