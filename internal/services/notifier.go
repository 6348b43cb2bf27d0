package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"nwptourism/pkg/utils"
)

// FeedbackEvent is what operators are told about a new submission.
type FeedbackEvent struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Comment   string    `json:"comment"`
	Latitude  float64   `json:"latitude"`
	Longitude float64   `json:"longitude"`
	ImageURL  string    `json:"image_url,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type Notifier interface {
	FeedbackSubmitted(ctx context.Context, ev FeedbackEvent) error
}

type NoopNotifier struct{}

func (NoopNotifier) FeedbackSubmitted(context.Context, FeedbackEvent) error { return nil }

type MailNotifier struct {
	mail IMailService
	to   string
}

func NewMailNotifier(mail IMailService, to string) *MailNotifier {
	return &MailNotifier{mail: mail, to: to}
}

func (n *MailNotifier) FeedbackSubmitted(ctx context.Context, ev FeedbackEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return n.mail.Send(n.to,
		"New Tourist Feedback Submitted",
		fmt.Sprintf("New feedback from %s.", ev.Name),
		"Comment: "+ev.Comment,
		fmt.Sprintf("Location: %.6f, %.6f", ev.Latitude, ev.Longitude),
		"Received: "+utils.FormatDisplayLK(ev.CreatedAt),
	)
}

// publisher is the slice of *nats.Conn the notifier needs.
type publisher interface {
	Publish(subj string, data []byte) error
}

type NATSNotifier struct {
	conn    publisher
	subject string
}

func NewNATSNotifier(conn publisher, subject string) *NATSNotifier {
	return &NATSNotifier{conn: conn, subject: subject}
}

func (n *NATSNotifier) FeedbackSubmitted(ctx context.Context, ev FeedbackEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return n.conn.Publish(n.subject, payload)
}

// MultiNotifier fans out to every notifier and joins their errors.
type MultiNotifier []Notifier

func (m MultiNotifier) FeedbackSubmitted(ctx context.Context, ev FeedbackEvent) error {
	var errs []error
	for _, n := range m {
		if err := n.FeedbackSubmitted(ctx, ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
