// Package mailer is the outbound mail channel. Delivery itself happens in a
// separate worker; this side only hands the message to the mail exchange.
package mailer

import (
	"context"

	"github.com/JJ00428/market-api/internal/infra/rabbitmq"
)

type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type mailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

type queueMailer struct {
	publisher rabbitmq.PublisherInterface
}

func NewQueueMailer(publisher rabbitmq.PublisherInterface) Mailer {
	return &queueMailer{publisher: publisher}
}

func (m *queueMailer) Send(ctx context.Context, to, subject, body string) error {
	return m.publisher.Publish(ctx, "mail.send", mailJob{To: to, Subject: subject, Body: body})
}
