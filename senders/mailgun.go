package senders

import (
	"context"
	"fmt"

	"github.com/mailgun/mailgun-go/v4"
	"github.com/mkarpus/feedsignal/lib/models"
)

type emailSender struct {
	base
}

func (e *emailSender) Send(ctx context.Context, dest models.Destination, n Notification) error {
	subject := fmt.Sprintf("%s: %s", n.FeedName, n.Entry.Title)

	if n.DryRun {
		e.log.Sugar().Infow("Would email", "recipient", dest.Email, "subject", subject)
		return nil
	}

	mg := mailgun.NewMailgun(e.cfg.Mailgun.Domain, e.cfg.Mailgun.APIKey)
	mg.Client().Transport = e.transport

	// Create message with empty body first; SetHtml assigns the MIME
	// type properly.
	message := mg.NewMessage(e.cfg.Mailgun.SenderFrom, subject, "", dest.Email)
	message.SetHtml(e.body(n))

	ctx, cancel := context.WithTimeout(ctx, e.cfg.MailgunTimeout())
	defer cancel()

	_, id, err := mg.Send(ctx, message)
	if err != nil {
		return fmt.Errorf("mailgun: %w", err)
	}
	e.log.Sugar().Infow("Sent email notification", "recipient", dest.Email, "message_id", id)
	return nil
}

func (e *emailSender) body(n Notification) string {
	return fmt.Sprintf(
		`<h3><a href="%s">%s</a></h3><p>%s</p>`,
		n.Entry.Link, n.Entry.Title, n.Entry.Description,
	)
}
