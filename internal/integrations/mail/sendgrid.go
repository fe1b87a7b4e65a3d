// Package mail sends transactional billing notices to owners.
package mail

import (
	"context"
	"fmt"
	"strings"

	"github.com/sendgrid/sendgrid-go"
	sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"

	"github.com/kosbot/kosbot-api/internal/domain/billing"
	"github.com/kosbot/kosbot-api/internal/domain/profile"
	"github.com/kosbot/kosbot-api/internal/pkg/i18n"
	"github.com/kosbot/kosbot-api/internal/pkg/logger"
)

// Config holds SendGrid settings
type Config struct {
	APIKey      string
	FromAddress string
	FromName    string
	// link included in every notice, usually the billing page
	BillingURL string
}

type sendFunc func(ctx context.Context, msg *sgmail.SGMailV3) (status int, body string, err error)

// SendGridNotifier emails owners when their subscription needs attention
type SendGridNotifier struct {
	from       *sgmail.Email
	billingURL string
	send       sendFunc
	logger     *logger.Logger
}

// NewSendGridNotifier creates a notifier backed by the SendGrid v3 API
func NewSendGridNotifier(cfg Config, log *logger.Logger) *SendGridNotifier {
	client := sendgrid.NewSendClient(cfg.APIKey)
	return &SendGridNotifier{
		from:       sgmail.NewEmail(cfg.FromName, cfg.FromAddress),
		billingURL: cfg.BillingURL,
		logger:     log,
		send: func(ctx context.Context, msg *sgmail.SGMailV3) (int, string, error) {
			resp, err := client.SendWithContext(ctx, msg)
			if err != nil {
				return 0, "", err
			}
			return resp.StatusCode, resp.Body, nil
		},
	}
}

// NotifyStatusChange sends the notice matching p's new status. Statuses
// without a notice are skipped.
func (n *SendGridNotifier) NotifyStatusChange(ctx context.Context, p *profile.Profile, from profile.Status) error {
	subject, body, ok := compose(ctx, p.Status, n.billingURL)
	if !ok {
		return nil
	}

	to := sgmail.NewEmail(p.Name, p.Email)
	msg := sgmail.NewSingleEmail(n.from, subject, to, body, "")

	status, respBody, err := n.send(ctx, msg)
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	if status >= 300 {
		return fmt.Errorf("sendgrid: status %d: %s", status, strings.TrimSpace(respBody))
	}

	n.logger.WithFields(map[string]interface{}{
		"owner_id": p.ID,
		"from":     from,
		"status":   p.Status,
	}).Info("Billing notice sent")
	return nil
}

func compose(ctx context.Context, status profile.Status, billingURL string) (subject, body string, ok bool) {
	lang := i18n.FromContext(ctx)

	switch status {
	case profile.StatusPastDue:
		subject = i18n.Sprintf(lang, i18n.PastDueSubject)
		body = i18n.Sprintf(lang, i18n.PastDueNotice)
	case profile.StatusCanceled:
		subject = i18n.Sprintf(lang, i18n.CanceledSubject)
		body = i18n.Sprintf(lang, i18n.CanceledNotice)
	default:
		return "", "", false
	}

	if billingURL != "" {
		body += "\n\n" + billingURL
	}
	return subject, body, true
}

// NopNotifier drops every notice. It is used when mail is not configured.
type NopNotifier struct{}

// NotifyStatusChange implements billing.Notifier
func (NopNotifier) NotifyStatusChange(context.Context, *profile.Profile, profile.Status) error {
	return nil
}

var (
	_ billing.Notifier = (*SendGridNotifier)(nil)
	_ billing.Notifier = NopNotifier{}
)
