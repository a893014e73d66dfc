// File: /services/email_service.go
package services

import (
	"context"
	"fmt"
	"html"
	"strings"

	"eventhub-api/config"
	"eventhub-api/models"

	"gopkg.in/gomail.v2"
)

// Dispatcher relays a stored notification outside the application
type Dispatcher interface {
	Name() string
	Dispatch(ctx context.Context, notification models.Notification) error
}

const notificationEmailHTML = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <title>%s</title>
</head>
<body style="font-family: Helvetica, Arial, sans-serif; color: #222; background: #f4f4f7; padding: 24px;">
    <table role="presentation" width="100%%" style="max-width: 560px; margin: 0 auto; background: #fff; border-radius: 8px;">
        <tr><td style="padding: 24px 24px 0;"><h2 style="margin: 0;">%s</h2></td></tr>
        <tr><td style="padding: 16px 24px;">
            <p>Hi %s,</p>
            <p>%s</p>
        </td></tr>
        <tr><td style="padding: 0 24px 24px; color: #888; font-size: 12px;">
            %s &middot; you receive this because you registered for an event.
        </td></tr>
    </table>
</body>
</html>`

// EmailDispatcher mails notifications to their recipients over SMTP
type EmailDispatcher struct {
	config *config.Config
	dialer *gomail.Dialer
}

func NewEmailDispatcher(cfg *config.Config) *EmailDispatcher {
	dialer := gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword)

	return &EmailDispatcher{
		config: cfg,
		dialer: dialer,
	}
}

func (ed *EmailDispatcher) Name() string {
	return "email"
}

// Dispatch sends one notification email. Recipients without an address are skipped.
func (ed *EmailDispatcher) Dispatch(ctx context.Context, notification models.Notification) error {
	if notification.User.Email == "" {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	m := ed.buildMessage(notification)
	if err := ed.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	fmt.Printf("📧 Notification %q sent to %s\n", notification.Title, notification.User.Email)
	return nil
}

func (ed *EmailDispatcher) buildMessage(notification models.Notification) *gomail.Message {
	m := gomail.NewMessage()
	m.SetHeader("From", fmt.Sprintf("%s <%s>", ed.config.FromName, ed.config.FromEmail))
	m.SetHeader("To", notification.User.Email)
	m.SetHeader("Subject", fmt.Sprintf("%s - %s", ed.config.FromName, notification.Title))

	title := html.EscapeString(notification.Title)
	body := strings.ReplaceAll(html.EscapeString(notification.Body), "\n", "<br>")
	htmlBody := fmt.Sprintf(notificationEmailHTML, title, title, html.EscapeString(notification.User.Username), body, html.EscapeString(ed.config.FromName))

	textBody := fmt.Sprintf("Hi %s,\n\n%s\n\n-- \n%s\nYou receive this because you registered for an event.\n",
		notification.User.Username, notification.Body, ed.config.FromName)

	m.SetBody("text/plain", textBody)
	m.AddAlternative("text/html", htmlBody)
	return m
}
