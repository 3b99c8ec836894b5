package mail

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	gomail "github.com/wneessen/go-mail"
)

// Sender dispatches the two account emails. Handlers depend on this
// interface so tests can swap in a recorder.
type Sender interface {
	SendVerification(ctx context.Context, to, name, link string) error
	SendPasswordReset(ctx context.Context, to, name, link string) error
}

type SMTPMailer struct {
	client *gomail.Client
	from   string
}

func NewSMTPMailer(host string, port int, username, password, from string) (*SMTPMailer, error) {
	client, err := gomail.NewClient(host,
		gomail.WithPort(port),
		gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
		gomail.WithUsername(username),
		gomail.WithPassword(password),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail client: %w", err)
	}
	return &SMTPMailer{client: client, from: from}, nil
}

func (m *SMTPMailer) SendVerification(ctx context.Context, to, name, link string) error {
	body := fmt.Sprintf(
		"Hi %s,\n\nWelcome to LessonHub! Please verify your email by opening this link:\n\n%s\n\nThe link is valid for 24 hours.\n",
		name, link,
	)
	return m.send(ctx, to, "Verify your email", body)
}

func (m *SMTPMailer) SendPasswordReset(ctx context.Context, to, name, link string) error {
	body := fmt.Sprintf(
		"Hi %s,\n\nA password reset was requested for your account. Open this link to choose a new password:\n\n%s\n\nThe link is valid for 24 hours. If you did not request this, you can ignore this email.\n",
		name, link,
	)
	return m.send(ctx, to, "Reset your password", body)
}

func (m *SMTPMailer) send(ctx context.Context, to, subject, body string) error {
	msg := gomail.NewMsg()
	if err := msg.From(m.from); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(gomail.TypeTextPlain, body)

	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send mail: %w", err)
	}
	return nil
}

// LogMailer is used when no SMTP host is configured. It writes the links to
// the log so local signup flows stay usable.
type LogMailer struct{}

func (LogMailer) SendVerification(_ context.Context, to, _, link string) error {
	logrus.WithFields(logrus.Fields{"to": to, "link": link}).Info("verification mail (not sent, SMTP unconfigured)")
	return nil
}

func (LogMailer) SendPasswordReset(_ context.Context, to, _, link string) error {
	logrus.WithFields(logrus.Fields{"to": to, "link": link}).Info("password reset mail (not sent, SMTP unconfigured)")
	return nil
}
