// Copyright (c) 2026 BookReview. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package mailer sends transactional e-mail over SMTP.

Only one message exists today: the welcome mail sent after signup. Delivery is
disabled unless EMAIL_ENABLED is set, in which case [Mailer.SendWelcome] logs
and returns without contacting any server.
*/
package mailer

import (
	"context"
	"fmt"
	htmltemplate "html/template"
	"log/slog"
	texttemplate "text/template"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/taibuivan/bookreview/internal/platform/ctxutil"
)

const sendTimeout = 10 * time.Second

// WelcomeSubject is the subject line of the signup mail.
const WelcomeSubject = "Welcome to Book Review!"

var (
	welcomeText = texttemplate.Must(texttemplate.New("welcome_text").Parse(
		"Welcome, {{.Name}}!\nYour account ({{.Email}}) has been created successfully.\nHappy reading and reviewing!\n"))

	welcomeHTML = htmltemplate.Must(htmltemplate.New("welcome_html").Parse(
		"<h1>Welcome, {{.Name}}!</h1><p>Your account ({{.Email}}) has been created successfully.</p><p>Happy reading and reviewing!</p>"))
)

// Options configures SMTP delivery.
type Options struct {
	Enabled  bool
	Sender   string
	Host     string
	Port     int
	Username string
	Password string
}

// Mailer delivers messages through a single SMTP relay.
type Mailer struct {
	sender string
	client *mail.Client
}

// New builds a mailer. A disabled or host-less configuration yields a mailer
// that never sends.
func New(options Options) (*Mailer, error) {
	if !options.Enabled || options.Host == "" {
		return &Mailer{sender: options.Sender}, nil
	}

	clientOptions := []mail.Option{
		mail.WithPort(options.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
		mail.WithTimeout(sendTimeout),
	}
	if options.Username != "" {
		clientOptions = append(clientOptions,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(options.Username),
			mail.WithPassword(options.Password),
		)
	}

	client, err := mail.NewClient(options.Host, clientOptions...)
	if err != nil {
		return nil, fmt.Errorf("mailer: invalid SMTP settings: %w", err)
	}

	return &Mailer{sender: options.Sender, client: client}, nil
}

// Enabled reports whether messages are actually delivered.
func (m *Mailer) Enabled() bool {
	return m.client != nil
}

// SendWelcome greets a new account holder.
func (m *Mailer) SendWelcome(ctx context.Context, to, name string) error {
	logger := ctxutil.GetLogger(ctx)

	if !m.Enabled() {
		logger.DebugContext(ctx, "email_disabled_skipping_welcome")
		return nil
	}

	message, err := NewWelcomeMessage(m.sender, to, name)
	if err != nil {
		return err
	}

	// The signup response must not wait on a slow relay for longer than this.
	sendCtx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	if err := m.client.DialAndSendWithContext(sendCtx, message); err != nil {
		return fmt.Errorf("mailer: send welcome: %w", err)
	}

	logger.InfoContext(ctx, "welcome_email_sent", slog.String("via", "smtp"))
	return nil
}

// NewWelcomeMessage composes the multipart welcome mail. The name is escaped
// in the HTML part.
func NewWelcomeMessage(sender, to, name string) (*mail.Msg, error) {
	message := mail.NewMsg()

	if err := message.From(sender); err != nil {
		return nil, fmt.Errorf("mailer: invalid sender: %w", err)
	}
	if err := message.To(to); err != nil {
		return nil, fmt.Errorf("mailer: invalid recipient: %w", err)
	}
	message.Subject(WelcomeSubject)

	data := struct{ Name, Email string }{Name: name, Email: to}

	if err := message.SetBodyTextTemplate(welcomeText, data); err != nil {
		return nil, fmt.Errorf("mailer: render text body: %w", err)
	}
	if err := message.AddAlternativeHTMLTemplate(welcomeHTML, data); err != nil {
		return nil, fmt.Errorf("mailer: render html body: %w", err)
	}

	return message, nil
}
