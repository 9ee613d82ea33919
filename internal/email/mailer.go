// Package email sends transactional mail, currently only feedback replies.
package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"log/slog"
	"net"
	"net/smtp"
	"strings"
	"time"
)

// Mailer sends a single HTML email. Delivery failures are the caller's
// business to log; feedback replies treat them as non-fatal.
type Mailer interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// Config holds SMTP connection settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	UseTLS   bool
}

// SMTPMailer delivers mail over a direct SMTP connection.
type SMTPMailer struct {
	config      Config
	dialTimeout time.Duration
	logger      *slog.Logger
}

// NewSMTPMailer creates a mailer for the given SMTP settings.
func NewSMTPMailer(config Config, logger *slog.Logger) *SMTPMailer {
	return &SMTPMailer{
		config:      config,
		dialTimeout: 30 * time.Second,
		logger:      logger,
	}
}

// Send delivers a single HTML email to one recipient.
func (m *SMTPMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	msg := m.buildMessage(to, subject, htmlBody)

	addr := fmt.Sprintf("%s:%d", m.config.Host, m.config.Port)
	dialer := &net.Dialer{Timeout: m.dialTimeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("connect to SMTP server: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, m.config.Host)
	if err != nil {
		return fmt.Errorf("create SMTP client: %w", err)
	}
	defer client.Close()

	if m.config.UseTLS {
		tlsConfig := &tls.Config{
			ServerName: m.config.Host,
			MinVersion: tls.VersionTLS12,
		}
		if err := client.StartTLS(tlsConfig); err != nil {
			return fmt.Errorf("start TLS: %w", err)
		}
	}

	if m.config.Username != "" && m.config.Password != "" {
		auth := smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("SMTP authentication failed: %w", err)
		}
	}

	if err := client.Mail(m.config.From); err != nil {
		return fmt.Errorf("set sender: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("set recipient: %w", err)
	}

	writer, err := client.Data()
	if err != nil {
		return fmt.Errorf("start message: %w", err)
	}
	if _, err := writer.Write([]byte(msg)); err != nil {
		return fmt.Errorf("write message: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close message: %w", err)
	}

	// A failed QUIT after DATA is accepted means the message was sent.
	if err := client.Quit(); err != nil {
		m.logger.Debug("SMTP quit failed after successful send", "error", err)
	}

	return nil
}

func (m *SMTPMailer) buildMessage(to, subject, htmlBody string) string {
	fromName := m.config.FromName
	if fromName == "" {
		fromName = "AnimeX"
	}

	var msg strings.Builder
	msg.WriteString(fmt.Sprintf("From: %s <%s>\r\n", fromName, m.config.From))
	msg.WriteString(fmt.Sprintf("To: %s\r\n", to))
	msg.WriteString(fmt.Sprintf("Subject: %s\r\n", subject))
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)
	return msg.String()
}

// NoopMailer discards mail. Used when SMTP is not configured so that
// feedback replies still record the reply text without attempting delivery.
type NoopMailer struct{}

func (NoopMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	return nil
}
