package notifications

import (
	"context"
	"crypto/tls"
	"fmt"
	"net/smtp"
	"strconv"
	"strings"
	"sync"
	"time"

	"zombieland/internal/shared/config"
	"zombieland/pkg/logger"
)

// EmailService delivers rendered emails
type EmailService interface {
	Send(ctx context.Context, email *Email) error
}

// NewEmailService picks SMTP when a host is configured and a log-only sender otherwise
func NewEmailService(cfg config.EmailConfig) EmailService {
	if cfg.Host == "" {
		logger.GetDefault().Warn("SMTP_HOST not set, emails will only be logged")
		return NewMockEmailService()
	}
	return NewSMTPEmailService(cfg)
}

// SMTPEmailService sends mail over STARTTLS
type SMTPEmailService struct {
	config config.EmailConfig
}

func NewSMTPEmailService(cfg config.EmailConfig) *SMTPEmailService {
	return &SMTPEmailService{config: cfg}
}

func (s *SMTPEmailService) Send(ctx context.Context, email *Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var auth smtp.Auth
	if s.config.Username != "" {
		auth = smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.Host)
	}

	addr := s.config.Host + ":" + strconv.Itoa(s.config.Port)
	return s.sendWithSTARTTLS(addr, auth, email.To, s.buildMessage(email))
}

func (s *SMTPEmailService) sendWithSTARTTLS(addr string, auth smtp.Auth, to string, message []byte) error {
	client, err := smtp.Dial(addr)
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer client.Quit()

	if err = client.StartTLS(&tls.Config{ServerName: s.config.Host}); err != nil {
		return fmt.Errorf("failed to start TLS: %w", err)
	}

	if auth != nil {
		if err = client.Auth(auth); err != nil {
			return fmt.Errorf("failed to authenticate: %w", err)
		}
	}

	if err = client.Mail(s.config.FromEmail); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	if err = client.Rcpt(to); err != nil {
		return fmt.Errorf("failed to set recipient: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err = w.Write(message); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	return w.Close()
}

// buildMessage creates a multipart/alternative body with text and HTML parts
func (s *SMTPEmailService) buildMessage(email *Email) []byte {
	boundary := "boundary_" + strconv.FormatInt(time.Now().UnixNano(), 10)

	var b strings.Builder
	fmt.Fprintf(&b, "From: ZombieLand <%s>\r\n", s.config.FromEmail)
	fmt.Fprintf(&b, "To: %s\r\n", email.To)
	fmt.Fprintf(&b, "Subject: %s\r\n", email.Subject)
	b.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&b, "Date: %s\r\n", time.Now().Format(time.RFC1123Z))
	fmt.Fprintf(&b, "Content-Type: multipart/alternative; boundary=%s\r\n\r\n", boundary)

	if email.TextBody != "" {
		fmt.Fprintf(&b, "--%s\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s\r\n", boundary, email.TextBody)
	}
	if email.HTMLBody != "" {
		fmt.Fprintf(&b, "--%s\r\nContent-Type: text/html; charset=UTF-8\r\n\r\n%s\r\n", boundary, email.HTMLBody)
	}
	fmt.Fprintf(&b, "--%s--\r\n", boundary)

	return []byte(b.String())
}

// MockEmailService logs and records emails instead of sending them
type MockEmailService struct {
	mu   sync.Mutex
	sent []*Email
}

func NewMockEmailService() *MockEmailService {
	return &MockEmailService{}
}

func (s *MockEmailService) Send(ctx context.Context, email *Email) error {
	s.mu.Lock()
	s.sent = append(s.sent, email)
	s.mu.Unlock()

	logger.GetDefault().InfoContext(ctx, "email (mock)", "to", email.To, "subject", email.Subject)
	return nil
}

// Sent returns a copy of every email handed to the mock
func (s *MockEmailService) Sent() []*Email {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Email, len(s.sent))
	copy(out, s.sent)
	return out
}
