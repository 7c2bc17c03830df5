package otp

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"
	"time"
)

// SMTPSender delivers codes over plain SMTP with optional AUTH.
type SMTPSender struct {
	Addr     string
	From     string
	Username string
	Password string
	TTL      time.Duration
}

func NewSMTPSender(addr, from, username, password string, ttl time.Duration) *SMTPSender {
	return &SMTPSender{Addr: addr, From: from, Username: username, Password: password, TTL: ttl}
}

func (s *SMTPSender) body(code string) string {
	minutes := int(s.TTL.Minutes())
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("Your verification code is %s. It expires in %d minutes.", code, minutes)
}

func (s *SMTPSender) Send(_ context.Context, email, code string) error {
	msg := strings.Join([]string{
		"From: " + s.From,
		"To: " + email,
		"Subject: Your verification code",
		"",
		s.body(code),
		"",
	}, "\r\n")

	var auth smtp.Auth
	if s.Username != "" {
		host := s.Addr
		if i := strings.IndexByte(host, ':'); i >= 0 {
			host = host[:i]
		}
		auth = smtp.PlainAuth("", s.Username, s.Password, host)
	}

	if err := smtp.SendMail(s.Addr, auth, s.From, []string{email}, []byte(msg)); err != nil {
		return fmt.Errorf("smtp send to %s: %w", email, err)
	}
	return nil
}

// LogSender writes the code to the log instead of sending mail. Used in
// development when no SMTP server is configured.
type LogSender struct {
	Logger *slog.Logger
}

func (s *LogSender) Send(_ context.Context, email, code string) error {
	s.Logger.Info("verification code issued", "email", email, "code", code)
	return nil
}
