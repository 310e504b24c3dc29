// Copyright 2025 NoamBuilds
// Licensed under the EUPL-1.2

// Package email sends waitlist confirmations and contact form messages over SMTP.
package email

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"strings"

	"codeberg.org/noambuilds/site/internal/config"
	"codeberg.org/noambuilds/site/internal/i18n"
	"codeberg.org/noambuilds/site/internal/templates"
	"github.com/a-h/templ"
	"github.com/wneessen/go-mail"
)

// TokenLength is the number of random bytes in a confirmation token.
const TokenLength = 32

// ContactMessage is a submission of the contact form.
type ContactMessage struct {
	Name    string
	Email   string
	Message string
}

// Service builds and delivers emails.
type Service struct {
	cfg     *config.SMTPConfig
	baseURL string
}

// NewService creates a new email service.
func NewService(cfg *config.SMTPConfig, baseURL string) (*Service, error) {
	if cfg.Host == "" {
		return nil, fmt.Errorf("SMTP host is required")
	}
	if cfg.From == "" {
		return nil, fmt.Errorf("SMTP from address is required")
	}

	return &Service{
		cfg:     cfg,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}, nil
}

// GenerateToken returns a fresh confirmation token and the SHA256 hash to store for it.
func GenerateToken() (string, string, error) {
	bytes := make([]byte, TokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	plaintext := hex.EncodeToString(bytes)
	return plaintext, HashToken(plaintext), nil
}

// HashToken computes the SHA256 hash of a token.
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// ConfirmURL is the link a recipient follows to confirm a signup.
func (s *Service) ConfirmURL(token string) string {
	return s.baseURL + "/confirm?token=" + url.QueryEscape(token)
}

// SendWaitlistConfirmation emails the confirmation link for a waitlist signup.
func (s *Service) SendWaitlistConfirmation(ctx context.Context, to, productName, token string) error {
	msg, err := s.WaitlistConfirmationMessage(ctx, to, productName, token)
	if err != nil {
		return err
	}
	return s.send(ctx, msg)
}

// WaitlistConfirmationMessage builds the confirmation email without sending it.
func (s *Service) WaitlistConfirmationMessage(ctx context.Context, to, productName, token string) (*mail.Msg, error) {
	confirmURL := s.ConfirmURL(token)

	msg, err := s.newMessage(to)
	if err != nil {
		return nil, err
	}

	msg.Subject(i18n.TData(ctx, "email_waitlist_subject", map[string]any{"AppName": productName}))

	html, err := renderString(ctx, templates.WaitlistConfirmationEmail(productName, confirmURL))
	if err != nil {
		return nil, fmt.Errorf("rendering confirmation email: %w", err)
	}
	msg.SetBodyString(mail.TypeTextHTML, html)
	msg.AddAlternativeString(mail.TypeTextPlain, strings.Join([]string{
		i18n.TData(ctx, "email_waitlist_intro", map[string]any{"AppName": productName}),
		i18n.TData(ctx, "email_waitlist_plain", map[string]any{"ConfirmURL": confirmURL}),
		i18n.T(ctx, "email_waitlist_ignore"),
	}, "\n\n"))

	return msg, nil
}

// SendContactMessage forwards a contact form submission to the site owner.
func (s *Service) SendContactMessage(ctx context.Context, to string, contact ContactMessage) error {
	msg, err := s.ContactMessage(ctx, to, contact)
	if err != nil {
		return err
	}
	return s.send(ctx, msg)
}

// ContactMessage builds the contact notification. Replies go to the submitter.
func (s *Service) ContactMessage(ctx context.Context, to string, contact ContactMessage) (*mail.Msg, error) {
	msg, err := s.newMessage(to)
	if err != nil {
		return nil, err
	}

	if err := msg.ReplyTo(contact.Email); err != nil {
		return nil, fmt.Errorf("setting reply-to address: %w", err)
	}
	msg.Subject(i18n.TData(ctx, "email_contact_subject", map[string]any{"Name": contact.Name}))

	html, err := renderString(ctx, templates.ContactEmail(contact.Name, contact.Email, contact.Message))
	if err != nil {
		return nil, fmt.Errorf("rendering contact email: %w", err)
	}
	msg.SetBodyString(mail.TypeTextHTML, html)
	msg.AddAlternativeString(mail.TypeTextPlain,
		fmt.Sprintf("%s <%s>\n\n%s", contact.Name, contact.Email, contact.Message))

	return msg, nil
}

func (s *Service) newMessage(to string) (*mail.Msg, error) {
	msg := mail.NewMsg()

	if s.cfg.FromName != "" {
		if err := msg.FromFormat(s.cfg.FromName, s.cfg.From); err != nil {
			return nil, fmt.Errorf("setting from address: %w", err)
		}
	} else {
		if err := msg.From(s.cfg.From); err != nil {
			return nil, fmt.Errorf("setting from address: %w", err)
		}
	}

	if err := msg.To(to); err != nil {
		return nil, fmt.Errorf("setting to address: %w", err)
	}

	return msg, nil
}

// send delivers a message via SMTP using go-mail.
func (s *Service) send(ctx context.Context, msg *mail.Msg) error {
	opts := []mail.Option{
		mail.WithPort(s.cfg.Port),
	}

	if s.cfg.TLS {
		opts = append(opts, mail.WithTLSPolicy(mail.TLSMandatory))
		// implicit TLS on 465, STARTTLS elsewhere
		if s.cfg.Port == 465 {
			opts = append(opts, mail.WithSSL())
		}
	} else {
		opts = append(opts, mail.WithTLSPolicy(mail.NoTLS))
	}

	if s.cfg.Username != "" && s.cfg.Password != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(s.cfg.Username),
			mail.WithPassword(s.cfg.Password),
		)
	}

	client, err := mail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("creating mail client: %w", err)
	}

	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("sending email: %w", err)
	}

	return nil
}

func renderString(ctx context.Context, component templ.Component) (string, error) {
	buf := templ.GetBuffer()
	defer templ.ReleaseBuffer(buf)

	if err := component.Render(ctx, buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
