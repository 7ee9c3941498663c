package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/crownweb/contact-relay/internal/api/dto/v1/contact"
	"github.com/crownweb/contact-relay/internal/config"
	"github.com/crownweb/contact-relay/internal/logging"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GmailSender dispatches submissions through the Gmail message-send API as a
// base64url-encoded raw RFC-822 message.
type GmailSender struct {
	creds     *Credentials
	mailUser  string
	recipient string
	subject   string
	location  *time.Location
}

// NewGmailSender creates the Gmail API dispatch strategy.
func NewGmailSender(cfg *config.Config, creds *Credentials) *GmailSender {
	loc, err := time.LoadLocation(cfg.MailTimezone)
	if err != nil {
		logging.GetLogger().Warn("Unknown timezone %q, timestamps will use UTC", cfg.MailTimezone)
		loc = time.UTC
	}

	return &GmailSender{
		creds:     creds,
		mailUser:  cfg.MailUser,
		recipient: cfg.ReceiverEmail,
		subject:   cfg.MailSubject,
		location:  loc,
	}
}

// Send relays the submission to the configured recipient.
func (s *GmailSender) Send(ctx context.Context, sub *contact.Submission) error {
	ctx, cancel := context.WithTimeout(ctx, networkTimeout)
	defer cancel()

	token, err := s.creds.Token(ctx)
	if err != nil {
		return err
	}

	svc, err := gmail.NewService(ctx, option.WithTokenSource(oauth2.StaticTokenSource(token)))
	if err != nil {
		return fmt.Errorf("failed to create gmail service: %w", err)
	}

	raw := s.buildRawMessage(sub, time.Now())
	result, err := svc.Users.Messages.Send("me", &gmail.Message{Raw: raw}).Context(ctx).Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) {
			return fmt.Errorf("gmail send failed (status %d): %w", apiErr.Code, err)
		}
		return fmt.Errorf("gmail send failed: %w", err)
	}

	logging.GetLogger().Info("Email sent successfully: %s", result.Id)
	return nil
}

// Verify exchanges a token and fetches the account profile without sending
// mail. Failures here almost always mean the refresh token needs renewing.
func (s *GmailSender) Verify(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, networkTimeout)
	defer cancel()

	token, err := s.creds.Token(ctx)
	if err != nil {
		return err
	}

	svc, err := gmail.NewService(ctx, option.WithTokenSource(oauth2.StaticTokenSource(token)))
	if err != nil {
		return fmt.Errorf("failed to create gmail service: %w", err)
	}

	profile, err := svc.Users.GetProfile("me").Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("gmail profile check failed: %w", err)
	}

	logging.GetLogger().Info("Gmail API test successful. Connected as: %s", profile.EmailAddress)
	return nil
}

// buildRawMessage assembles the RFC-822 message and base64url-encodes it for
// the Gmail API. The subject is B-encoded and the body is base64 so UTF-8
// content survives every hop. User free text goes into the body only.
func (s *GmailSender) buildRawMessage(sub *contact.Submission, now time.Time) string {
	body := fmt.Sprintf(
		"\n姓名: %s\n电话: %s\n邮箱: %s\n留言: %s\n发送时间: %s\n",
		sub.Name,
		phoneOrDefault(sub.Phone),
		sub.Email,
		sub.Message,
		now.In(s.location).Format("2006/01/02 15:04:05"),
	)

	encodedSubject := "=?UTF-8?B?" + base64EncodeSubject(s.subject) + "?="

	message := fmt.Sprintf(
		"From: %q <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: %s\r\n"+
			"Content-Type: text/plain; charset=UTF-8\r\n"+
			"Content-Transfer-Encoding: base64\r\n"+
			"\r\n"+
			"%s",
		sub.Name, s.mailUser,
		s.recipient,
		encodedSubject,
		base64.StdEncoding.EncodeToString([]byte(body)),
	)

	return base64.RawURLEncoding.EncodeToString([]byte(message))
}
