package service

import (
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"html"
	"net"
	"net/smtp"
	"time"

	"github.com/crownweb/contact-relay/internal/api/dto/v1/contact"
	"github.com/crownweb/contact-relay/internal/config"
	"github.com/crownweb/contact-relay/internal/logging"
)

// SMTPSender dispatches submissions over an SMTP connection authenticated
// with OAuth2 (XOAUTH2), sending an HTML-formatted message.
type SMTPSender struct {
	creds     *Credentials
	addr      string
	mailUser  string
	recipient string
	subject   string
	location  *time.Location
}

// NewSMTPSender creates the SMTP dispatch strategy.
func NewSMTPSender(cfg *config.Config, creds *Credentials) *SMTPSender {
	loc, err := time.LoadLocation(cfg.MailTimezone)
	if err != nil {
		logging.GetLogger().Warn("Unknown timezone %q, timestamps will use UTC", cfg.MailTimezone)
		loc = time.UTC
	}

	return &SMTPSender{
		creds:     creds,
		addr:      cfg.SMTPAddr,
		mailUser:  cfg.MailUser,
		recipient: cfg.ReceiverEmail,
		subject:   cfg.MailSubject,
		location:  loc,
	}
}

// Send relays the submission to the configured recipient.
func (s *SMTPSender) Send(ctx context.Context, sub *contact.Submission) error {
	token, err := s.creds.Token(ctx)
	if err != nil {
		return err
	}

	msg := s.buildMessage(sub, time.Now())
	auth := &xoauth2Auth{user: s.mailUser, token: token.AccessToken}

	if err := s.sendMail(auth, msg); err != nil {
		return fmt.Errorf("smtp send failed: %w", err)
	}

	logging.GetLogger().Info("Email sent successfully via SMTP")
	return nil
}

// Verify exchanges a token without opening a transport session.
func (s *SMTPSender) Verify(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, networkTimeout)
	defer cancel()

	if _, err := s.creds.Token(ctx); err != nil {
		return err
	}
	return nil
}

func (s *SMTPSender) sendMail(auth smtp.Auth, msg []byte) error {
	host, _, err := net.SplitHostPort(s.addr)
	if err != nil {
		return fmt.Errorf("invalid smtp address %q: %w", s.addr, err)
	}

	conn, err := net.DialTimeout("tcp", s.addr, networkTimeout)
	if err != nil {
		return err
	}
	// Bound the whole SMTP conversation, not just the dial
	if err := conn.SetDeadline(time.Now().Add(3 * networkTimeout)); err != nil {
		conn.Close()
		return err
	}

	client, err := smtp.NewClient(conn, host)
	if err != nil {
		conn.Close()
		return err
	}
	defer client.Close()

	if ok, _ := client.Extension("STARTTLS"); ok {
		if err := client.StartTLS(&tls.Config{ServerName: host}); err != nil {
			return err
		}
	}

	if err := client.Auth(auth); err != nil {
		return err
	}
	if err := client.Mail(s.mailUser); err != nil {
		return err
	}
	if err := client.Rcpt(s.recipient); err != nil {
		return err
	}

	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}

	return client.Quit()
}

// buildMessage assembles the HTML message. Field values are HTML-escaped and
// user free text is placed in the body only, never in a header.
func (s *SMTPSender) buildMessage(sub *contact.Submission, now time.Time) []byte {
	body := fmt.Sprintf(
		"<h3>%s</h3>"+
			"<p><b>姓名:</b> %s</p>"+
			"<p><b>电话:</b> %s</p>"+
			"<p><b>邮箱:</b> %s</p>"+
			"<p><b>留言:</b> %s</p>"+
			"<p><b>发送时间:</b> %s</p>",
		html.EscapeString(s.subject),
		html.EscapeString(sub.Name),
		html.EscapeString(phoneOrDefault(sub.Phone)),
		html.EscapeString(sub.Email),
		html.EscapeString(sub.Message),
		now.In(s.location).Format("2006/01/02 15:04:05"),
	)

	msg := fmt.Sprintf(
		"From: %q <%s>\r\n"+
			"To: %s\r\n"+
			"Subject: =?UTF-8?B?%s?=\r\n"+
			"MIME-Version: 1.0\r\n"+
			"Content-Type: text/html; charset=UTF-8\r\n"+
			"\r\n"+
			"%s",
		sub.Name, s.mailUser,
		s.recipient,
		base64EncodeSubject(s.subject),
		body,
	)

	return []byte(msg)
}

// xoauth2Auth implements the XOAUTH2 SASL mechanism used by Gmail SMTP.
type xoauth2Auth struct {
	user  string
	token string
}

func (a *xoauth2Auth) Start(server *smtp.ServerInfo) (string, []byte, error) {
	if !server.TLS {
		return "", nil, errors.New("xoauth2 requires a TLS connection")
	}
	resp := []byte("user=" + a.user + "\x01auth=Bearer " + a.token + "\x01\x01")
	return "XOAUTH2", resp, nil
}

func (a *xoauth2Auth) Next(fromServer []byte, more bool) ([]byte, error) {
	if more {
		// Server sent an error payload; an empty response asks it to finish
		return []byte{}, nil
	}
	return nil, nil
}
