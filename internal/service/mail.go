package service

import (
	"context"
	"encoding/base64"

	"github.com/crownweb/contact-relay/internal/api/dto/v1/contact"
)

// Sender relays a validated submission as an email to the configured
// recipient. Implementations must place user-controlled free text only in
// the message body, never in a header.
type Sender interface {
	Send(ctx context.Context, sub *contact.Submission) error
}

// Verifier is implemented by senders that can check their credentials
// without dispatching mail. Used by the startup self-test.
type Verifier interface {
	Verify(ctx context.Context) error
}

// phoneOrDefault substitutes the placeholder for an absent phone number.
func phoneOrDefault(phone string) string {
	if phone == "" {
		return "未提供"
	}
	return phone
}

// base64EncodeSubject encodes a subject for the RFC 2047 B-encoding form.
func base64EncodeSubject(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}
