package service

import (
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/crownweb/contact-relay/internal/api/dto/v1/contact"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var smtpServerInfo = smtp.ServerInfo{Name: "smtp.gmail.com", TLS: true}

func testSMTPSender() *SMTPSender {
	return &SMTPSender{
		addr:      "smtp.gmail.com:587",
		mailUser:  "site@example.com",
		recipient: "owner@example.com",
		subject:   "新域名购买咨询",
		location:  time.UTC,
	}
}

func TestBuildMessageHTML(t *testing.T) {
	s := testSMTPSender()
	now := time.Date(2025, 3, 14, 9, 30, 0, 0, time.UTC)

	sub := contact.Submission{
		Name:    "Ana Li",
		Email:   "user@example.com",
		Message: "Interested in the domain.",
	}

	msg := string(s.buildMessage(&sub, now))

	assert.Contains(t, msg, "To: owner@example.com")
	assert.Contains(t, msg, "Content-Type: text/html; charset=UTF-8")
	assert.Contains(t, msg, "<b>姓名:</b> Ana Li")
	assert.Contains(t, msg, "<b>电话:</b> 未提供")
	assert.Contains(t, msg, "<b>发送时间:</b> 2025/03/14 09:30:00")
}

func TestBuildMessageEscapesHTML(t *testing.T) {
	s := testSMTPSender()

	sub := contact.Submission{
		Name:    "Ana Li",
		Email:   "user@example.com",
		Message: "<script>alert(1)</script>",
	}

	msg := string(s.buildMessage(&sub, time.Now()))
	assert.NotContains(t, msg, "<script>")
	assert.Contains(t, msg, "&lt;script&gt;")
}

func TestXOAuth2Auth(t *testing.T) {
	auth := &xoauth2Auth{user: "site@example.com", token: "ya29.token"}

	proto, resp, err := auth.Start(&smtpServerInfo)
	require.NoError(t, err)
	assert.Equal(t, "XOAUTH2", proto)

	payload := string(resp)
	assert.True(t, strings.HasPrefix(payload, "user=site@example.com\x01"))
	assert.Contains(t, payload, "auth=Bearer ya29.token\x01\x01")
}

func TestXOAuth2AuthRequiresTLS(t *testing.T) {
	auth := &xoauth2Auth{user: "site@example.com", token: "ya29.token"}

	info := smtpServerInfo
	info.TLS = false
	_, _, err := auth.Start(&info)
	assert.Error(t, err)
}
