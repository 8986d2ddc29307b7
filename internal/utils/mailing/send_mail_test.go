package mailing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewMailer_DisabledWithoutSMTP(t *testing.T) {
	assert.Nil(t, NewMailer(MailConfig{SMTPPort: "587", SMTPEmail: "noreply@example.com"}))
	assert.NotNil(t, NewMailer(MailConfig{SMTPHost: "smtp.example.com", SMTPPort: "587", SMTPEmail: "noreply@example.com"}))
}

func TestSendMail_RejectsBadPort(t *testing.T) {
	m := NewMailer(MailConfig{SMTPHost: "smtp.example.com", SMTPPort: "smtp", SMTPEmail: "noreply@example.com"})
	assert.Error(t, m.SendMail("to@example.com", "subject", "<p>body</p>"))
}
