package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"pulse-api/config"
)

func newTestMailer() *Mailer {
	return NewMailer(&config.Config{SMTPHost: "127.0.0.1", SMTPPort: 1})
}

func TestVerifyCode(t *testing.T) {
	m := newTestMailer()
	m.verificationCodes["alice@example.com"] = verificationCode{
		Code:      "1234",
		ExpiresAt: time.Now().Add(10 * time.Minute),
	}

	assert.False(t, m.VerifyCode("alice@example.com", "9999"))
	assert.False(t, m.VerifyCode("ghost@example.com", "1234"))
	assert.True(t, m.VerifyCode("alice@example.com", "1234"))

	// A code works once.
	assert.False(t, m.VerifyCode("alice@example.com", "1234"))
}

func TestVerifyCodeExpired(t *testing.T) {
	m := newTestMailer()
	m.verificationCodes["alice@example.com"] = verificationCode{
		Code:      "1234",
		ExpiresAt: time.Now().Add(-time.Minute),
	}

	assert.False(t, m.VerifyCode("alice@example.com", "1234"))
}

func TestGenerateCode(t *testing.T) {
	m := newTestMailer()

	for i := 0; i < 100; i++ {
		code := m.generateCode()
		assert.Len(t, code, 4)
		for _, r := range code {
			assert.True(t, r >= '0' && r <= '9')
		}
	}
}
