package services

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"sync"
	"time"

	"gopkg.in/gomail.v2"

	"pulse-api/config"
)

// Mailer sends email verification codes over SMTP and remembers pending
// codes in memory until they expire or get used.
type Mailer struct {
	config *config.Config
	dialer *gomail.Dialer

	verificationCodes map[string]verificationCode
	mutex             sync.RWMutex
}

type verificationCode struct {
	Code      string
	ExpiresAt time.Time
	Used      bool
}

func NewMailer(cfg *config.Config) *Mailer {
	m := &Mailer{
		config:            cfg,
		dialer:            gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword),
		verificationCodes: make(map[string]verificationCode),
	}

	go m.cleanupExpiredCodes()

	return m
}

// SendVerificationEmail mails a 4-digit code to the address and returns the
// code. A still-valid unused code is reused instead of generating a new one.
func (m *Mailer) SendVerificationEmail(email, name string) (string, error) {
	m.mutex.RLock()
	existing, exists := m.verificationCodes[email]
	m.mutex.RUnlock()

	var code string
	if exists && !existing.Used && time.Now().Before(existing.ExpiresAt) {
		code = existing.Code
	} else {
		code = m.generateCode()

		m.mutex.Lock()
		m.verificationCodes[email] = verificationCode{
			Code:      code,
			ExpiresAt: time.Now().Add(10 * time.Minute),
		}
		m.mutex.Unlock()
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", msg.FormatAddress(m.config.FromEmail, m.config.FromName))
	msg.SetHeader("To", email)
	msg.SetHeader("Subject", "Your verification code")
	msg.SetBody("text/plain", fmt.Sprintf("Hi %s,\n\nYour verification code is: %s\n\nIt expires in 10 minutes.", name, code))

	if err := m.dialer.DialAndSend(msg); err != nil {
		return "", fmt.Errorf("failed to send verification email: %w", err)
	}

	return code, nil
}

// VerifyCode checks the code for the address and marks it used on success.
func (m *Mailer) VerifyCode(email, code string) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	stored, exists := m.verificationCodes[email]
	if !exists || stored.Used || time.Now().After(stored.ExpiresAt) || stored.Code != code {
		return false
	}

	stored.Used = true
	m.verificationCodes[email] = stored
	return true
}

func (m *Mailer) generateCode() string {
	const digits = "0123456789"
	code := make([]byte, 4)

	for i := range code {
		num, _ := rand.Int(rand.Reader, big.NewInt(int64(len(digits))))
		code[i] = digits[num.Int64()]
	}

	return string(code)
}

func (m *Mailer) cleanupExpiredCodes() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		now := time.Now()
		m.mutex.Lock()
		for email, code := range m.verificationCodes {
			if code.Used || now.After(code.ExpiresAt) {
				delete(m.verificationCodes, email)
			}
		}
		m.mutex.Unlock()
	}
}
