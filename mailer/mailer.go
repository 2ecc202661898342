package mailer

import (
	"fmt"
	"os"
	"strconv"

	gomail "gopkg.in/gomail.v2"
)

// Mailer delivers plain-text notifications. Transport details stay behind
// this interface so handlers and tests never touch SMTP directly.
type Mailer interface {
	Send(to, subject, body string) error
}

type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
}

// NewSMTPMailer reads MAIL_HOST, MAIL_PORT, MAIL_USERNAME, MAIL_PASSWORD
// and MAIL_FROM.
func NewSMTPMailer() (*SMTPMailer, error) {
	host := os.Getenv("MAIL_HOST")
	port, _ := strconv.Atoi(os.Getenv("MAIL_PORT"))
	user := os.Getenv("MAIL_USERNAME")
	pass := os.Getenv("MAIL_PASSWORD")
	from := os.Getenv("MAIL_FROM")
	if host == "" || port == 0 || from == "" {
		return nil, fmt.Errorf("mail configuration missing")
	}
	return &SMTPMailer{dialer: gomail.NewDialer(host, port, user, pass), from: from}, nil
}

func (m *SMTPMailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)
	return m.dialer.DialAndSend(msg)
}

// OTPBody is used for both registration verification and password reset.
func OTPBody(otp string) string {
	return fmt.Sprintf("Your verification code is %s. It is valid for 10 minutes.", otp)
}
