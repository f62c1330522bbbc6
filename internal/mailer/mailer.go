// Package mailer sends booking confirmation emails over SMTP. Sending is
// best-effort: issuance never fails because mail could not be delivered.
package mailer

import (
	"fmt"
	"net/smtp"
)

// Mailer sends plain-text email through a configured SMTP server.
type Mailer struct {
	host   string
	port   string
	user   string
	pass   string
	sender string
}

// New creates a Mailer. Returns nil if the SMTP host is not configured;
// callers treat a nil Mailer as "mail disabled".
func New(host, port, user, pass, sender string) *Mailer {
	if host == "" || user == "" || pass == "" {
		return nil
	}
	return &Mailer{host: host, port: port, user: user, pass: pass, sender: sender}
}

// SendBookingConfirmation mails the issued passkey and schedule to the user.
func (m *Mailer) SendBookingConfirmation(recipient, passkey, jobRole, company, date, timeOfDay string) error {
	if recipient == "" {
		return fmt.Errorf("recipient email address cannot be empty")
	}

	subject := "Your interview session is booked"
	body := fmt.Sprintf(
		"Your real-time interview assistance session is confirmed.\n\n"+
			"Passkey: %s\n"+
			"Role: %s at %s\n"+
			"Scheduled: %s at %s\n\n"+
			"Enter the passkey in the extension when your session starts. "+
			"The code is valid for a single session.\n",
		passkey, jobRole, company, date, timeOfDay)

	message := []byte(fmt.Sprintf("To: %s\r\n"+
		"From: %s\r\n"+
		"Subject: %s\r\n"+
		"Content-Type: text/plain; charset=UTF-8\r\n"+
		"\r\n"+
		"%s\r\n", recipient, m.sender, subject, body))

	auth := smtp.PlainAuth("", m.user, m.pass, m.host)
	addr := m.host + ":" + m.port

	if err := smtp.SendMail(addr, auth, m.sender, []string{recipient}, message); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
