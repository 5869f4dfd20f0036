package services

import "log"

// Mailer delivers one-time login codes. Delivery failures are reported to
// the caller; nothing here retries.
type Mailer interface {
    SendLoginCode(toEmail, toName, code string) error
}

// ConsoleMailer prints the code to the server log. Development fallback
// when no SendGrid key is configured.
type ConsoleMailer struct {
    AppName string
}

var _ Mailer = (*ConsoleMailer)(nil)

func (m *ConsoleMailer) SendLoginCode(toEmail, toName, code string) error {
    log.Printf("[%s] login code for %s <%s>: %s", m.AppName, toName, toEmail, code)
    return nil
}
