package services

import (
    "fmt"

    "github.com/sendgrid/sendgrid-go"
    sgmail "github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridMailer sends login codes through the SendGrid v3 API.
type SendGridMailer struct {
    client  *sendgrid.Client
    from    *sgmail.Email
    appName string
}

var _ Mailer = (*SendGridMailer)(nil)

func NewSendGridMailer(apiKey, appName, fromEmail string) *SendGridMailer {
    return &SendGridMailer{
        client:  sendgrid.NewSendClient(apiKey),
        from:    sgmail.NewEmail(appName, fromEmail),
        appName: appName,
    }
}

func (m *SendGridMailer) SendLoginCode(toEmail, toName, code string) error {
    subject := fmt.Sprintf("[%s] Your login code", m.appName)
    plain := fmt.Sprintf("Hi %s,\n\nYour one-time login code is %s.\nIt can be used once and expires shortly.\n", toName, code)
    html := fmt.Sprintf("<p>Hi %s,</p><p>Your one-time login code is <strong>%s</strong>.<br>It can be used once and expires shortly.</p>", toName, code)

    msg := sgmail.NewSingleEmail(m.from, subject, sgmail.NewEmail(toName, toEmail), plain, html)
    resp, err := m.client.Send(msg)
    if err != nil {
        return err
    }
    if resp.StatusCode >= 300 {
        return fmt.Errorf("sendgrid: unexpected status %d", resp.StatusCode)
    }
    return nil
}
