// Package email sends notification mail over SMTP.
package email

import (
	"gopkg.in/mail.v2"
)

// Client sends HTML or plain-text messages through a single SMTP relay.
type Client struct {
	smtpHost string
	smtpPort int
	username string
	password string
	from     string
}

// NewClient creates a new SMTP client.
func NewClient(smtpHost string, smtpPort int, username, password, from string) *Client {
	return &Client{
		smtpHost: smtpHost,
		smtpPort: smtpPort,
		username: username,
		password: password,
		from:     from,
	}
}

// Send delivers one message. contentType is "text/html" or "text/plain".
func (c *Client) Send(to, subject, contentType, body string) error {
	message := c.NewMessage(to, subject, contentType, body)

	dialer := mail.NewDialer(c.smtpHost, c.smtpPort, c.username, c.password)

	return dialer.DialAndSend(message)
}

// NewMessage builds the message Send would deliver.
func (c *Client) NewMessage(to, subject, contentType, body string) *mail.Message {
	message := mail.NewMessage()

	message.SetHeader("From", c.from)
	message.SetHeader("To", to)
	message.SetHeader("Subject", subject)

	if contentType == "" {
		contentType = "text/plain"
	}
	message.SetBody(contentType, body)

	return message
}
