// Package mail delivers transactional emails: account verification,
// password reset and order billing.
package mail

import (
	"context"
	"log"
)

// Template names a Mailgun template.
type Template string

const (
	TemplateEmailVerification Template = "email-verification"
	TemplatePasswordReset     Template = "password-reset"
	TemplateBilling           Template = "billing"
)

// Message is a templated email.
type Message struct {
	To       string            `json:"to"`
	Template Template          `json:"template"`
	Vars     map[string]string `json:"vars"`
}

// Sender delivers a message.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// LogSender only logs messages. Used when no mail provider is configured.
type LogSender struct{}

func (LogSender) Send(_ context.Context, msg Message) error {
	log.Printf("mail (not delivered): template=%s to=%s vars=%v", msg.Template, msg.To, msg.Vars)
	return nil
}
