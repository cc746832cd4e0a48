package mail

import (
	"context"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
)

const defaultMailgunURL = "https://api.mailgun.net"

// Mailgun sends messages through the Mailgun HTTP API.
type Mailgun struct {
	apiKey  string
	domain  string
	from    string
	subject string
	baseURL string
	timeout time.Duration
}

// NewMailgun creates a Mailgun sender. baseURL may be empty.
func NewMailgun(apiKey, domain, from, baseURL string) *Mailgun {
	if baseURL == "" {
		baseURL = defaultMailgunURL
	}
	return &Mailgun{
		apiKey:  apiKey,
		domain:  domain,
		from:    from,
		subject: "Eats",
		baseURL: baseURL,
		timeout: 10 * time.Second,
	}
}

// Send posts msg as a form to /v3/<domain>/messages.
func (m *Mailgun) Send(ctx context.Context, msg Message) error {
	timeout := m.timeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	if timeout <= 0 {
		return fmt.Errorf("mailgun: %w", context.DeadlineExceeded)
	}

	args := fiber.AcquireArgs()
	defer fiber.ReleaseArgs(args)
	args.Set("from", m.from)
	args.Set("to", msg.To)
	args.Set("subject", m.subject)
	args.Set("template", string(msg.Template))
	for k, v := range msg.Vars {
		args.Set("v:"+k, v)
	}

	agent := fiber.Post(fmt.Sprintf("%s/v3/%s/messages", m.baseURL, m.domain)).
		BasicAuth("api", m.apiKey).
		Timeout(timeout).
		Form(args)

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return fmt.Errorf("mailgun request failed: %w", errs[0])
	}
	if code != fiber.StatusOK {
		return fmt.Errorf("mailgun responded with status %d: %s", code, body)
	}
	return nil
}
