// Package mail sends transactional email through the Mailtrap send API.
package mail

import "context"

// Message is one outbound email.
type Message struct {
	To       string
	Subject  string
	Text     string
	HTML     string
	Category string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}
