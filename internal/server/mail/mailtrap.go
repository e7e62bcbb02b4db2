package mail

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	sc "github.com/avdeev-d/gallerykeep/internal/server/config"
)

type address struct {
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}

type sendRequest struct {
	From     address   `json:"from"`
	To       []address `json:"to"`
	Subject  string    `json:"subject"`
	Text     string    `json:"text,omitempty"`
	HTML     string    `json:"html,omitempty"`
	Category string    `json:"category,omitempty"`
}

// MailtrapMailer posts messages to the Mailtrap REST endpoint.
type MailtrapMailer struct {
	endpoint string
	apiKey   string
	from     string
	client   *http.Client
}

func NewMailtrapMailer(cfg *sc.Config) *MailtrapMailer {
	return &MailtrapMailer{
		endpoint: cfg.MailtrapEndpoint,
		apiKey:   cfg.MailtrapAPIKey,
		from:     cfg.SenderEmail,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (m *MailtrapMailer) Send(ctx context.Context, msg Message) error {
	body, err := json.Marshal(sendRequest{
		From:     address{Email: m.from},
		To:       []address{{Email: msg.To}},
		Subject:  msg.Subject,
		Text:     msg.Text,
		HTML:     msg.HTML,
		Category: msg.Category,
	})
	if err != nil {
		return fmt.Errorf("error encoding mail request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("error building mail request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Api-Token", m.apiKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("error sending mail: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("mail api returned status %d", resp.StatusCode)
	}
	return nil
}
