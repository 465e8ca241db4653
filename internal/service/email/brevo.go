package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/yourusername/datasec-api/internal/config"
)

const brevoEndpoint = "https://api.brevo.com/v3/smtp/email"

// BrevoChannel sends through the Brevo (Sendinblue) REST API. Being pure
// HTTPS it works on hosts that block outbound SMTP.
type BrevoChannel struct {
	apiKey     string
	from       string
	endpoint   string
	httpClient *http.Client
	timeout    time.Duration
}

func NewBrevoChannel(cfg config.EmailConfig) *BrevoChannel {
	return &BrevoChannel{
		apiKey:     cfg.BrevoAPIKey,
		from:       cfg.From,
		endpoint:   brevoEndpoint,
		httpClient: &http.Client{Timeout: cfg.HTTPTimeout()},
		timeout:    cfg.HTTPTimeout(),
	}
}

func (c *BrevoChannel) Name() string {
	return "brevo"
}

func (c *BrevoChannel) Configured() bool {
	return c.apiKey != ""
}

type brevoSender struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type brevoRecipient struct {
	Email string `json:"email"`
}

type brevoPayload struct {
	Sender      brevoSender      `json:"sender"`
	To          []brevoRecipient `json:"to"`
	Subject     string           `json:"subject"`
	TextContent string           `json:"textContent"`
	HTMLContent string           `json:"htmlContent"`
}

func (c *BrevoChannel) Send(ctx context.Context, msg Message) error {
	name, addr := splitFromAddress(c.from)
	payload := brevoPayload{
		Sender:      brevoSender{Email: addr, Name: name},
		To:          []brevoRecipient{{Email: msg.To}},
		Subject:     msg.Subject,
		TextContent: msg.Text,
		HTMLContent: msg.HTML,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return &ChannelError{Err: err}
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(data))
	if err != nil {
		return &ChannelError{Err: err}
	}
	req.Header.Set("api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &ChannelError{Err: fmt.Errorf("brevo send failed: %w", err)}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted:
		log.Printf("[BrevoChannel] send ok: status=%d body=%s", resp.StatusCode, body)
		return nil
	}
	return &ChannelError{
		StatusCode: resp.StatusCode,
		Body:       string(body),
		Err:        fmt.Errorf("brevo send rejected"),
	}
}

// splitFromAddress splits "Display Name <addr@host>" into its parts; a bare
// address comes back with an empty name.
func splitFromAddress(from string) (name, addr string) {
	if i := strings.IndexByte(from, '<'); i >= 0 {
		name = strings.TrimSpace(from[:i])
		addr = strings.TrimSpace(strings.TrimSuffix(from[i+1:], ">"))
		addr = strings.TrimRight(addr, ">")
		return name, addr
	}
	return "", strings.TrimSpace(from)
}
