package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/resend/resend-go/v2"

	"github.com/yourusername/datasec-api/internal/config"
)

const resendEndpoint = "https://api.resend.com/emails"

// ResendChannel sends through the Resend SDK, falling back to a raw HTTPS
// POST against the same API when the SDK call fails. If the account is in
// testing mode (401/403/422 or a structured error body) and a test recipient
// is configured, the HTTP path retries once addressed to that recipient.
type ResendChannel struct {
	apiKey        string
	from          string
	testRecipient string
	testFrom      string
	endpoint      string
	client        *resend.Client
	httpClient    *http.Client
	timeout       time.Duration
}

func NewResendChannel(cfg config.EmailConfig) *ResendChannel {
	c := &ResendChannel{
		apiKey:        cfg.ResendAPIKey,
		from:          cfg.From,
		testRecipient: cfg.ResendTestRecipient,
		testFrom:      cfg.ResendTestFrom,
		endpoint:      resendEndpoint,
		httpClient:    &http.Client{Timeout: cfg.HTTPTimeout()},
		timeout:       cfg.HTTPTimeout(),
	}
	if c.apiKey != "" {
		c.client = resend.NewClient(c.apiKey)
	}
	return c
}

func (c *ResendChannel) Name() string {
	return "resend"
}

func (c *ResendChannel) Configured() bool {
	return c.apiKey != ""
}

func (c *ResendChannel) Send(ctx context.Context, msg Message) error {
	sdkCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	params := &resend.SendEmailRequest{
		From:    c.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Text:    msg.Text,
		Html:    msg.HTML,
	}

	sent, err := c.client.Emails.SendWithOptions(sdkCtx, params, &resend.SendEmailOptions{})
	if err == nil {
		log.Printf("[ResendChannel] SDK send ok: %v", sent)
		return nil
	}
	log.Printf("[ResendChannel] SDK send failed (%T): %v", err, err)

	return c.sendHTTP(ctx, msg)
}

type resendPayload struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	Text    string   `json:"text"`
	HTML    string   `json:"html"`
}

// sendHTTP re-issues the payload as a raw POST with bearer auth. This path
// exists because SDK failures have included opaque "unknown error" responses
// that only the raw status and body can explain.
func (c *ResendChannel) sendHTTP(ctx context.Context, msg Message) error {
	payload := resendPayload{
		From:    c.from,
		To:      []string{msg.To},
		Subject: msg.Subject,
		Text:    msg.Text,
		HTML:    msg.HTML,
	}

	status, body, err := c.post(ctx, payload)
	if err != nil {
		return &ChannelError{Err: fmt.Errorf("resend http send failed: %w", err)}
	}
	if status == http.StatusOK || status == http.StatusCreated {
		log.Printf("[ResendChannel] HTTP send ok: status=%d body=%s", status, body)
		return nil
	}
	log.Printf("[ResendChannel] HTTP send failed: status=%d body=%s", status, body)

	if c.testRecipient != "" && restrictedResponse(status, body) {
		log.Printf("[ResendChannel] retrying HTTP send using test recipient=%s", c.testRecipient)
		retryFrom := c.testFrom
		if retryFrom == "" {
			retryFrom = c.testRecipient
		}
		retry := payload
		retry.From = retryFrom
		retry.To = []string{c.testRecipient}

		retryStatus, retryBody, retryErr := c.post(ctx, retry)
		if retryErr != nil {
			return &ChannelError{StatusCode: status, Body: body, Err: fmt.Errorf("resend http retry failed: %w", retryErr)}
		}
		if retryStatus == http.StatusOK || retryStatus == http.StatusCreated {
			log.Printf("[ResendChannel] HTTP retry ok: status=%d body=%s", retryStatus, retryBody)
			return nil
		}
		log.Printf("[ResendChannel] HTTP retry failed: status=%d body=%s", retryStatus, retryBody)
		return &ChannelError{StatusCode: retryStatus, Body: retryBody, Err: fmt.Errorf("resend http retry rejected")}
	}

	return &ChannelError{StatusCode: status, Body: body, Err: fmt.Errorf("resend http send rejected")}
}

func (c *ResendChannel) post(ctx context.Context, payload resendPayload) (int, string, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return 0, "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(data))
	if err != nil {
		return 0, "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, "", err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	return resp.StatusCode, string(body), nil
}

// restrictedResponse matches the shapes Resend returns in testing mode, where
// only the account owner may receive mail.
func restrictedResponse(status int, body string) bool {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden, http.StatusUnprocessableEntity:
		return true
	}
	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(body), &parsed); err != nil {
		return false
	}
	_, hasError := parsed["error"]
	return hasError
}
