package email

import (
	"context"
	"fmt"
)

// Message carries one email through the pipeline. Username and Code are only
// read by the console fallback so an operator can hand the code over manually.
type Message struct {
	To       string
	Subject  string
	Text     string
	HTML     string
	Username string
	Code     string
}

// Channel is one concrete delivery mechanism for a message.
type Channel interface {
	Name() string
	// Configured reports whether the channel has the credentials it needs.
	// Unconfigured channels are skipped, not treated as fatal.
	Configured() bool
	Send(ctx context.Context, msg Message) error
}

// ChannelError carries provider diagnostics alongside the underlying error so
// the pipeline can log status and body instead of an opaque message.
type ChannelError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *ChannelError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("status=%d body=%s: %v", e.StatusCode, e.Body, e.Err)
	}
	return e.Err.Error()
}

func (e *ChannelError) Unwrap() error {
	return e.Err
}
