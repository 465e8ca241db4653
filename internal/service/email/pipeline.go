package email

import (
	"context"
	"errors"
	"log"

	"github.com/yourusername/datasec-api/internal/config"
	"github.com/yourusername/datasec-api/internal/domain/entity"
)

// Pipeline tries channels strictly in order and stops at the first success.
// The console channel at the end always succeeds, so a send never fails hard:
// the worst case is the code landing in the operational log.
type Pipeline struct {
	channels []Channel
}

func NewPipeline(channels ...Channel) *Pipeline {
	return &Pipeline{channels: channels}
}

// NewPipelineFromConfig builds the standard channel order:
// Resend (SDK with HTTP fallback), Brevo, SMTP, console.
func NewPipelineFromConfig(cfg config.EmailConfig) *Pipeline {
	return NewPipeline(
		NewResendChannel(cfg),
		NewBrevoChannel(cfg),
		NewSMTPChannel(cfg),
		NewConsoleChannel(),
	)
}

// Send runs the fallback chain and returns one attempt record per channel
// tried. The last attempt is always a success. Channels run sequentially:
// each is a fallback for the previous one, and racing them would burn quota
// on paid providers.
func (p *Pipeline) Send(ctx context.Context, msg Message) []entity.DeliveryAttempt {
	attempts := make([]entity.DeliveryAttempt, 0, len(p.channels))

	for _, ch := range p.channels {
		if !ch.Configured() {
			attempt := entity.DeliveryAttempt{Channel: ch.Name(), Error: "not configured"}
			attempts = append(attempts, attempt)
			log.Printf("[EmailPipeline] channel=%s skipped: not configured", ch.Name())
			continue
		}

		err := ch.Send(ctx, msg)
		if err == nil {
			attempts = append(attempts, entity.DeliveryAttempt{Channel: ch.Name(), Success: true})
			log.Printf("[EmailPipeline] channel=%s send ok to=%s", ch.Name(), msg.To)
			return attempts
		}

		attempt := entity.DeliveryAttempt{Channel: ch.Name(), Error: err.Error()}
		var chErr *ChannelError
		if errors.As(err, &chErr) {
			attempt.StatusCode = chErr.StatusCode
			attempt.Body = chErr.Body
		}
		attempts = append(attempts, attempt)
		log.Printf("[EmailPipeline] channel=%s send failed: %v", ch.Name(), err)
	}

	return attempts
}
