package email

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
)

// ConsoleChannel is the deliberate last-resort escape hatch: it always
// succeeds by writing the code to the operational log and stdout so an
// operator can hand it over manually. Degraded mode only; production
// deployments are expected to configure at least one real channel.
type ConsoleChannel struct {
	out io.Writer
}

func NewConsoleChannel() *ConsoleChannel {
	return &ConsoleChannel{out: os.Stdout}
}

func (c *ConsoleChannel) Name() string {
	return "console"
}

func (c *ConsoleChannel) Configured() bool {
	return true
}

func (c *ConsoleChannel) Send(ctx context.Context, msg Message) error {
	log.Printf("[ConsoleChannel] all email delivery channels failed; falling back to console. OTP for %s is: %s", msg.To, msg.Code)
	fmt.Fprintf(c.out, "[DEV OTP] user=%s email=%s code=%s\n", msg.Username, msg.To, msg.Code)
	return nil
}
