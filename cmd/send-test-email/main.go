// Command send-test-email pushes a test message through the configured
// delivery pipeline and reports what each channel did. Useful to verify
// provider credentials before relying on them for login codes.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/yourusername/datasec-api/internal/config"
	"github.com/yourusername/datasec-api/internal/service/email"
)

func main() {
	to := flag.String("to", "", "recipient email address (required)")
	subject := flag.String("subject", "Test email from Data Security System", "email subject")
	message := flag.String("message", "This is a test email sent from the send-test-email command.", "email body")
	flag.Parse()

	if *to == "" {
		fmt.Fprintln(os.Stderr, "usage: send-test-email -to recipient@example.com [-subject s] [-message m]")
		os.Exit(2)
	}

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config/config.yaml"
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Printf("Failed to load config: %v", err)
		os.Exit(1)
	}

	pipeline := email.NewPipelineFromConfig(cfg.Email)
	attempts := pipeline.Send(context.Background(), email.Message{
		To:      *to,
		Subject: *subject,
		Text:    *message,
		HTML:    "<p>" + *message + "</p>",
	})

	for _, a := range attempts {
		if a.Success {
			fmt.Printf("channel=%s ok\n", a.Channel)
			continue
		}
		fmt.Printf("channel=%s failed status=%d error=%s\n", a.Channel, a.StatusCode, a.Error)
	}
}
