package entity

// DeliveryAttempt records the outcome of one channel try during a send.
// Attempts are ephemeral: they are logged and returned to the caller, never
// persisted.
type DeliveryAttempt struct {
	Channel    string `json:"channel"`
	Success    bool   `json:"success"`
	StatusCode int    `json:"status_code,omitempty"`
	Body       string `json:"body,omitempty"`
	Error      string `json:"error,omitempty"`
}
