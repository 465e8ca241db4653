package entity

import "time"

// PendingVerification binds an issued login code to a user and its expiry.
// It is transient session state: the host layer persists it between the login
// and verification requests (Redis with a TTL), it never reaches the database.
// Expiry is stored as epoch seconds to survive JSON round trips unchanged.
type PendingVerification struct {
	UserID    uint    `json:"user_id"`
	Username  string  `json:"username"`
	Email     string  `json:"email"`
	Code      string  `json:"code"`
	IssuedAt  float64 `json:"issued_at"`
	ExpiresAt float64 `json:"expires_at"`
}

// IsComplete reports whether the record carries everything needed to validate.
func (p *PendingVerification) IsComplete() bool {
	return p != nil && p.Code != "" && p.UserID != 0 && p.ExpiresAt != 0
}

// IsExpired reports whether the code validity window has passed.
func (p *PendingVerification) IsExpired(now time.Time) bool {
	return float64(now.Unix()) > p.ExpiresAt
}
