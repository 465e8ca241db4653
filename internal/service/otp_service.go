package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/yourusername/datasec-api/internal/domain/entity"
)

// VerificationStatus is the outcome of a code submission.
type VerificationStatus int

const (
	// StatusVerified: the code matched within its validity window.
	StatusVerified VerificationStatus = iota
	// StatusExpired: the validity window has passed; a new login is required.
	StatusExpired
	// StatusRejected: no active verification or a mismatched code.
	StatusRejected
)

// VerificationResult describes the outcome of validating a submitted code.
// ClearPending tells the caller to drop the stored record: Verified and
// Expired are terminal, Rejected with a live record permits retries.
type VerificationResult struct {
	Status       VerificationStatus
	UserID       uint
	Reason       string
	ClearPending bool
}

// OTPService issues and validates one-time login codes. It is storage-free:
// the caller persists the PendingVerification between requests and deletes it
// when the result says so.
type OTPService struct {
	ttl time.Duration
	now func() time.Time
}

func NewOTPService(ttl time.Duration) *OTPService {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &OTPService{
		ttl: ttl,
		now: time.Now,
	}
}

// TTL returns the code validity window.
func (s *OTPService) TTL() time.Duration {
	return s.ttl
}

// Issue generates a fresh code bound to the user and the validity window.
// It has no side effects; sending and storage are the caller's concern.
func (s *OTPService) Issue(userID uint, username, email string) (*entity.PendingVerification, error) {
	code, err := generateCode()
	if err != nil {
		return nil, fmt.Errorf("failed to generate verification code: %w", err)
	}
	issued := s.now()
	return &entity.PendingVerification{
		UserID:    userID,
		Username:  username,
		Email:     email,
		Code:      code,
		IssuedAt:  float64(issued.Unix()),
		ExpiresAt: float64(issued.Add(s.ttl).Unix()),
	}, nil
}

// Validate applies the transition rules in order: missing record, expiry,
// exact match, mismatch. Comparison is an exact string match with no
// normalization.
func (s *OTPService) Validate(submitted string, pending *entity.PendingVerification) VerificationResult {
	if !pending.IsComplete() {
		return VerificationResult{
			Status: StatusRejected,
			Reason: "no active verification",
		}
	}

	if pending.IsExpired(s.now()) {
		return VerificationResult{
			Status:       StatusExpired,
			Reason:       "code expired",
			ClearPending: true,
		}
	}

	if submitted == pending.Code {
		return VerificationResult{
			Status:       StatusVerified,
			UserID:       pending.UserID,
			ClearPending: true,
		}
	}

	return VerificationResult{
		Status: StatusRejected,
		Reason: "invalid code",
	}
}

// generateCode draws a uniform 6-digit code, leading zeros preserved.
func generateCode() (string, error) {
	max := big.NewInt(1000000)
	n, err := rand.Int(rand.Reader, max)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
