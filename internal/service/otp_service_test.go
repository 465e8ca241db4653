package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/datasec-api/internal/domain/entity"
)

func TestIssueCodeFormat(t *testing.T) {
	s := NewOTPService(10 * time.Minute)

	for i := 0; i < 50; i++ {
		pending, err := s.Issue(1, "alice", "alice@example.com")
		require.NoError(t, err)

		assert.Len(t, pending.Code, 6)
		for _, r := range pending.Code {
			assert.True(t, r >= '0' && r <= '9', "code %q contains non-digit", pending.Code)
		}
	}
}

func TestIssueBindsUserAndWindow(t *testing.T) {
	s := NewOTPService(10 * time.Minute)
	issued := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return issued }

	pending, err := s.Issue(42, "bob", "bob@example.com")
	require.NoError(t, err)

	assert.Equal(t, uint(42), pending.UserID)
	assert.Equal(t, "bob", pending.Username)
	assert.Equal(t, "bob@example.com", pending.Email)
	assert.Equal(t, float64(issued.Unix()), pending.IssuedAt)
	assert.Equal(t, float64(issued.Add(10*time.Minute).Unix()), pending.ExpiresAt)
}

func TestValidateNoPendingRecord(t *testing.T) {
	s := NewOTPService(10 * time.Minute)

	result := s.Validate("123456", nil)
	assert.Equal(t, StatusRejected, result.Status)
	assert.Equal(t, "no active verification", result.Reason)
	assert.False(t, result.ClearPending)

	// An incomplete record is treated the same as a missing one.
	result = s.Validate("123456", &entity.PendingVerification{UserID: 1})
	assert.Equal(t, StatusRejected, result.Status)
	assert.Equal(t, "no active verification", result.Reason)
}

func TestValidateCorrectCodeBeforeExpiry(t *testing.T) {
	s := NewOTPService(10 * time.Minute)
	issued := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return issued }

	pending, err := s.Issue(7, "carol", "carol@example.com")
	require.NoError(t, err)

	// One second inside the window.
	s.now = func() time.Time { return issued.Add(10*time.Minute - time.Second) }
	result := s.Validate(pending.Code, pending)

	assert.Equal(t, StatusVerified, result.Status)
	assert.Equal(t, uint(7), result.UserID)
	assert.True(t, result.ClearPending)
}

func TestValidateAfterExpiry(t *testing.T) {
	s := NewOTPService(10 * time.Minute)
	issued := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return issued }

	pending, err := s.Issue(7, "carol", "carol@example.com")
	require.NoError(t, err)

	s.now = func() time.Time { return issued.Add(10*time.Minute + time.Second) }

	// Expired beats correctness: even the right code comes back Expired.
	result := s.Validate(pending.Code, pending)
	assert.Equal(t, StatusExpired, result.Status)
	assert.True(t, result.ClearPending)

	result = s.Validate("000000", pending)
	assert.Equal(t, StatusExpired, result.Status)
}

func TestValidateWrongCodeKeepsPending(t *testing.T) {
	s := NewOTPService(10 * time.Minute)
	issued := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return issued }

	pending, err := s.Issue(7, "carol", "carol@example.com")
	require.NoError(t, err)

	wrong := "000000"
	if pending.Code == wrong {
		wrong = "999999"
	}

	s.now = func() time.Time { return issued.Add(time.Minute) }
	result := s.Validate(wrong, pending)
	assert.Equal(t, StatusRejected, result.Status)
	assert.Equal(t, "invalid code", result.Reason)
	assert.False(t, result.ClearPending)

	// The record survived, so a later correct submission still verifies.
	result = s.Validate(pending.Code, pending)
	assert.Equal(t, StatusVerified, result.Status)
}

func TestValidateExactMatchNoNormalization(t *testing.T) {
	s := NewOTPService(10 * time.Minute)
	issued := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return issued }

	pending := &entity.PendingVerification{
		UserID:    1,
		Code:      "007123",
		IssuedAt:  float64(issued.Unix()),
		ExpiresAt: float64(issued.Add(10 * time.Minute).Unix()),
	}

	// Leading zeros matter; "7123" is not the code.
	result := s.Validate("7123", pending)
	assert.Equal(t, StatusRejected, result.Status)

	result = s.Validate(" 007123", pending)
	assert.Equal(t, StatusRejected, result.Status)

	result = s.Validate("007123", pending)
	assert.Equal(t, StatusVerified, result.Status)
}

func TestValidateScenarioAroundExpiry(t *testing.T) {
	s := NewOTPService(10 * time.Minute)
	issued := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return issued }

	pending := &entity.PendingVerification{
		UserID:    9,
		Code:      "007123",
		IssuedAt:  float64(issued.Unix()),
		ExpiresAt: float64(issued.Add(10 * time.Minute).Unix()),
	}

	s.now = func() time.Time { return issued.Add(9*time.Minute + 59*time.Second) }
	result := s.Validate("007123", pending)
	assert.Equal(t, StatusVerified, result.Status)

	s.now = func() time.Time { return issued.Add(10*time.Minute + time.Second) }
	result = s.Validate("007123", pending)
	assert.Equal(t, StatusExpired, result.Status)
}
