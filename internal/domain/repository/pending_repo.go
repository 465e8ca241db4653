package repository

import (
	"time"

	"github.com/yourusername/datasec-api/internal/domain/entity"
)

// PendingVerificationRepository holds the transient record between the login
// and verification requests. Implementations must expire entries on their own
// (a TTL store) and must keep at most one record per user: DeleteByUserID
// drops whatever record the user currently has, regardless of its token.
type PendingVerificationRepository interface {
	Save(token string, pending *entity.PendingVerification, ttl time.Duration) error
	Get(token string) (*entity.PendingVerification, error)
	Delete(token string) error
	DeleteByUserID(userID uint) error
}
