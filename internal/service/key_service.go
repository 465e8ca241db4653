package service

import (
	"fmt"
	"strings"

	"github.com/fernet/fernet-go"

	"github.com/yourusername/datasec-api/internal/domain/entity"
	"github.com/yourusername/datasec-api/internal/domain/repository"
	apperrors "github.com/yourusername/datasec-api/internal/pkg/errors"
)

// KeyService generates and lists named Fernet keys.
type KeyService struct {
	keyRepo repository.EncryptionKeyRepository
}

func NewKeyService(keyRepo repository.EncryptionKeyRepository) *KeyService {
	return &KeyService{keyRepo: keyRepo}
}

// Generate creates a fresh Fernet key under a unique name. A duplicate name
// surfaces as ErrConflict so the caller can ask for a different one.
func (s *KeyService) Generate(userID uint, keyName string) (*entity.EncryptionKey, error) {
	keyName = strings.TrimSpace(keyName)
	if keyName == "" {
		return nil, fmt.Errorf("%w: key name is required", apperrors.ErrValidation)
	}

	var k fernet.Key
	if err := k.Generate(); err != nil {
		return nil, fmt.Errorf("failed to generate key: %w", err)
	}

	key := &entity.EncryptionKey{
		KeyName:  keyName,
		KeyValue: k.Encode(),
		UserID:   userID,
	}
	if err := s.keyRepo.Create(key); err != nil {
		return nil, err
	}
	return key, nil
}

// ListByUser returns the user's keys.
func (s *KeyService) ListByUser(userID uint) ([]entity.EncryptionKey, error) {
	return s.keyRepo.ListByUserID(userID)
}
