package repository

import "github.com/yourusername/datasec-api/internal/domain/entity"

// EncryptionKeyRepository persists named encryption keys.
type EncryptionKeyRepository interface {
	Create(key *entity.EncryptionKey) error
	GetByName(keyName string) (*entity.EncryptionKey, error)
	ListByUserID(userID uint) ([]entity.EncryptionKey, error)
	List() ([]entity.EncryptionKey, error)
	CountByUserID(userID uint) (int64, error)
	Count() (int64, error)
	GetLatestByUserID(userID uint) (*entity.EncryptionKey, error)
	GetLatest() (*entity.EncryptionKey, error)
}
