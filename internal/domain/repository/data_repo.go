package repository

import "github.com/yourusername/datasec-api/internal/domain/entity"

// EncryptedDataRepository persists encrypted text records.
type EncryptedDataRepository interface {
	Create(data *entity.EncryptedData) error
	GetByNameAndKeyID(dataName string, keyID uint) (*entity.EncryptedData, error)
	ListByUserID(userID uint) ([]entity.EncryptedData, error)
	List() ([]entity.EncryptedData, error)
	CountByUserID(userID uint) (int64, error)
	GetLatestByUserID(userID uint) (*entity.EncryptedData, error)
}
