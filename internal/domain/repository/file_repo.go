package repository

import "github.com/yourusername/datasec-api/internal/domain/entity"

// EncryptedFileRepository persists encrypted file records.
type EncryptedFileRepository interface {
	Create(file *entity.EncryptedFile) error
	GetByID(id uint) (*entity.EncryptedFile, error)
	GetByNameAndKeyID(fileName string, keyID uint) (*entity.EncryptedFile, error)
	Delete(id uint) error
	ListByUserID(userID uint) ([]entity.EncryptedFile, error)
	List() ([]entity.EncryptedFile, error)
	CountByUserID(userID uint) (int64, error)
	Count() (int64, error)
	GetLatestByUserID(userID uint) (*entity.EncryptedFile, error)
	GetLatest() (*entity.EncryptedFile, error)
}
