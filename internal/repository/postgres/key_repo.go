package postgres

import (
	"errors"
	"fmt"

	"github.com/yourusername/datasec-api/internal/domain/entity"
	apperrors "github.com/yourusername/datasec-api/internal/pkg/errors"
	"gorm.io/gorm"
)

type EncryptionKeyRepo struct {
	db *gorm.DB
}

func NewEncryptionKeyRepo(db *gorm.DB) *EncryptionKeyRepo {
	return &EncryptionKeyRepo{db: db}
}

func (r *EncryptionKeyRepo) Create(key *entity.EncryptionKey) error {
	if err := r.db.Create(key).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return apperrors.ErrConflict
		}
		return fmt.Errorf("failed to create encryption key: %w", err)
	}
	return nil
}

func (r *EncryptionKeyRepo) GetByName(keyName string) (*entity.EncryptionKey, error) {
	var key entity.EncryptionKey
	if err := r.db.Where("key_name = ?", keyName).First(&key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get encryption key by name: %w", err)
	}
	return &key, nil
}

func (r *EncryptionKeyRepo) ListByUserID(userID uint) ([]entity.EncryptionKey, error) {
	var keys []entity.EncryptionKey
	if err := r.db.Where("user_id = ?", userID).Order("id").Find(&keys).Error; err != nil {
		return nil, fmt.Errorf("failed to list encryption keys: %w", err)
	}
	return keys, nil
}

func (r *EncryptionKeyRepo) List() ([]entity.EncryptionKey, error) {
	var keys []entity.EncryptionKey
	if err := r.db.Order("id").Find(&keys).Error; err != nil {
		return nil, fmt.Errorf("failed to list encryption keys: %w", err)
	}
	return keys, nil
}

func (r *EncryptionKeyRepo) CountByUserID(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entity.EncryptionKey{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *EncryptionKeyRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entity.EncryptionKey{}).Count(&count).Error
	return count, err
}

func (r *EncryptionKeyRepo) GetLatestByUserID(userID uint) (*entity.EncryptionKey, error) {
	var key entity.EncryptionKey
	err := r.db.Where("user_id = ?", userID).Order("id DESC").First(&key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get latest encryption key: %w", err)
	}
	return &key, nil
}

func (r *EncryptionKeyRepo) GetLatest() (*entity.EncryptionKey, error) {
	var key entity.EncryptionKey
	err := r.db.Order("id DESC").First(&key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get latest encryption key: %w", err)
	}
	return &key, nil
}
