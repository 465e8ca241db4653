package postgres

import (
	"errors"
	"fmt"

	"github.com/yourusername/datasec-api/internal/domain/entity"
	apperrors "github.com/yourusername/datasec-api/internal/pkg/errors"
	"gorm.io/gorm"
)

type EncryptedDataRepo struct {
	db *gorm.DB
}

func NewEncryptedDataRepo(db *gorm.DB) *EncryptedDataRepo {
	return &EncryptedDataRepo{db: db}
}

func (r *EncryptedDataRepo) Create(data *entity.EncryptedData) error {
	if err := r.db.Create(data).Error; err != nil {
		return fmt.Errorf("failed to create encrypted data: %w", err)
	}
	return nil
}

func (r *EncryptedDataRepo) GetByNameAndKeyID(dataName string, keyID uint) (*entity.EncryptedData, error) {
	var data entity.EncryptedData
	err := r.db.Where("data_name = ? AND key_id = ?", dataName, keyID).First(&data).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get encrypted data: %w", err)
	}
	return &data, nil
}

func (r *EncryptedDataRepo) ListByUserID(userID uint) ([]entity.EncryptedData, error) {
	var records []entity.EncryptedData
	if err := r.db.Where("user_id = ?", userID).Order("id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list encrypted data: %w", err)
	}
	return records, nil
}

func (r *EncryptedDataRepo) List() ([]entity.EncryptedData, error) {
	var records []entity.EncryptedData
	if err := r.db.Order("id").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to list encrypted data: %w", err)
	}
	return records, nil
}

func (r *EncryptedDataRepo) CountByUserID(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entity.EncryptedData{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *EncryptedDataRepo) GetLatestByUserID(userID uint) (*entity.EncryptedData, error) {
	var data entity.EncryptedData
	err := r.db.Where("user_id = ?", userID).Order("id DESC").First(&data).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get latest encrypted data: %w", err)
	}
	return &data, nil
}
