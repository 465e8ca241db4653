package postgres

import (
	"errors"
	"fmt"

	"github.com/yourusername/datasec-api/internal/domain/entity"
	apperrors "github.com/yourusername/datasec-api/internal/pkg/errors"
	"gorm.io/gorm"
)

type EncryptedFileRepo struct {
	db *gorm.DB
}

func NewEncryptedFileRepo(db *gorm.DB) *EncryptedFileRepo {
	return &EncryptedFileRepo{db: db}
}

func (r *EncryptedFileRepo) Create(file *entity.EncryptedFile) error {
	if err := r.db.Create(file).Error; err != nil {
		return fmt.Errorf("failed to create encrypted file record: %w", err)
	}
	return nil
}

func (r *EncryptedFileRepo) GetByID(id uint) (*entity.EncryptedFile, error) {
	var file entity.EncryptedFile
	if err := r.db.First(&file, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get encrypted file: %w", err)
	}
	return &file, nil
}

func (r *EncryptedFileRepo) GetByNameAndKeyID(fileName string, keyID uint) (*entity.EncryptedFile, error) {
	var file entity.EncryptedFile
	err := r.db.Where("file_name = ? AND key_id = ?", fileName, keyID).First(&file).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get encrypted file: %w", err)
	}
	return &file, nil
}

func (r *EncryptedFileRepo) Delete(id uint) error {
	result := r.db.Delete(&entity.EncryptedFile{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete encrypted file record: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *EncryptedFileRepo) ListByUserID(userID uint) ([]entity.EncryptedFile, error) {
	var files []entity.EncryptedFile
	if err := r.db.Where("user_id = ?", userID).Order("id").Find(&files).Error; err != nil {
		return nil, fmt.Errorf("failed to list encrypted files: %w", err)
	}
	return files, nil
}

func (r *EncryptedFileRepo) List() ([]entity.EncryptedFile, error) {
	var files []entity.EncryptedFile
	if err := r.db.Order("id").Find(&files).Error; err != nil {
		return nil, fmt.Errorf("failed to list encrypted files: %w", err)
	}
	return files, nil
}

func (r *EncryptedFileRepo) CountByUserID(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&entity.EncryptedFile{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

func (r *EncryptedFileRepo) Count() (int64, error) {
	var count int64
	err := r.db.Model(&entity.EncryptedFile{}).Count(&count).Error
	return count, err
}

func (r *EncryptedFileRepo) GetLatestByUserID(userID uint) (*entity.EncryptedFile, error) {
	var file entity.EncryptedFile
	err := r.db.Where("user_id = ?", userID).Order("id DESC").First(&file).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get latest encrypted file: %w", err)
	}
	return &file, nil
}

func (r *EncryptedFileRepo) GetLatest() (*entity.EncryptedFile, error) {
	var file entity.EncryptedFile
	err := r.db.Order("id DESC").First(&file).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get latest encrypted file: %w", err)
	}
	return &file, nil
}
