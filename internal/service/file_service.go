package service

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/fernet/fernet-go"

	"github.com/yourusername/datasec-api/internal/domain/entity"
	"github.com/yourusername/datasec-api/internal/domain/repository"
	apperrors "github.com/yourusername/datasec-api/internal/pkg/errors"
)

const (
	encryptedFilesDir = "encrypted_files"
	decryptedFilesDir = "decrypted_files"
)

// FileService encrypts uploaded files to the media directory and decrypts
// them back on request. Paths stored on records are relative to the media
// root.
type FileService struct {
	keyRepo   repository.EncryptionKeyRepository
	fileRepo  repository.EncryptedFileRepository
	mediaRoot string
}

func NewFileService(keyRepo repository.EncryptionKeyRepository, fileRepo repository.EncryptedFileRepository, mediaRoot string) *FileService {
	return &FileService{
		keyRepo:   keyRepo,
		fileRepo:  fileRepo,
		mediaRoot: mediaRoot,
	}
}

// EncryptFile encrypts content under the named key, writes it to the media
// directory and records it.
func (s *FileService) EncryptFile(userID uint, fileName string, content []byte, keyName string) (*entity.EncryptedFile, error) {
	if fileName == "" || keyName == "" {
		return nil, fmt.Errorf("%w: file name and key name are required", apperrors.ErrValidation)
	}
	// Uploaded names may carry directory parts; only the base lands on disk.
	fileName = filepath.Base(fileName)

	key, err := s.keyRepo.GetByName(keyName)
	if err != nil {
		return nil, err
	}
	k, err := fernet.DecodeKey(key.KeyValue)
	if err != nil {
		return nil, fmt.Errorf("stored key %q is not a valid fernet key: %w", keyName, err)
	}

	encrypted, err := fernet.EncryptAndSign(content, k)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt file: %w", err)
	}

	relPath := filepath.Join(encryptedFilesDir, fileName)
	absPath := filepath.Join(s.mediaRoot, relPath)
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}
	if err := os.WriteFile(absPath, encrypted, 0o644); err != nil {
		return nil, fmt.Errorf("failed to write encrypted file: %w", err)
	}

	record := &entity.EncryptedFile{
		FileName:      fileName,
		EncryptedPath: relPath,
		KeyID:         key.ID,
		UserID:        userID,
	}
	if err := s.fileRepo.Create(record); err != nil {
		return nil, err
	}
	return record, nil
}

// DecryptFile decrypts a stored file to the decrypted_files media directory
// and returns the relative path of the result.
func (s *FileService) DecryptFile(fileName, keyName string) (string, error) {
	if fileName == "" || keyName == "" {
		return "", fmt.Errorf("%w: file name and key name are required", apperrors.ErrValidation)
	}

	key, err := s.keyRepo.GetByName(keyName)
	if err != nil {
		return "", err
	}
	record, err := s.fileRepo.GetByNameAndKeyID(fileName, key.ID)
	if err != nil {
		return "", err
	}

	encrypted, err := os.ReadFile(filepath.Join(s.mediaRoot, record.EncryptedPath))
	if err != nil {
		return "", fmt.Errorf("failed to read encrypted file: %w", err)
	}

	k, err := fernet.DecodeKey(key.KeyValue)
	if err != nil {
		return "", fmt.Errorf("stored key %q is not a valid fernet key: %w", keyName, err)
	}
	plaintext := fernet.VerifyAndDecrypt(encrypted, 0, []*fernet.Key{k})
	if plaintext == nil {
		return "", fmt.Errorf("failed to decrypt file %q with key %q", fileName, keyName)
	}

	relPath := filepath.Join(decryptedFilesDir, record.FileName)
	absPath := filepath.Join(s.mediaRoot, relPath)
	if err := os.MkdirAll(filepath.Dir(absPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create media directory: %w", err)
	}
	if err := os.WriteFile(absPath, plaintext, 0o644); err != nil {
		return "", fmt.Errorf("failed to write decrypted file: %w", err)
	}
	return relPath, nil
}

// DeleteFile removes the record and, best effort, the stored blob.
func (s *FileService) DeleteFile(id uint) error {
	record, err := s.fileRepo.GetByID(id)
	if err != nil {
		return err
	}
	if err := s.fileRepo.Delete(id); err != nil {
		return err
	}
	if err := os.Remove(filepath.Join(s.mediaRoot, record.EncryptedPath)); err != nil && !os.IsNotExist(err) {
		log.Printf("[FileService] failed to remove stored file %s: %v", record.EncryptedPath, err)
	}
	return nil
}
