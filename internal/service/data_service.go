package service

import (
	"fmt"

	"github.com/fernet/fernet-go"

	"github.com/yourusername/datasec-api/internal/domain/entity"
	"github.com/yourusername/datasec-api/internal/domain/repository"
	apperrors "github.com/yourusername/datasec-api/internal/pkg/errors"
)

// DataService encrypts and decrypts named text values under named keys.
type DataService struct {
	keyRepo  repository.EncryptionKeyRepository
	dataRepo repository.EncryptedDataRepository
}

func NewDataService(keyRepo repository.EncryptionKeyRepository, dataRepo repository.EncryptedDataRepository) *DataService {
	return &DataService{keyRepo: keyRepo, dataRepo: dataRepo}
}

// Encrypt stores dataValue encrypted under the named key and returns the
// created record with its Fernet token.
func (s *DataService) Encrypt(userID uint, dataName, dataValue, keyName string) (*entity.EncryptedData, error) {
	if dataName == "" || dataValue == "" || keyName == "" {
		return nil, fmt.Errorf("%w: data name, value and key name are required", apperrors.ErrValidation)
	}

	key, err := s.keyRepo.GetByName(keyName)
	if err != nil {
		return nil, err
	}
	k, err := fernet.DecodeKey(key.KeyValue)
	if err != nil {
		return nil, fmt.Errorf("stored key %q is not a valid fernet key: %w", keyName, err)
	}

	token, err := fernet.EncryptAndSign([]byte(dataValue), k)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt data: %w", err)
	}

	record := &entity.EncryptedData{
		DataName:       dataName,
		EncryptedValue: string(token),
		KeyID:          key.ID,
		UserID:         userID,
	}
	if err := s.dataRepo.Create(record); err != nil {
		return nil, err
	}
	return record, nil
}

// Decrypt looks up the record by name under the named key and returns the
// plaintext. Tokens carry no TTL; only the key gates access.
func (s *DataService) Decrypt(dataName, keyName string) (string, error) {
	if dataName == "" || keyName == "" {
		return "", fmt.Errorf("%w: data name and key name are required", apperrors.ErrValidation)
	}

	key, err := s.keyRepo.GetByName(keyName)
	if err != nil {
		return "", err
	}
	record, err := s.dataRepo.GetByNameAndKeyID(dataName, key.ID)
	if err != nil {
		return "", err
	}

	k, err := fernet.DecodeKey(key.KeyValue)
	if err != nil {
		return "", fmt.Errorf("stored key %q is not a valid fernet key: %w", keyName, err)
	}
	plaintext := fernet.VerifyAndDecrypt([]byte(record.EncryptedValue), 0, []*fernet.Key{k})
	if plaintext == nil {
		return "", fmt.Errorf("failed to decrypt data %q with key %q", dataName, keyName)
	}
	return string(plaintext), nil
}
