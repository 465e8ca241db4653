package service

import (
	"errors"

	"github.com/yourusername/datasec-api/internal/domain/entity"
	"github.com/yourusername/datasec-api/internal/domain/repository"
	apperrors "github.com/yourusername/datasec-api/internal/pkg/errors"
)

// DashboardOverview aggregates the current user's records.
type DashboardOverview struct {
	KeyCount   int64                  `json:"key_count"`
	FileCount  int64                  `json:"file_count"`
	DataCount  int64                  `json:"data_count"`
	LatestKey  *entity.EncryptionKey  `json:"latest_key,omitempty"`
	LatestFile *entity.EncryptedFile  `json:"latest_file,omitempty"`
	LatestData *entity.EncryptedData  `json:"latest_data,omitempty"`
	Keys       []entity.EncryptionKey `json:"keys"`
	Files      []entity.EncryptedFile `json:"files"`
	Data       []entity.EncryptedData `json:"data"`
}

// RecordListing holds the records view: all keys and encrypted files.
type RecordListing struct {
	Keys  []entity.EncryptionKey `json:"keys"`
	Files []entity.EncryptedFile `json:"files"`
}

// DashboardService builds per-user and records views.
type DashboardService struct {
	keyRepo  repository.EncryptionKeyRepository
	dataRepo repository.EncryptedDataRepository
	fileRepo repository.EncryptedFileRepository
}

func NewDashboardService(
	keyRepo repository.EncryptionKeyRepository,
	dataRepo repository.EncryptedDataRepository,
	fileRepo repository.EncryptedFileRepository,
) *DashboardService {
	return &DashboardService{
		keyRepo:  keyRepo,
		dataRepo: dataRepo,
		fileRepo: fileRepo,
	}
}

// Overview returns counts, latest records and listings for one user.
func (s *DashboardService) Overview(userID uint) (*DashboardOverview, error) {
	overview := &DashboardOverview{}

	var err error
	if overview.KeyCount, err = s.keyRepo.CountByUserID(userID); err != nil {
		return nil, err
	}
	if overview.FileCount, err = s.fileRepo.CountByUserID(userID); err != nil {
		return nil, err
	}
	if overview.DataCount, err = s.dataRepo.CountByUserID(userID); err != nil {
		return nil, err
	}

	if latest, err := s.keyRepo.GetLatestByUserID(userID); err == nil {
		overview.LatestKey = latest
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if latest, err := s.fileRepo.GetLatestByUserID(userID); err == nil {
		overview.LatestFile = latest
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if latest, err := s.dataRepo.GetLatestByUserID(userID); err == nil {
		overview.LatestData = latest
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	if overview.Keys, err = s.keyRepo.ListByUserID(userID); err != nil {
		return nil, err
	}
	if overview.Files, err = s.fileRepo.ListByUserID(userID); err != nil {
		return nil, err
	}
	if overview.Data, err = s.dataRepo.ListByUserID(userID); err != nil {
		return nil, err
	}

	return overview, nil
}

// Records returns the shared records view (all keys and encrypted files).
func (s *DashboardService) Records() (*RecordListing, error) {
	keys, err := s.keyRepo.List()
	if err != nil {
		return nil, err
	}
	files, err := s.fileRepo.List()
	if err != nil {
		return nil, err
	}
	return &RecordListing{Keys: keys, Files: files}, nil
}
