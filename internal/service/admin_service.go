package service

import (
	"errors"

	"github.com/xuri/excelize/v2"

	"github.com/yourusername/datasec-api/internal/domain/entity"
	"github.com/yourusername/datasec-api/internal/domain/repository"
	apperrors "github.com/yourusername/datasec-api/internal/pkg/errors"
)

// AdminOverview aggregates system-wide counts and listings for staff users.
type AdminOverview struct {
	UserCount      int64                  `json:"user_count"`
	StaffCount     int64                  `json:"staff_count"`
	SuperuserCount int64                  `json:"superuser_count"`
	KeyCount       int64                  `json:"key_count"`
	FileCount      int64                  `json:"file_count"`
	LatestUser     *entity.User           `json:"latest_user,omitempty"`
	LatestKey      *entity.EncryptionKey  `json:"latest_key,omitempty"`
	LatestFile     *entity.EncryptedFile  `json:"latest_file,omitempty"`
	Users          []entity.User          `json:"users"`
	Keys           []entity.EncryptionKey `json:"keys"`
	Files          []entity.EncryptedFile `json:"files"`
	Data           []entity.EncryptedData `json:"data"`
}

// AdminService builds the staff-only panel data and record exports.
type AdminService struct {
	userRepo repository.UserRepository
	keyRepo  repository.EncryptionKeyRepository
	dataRepo repository.EncryptedDataRepository
	fileRepo repository.EncryptedFileRepository
}

func NewAdminService(
	userRepo repository.UserRepository,
	keyRepo repository.EncryptionKeyRepository,
	dataRepo repository.EncryptedDataRepository,
	fileRepo repository.EncryptedFileRepository,
) *AdminService {
	return &AdminService{
		userRepo: userRepo,
		keyRepo:  keyRepo,
		dataRepo: dataRepo,
		fileRepo: fileRepo,
	}
}

func (s *AdminService) Overview() (*AdminOverview, error) {
	overview := &AdminOverview{}

	var err error
	if overview.UserCount, err = s.userRepo.Count(); err != nil {
		return nil, err
	}
	if overview.StaffCount, err = s.userRepo.CountStaff(); err != nil {
		return nil, err
	}
	if overview.SuperuserCount, err = s.userRepo.CountSuperusers(); err != nil {
		return nil, err
	}
	if overview.KeyCount, err = s.keyRepo.Count(); err != nil {
		return nil, err
	}
	if overview.FileCount, err = s.fileRepo.Count(); err != nil {
		return nil, err
	}

	if latest, err := s.userRepo.GetLatest(); err == nil {
		overview.LatestUser = latest
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if latest, err := s.keyRepo.GetLatest(); err == nil {
		overview.LatestKey = latest
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if latest, err := s.fileRepo.GetLatest(); err == nil {
		overview.LatestFile = latest
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	if overview.Users, err = s.userRepo.List(); err != nil {
		return nil, err
	}
	if overview.Keys, err = s.keyRepo.List(); err != nil {
		return nil, err
	}
	if overview.Files, err = s.fileRepo.List(); err != nil {
		return nil, err
	}
	if overview.Data, err = s.dataRepo.List(); err != nil {
		return nil, err
	}

	return overview, nil
}

// ExportRecords builds an xlsx workbook with one sheet per record type.
// Key material itself stays out of the export.
func (s *AdminService) ExportRecords() (*excelize.File, error) {
	keys, err := s.keyRepo.List()
	if err != nil {
		return nil, err
	}
	files, err := s.fileRepo.List()
	if err != nil {
		return nil, err
	}
	data, err := s.dataRepo.List()
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()

	const keySheet = "Keys"
	if err := f.SetSheetName("Sheet1", keySheet); err != nil {
		return nil, err
	}
	writeRow(f, keySheet, 1, "ID", "Key Name", "User ID", "Created At")
	for i, k := range keys {
		writeRow(f, keySheet, i+2, k.ID, k.KeyName, k.UserID, k.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	const fileSheet = "Files"
	if _, err := f.NewSheet(fileSheet); err != nil {
		return nil, err
	}
	writeRow(f, fileSheet, 1, "ID", "File Name", "Path", "Key ID", "User ID", "Created At")
	for i, r := range files {
		writeRow(f, fileSheet, i+2, r.ID, r.FileName, r.EncryptedPath, r.KeyID, r.UserID, r.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	const dataSheet = "Data"
	if _, err := f.NewSheet(dataSheet); err != nil {
		return nil, err
	}
	writeRow(f, dataSheet, 1, "ID", "Data Name", "Key ID", "User ID", "Created At")
	for i, r := range data {
		writeRow(f, dataSheet, i+2, r.ID, r.DataName, r.KeyID, r.UserID, r.CreatedAt.Format("2006-01-02 15:04:05"))
	}

	return f, nil
}

func writeRow(f *excelize.File, sheet string, row int, values ...interface{}) {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			continue
		}
		// Best effort per cell; the sheet stays usable.
		_ = f.SetCellValue(sheet, cell, v)
	}
}
