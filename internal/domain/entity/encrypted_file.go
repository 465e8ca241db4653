package entity

import "time"

// EncryptedFile records an uploaded file encrypted under one of the user's keys.
// EncryptedPath is relative to the media root (e.g. "encrypted_files/report.pdf").
type EncryptedFile struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	FileName      string         `gorm:"size:255;not null;index" json:"file_name"`
	EncryptedPath string         `gorm:"size:512;not null" json:"encrypted_path"`
	KeyID         uint           `gorm:"not null;index" json:"key_id"`
	Key           *EncryptionKey `gorm:"foreignKey:KeyID;constraint:OnDelete:CASCADE" json:"-"`
	UserID        uint           `gorm:"not null;index" json:"user_id"`
	User          *User          `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt     time.Time      `json:"created_at"`
}

func (EncryptedFile) TableName() string {
	return "encrypted_files"
}
