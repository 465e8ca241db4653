package entity

import "time"

// EncryptedData is a named text value encrypted under one of the user's keys.
type EncryptedData struct {
	ID             uint           `gorm:"primaryKey" json:"id"`
	DataName       string         `gorm:"size:100;not null;index" json:"data_name"`
	EncryptedValue string         `gorm:"type:text;not null" json:"encrypted_value"`
	KeyID          uint           `gorm:"not null;index" json:"key_id"`
	Key            *EncryptionKey `gorm:"foreignKey:KeyID;constraint:OnDelete:CASCADE" json:"-"`
	UserID         uint           `gorm:"not null;index" json:"user_id"`
	User           *User          `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt      time.Time      `json:"created_at"`
}

func (EncryptedData) TableName() string {
	return "encrypted_data"
}
