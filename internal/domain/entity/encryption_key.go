package entity

import "time"

// EncryptionKey is a named Fernet key owned by a user.
// KeyValue holds the base64url-encoded 32-byte key as produced by fernet.
type EncryptionKey struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	KeyName   string    `gorm:"size:100;not null;uniqueIndex" json:"key_name"`
	KeyValue  string    `gorm:"type:text;not null" json:"-"`
	UserID    uint      `gorm:"not null;index" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

func (EncryptionKey) TableName() string {
	return "encryption_keys"
}
