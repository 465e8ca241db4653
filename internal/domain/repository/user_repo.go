package repository

import "github.com/yourusername/datasec-api/internal/domain/entity"

// UserRepository persists user accounts.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id uint) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	List() ([]entity.User, error)
	Count() (int64, error)
	CountStaff() (int64, error)
	CountSuperusers() (int64, error)
	GetLatest() (*entity.User, error)
}
