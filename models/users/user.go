package users

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	Email     string `gorm:"unique;not null" json:"email"` // Email используется как уникальный username
	Name      string `json:"name"`
	Provider  string `gorm:"default:'google'" json:"provider"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Store — доступ к таблице пользователей. Интерфейс нужен, чтобы
// services/youtube не тянул за собой живую базу в тестах.
type Store interface {
	FindByEmail(email string) (*User, error)
	Create(user *User) error
}

var ErrNotFound = errors.New("user not found")

type GormStore struct {
	DB *gorm.DB
}

func (s *GormStore) FindByEmail(email string) (*User, error) {
	var user User
	if err := s.DB.Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *GormStore) Create(user *User) error {
	return s.DB.Create(user).Error
}

func GetByID(db *gorm.DB, userID uint) (*User, error) {
	var user User
	if err := db.First(&user, userID).Error; err != nil {
		return nil, err
	}
	return &user, nil
}
