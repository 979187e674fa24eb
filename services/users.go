package services

import (
	"errors"
	"log"

	"task-quest-system/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TelegramProfile is the identity the gateway verified upstream of this
// service. The id is trusted as-is.
type TelegramProfile struct {
	TelegramID int64
	Username   string
	FirstName  string
	LastName   string
}

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

// EnsureUser returns the user for a verified Telegram id, creating the row
// with zero XP on first sight. Losing a create race to a concurrent first
// request falls back to the row the winner created.
func (s *UserService) EnsureUser(p TelegramProfile) (*models.User, error) {
	var user models.User
	err := s.DB.Where("telegram_id = ?", p.TelegramID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			ID:         uuid.NewString(),
			TelegramID: p.TelegramID,
			Username:   p.Username,
			FirstName:  p.FirstName,
			LastName:   p.LastName,
		}
		if createErr := s.DB.Create(&user).Error; createErr != nil {
			if ferr := s.DB.Where("telegram_id = ?", p.TelegramID).First(&user).Error; ferr == nil {
				return &user, nil
			}
			return nil, storeErr("create user", createErr)
		}
		log.Printf("👤 New user registered: telegram_id=%d", p.TelegramID)
		return &user, nil
	}
	if err != nil {
		return nil, storeErr("load user", err)
	}
	return &user, nil
}

// Get loads a user by internal id.
func (s *UserService) Get(userID string) (*models.User, error) {
	var user models.User
	if err := s.DB.Where("id = ?", userID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, storeErr("load user", err)
	}
	return &user, nil
}

// UpdateProfile updates the display fields supplied by the mini-app.
func (s *UserService) UpdateProfile(userID, username, firstName, lastName string) (*models.User, error) {
	user, err := s.Get(userID)
	if err != nil {
		return nil, err
	}
	user.Username = username
	user.FirstName = firstName
	user.LastName = lastName
	if err := s.DB.Save(user).Error; err != nil {
		return nil, storeErr("update profile", err)
	}
	return user, nil
}
