package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/maitri-app/maitri-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrDeviceIDRequired = errors.New("device ID is required")
	ErrUserNotFound     = errors.New("user not found")
)

// UserService resolves opaque client-generated device IDs to user rows.
type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

// FindOrCreateByDevice returns the user owning deviceID, creating one on
// first sight. Idempotent: repeated calls yield the same user. Two
// concurrent first-contacts may both attempt the insert; the unique index
// on device_id is authoritative and the loser falls back to a lookup.
func (s *UserService) FindOrCreateByDevice(deviceID string) (*models.User, error) {
	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" {
		return nil, ErrDeviceIDRequired
	}

	var user models.User
	err := s.db.Where("device_id = ?", deviceID).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	user = models.User{
		ID:       uuid.New(),
		DeviceID: deviceID,
	}
	if err := s.db.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// Lost the first-contact race; the winner's row is the user.
			if err := s.db.Where("device_id = ?", deviceID).First(&user).Error; err != nil {
				return nil, fmt.Errorf("failed to resolve user after duplicate device: %w", err)
			}
			return &user, nil
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return &user, nil
}

// FindByDevice returns the user owning deviceID without creating one.
// Likes and comments require a previously seen device.
func (s *UserService) FindByDevice(deviceID string) (*models.User, error) {
	deviceID = strings.TrimSpace(deviceID)
	if deviceID == "" {
		return nil, ErrDeviceIDRequired
	}

	var user models.User
	if err := s.db.Where("device_id = ?", deviceID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return &user, nil
}
