package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/maitri-app/maitri-backend/internal/models"
	"gorm.io/gorm"
)

var ErrTextRequired = errors.New("text is required")

// EngagementService handles likes and comments. Unlike report submission,
// engagement never creates a user implicitly: an unknown device is rejected.
type EngagementService struct {
	db    *gorm.DB
	users *UserService
}

func NewEngagementService(db *gorm.DB, users *UserService) *EngagementService {
	return &EngagementService{db: db, users: users}
}

// ToggleLike flips the like state for (device, report). A present row is
// deleted, an absent one is created. Returns the resulting state and the
// report's updated like count.
func (s *EngagementService) ToggleLike(deviceID string, reportID uuid.UUID) (liked bool, count int64, err error) {
	user, err := s.users.FindByDevice(deviceID)
	if err != nil {
		return false, 0, err
	}

	if err := s.db.First(&models.Report{}, "id = ?", reportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, 0, ErrReportNotFound
		}
		return false, 0, fmt.Errorf("failed to look up report: %w", err)
	}

	var existing models.Like
	err = s.db.Where("user_id = ? AND report_id = ?", user.ID, reportID).First(&existing).Error
	switch {
	case err == nil:
		if err := s.db.Delete(&existing).Error; err != nil {
			return false, 0, fmt.Errorf("failed to remove like: %w", err)
		}
		liked = false
	case errors.Is(err, gorm.ErrRecordNotFound):
		like := models.Like{
			ID:       uuid.New(),
			UserID:   user.ID,
			ReportID: reportID,
		}
		if err := s.db.Create(&like).Error; err != nil {
			// Concurrent toggle won the insert; the pair is already liked.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				liked = true
				break
			}
			return false, 0, fmt.Errorf("failed to create like: %w", err)
		}
		liked = true
	default:
		return false, 0, fmt.Errorf("failed to look up like: %w", err)
	}

	if err := s.db.Model(&models.Like{}).Where("report_id = ?", reportID).Count(&count).Error; err != nil {
		return liked, 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return liked, count, nil
}

// LikeState reports whether the device currently likes the report, plus the
// report's like count, without mutating anything.
func (s *EngagementService) LikeState(deviceID string, reportID uuid.UUID) (liked bool, count int64, err error) {
	user, err := s.users.FindByDevice(deviceID)
	if err != nil {
		return false, 0, err
	}

	var matched int64
	if err := s.db.Model(&models.Like{}).
		Where("user_id = ? AND report_id = ?", user.ID, reportID).
		Count(&matched).Error; err != nil {
		return false, 0, fmt.Errorf("failed to look up like: %w", err)
	}

	if err := s.db.Model(&models.Like{}).Where("report_id = ?", reportID).Count(&count).Error; err != nil {
		return false, 0, fmt.Errorf("failed to count likes: %w", err)
	}
	return matched > 0, count, nil
}

// AddComment attaches an attributed comment to a report and returns it
// joined with its author.
func (s *EngagementService) AddComment(deviceID string, reportID uuid.UUID, text string) (*models.Comment, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrTextRequired
	}

	user, err := s.users.FindByDevice(deviceID)
	if err != nil {
		return nil, err
	}

	if err := s.db.First(&models.Report{}, "id = ?", reportID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, fmt.Errorf("failed to look up report: %w", err)
	}

	comment := models.Comment{
		ID:       uuid.New(),
		UserID:   user.ID,
		ReportID: reportID,
		Text:     text,
	}
	if err := s.db.Create(&comment).Error; err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	comment.User = *user
	return &comment, nil
}
