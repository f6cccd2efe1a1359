package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/maitri-app/maitri-backend/internal/dto"
	"github.com/maitri-app/maitri-backend/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var (
	ErrImageURLRequired = errors.New("image URL is required")
	ErrInvalidLatitude  = errors.New("latitude must be between -90 and 90")
	ErrInvalidLongitude = errors.New("longitude must be between -180 and 180")
	ErrInvalidAnalysis  = errors.New("analysis result must be a JSON object")
	ErrReportNotFound   = errors.New("report not found")
	ErrInvalidStatus    = errors.New("invalid status: must be pending, in-progress, resolved, or closed")
)

// ReportService persists reports and serves the joined feed.
type ReportService struct {
	db    *gorm.DB
	users *UserService
}

func NewReportService(db *gorm.DB, users *UserService) *ReportService {
	return &ReportService{db: db, users: users}
}

// Submit resolves (or lazily creates) the submitting device's user and
// inserts a pending report. Exactly one report row, at most one user row.
func (s *ReportService) Submit(req *dto.CreateReportRequest) (*models.Report, error) {
	if strings.TrimSpace(req.DeviceID) == "" {
		return nil, ErrDeviceIDRequired
	}
	if strings.TrimSpace(req.ImageURL) == "" {
		return nil, ErrImageURLRequired
	}
	if req.Latitude != nil && (*req.Latitude < -90 || *req.Latitude > 90) {
		return nil, ErrInvalidLatitude
	}
	if req.Longitude != nil && (*req.Longitude < -180 || *req.Longitude > 180) {
		return nil, ErrInvalidLongitude
	}

	analysis := datatypes.JSON([]byte("{}"))
	if len(req.AnalysisResult) > 0 {
		if !json.Valid(req.AnalysisResult) {
			return nil, ErrInvalidAnalysis
		}
		analysis = datatypes.JSON(req.AnalysisResult)
	}

	user, err := s.users.FindOrCreateByDevice(req.DeviceID)
	if err != nil {
		return nil, err
	}

	location := strings.TrimSpace(req.Location)
	if location == "" {
		location = "Unknown"
	}

	report := models.Report{
		ID:             uuid.New(),
		UserID:         user.ID,
		ImageURL:       req.ImageURL,
		AnalysisResult: analysis,
		Location:       location,
		Latitude:       req.Latitude,
		Longitude:      req.Longitude,
		Status:         models.ReportStatusPending,
	}

	if err := s.db.Create(&report).Error; err != nil {
		return nil, fmt.Errorf("failed to create report: %w", err)
	}

	report.User = *user
	report.Likes = []models.Like{}
	report.Comments = []models.Comment{}
	return &report, nil
}

// List returns reports newest-first, each joined with its owner, all likes,
// and all comments with their authors (comments newest-first). mineDeviceID
// and status are optional server-side filters.
func (s *ReportService) List(mineDeviceID, status string) ([]models.Report, error) {
	query := s.db.Model(&models.Report{}).
		Preload("User").
		Preload("Likes").
		Preload("Comments", func(db *gorm.DB) *gorm.DB {
			return db.Order("comments.created_at DESC")
		}).
		Preload("Comments.User")

	if mineDeviceID != "" {
		user, err := s.users.FindByDevice(mineDeviceID)
		if err != nil {
			if errors.Is(err, ErrUserNotFound) {
				return []models.Report{}, nil
			}
			return nil, err
		}
		query = query.Where("user_id = ?", user.ID)
	}
	if status != "" {
		if !models.ValidReportStatus(status) {
			return nil, ErrInvalidStatus
		}
		query = query.Where("status = ?", status)
	}

	var reports []models.Report
	if err := query.Order("created_at DESC").Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch reports: %w", err)
	}
	return reports, nil
}

// UpdateStatus moves a report through the moderation state machine.
func (s *ReportService) UpdateStatus(reportID uuid.UUID, status string) (*models.Report, error) {
	if !models.ValidReportStatus(status) {
		return nil, ErrInvalidStatus
	}

	result := s.db.Model(&models.Report{}).Where("id = ?", reportID).Update("status", status)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to update report status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrReportNotFound
	}

	var report models.Report
	if err := s.db.Preload("User").First(&report, "id = ?", reportID).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch updated report: %w", err)
	}
	return &report, nil
}

// Stats returns the total report count and a per-status breakdown for the
// admin dashboard.
func (s *ReportService) Stats() (*dto.ReportStatsResponse, error) {
	var rows []struct {
		Status string
		Count  int64
	}
	if err := s.db.Model(&models.Report{}).
		Select("status, count(*) as count").
		Group("status").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count reports: %w", err)
	}

	stats := &dto.ReportStatsResponse{ByStatus: make(map[string]int64)}
	for _, row := range rows {
		stats.ByStatus[row.Status] = row.Count
		stats.Total += row.Count
	}
	return stats, nil
}
