package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Report statuses. A report starts at pending and only admins move it.
const (
	ReportStatusPending    = "pending"
	ReportStatusInProgress = "in-progress"
	ReportStatusResolved   = "resolved"
	ReportStatusClosed     = "closed"
)

// Report is one submitted observation of an animal: an image, the AI
// classification payload, and where it was seen. Owner and image are set
// exactly once at creation; status is the only admin-mutable field.
type Report struct {
	ID             uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID         uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	ImageURL       string         `gorm:"type:text;not null" json:"image_url"`
	AnalysisResult datatypes.JSON `gorm:"type:jsonb" json:"analysis_result"`
	Location       string         `gorm:"size:255;default:'Unknown'" json:"location"`
	Latitude       *float64       `gorm:"type:decimal(10,8)" json:"latitude,omitempty"`
	Longitude      *float64       `gorm:"type:decimal(11,8)" json:"longitude,omitempty"`
	Status         string         `gorm:"not null;default:'pending';size:50" json:"status"`
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`

	User     User      `gorm:"foreignKey:UserID" json:"user"`
	Likes    []Like    `gorm:"foreignKey:ReportID" json:"likes"`
	Comments []Comment `gorm:"foreignKey:ReportID" json:"comments"`
}

// ValidReportStatus reports whether s is a known moderation status.
func ValidReportStatus(s string) bool {
	switch s {
	case ReportStatusPending, ReportStatusInProgress, ReportStatusResolved, ReportStatusClosed:
		return true
	}
	return false
}
